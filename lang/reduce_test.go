package lang

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
)

// defineAdd installs add(x, y=1) as a native body so reducer tests do
// not depend on the expr-lang backend.
func defineAdd(t *testing.T, s *Sandbox) {
	t.Helper()

	err := s.DefineNative(
		"add",
		Params{Required("x"), Defaulted("y", int64(1))},
		func(inv *Invocation) (any, error) {
			x, err := inv.Frame.Lookup("x")
			if err != nil {
				return nil, err
			}

			y, err := inv.Frame.Lookup("y")
			if err != nil {
				return nil, err
			}

			xi, ok := x.(int64)
			if !ok {
				return nil, ErrInvalidExpr.
					With(slog.String("reason", "x is not an integer"))
			}

			yi, ok := y.(int64)
			if !ok {
				return nil, ErrInvalidExpr.
					With(slog.String("reason", "y is not an integer"))
			}

			return xi + yi, nil
		},
	)
	if err != nil {
		t.Fatalf("define error: %v", err)
	}
}

func TestReduce_SimpleCall(t *testing.T) {
	s := New()
	defineAdd(t, s)

	v, err := s.Eval(t.Context(), "add(3, 7)")
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}

	if v != int64(10) {
		t.Errorf("expected 10, got %v", v)
	}
}

func TestReduce_DefaultArgument(t *testing.T) {
	s := New()
	defineAdd(t, s)

	v, err := s.Eval(t.Context(), "add(5)")
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}

	if v != int64(6) {
		t.Errorf("expected 6 with defaulted y=1, got %v", v)
	}
}

func TestReduce_NestedCallsInnermostFirst(t *testing.T) {
	trace := NewTrace()

	s := New(WithTrace(trace))
	defineAdd(t, s)

	v, err := s.Eval(t.Context(), "add(add(2, add(5, 7)), 9)")
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}

	if v != int64(23) {
		t.Errorf("expected 23, got %v", v)
	}

	want := []string{
		"add(5, 7) => 12",
		"add(2, 12) => 14",
		"add(14, 9) => 23",
	}

	events := trace.Events()
	if len(events) != len(want) {
		t.Fatalf("expected %d events, got %d: %v", len(want), len(events), events)
	}

	for i, ev := range events {
		if got := ev.Call + " => " + ev.Result; got != want[i] {
			t.Errorf("event %d: expected %q, got %q", i, want[i], got)
		}

		// Arguments reduce before their enclosing call is invoked, so
		// no other call frame is live while each add runs.
		if ev.Depth != 0 {
			t.Errorf("event %d: expected depth 0, got %d", i, ev.Depth)
		}

		if ev.Scope != "global.add" {
			t.Errorf("event %d: expected scope global.add, got %q", i, ev.Scope)
		}
	}
}

func TestReduce_KeywordArguments(t *testing.T) {
	s := New()
	defineAdd(t, s)

	v, err := s.Eval(t.Context(), "add(3, y=7)")
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}

	if v != int64(10) {
		t.Errorf("expected 10, got %v", v)
	}
}

func TestReduce_CallErrors(t *testing.T) {
	s := New(WithGlobal("five", int64(5)))
	defineAdd(t, s)

	tests := []struct {
		name   string
		source string
		want   error
	}{
		{"unknown keyword", "add(1, z=2)", ErrUnknownKeyword},
		{"missing argument", "add()", ErrMissingArgument},
		{"too many arguments", "add(1, 2, 3)", ErrTooManyArguments},
		{"duplicate argument", "add(1, x=2)", ErrDuplicateArgument},
		{"name not found", "add(ghost)", ErrNameNotFound},
		{"callee not found", "ghost(1)", ErrNameNotFound},
		{"not callable", "five(1)", ErrNotCallable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Eval(t.Context(), tt.source)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestReduce_PrintOrderingMatchesVisitOrder(t *testing.T) {
	var out bytes.Buffer

	s := New(WithOutput(&out))
	defineAdd(t, s)

	err := s.Define(&Function{
		Name:   "announce",
		Params: Params{Required("n")},
		Body: Steps{
			EvalStep{Expr: NewCall("print", Pos(NewLit("before")))},
			EvalStep{Expr: NewCall("print", Pos(NewCall("add", Pos(NewRef("n")))))},
			EvalStep{Expr: NewCall("print", Pos(NewLit("after")))},
		},
	})
	if err != nil {
		t.Fatalf("define error: %v", err)
	}

	v, err := s.Eval(t.Context(), "announce(41)")
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}

	if !IsNoValue(v) {
		t.Errorf("expected NoValue from body without return, got %v", v)
	}

	want := "before\n42\nafter\n"
	if out.String() != want {
		t.Errorf("expected output %q, got %q", want, out.String())
	}
}

func TestReduce_BodyCallsRecordNestedDepth(t *testing.T) {
	trace := NewTrace()

	s := New(WithTrace(trace))
	defineAdd(t, s)

	err := s.Define(&Function{
		Name:   "twice",
		Params: Params{Required("n")},
		Body: Steps{
			ReturnStep{Expr: NewCall(
				"add",
				Pos(NewRef("n")),
				Kw("y", NewRef("n")),
			)},
		},
	})
	if err != nil {
		t.Fatalf("define error: %v", err)
	}

	v, err := s.Eval(t.Context(), "twice(21)")
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}

	if v != int64(42) {
		t.Errorf("expected 42, got %v", v)
	}

	events := trace.Events()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	// The add call runs while twice's frame is still live.
	if events[0].Callee != "add" || events[0].Depth != 1 {
		t.Errorf("expected nested add at depth 1, got %+v", events[0])
	}

	if events[1].Callee != "twice" || events[1].Depth != 0 {
		t.Errorf("expected twice at depth 0, got %+v", events[1])
	}
}

func TestReduce_UnboundLocalReadBeforeAssignment(t *testing.T) {
	s := New(WithGlobal("msg", "outer"))

	err := s.Define(&Function{
		Name: "confused",
		Body: Steps{
			EvalStep{Expr: NewCall("print", Pos(NewRef("msg")))},
			AssignStep{Name: "msg", Expr: NewLit("inner")},
		},
	})
	if err != nil {
		t.Fatalf("define error: %v", err)
	}

	_, err = s.Eval(t.Context(), "confused()")
	if !errors.Is(err, ErrUnboundLocal) {
		t.Errorf("expected ErrUnboundLocal, got %v", err)
	}
}

func TestReduce_GlobalDeclarationMutatesOuterBinding(t *testing.T) {
	s := New(WithGlobal("counter", int64(10)))
	defineAdd(t, s)

	err := s.Define(&Function{
		Name: "bump",
		Body: Steps{
			GlobalStep{Name: "counter"},
			AssignStep{
				Name: "counter",
				Expr: NewCall("add", Pos(NewRef("counter"))),
			},
			ReturnStep{Expr: NewRef("counter")},
		},
	})
	if err != nil {
		t.Fatalf("define error: %v", err)
	}

	v, err := s.Eval(t.Context(), "bump()")
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}

	if v != int64(11) {
		t.Errorf("expected 11, got %v", v)
	}

	// The mutation outlives the call frame.
	got, err := s.Global().Lookup("counter")
	if err != nil {
		t.Fatalf("global lookup error: %v", err)
	}

	if got != int64(11) {
		t.Errorf("expected global counter 11 after return, got %v", got)
	}
}

func TestReduce_GlobalAnywhereInBodyExemptsPreScan(t *testing.T) {
	s := New(WithGlobal("mode", "quiet"))

	// The global declaration appears after the read, but the assignment
	// pre-scan must not mark the name local.
	err := s.Define(&Function{
		Name: "reader",
		Body: Steps{
			AssignStep{Name: "seen", Expr: NewRef("mode")},
			GlobalStep{Name: "mode"},
			AssignStep{Name: "mode", Expr: NewLit("loud")},
			ReturnStep{Expr: NewRef("seen")},
		},
	})
	if err != nil {
		t.Fatalf("define error: %v", err)
	}

	v, err := s.Eval(t.Context(), "reader()")
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}

	if v != "quiet" {
		t.Errorf("expected quiet, got %v", v)
	}

	got, err := s.Global().Lookup("mode")
	if err != nil {
		t.Fatalf("global lookup error: %v", err)
	}

	if got != "loud" {
		t.Errorf("expected mutated global, got %v", got)
	}
}

func TestReduce_DirectExpressionTree(t *testing.T) {
	s := New()
	defineAdd(t, s)

	// add(add(2, y=3), 9) built without the parser.
	expr := NewCall("add",
		Pos(NewCall("add", Pos(NewLit(int64(2))), Kw("y", NewLit(int64(3))))),
		Pos(NewLit(int64(9))),
	)

	v, err := s.Reduce(expr, nil)
	if err != nil {
		t.Fatalf("reduce error: %v", err)
	}

	if v != int64(14) {
		t.Errorf("expected 14, got %v", v)
	}

	// A non-nil frame resolves references against that frame first.
	frame := NewFrame("child", s.Global())
	frame.Bind("n", int64(5))

	v, err = s.Reduce(NewCall("add", Pos(NewRef("n"))), frame)
	if err != nil {
		t.Fatalf("reduce error: %v", err)
	}

	if v != int64(6) {
		t.Errorf("expected 6 with defaulted y, got %v", v)
	}
}

func TestReduce_EmptyBodyYieldsNoValue(t *testing.T) {
	s := New()

	err := s.Define(&Function{Name: "noop", Body: Steps{}})
	if err != nil {
		t.Fatalf("define error: %v", err)
	}

	v, err := s.Eval(t.Context(), "noop()")
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}

	if !IsNoValue(v) {
		t.Errorf("expected NoValue, got %v", v)
	}

	if FormatValue(v) != "none" {
		t.Errorf("expected none rendering, got %q", FormatValue(v))
	}
}
