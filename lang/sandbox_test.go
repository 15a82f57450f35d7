package lang

import (
	"bytes"
	"errors"
	"testing"
)

func TestSandbox_CallWithArgs(t *testing.T) {
	s := New()
	defineAdd(t, s)

	v, err := s.Call(t.Context(), "add", NewArgs(int64(3), int64(7)))
	if err != nil {
		t.Fatalf("call error: %v", err)
	}

	if v != int64(10) {
		t.Errorf("expected 10, got %v", v)
	}
}

func TestSandbox_CallWithKeyword(t *testing.T) {
	s := New()
	defineAdd(t, s)

	v, err := s.Call(t.Context(), "add", NewArgs(int64(5)).Keyword("y", int64(2)))
	if err != nil {
		t.Fatalf("call error: %v", err)
	}

	if v != int64(7) {
		t.Errorf("expected 7, got %v", v)
	}
}

func TestSandbox_CallUnknownFunction(t *testing.T) {
	s := New()

	_, err := s.Call(t.Context(), "ghost", NewArgs())
	if !errors.Is(err, ErrFunctionNotFound) {
		t.Errorf("expected ErrFunctionNotFound, got %v", err)
	}
}

func TestSandbox_CallNonFunction(t *testing.T) {
	s := New(WithGlobal("five", int64(5)))

	_, err := s.Call(t.Context(), "five", NewArgs())
	if !errors.Is(err, ErrNotCallable) {
		t.Errorf("expected ErrNotCallable, got %v", err)
	}
}

func TestSandbox_DefineRejectsInvalidParams(t *testing.T) {
	s := New()

	err := s.Define(&Function{
		Name:   "broken",
		Params: Params{Defaulted("a", 0), Required("b")},
		Body:   Steps{},
	})
	if !errors.Is(err, ErrInvalidParams) {
		t.Errorf("expected ErrInvalidParams, got %v", err)
	}
}

func TestSandbox_PrintEndKeyword(t *testing.T) {
	var out bytes.Buffer

	s := New(WithOutput(&out))

	_, err := s.Eval(t.Context(), `print("a", end="")`)
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}

	_, err = s.Eval(t.Context(), `print("b")`)
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}

	if out.String() != "ab\n" {
		t.Errorf("expected %q, got %q", "ab\n", out.String())
	}
}

func TestSandbox_LocalNameShadowsFunction(t *testing.T) {
	s := New()
	defineAdd(t, s)

	// A parameter named add shadows the function for the frame's
	// lifetime.
	err := s.Define(&Function{
		Name:   "shadow",
		Params: Params{Required("add")},
		Body: Steps{
			ReturnStep{Expr: NewRef("add")},
		},
	})
	if err != nil {
		t.Fatalf("define error: %v", err)
	}

	v, err := s.Eval(t.Context(), "shadow(99)")
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}

	if v != int64(99) {
		t.Errorf("expected shadowed value 99, got %v", v)
	}
}

func TestExprBody_RunsAgainstLocalsAndGlobals(t *testing.T) {
	s := New(WithGlobal("base", int64(100)))

	body, err := CompileExprBody("base + n")
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}

	err = s.Define(&Function{
		Name:   "offset",
		Params: Params{Required("n")},
		Body:   body,
	})
	if err != nil {
		t.Fatalf("define error: %v", err)
	}

	v, err := s.Eval(t.Context(), "offset(5)")
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}

	if v != int64(105) {
		t.Errorf("expected 105, got %v (%T)", v, v)
	}
}

func TestExprBody_CompileError(t *testing.T) {
	_, err := CompileExprBody("x +")
	if !errors.Is(err, ErrExprCompile) {
		t.Errorf("expected ErrExprCompile, got %v", err)
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want string
	}{
		{"nil", nil, "none"},
		{"no value", NoValue, "none"},
		{"bool", true, "true"},
		{"int64", int64(42), "42"},
		{"float", 2.5, "2.5"},
		{"string", "plain", "plain"},
		{"slice", []any{int64(1), "a"}, `[1, "a"]`},
		{"map", map[string]any{"b": int64(2), "a": int64(1)}, "{a: 1, b: 2}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatValue(tt.v); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
