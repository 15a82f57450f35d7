package lang

import (
	"errors"
	"testing"
)

func TestFrame_LookupLocal(t *testing.T) {
	f := NewFrame(GlobalFrameName, nil)
	f.Bind("x", int64(42))

	v, err := f.Lookup("x")
	if err != nil {
		t.Fatalf("lookup error: %v", err)
	}

	if v != int64(42) {
		t.Errorf("expected 42, got %v", v)
	}
}

func TestFrame_LookupWalksOutward(t *testing.T) {
	root := NewFrame(GlobalFrameName, nil)
	root.Bind("greeting", "hello")

	inner := NewFrame("inner", root)

	v, err := inner.Lookup("greeting")
	if err != nil {
		t.Fatalf("lookup error: %v", err)
	}

	if v != "hello" {
		t.Errorf("expected outer binding, got %v", v)
	}
}

func TestFrame_ShadowingHidesOuterBinding(t *testing.T) {
	root := NewFrame(GlobalFrameName, nil)
	root.Bind("x", int64(1))

	inner := NewFrame("inner", root)
	inner.Bind("x", int64(2))

	v, err := inner.Lookup("x")
	if err != nil {
		t.Fatalf("lookup error: %v", err)
	}

	if v != int64(2) {
		t.Errorf("expected shadowing local 2, got %v", v)
	}

	// The outer binding is untouched.
	v, err = root.Lookup("x")
	if err != nil {
		t.Fatalf("root lookup error: %v", err)
	}

	if v != int64(1) {
		t.Errorf("expected outer binding 1, got %v", v)
	}
}

func TestFrame_NameNotFound(t *testing.T) {
	root := NewFrame(GlobalFrameName, nil)
	inner := NewFrame("inner", root)

	_, err := inner.Lookup("nope")
	if !errors.Is(err, ErrNameNotFound) {
		t.Errorf("expected ErrNameNotFound, got %v", err)
	}
}

func TestFrame_UnboundLocalBeforeAssignment(t *testing.T) {
	root := NewFrame(GlobalFrameName, nil)
	root.Bind("msg", "outer")

	inner := NewFrame("inner", root)

	// An assignment somewhere in the body makes the name local
	// everywhere in the body; reading it first must not fall back to
	// the outer frame.
	inner.MarkLocal("msg")

	_, err := inner.Lookup("msg")
	if !errors.Is(err, ErrUnboundLocal) {
		t.Fatalf("expected ErrUnboundLocal, got %v", err)
	}

	// After the assignment executes, the local binding wins.
	inner.Bind("msg", "inner")

	v, err := inner.Lookup("msg")
	if err != nil {
		t.Fatalf("lookup error: %v", err)
	}

	if v != "inner" {
		t.Errorf("expected local binding, got %v", v)
	}
}

func TestFrame_UnboundLocalDoesNotLeakOutward(t *testing.T) {
	root := NewFrame(GlobalFrameName, nil)

	mid := NewFrame("mid", root)
	mid.MarkLocal("x")

	// A sibling frame under mid sees neither mid's mark nor a binding.
	inner := NewFrame("inner", mid)

	_, err := inner.Lookup("x")
	if !errors.Is(err, ErrNameNotFound) {
		t.Errorf("expected ErrNameNotFound from inner frame, got %v", err)
	}
}

func TestFrame_DeclareGlobalRoutesReadsAndWrites(t *testing.T) {
	root := NewFrame(GlobalFrameName, nil)
	root.Bind("counter", int64(10))

	inner := NewFrame("inner", root)

	err := inner.DeclareGlobal("counter")
	if err != nil {
		t.Fatalf("declare error: %v", err)
	}

	v, err := inner.Lookup("counter")
	if err != nil {
		t.Fatalf("lookup error: %v", err)
	}

	if v != int64(10) {
		t.Errorf("expected global value 10, got %v", v)
	}

	inner.Bind("counter", int64(11))

	// The write landed in the outermost frame, not the inner one.
	v, err = root.Lookup("counter")
	if err != nil {
		t.Fatalf("root lookup error: %v", err)
	}

	if v != int64(11) {
		t.Errorf("expected mutated global 11, got %v", v)
	}

	if len(inner.Keys()) != 0 {
		t.Errorf("expected no local bindings, got %v", inner.Keys())
	}
}

func TestFrame_DeclareGlobalAfterLocalWriteFails(t *testing.T) {
	root := NewFrame(GlobalFrameName, nil)
	inner := NewFrame("inner", root)

	inner.Bind("x", int64(1))

	err := inner.DeclareGlobal("x")
	if !errors.Is(err, ErrGlobalAfterBind) {
		t.Errorf("expected ErrGlobalAfterBind, got %v", err)
	}
}

func TestFrame_DeclareGlobalOverridesLocalMark(t *testing.T) {
	root := NewFrame(GlobalFrameName, nil)
	root.Bind("x", int64(7))

	inner := NewFrame("inner", root)
	inner.MarkLocal("x")

	err := inner.DeclareGlobal("x")
	if err != nil {
		t.Fatalf("declare error: %v", err)
	}

	v, err := inner.Lookup("x")
	if err != nil {
		t.Fatalf("lookup error: %v", err)
	}

	if v != int64(7) {
		t.Errorf("expected global value 7, got %v", v)
	}
}

func TestFrame_GlobalNameMissingFromRoot(t *testing.T) {
	root := NewFrame(GlobalFrameName, nil)
	inner := NewFrame("inner", root)

	err := inner.DeclareGlobal("ghost")
	if err != nil {
		t.Fatalf("declare error: %v", err)
	}

	_, err = inner.Lookup("ghost")
	if !errors.Is(err, ErrNameNotFound) {
		t.Errorf("expected ErrNameNotFound, got %v", err)
	}
}

func TestFrame_Path(t *testing.T) {
	root := NewFrame(GlobalFrameName, nil)
	inner := NewFrame("work", root)

	if got := inner.Path(); got != "global.work" {
		t.Errorf("expected path global.work, got %q", got)
	}
}

func TestFrame_SnapshotShadowsOuter(t *testing.T) {
	root := NewFrame(GlobalFrameName, nil)
	root.Bind("x", int64(1))
	root.Bind("y", int64(2))

	inner := NewFrame("inner", root)
	inner.Bind("x", int64(10))

	snap := inner.Snapshot()

	if snap["x"] != int64(10) {
		t.Errorf("expected inner x to shadow, got %v", snap["x"])
	}

	if snap["y"] != int64(2) {
		t.Errorf("expected outer y visible, got %v", snap["y"])
	}
}
