package pkg

import (
	"errors"
	"fmt"
	"testing"
)

func TestMakeError_FlattensChains(t *testing.T) {
	inner := errors.New("inner")
	mid := fmt.Errorf("mid: %w", inner)

	e := MakeError(mid)

	if len(e) != 2 {
		t.Fatalf("expected 2 errors in chain, got %d: %v", len(e), e)
	}

	if !errors.Is(e, inner) {
		t.Error("expected chain to match inner error")
	}
}

func TestError_Message(t *testing.T) {
	e := MakeErrorf("first").Wrapf("second")

	want := "first: second"
	if got := e.Error(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestError_Is(t *testing.T) {
	e := ErrReadInput.Wrap(errors.New("disk on fire"))

	if !errors.Is(e, ErrReadInput) {
		t.Error("expected wrapped error to match sentinel")
	}

	if errors.Is(e, ErrWriteOutput) {
		t.Error("expected wrapped error not to match unrelated sentinel")
	}

	if errors.Is(ErrReadInput, e) {
		t.Error("expected sentinel not to match longer chain")
	}
}
