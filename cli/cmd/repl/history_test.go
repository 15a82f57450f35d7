package repl

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestHistory_WriteAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	h := NewHistory(path)

	if _, err := h.Write("add(1, 2)", modeEval); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	if _, err := h.Write("list", modeCtrl); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if reloaded.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", reloaded.Len())
	}

	first, err := reloaded.GetEntry(0)
	if err != nil {
		t.Fatalf("GetEntry(0) error: %v", err)
	}

	if first.Line != "add(1, 2)" || first.Mode != modeEval {
		t.Errorf("GetEntry(0) = %+v, want eval add(1, 2)", first)
	}

	second, err := reloaded.GetEntry(1)
	if err != nil {
		t.Fatalf("GetEntry(1) error: %v", err)
	}

	if second.Line != "list" || second.Mode != modeCtrl {
		t.Errorf("GetEntry(1) = %+v, want ctrl list", second)
	}
}

func TestHistory_DuplicateMovesToEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	h := NewHistory(path)

	for _, line := range []string{"first()", "second()", "first()"} {
		if _, err := h.Write(line, modeEval); err != nil {
			t.Fatalf("Write(%q) error: %v", line, err)
		}
	}

	if h.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 after dedup", h.Len())
	}

	last, err := h.GetEntry(1)
	if err != nil {
		t.Fatalf("GetEntry(1) error: %v", err)
	}

	if last.Line != "first()" {
		t.Errorf("GetEntry(1).Line = %q, want %q", last.Line, "first()")
	}
}

func TestHistory_SkipsConsecutiveDuplicate(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	h := NewHistory(path)

	_, _ = h.Write("same()", modeEval)
	_, _ = h.Write("same()", modeEval)

	if h.Len() != 1 {
		t.Errorf("Len() = %d, want 1", h.Len())
	}
}

func TestHistory_LoadMissingFile(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "absent"))

	if err := h.Load(); err != nil {
		t.Errorf("Load() error for missing file: %v", err)
	}

	if h.Len() != 0 {
		t.Errorf("Len() = %d, want 0", h.Len())
	}
}

func TestHistory_GetEntryOutOfBounds(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), baseHistory))

	if _, err := h.GetEntry(0); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("GetEntry(0) error = %v, want ErrOutOfBounds", err)
	}
}

func TestHistory_LegacyLinesDefaultToEval(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	if err := os.WriteFile(path, []byte("bare_line()\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	entry, err := h.GetEntry(0)
	if err != nil {
		t.Fatalf("GetEntry(0) error: %v", err)
	}

	if entry.Mode != modeEval || entry.Line != "bare_line()" {
		t.Errorf("GetEntry(0) = %+v, want eval bare_line()", entry)
	}
}
