package repl

import (
	"bufio"
	"os"
	"strings"
	"sync"
)

const baseHistory = "history.utf8"

// historyEntry is a single submitted line tagged with the input mode it
// was submitted from.
type historyEntry struct {
	Line string
	Mode inputMode
}

// History persists submitted lines across sessions. Eval-mode lines are
// stored with an "E:" prefix and control-mode lines with "C:" so that
// recall can restore the matching mode.
type History struct {
	path    string
	entries []historyEntry
	mu      sync.RWMutex
}

// NewHistory creates a History backed by the file at path. The file is
// not read until [History.Load].
func NewHistory(path string) *History {
	return &History{path: path}
}

// Load reads entries from the history file. A missing file is not an
// error.
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	file, err := os.Open(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return err
	}
	defer file.Close()

	h.entries = nil

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		entry := historyEntry{Mode: modeEval, Line: line}

		if s, ok := strings.CutPrefix(line, "E:"); ok {
			entry.Line = s
		} else if s, ok := strings.CutPrefix(line, "C:"); ok {
			entry.Mode = modeCtrl
			entry.Line = s
		}

		h.entries = append(h.entries, entry)
	}

	return scanner.Err()
}

// Write appends entry to the history in the given mode. A line equal to
// the most recent entry in the same mode is skipped; an older duplicate
// is moved to the end.
func (h *History) Write(entry string, mode inputMode) (int, error) {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return 0, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if n := len(h.entries); n > 0 &&
		h.entries[n-1].Line == entry && h.entries[n-1].Mode == mode {
		return len(entry), nil
	}

	rewrite := false

	for i, e := range h.entries {
		if e.Line == entry && e.Mode == mode {
			h.entries = append(h.entries[:i], h.entries[i+1:]...)
			rewrite = true

			break
		}
	}

	h.entries = append(h.entries, historyEntry{Line: entry, Mode: mode})

	if rewrite {
		return h.rewriteFile()
	}

	file, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	return file.WriteString(modePrefix(mode) + entry + "\n")
}

// GetEntry retrieves a historic entry by index. Index 0 is the oldest.
func (h *History) GetEntry(i int) (historyEntry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return historyEntry{}, ErrOutOfBounds
	}

	return h.entries[i], nil
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// rewriteFile replaces the history file with the current entries.
// Must be called with h.mu held.
func (h *History) rewriteFile() (int, error) {
	file, err := os.OpenFile(h.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	total := 0

	for _, entry := range h.entries {
		n, err := file.WriteString(modePrefix(entry.Mode) + entry.Line + "\n")
		if err != nil {
			return total, err
		}

		total += n
	}

	return total, nil
}

func modePrefix(mode inputMode) string {
	if mode == modeCtrl {
		return "C:"
	}

	return "E:"
}
