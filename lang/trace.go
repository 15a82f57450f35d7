package lang

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// Event records one completed call-node visit. Events appear in the
// order calls complete, which for a call-by-value reducer is innermost
// first.
type Event struct {
	Depth  int    `json:"depth"  yaml:"depth"`
	Scope  string `json:"scope"  yaml:"scope"`
	Callee string `json:"callee" yaml:"callee"`
	Call   string `json:"call"   yaml:"call"`
	Result string `json:"result" yaml:"result"`
}

// Trace accumulates call events during reduction. A single Trace must
// not be shared by concurrently evaluating sandboxes; evaluation itself
// is single-threaded.
type Trace struct {
	events []Event
}

// NewTrace returns an empty trace recorder.
func NewTrace() *Trace {
	return &Trace{}
}

// Events returns the recorded events in completion order.
func (t *Trace) Events() []Event {
	return t.events
}

// Reset discards all recorded events.
func (t *Trace) Reset() {
	t.events = nil
}

// record appends an event.
func (t *Trace) record(ev Event) {
	t.events = append(t.events, ev)
}

// WriteText writes events as indented text, two spaces per nesting
// level. Nesting counts calls made from inside a function body, so
// calls reduced as arguments of an enclosing call share its level:
//
//	  add(10, 10) => 20
//	twice(10) => 20
func (t *Trace) WriteText(w io.Writer) error {
	for _, ev := range t.events {
		_, err := fmt.Fprintf(
			w,
			"%s%s => %s\n",
			strings.Repeat("  ", ev.Depth),
			ev.Call,
			ev.Result,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// WriteYAML writes events as a YAML sequence.
func (t *Trace) WriteYAML(w io.Writer) error {
	out, err := yaml.Marshal(t.events)
	if err != nil {
		return err
	}

	_, err = w.Write(out)

	return err
}

// WriteJSON writes events as an indented JSON array.
func (t *Trace) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(t.events)
}
