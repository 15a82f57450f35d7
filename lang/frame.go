package lang

import (
	"log/slog"
	"maps"
	"sort"

	"github.com/ardnew/mung"
)

// GlobalFrameName is the diagnostic label of the outermost frame.
const GlobalFrameName = "global"

// Frame is one level of the name-binding chain, corresponding to a single
// active call or the outermost global context.
//
// Lookup walks from the innermost frame outward and returns the first
// match. Two per-name routing sets refine that rule in the frame where
// evaluation occurs:
//
//   - locals: names assigned somewhere during the frame's lifetime.
//     Reading a local name before its binding executes fails with
//     [ErrUnboundLocal] instead of falling back to an outer frame.
//   - globals: names explicitly declared global. Reads and writes of
//     these names target the outermost frame for the remainder of the
//     frame's lifetime.
type Frame struct {
	name    string
	values  map[string]any
	locals  map[string]struct{}
	globals map[string]struct{}
	parent  *Frame
}

// NewFrame creates a new frame labeled name, optionally nested under a
// parent. A nil parent makes this the outermost (global) frame.
func NewFrame(name string, parent *Frame) *Frame {
	return &Frame{
		name:    name,
		values:  make(map[string]any),
		locals:  make(map[string]struct{}),
		globals: make(map[string]struct{}),
		parent:  parent,
	}
}

// Name returns the frame's diagnostic label.
func (f *Frame) Name() string { return f.name }

// Parent exposes the enclosing frame (nil when global).
func (f *Frame) Parent() *Frame { return f.parent }

// Root returns the outermost frame of the chain.
func (f *Frame) Root() *Frame {
	root := f
	for root.parent != nil {
		root = root.parent
	}

	return root
}

// Path returns the dot-separated chain of frame labels from the outermost
// frame to this one.
func (f *Frame) Path() string {
	var outer []string
	for p := f.parent; p != nil; p = p.parent {
		outer = append([]string{p.name}, outer...)
	}

	return mung.Make(
		mung.WithSubjectItems(f.name),
		mung.WithDelim("."),
		mung.WithPrefixItems(outer...),
	).String()
}

// MarkLocal registers name as assigned somewhere during this frame's
// lifetime without binding it. This models the rule that an assignment
// anywhere in a body makes the name local everywhere in the body: a
// subsequent read before the binding executes fails with
// [ErrUnboundLocal].
//
// Marking is a no-op for names already declared global.
func (f *Frame) MarkLocal(name string) {
	if _, ok := f.globals[name]; ok {
		return
	}

	f.locals[name] = struct{}{}
}

// DeclareGlobal routes subsequent reads and writes of name to the
// outermost frame for the remainder of this frame's lifetime.
//
// Once a write to name has occurred without a prior global declaration,
// the name is permanently local and the declaration fails with
// [ErrGlobalAfterBind]. Declaring on the global frame itself is a no-op.
func (f *Frame) DeclareGlobal(name string) error {
	if f.parent == nil {
		return nil
	}

	if _, ok := f.values[name]; ok {
		return ErrGlobalAfterBind.
			With(
				slog.String("name", name),
				slog.String("scope", f.Path()),
			)
	}

	// A pre-scan mark without a binding yields to the declaration.
	delete(f.locals, name)

	f.globals[name] = struct{}{}

	return nil
}

// Bind binds or rebinds name in the current frame only, marking it local
// for the frame's lifetime. If name was declared global, the write
// targets the outermost frame instead.
func (f *Frame) Bind(name string, value any) {
	if _, ok := f.globals[name]; ok {
		root := f.Root()
		root.values[name] = value
		root.locals[name] = struct{}{}

		return
	}

	f.values[name] = value
	f.locals[name] = struct{}{}
}

// Lookup searches the current frame, then parent frames outward, and
// returns the first bound value.
//
// In the current frame only, the routing sets apply: a name declared
// global is read from the outermost frame, and a name marked local but
// not yet bound fails with [ErrUnboundLocal]. The search fails with
// [ErrNameNotFound] when exhausted at the outermost frame.
func (f *Frame) Lookup(name string) (any, error) {
	if _, ok := f.globals[name]; ok {
		root := f.Root()
		if v, ok := root.values[name]; ok {
			return v, nil
		}

		return nil, ErrNameNotFound.
			With(
				slog.String("name", name),
				slog.String("scope", f.Path()),
			)
	}

	if v, ok := f.values[name]; ok {
		return v, nil
	}

	if _, ok := f.locals[name]; ok {
		return nil, ErrUnboundLocal.
			With(
				slog.String("name", name),
				slog.String("scope", f.Path()),
			)
	}

	// Outer frames contribute bound values only; their routing sets
	// applied when they were the evaluating frame.
	for p := f.parent; p != nil; p = p.parent {
		if v, ok := p.values[name]; ok {
			return v, nil
		}
	}

	return nil, ErrNameNotFound.
		With(
			slog.String("name", name),
			slog.String("scope", f.Path()),
		)
}

// Snapshot returns a copy of the bindings visible from this frame, with
// inner bindings shadowing outer ones.
func (f *Frame) Snapshot() map[string]any {
	chain := []*Frame{}
	for p := f; p != nil; p = p.parent {
		chain = append(chain, p)
	}

	out := make(map[string]any)

	// Outermost first so inner frames overwrite.
	for i := len(chain) - 1; i >= 0; i-- {
		maps.Copy(out, chain[i].values)
	}

	return out
}

// Keys returns the names bound in this frame in sorted order.
func (f *Frame) Keys() []string {
	keys := make([]string, 0, len(f.values))
	for k := range f.values {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
