package lang

import (
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/benv/log"
)

// Sandbox owns the outermost (global) frame, the registered functions,
// the side-effect output stream, and an optional trace recorder.
//
// All evaluation is single-threaded and synchronous: each call creates
// one child frame of the global frame, and frames are torn down in exact
// reverse order of creation. The global frame is the only shared mutable
// resource; a body mutates it only through an explicit global
// declaration.
type Sandbox struct {
	global *Frame
	out    io.Writer
	trace  *Trace
	logger log.Logger
	depth  int
}

// Option applies a configuration option to a Sandbox.
type Option func(*Sandbox)

// WithOutput directs side-effect text (the print builtin) to w.
func WithOutput(w io.Writer) Option {
	return func(s *Sandbox) { s.out = w }
}

// WithTrace records every completed call in t.
func WithTrace(t *Trace) Option {
	return func(s *Sandbox) { s.trace = t }
}

// WithLogger attaches a structured logger for evaluation diagnostics.
func WithLogger(logger log.Logger) Option {
	return func(s *Sandbox) { s.logger = logger }
}

// WithGlobal binds name to value in the global frame.
func WithGlobal(name string, value any) Option {
	return func(s *Sandbox) { s.global.Bind(name, value) }
}

// New creates a sandbox with the print builtin defined. Output defaults
// to [io.Discard] until redirected with [WithOutput].
func New(opts ...Option) *Sandbox {
	s := &Sandbox{
		global: NewFrame(GlobalFrameName, nil),
		out:    io.Discard,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.defineBuiltins()

	return s
}

// Global returns the outermost frame.
func (s *Sandbox) Global() *Frame { return s.global }

// Output returns the sandbox's side-effect stream.
func (s *Sandbox) Output() io.Writer { return s.out }

// Trace returns the attached trace recorder, or nil.
func (s *Sandbox) Trace() *Trace { return s.trace }

// Define validates fn's parameter list and binds fn by name in the
// global frame, replacing any previous binding.
func (s *Sandbox) Define(fn *Function) error {
	err := fn.validate()
	if err != nil {
		return err
	}

	s.global.Bind(fn.Name, fn)

	s.logger.Debug(
		"function defined",
		slog.String("name", fn.Name),
		slog.Any("params", fn.Params.Names()),
	)

	return nil
}

// DefineNative defines a function whose body is a Go function.
func (s *Sandbox) DefineNative(
	name string,
	params Params,
	body NativeBody,
) error {
	return s.Define(&Function{
		Name:   name,
		Params: params,
		Body:   body,
	})
}

// Call invokes the named function with pre-reduced argument values.
// This is the call-invocation input of the sandbox: args bypass the
// reducer and feed [BindArgs] directly.
func (s *Sandbox) Call(
	ctx context.Context,
	name string,
	args Args,
) (any, error) {
	v, err := s.global.Lookup(name)
	if err != nil {
		return nil, ErrFunctionNotFound.Wrap(err).
			With(slog.String("name", name))
	}

	fn, ok := v.(*Function)
	if !ok {
		return nil, ErrNotCallable.
			With(slog.String("name", name))
	}

	result, err := s.invoke(fn, args)
	if err != nil {
		return nil, err
	}

	s.logger.DebugContext(
		ctx,
		"call completed",
		slog.String("name", name),
		slog.String("result", QuoteValue(result)),
	)

	return result, nil
}

// Eval parses source as a transcript-syntax expression and reduces it in
// the global frame.
func (s *Sandbox) Eval(ctx context.Context, source string) (any, error) {
	e, err := Parse(source)
	if err != nil {
		return nil, err
	}

	result, err := s.reduce(e, s.global)
	if err != nil {
		return nil, err
	}

	s.logger.DebugContext(
		ctx,
		"expression reduced",
		slog.String("source", source),
		slog.String("result", QuoteValue(result)),
	)

	return result, nil
}

// defineBuiltins installs the native functions every sandbox provides.
func (s *Sandbox) defineBuiltins() {
	// print emits its value to the output stream followed by end, and
	// completes without a value.
	_ = s.DefineNative(
		"print",
		Params{Required("value"), Defaulted("end", "\n")},
		func(inv *Invocation) (any, error) {
			value, err := inv.Frame.Lookup("value")
			if err != nil {
				return nil, err
			}

			end, err := inv.Frame.Lookup("end")
			if err != nil {
				return nil, err
			}

			_, err = io.WriteString(
				inv.Sandbox.out,
				FormatValue(value)+FormatValue(end),
			)
			if err != nil {
				return nil, err
			}

			return NoValue, nil
		},
	)
}
