package lang

import (
	"fmt"
	"log/slog"
)

// Reduce evaluates an expression tree in the given frame (the global
// frame when frame is nil).
//
// Reduction is depth-first and call-by-value: a call's arguments are
// fully reduced to values, left to right, before the call itself is
// invoked. Each call node reduces to exactly one value, or to [NoValue]
// when the body completes without an explicit return.
func (s *Sandbox) Reduce(e Expr, frame *Frame) (any, error) {
	if frame == nil {
		frame = s.global
	}

	return s.reduce(e, frame)
}

// reduce dispatches on the node type.
func (s *Sandbox) reduce(e Expr, frame *Frame) (any, error) {
	switch n := e.(type) {
	case Lit:
		return n.Value, nil

	case Ref:
		return frame.Lookup(n.Name)

	case *Call:
		return s.reduceCall(n, frame)

	default:
		return nil, ErrInvalidExpr.
			With(slog.String("type", fmt.Sprintf("%T", e)))
	}
}

// reduceCall resolves the callee, reduces the arguments in source order,
// and invokes the function.
func (s *Sandbox) reduceCall(call *Call, frame *Frame) (any, error) {
	callee, err := s.reduce(call.Callee, frame)
	if err != nil {
		return nil, err
	}

	fn, ok := callee.(*Function)
	if !ok {
		return nil, ErrNotCallable.
			With(
				slog.String("callee", call.Callee.Render()),
				slog.String("value", QuoteValue(callee)),
			)
	}

	var args Args

	for _, arg := range call.Args {
		v, err := s.reduce(arg.Expr, frame)
		if err != nil {
			return nil, err
		}

		if arg.Name == "" {
			args.Positional = append(args.Positional, v)
		} else {
			args.Keywords = append(args.Keywords, Keyword{
				Name:  arg.Name,
				Value: v,
			})
		}
	}

	return s.invoke(fn, args)
}

// invoke binds args to fn's parameters, runs the body in a fresh frame
// chained to the global frame, and records the completed call.
//
// The call frame exists only for the duration of the body: it is created
// here and unreachable once invoke returns, so frames tear down in exact
// reverse order of creation.
func (s *Sandbox) invoke(fn *Function, args Args) (any, error) {
	locals, err := BindArgs(fn.Params, args)
	if err != nil {
		return nil, WrapError(err).
			With(slog.String("function", fn.Name))
	}

	frame := NewFrame(fn.Name, s.global)

	for _, param := range fn.Params {
		frame.Bind(param.Name, locals[param.Name])
	}

	s.depth++

	result, err := fn.Body.Invoke(&Invocation{
		Frame:   frame,
		Sandbox: s,
	})

	s.depth--

	if err != nil {
		return nil, err
	}

	if result == nil {
		result = NoValue
	}

	if s.trace != nil {
		s.trace.record(Event{
			Depth:  s.depth,
			Scope:  frame.Path(),
			Callee: fn.Name,
			Call:   renderInvocation(fn.Name, args),
			Result: QuoteValue(result),
		})
	}

	return result, nil
}

// renderInvocation formats a call with its reduced argument values, e.g.
// add(5, y=7).
func renderInvocation(name string, args Args) string {
	call := Call{Callee: NewRef(name)}

	for _, v := range args.Positional {
		call.Args = append(call.Args, Pos(NewLit(v)))
	}

	for _, kw := range args.Keywords {
		call.Args = append(call.Args, Kw(kw.Name, NewLit(kw.Value)))
	}

	return call.Render()
}
