package lang

import "log/slog"

// Function binds a name and parameter list to a body. Function values
// live in the global frame like any other binding, so a local name can
// shadow one for the lifetime of a frame.
type Function struct {
	Name   string
	Params Params
	Body   Body
}

// Body is the executable part of a function. Invoke receives the fully
// prepared call frame (its contents produced by [BindArgs]) and returns
// the call's single result, or [NoValue] when the body completes without
// an explicit return.
type Body interface {
	Invoke(inv *Invocation) (any, error)
}

// Invocation carries the per-call state handed to a body: the call frame
// and the owning sandbox (for output and global access).
type Invocation struct {
	Frame   *Frame
	Sandbox *Sandbox
}

// NativeBody adapts a Go function into a Body. Builtins such as print
// are native bodies.
type NativeBody func(inv *Invocation) (any, error)

// Invoke implements Body.
func (b NativeBody) Invoke(inv *Invocation) (any, error) { return b(inv) }

// Step is a single statement of a [Steps] body.
type Step interface {
	exec(inv *Invocation) (stop bool, result any, err error)
}

// Steps is a statement-list body executed in order.
//
// At call entry, the targets of every [AssignStep] are pre-scanned and
// marked local in the call frame, so a read of such a name before its
// assignment executes fails with [ErrUnboundLocal] even when an outer
// frame binds it. Names declared global by a [GlobalStep] anywhere in
// the body are exempt from the pre-scan.
type Steps []Step

// Invoke implements Body.
func (s Steps) Invoke(inv *Invocation) (any, error) {
	declared := make(map[string]struct{})

	for _, step := range s {
		if g, ok := step.(GlobalStep); ok {
			declared[g.Name] = struct{}{}
		}
	}

	for _, step := range s {
		a, ok := step.(AssignStep)
		if !ok {
			continue
		}

		if _, ok := declared[a.Name]; ok {
			continue
		}

		inv.Frame.MarkLocal(a.Name)
	}

	for _, step := range s {
		stop, result, err := step.exec(inv)
		if err != nil {
			return nil, err
		}

		if stop {
			return result, nil
		}
	}

	return NoValue, nil
}

// AssignStep reduces Expr and binds the result to Name in the call frame
// (or the global frame, after a matching [GlobalStep]).
type AssignStep struct {
	Name string
	Expr Expr
}

// GlobalStep declares Name global for the remainder of the frame's
// lifetime.
type GlobalStep struct {
	Name string
}

// EvalStep reduces Expr for its side effects and discards the result.
type EvalStep struct {
	Expr Expr
}

// ReturnStep stops the body. A nil Expr returns [NoValue].
type ReturnStep struct {
	Expr Expr
}

func (s AssignStep) exec(inv *Invocation) (bool, any, error) {
	v, err := inv.Sandbox.reduce(s.Expr, inv.Frame)
	if err != nil {
		return false, nil, err
	}

	inv.Frame.Bind(s.Name, v)

	return false, nil, nil
}

func (s GlobalStep) exec(inv *Invocation) (bool, any, error) {
	err := inv.Frame.DeclareGlobal(s.Name)
	if err != nil {
		return false, nil, err
	}

	return false, nil, nil
}

func (s EvalStep) exec(inv *Invocation) (bool, any, error) {
	_, err := inv.Sandbox.reduce(s.Expr, inv.Frame)
	if err != nil {
		return false, nil, err
	}

	return false, nil, nil
}

func (s ReturnStep) exec(inv *Invocation) (bool, any, error) {
	if s.Expr == nil {
		return true, NoValue, nil
	}

	v, err := inv.Sandbox.reduce(s.Expr, inv.Frame)
	if err != nil {
		return false, nil, err
	}

	return true, v, nil
}

// validate checks the function's parameter list and reports a descriptive
// error naming the function.
func (fn *Function) validate() error {
	err := fn.Params.Validate()
	if err != nil {
		return WrapError(err).
			With(slog.String("function", fn.Name))
	}

	return nil
}
