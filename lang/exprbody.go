package lang

import (
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ExprBody is a function body backed by a compiled expr-lang program.
// The program runs against the call frame's bound locals overlaid on a
// snapshot of the global frame.
type ExprBody struct {
	Source  string
	program *vm.Program
}

// CompileExprBody compiles source into an ExprBody. Name resolution is
// deferred to run time so the program can reference parameters and
// globals that exist only when a call frame is live.
func CompileExprBody(source string) (*ExprBody, error) {
	program, err := expr.Compile(source, expr.AllowUndefinedVariables())
	if err != nil {
		return nil, ErrExprCompile.Wrap(err).
			With(slog.String("source", source))
	}

	return &ExprBody{
		Source:  source,
		program: program,
	}, nil
}

// Invoke implements Body.
func (b *ExprBody) Invoke(inv *Invocation) (any, error) {
	result, err := vm.Run(b.program, inv.Frame.Snapshot())
	if err != nil {
		return nil, ErrExprRun.Wrap(err).
			With(slog.String("source", b.Source))
	}

	if result == nil {
		return NoValue, nil
	}

	return result, nil
}
