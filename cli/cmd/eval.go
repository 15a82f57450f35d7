package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/ardnew/benv/lang"
)

// Eval evaluates an expression, optionally against a loaded script.
type Eval struct {
	Expr   string `arg:"" help:"Expression to evaluate"                       name:"expr"`
	Script string `       help:"Script file to load first, or '-' for stdin." optional:""  short:"s"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	sandbox, _, err := loadSandbox(ctx, e.Script, os.Stdout)
	if err != nil {
		return err
	}

	result, err := sandbox.Eval(ctx, e.Expr)
	if err != nil {
		var le *lang.Error
		if errors.As(err, &le) {
			return le.With(slog.String("command", "eval"))
		}

		return err
	}

	// A completed call with no value prints nothing
	if !lang.IsNoValue(result) {
		fmt.Println(lang.FormatValue(result))
	}

	return nil
}
