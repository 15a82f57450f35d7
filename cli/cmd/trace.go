package cmd

import (
	"context"
	"os"

	"github.com/ardnew/benv/lang"
	"github.com/ardnew/benv/pkg"
)

// Trace runs a script's entry call and prints the recorded call trace.
// Events appear in completion order: with call-by-value reduction the
// innermost call of a nested expression always completes first.
type Trace struct {
	Script string `arg:"" help:"Script file, or '-' for stdin" name:"script" optional:""`
	Expr   string `       help:"Trace this expression instead of the entry call" optional:"" short:"e"`
	Format string `       default:"text" enum:"text,yaml,json" help:"Trace output format"`
}

// Run executes the trace command.
func (t *Trace) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	// An expression needs no script; the entry call does.
	if t.Script == "" && t.Expr == "" {
		return ErrReadScript.Wrap(ErrNoTraceSource)
	}

	trace := lang.NewTrace()

	sandbox, script, err := loadSandbox(
		ctx,
		t.Script,
		os.Stdout,
		lang.WithTrace(trace),
	)
	if err != nil {
		return err
	}

	if t.Expr != "" {
		_, err = sandbox.Eval(ctx, t.Expr)
	} else {
		_, err = sandbox.RunMain(ctx, script)
	}

	if err != nil {
		return err
	}

	switch t.Format {
	case "yaml":
		return trace.WriteYAML(os.Stdout)

	case "json":
		return trace.WriteJSON(os.Stdout)

	case "text":
		return trace.WriteText(os.Stdout)

	default:
		return pkg.ErrInvalidFormat.Wrapf("%q (valid: text, yaml, json)", t.Format)
	}
}
