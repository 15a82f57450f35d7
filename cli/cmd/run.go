package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ardnew/benv/lang"
	"github.com/ardnew/benv/log"
)

// Run runs a script's entry call and prints its result.
type Run struct {
	Script string `arg:"" default:"-" help:"Script file, or '-' for stdin" name:"script"`
	Quiet  bool   `              help:"Suppress the result value"          short:"q"`
}

// Run executes the run command.
func (r *Run) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	sandbox, script, err := loadSandbox(ctx, r.Script, os.Stdout)
	if err != nil {
		return err
	}

	result, err := sandbox.RunMain(ctx, script)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "script completed",
		slog.String("script", r.Script),
		slog.String("result", lang.QuoteValue(result)),
	)

	if !r.Quiet && !lang.IsNoValue(result) {
		fmt.Println(lang.FormatValue(result))
	}

	return nil
}
