package cmd

import (
	"bytes"
	"context"

	"github.com/ardnew/benv/cli/cmd/repl"
	"github.com/ardnew/benv/lang"
	"github.com/ardnew/benv/log"
)

// Repl starts an interactive evaluation session.
type Repl struct {
	Script string `arg:"" help:"Script file to preload definitions from" optional:""`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)

	cacheDir, ok := ktx.Model.Vars()[CacheIdentifier]
	if !ok {
		panic("internal error: cache path undefined")
	}

	// Side-effect output is buffered so the REPL can reprint it through
	// the terminal renderer after each evaluation.
	var out bytes.Buffer

	trace := lang.NewTrace()

	sandbox, _, err := loadSandbox(
		ctx, r.Script, &out,
		lang.WithTrace(trace),
	)
	if err != nil {
		return err
	}

	return repl.Run(ctx, sandbox, &out, trace, cacheDir, log.Default())
}
