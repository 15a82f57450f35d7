package cmd

import (
	"context"
	"encoding/json"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/benv/pkg"
)

// Fmt reads a script file, normalizes it, and writes it back out in the
// chosen format.
type Fmt struct {
	Script string `arg:"" default:"-"    help:"Script file, or '-' for stdin" name:"script"`
	Format string `       default:"yaml" enum:"yaml,json"                     help:"Output format"`
	Indent int    `       default:"2"    help:"Indent width for formatted output" short:"i"`
}

// Run executes the fmt command.
func (f *Fmt) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	script, err := loadScript(f.Script)
	if err != nil {
		return err
	}

	switch f.Format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", indentString(f.Indent))

		if err := enc.Encode(script); err != nil {
			return pkg.ErrWriteOutput.Wrap(err)
		}

		return nil

	case "yaml":
		out, err := yaml.MarshalWithOptions(script, yaml.Indent(f.Indent))
		if err != nil {
			return ErrYAMLMarshal.Wrap(err)
		}

		if _, err := os.Stdout.Write(out); err != nil {
			return pkg.ErrWriteOutput.Wrap(err)
		}

		return nil

	default:
		// Unreachable through the CLI (kong enforces the enum), but the
		// command is also callable as a library value.
		return pkg.ErrInvalidFormat.Wrapf("%q (valid: yaml, json)", f.Format)
	}
}

func indentString(width int) string {
	if width < 0 {
		width = 0
	}

	indent := make([]byte, width)
	for i := range indent {
		indent[i] = ' '
	}

	return string(indent)
}
