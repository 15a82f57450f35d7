package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/benv/log"
	"github.com/ardnew/benv/profile"
)

// defaultConfigIndent is the number of spaces to use for indentation
// when generating the default configuration file.
const defaultConfigIndent = 2

// Init generates a default configuration file with current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	confPath += ".yaml"

	// Check if file exists and force not set
	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	out, err := yaml.MarshalWithOptions(
		i.flagValues(ctx),
		yaml.Indent(defaultConfigIndent),
	)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	err = os.WriteFile(confPath, out, 0o600)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(
		ctx,
		"initialized configuration file",
		slog.String("path", confPath),
	)

	return nil
}

// flagValues collects the current CLI flag values as a flat mapping with
// underscore-separated keys.
func (i *Init) flagValues(ctx context.Context) map[string]any {
	ktx := kongContextFrom(ctx)

	values := make(map[string]any)

	prefixIgnore := []string{"help", "force", "version", profile.Tag}

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(prefixIgnore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		val := ktx.FlagValue(flag)
		if val == nil {
			continue
		}

		key := strings.ReplaceAll(flag.Name, "-", "_")

		switch v := val.(type) {
		case bool, string,
			int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64,
			float32, float64,
			[]string, []int, []int64, []float64, []bool:
			if s, ok := v.(string); ok && s == "" {
				continue
			}

			values[key] = v

		default:
			values[key] = fmt.Sprint(v)
		}
	}

	return values
}
