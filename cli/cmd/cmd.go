package cmd

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/benv/lang"
	"github.com/ardnew/benv/log"
	"github.com/ardnew/benv/pkg"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// openSource opens the script source at path, or stdin for "-".
func openSource(path string) (io.ReadCloser, error) {
	if path == stdinSource {
		return io.NopCloser(bufio.NewReader(os.Stdin)), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, ErrReadScript.
			With(slog.String("file", path)).
			Wrap(pkg.ErrReadInput.Wrap(err))
	}

	return file, nil
}

// loadScript reads and decodes the script at path.
func loadScript(path string) (*lang.Script, error) {
	source, err := openSource(path)
	if err != nil {
		return nil, err
	}
	defer source.Close()

	script, err := lang.LoadScript(source)
	if err != nil {
		return nil, ErrReadScript.
			With(slog.String("file", path)).
			Wrap(err)
	}

	return script, nil
}

// loadSandbox creates a sandbox writing side effects to out, installing
// the script at path when one is given.
func loadSandbox(
	ctx context.Context,
	path string,
	out io.Writer,
	opts ...lang.Option,
) (*lang.Sandbox, *lang.Script, error) {
	opts = append(
		[]lang.Option{
			lang.WithOutput(out),
			lang.WithLogger(log.Default()),
		},
		opts...,
	)

	sandbox := lang.New(opts...)

	if path == "" {
		return sandbox, nil, nil
	}

	script, err := loadScript(path)
	if err != nil {
		return nil, nil, err
	}

	if err := sandbox.Install(ctx, script); err != nil {
		return nil, nil, err
	}

	return sandbox, script, nil
}
