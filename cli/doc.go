// Package cli contains the command line interface for benv.
//
// # Usage
//
// The CLI evaluates expressions and runs YAML scripts inside a binding
// sandbox:
//
//	benv eval 'add(3, y=7)' --script demo.yaml
//	benv run demo.yaml
//	benv trace demo.yaml --format yaml
//	benv repl --script demo.yaml
//
// # Configuration
//
// Flags may be preset in a config file under the user config directory,
// written either as JSON (config.json) or as a flat YAML mapping
// (config.yaml) of flag names to values. Command-line flags override
// config file values. Use "benv init" to generate a config file from the
// current flag values.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-file: Mirror log records to a file as JSON lines
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o benv .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory
package cli
