package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolve is a [kong.ConfigurationLoader] that parses config files written
// as a flat YAML mapping of flag names to values.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve, "/path/to/config.yaml")
//
// Flag names with hyphens (e.g., "log-level") may use either hyphens or
// underscores in the config file. Nested mappings are ignored: only
// top-level scalar and sequence values resolve to flags.
//
// Example config file:
//
//	log_level: debug
//	log_format: json
//	log_pretty: true
//
// This configuration will be applied to Kong flags:
//
//	--log-level=debug
//	--log-format=json
//	--log-pretty=true
//
// Command-line flags override config file values.
func resolve(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var raw map[string]any

	if err := yaml.Unmarshal(data, &raw); err != nil {
		// Parse error - return empty config
		return config{}, nil
	}

	cfg := make(config, len(raw))

	for key, value := range raw {
		cfg[key] = flagValue(value)
	}

	return cfg, nil
}

// config implements [kong.Resolver] for YAML configuration files.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	// No validation needed - the config was already parsed successfully
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Kong flags use hyphens (e.g., "log-level") but YAML keys
	// may use underscores. Try both forms.
	name := flag.Name
	underscoreName := strings.ReplaceAll(name, "-", "_")

	// Look up the value in our config
	if value, ok := r[name]; ok {
		return value, nil
	}

	// Try underscore variant
	if value, ok := r[underscoreName]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}

// flagValue converts a decoded YAML value into a form Kong can parse.
// Kong requires numbers as strings.
func flagValue(v any) any {
	switch num := v.(type) {
	case int64:
		return strconv.FormatInt(num, 10)
	case uint64:
		return strconv.FormatUint(num, 10)
	case float64:
		return strconv.FormatFloat(num, 'f', -1, 64)
	default:
		return v
	}
}
