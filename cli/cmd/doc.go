// Package cmd provides the benv subcommands for evaluating expressions,
// running and tracing scripts, reformatting script files, and generating
// configuration files.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the default configuration file (without extension).
	ConfigIdentifier = "config"
)
