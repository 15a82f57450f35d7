package log

// Option transforms a logger configuration. Options compose left to
// right; see the With* constructors in this package.
type Option func(config) config

func apply(cfg config, opts ...Option) config {
	for _, opt := range opts {
		cfg = opt(cfg)
	}

	return cfg
}
