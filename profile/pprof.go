//go:build pprof

package profile

import (
	"maps"
	"slices"
	"sync"

	"github.com/pkg/profile"

	_ "net/http/pprof" // register HTTP handlers
)

// Modes returns the supported profiling modes when built with the pprof
// build tag. The "quiet" pseudo-mode is omitted.
var Modes = sync.OnceValue(
	func() []string {
		m := maps.Clone(mode)
		delete(m, "quiet")

		return slices.Sorted(maps.Keys(m))
	},
)

var mode = map[string]func(*profile.Profile){
	"allocs":    profile.MemProfileAllocs,
	"block":     profile.BlockProfile,
	"clock":     profile.ClockProfile,
	"cpu":       profile.CPUProfile,
	"goroutine": profile.GoroutineProfile,
	"heap":      profile.MemProfileHeap,
	"mem":       profile.MemProfile,
	"mutex":     profile.MutexProfile,
	"quiet":     profile.Quiet,
	"thread":    profile.ThreadcreationProfile,
	"trace":     profile.TraceProfile,
}

type control struct {
	mode []func(*profile.Profile)
}

func start(m, path string, quiet bool) interface{ Stop() } {
	c := newControl(withMode(m))

	if len(c.mode) == 0 {
		return ignore{}
	}

	return profile.Start(
		apply(c, withPath(path), withQuiet(quiet)).mode...,
	)
}

func withMode(m string) Option {
	return func(c control) control {
		if fn, ok := mode[m]; ok {
			c.mode = append(c.mode, fn)
		}

		return c
	}
}

func withPath(p string) Option {
	return func(c control) control {
		if p != "" {
			c.mode = append(c.mode, profile.ProfilePath(p))
		}

		return c
	}
}

func withQuiet(v bool) Option {
	return func(c control) control {
		if v {
			c.mode = append(c.mode, profile.Quiet)
		}

		return c
	}
}
