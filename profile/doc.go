// Package profile provides optional runtime profiling for the benv
// application.
//
// Profiling integrates [github.com/pkg/profile] and must be enabled at
// build time with the "pprof" build tag. Without the tag, every
// operation is a no-op with zero runtime overhead, and the profiling
// flags are hidden from the command line.
//
// When enabled, the supported modes are allocs, block, clock, cpu,
// goroutine, heap, mem, mutex, thread, and trace. Use [Modes] to
// retrieve the list programmatically.
//
// A profiler is configured with functional options and started through
// [Config.Start], which returns a handle whose Stop method is always
// safe to call:
//
//	stop := profile.Config(func() (string, string, bool) {
//		return "cpu", "/tmp/profiles", false
//	}).Start()
//	defer stop.Stop()
//
// The benv CLI wires this up from the --pprof-mode and --pprof-dir
// flags; see the cli package.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
