// Package lang implements the benv evaluation model: a chain of binding
// frames, a positional/keyword/default argument resolver, and a
// call-by-value expression reducer.
//
// The package is the core of the sandbox. A [Sandbox] owns the global
// frame, the registered functions, and the side-effect output stream.
// Each call creates one child [Frame] whose contents are produced by
// [BindArgs]; frames are strictly nested and torn down in reverse order
// of creation.
//
// Evaluation is single-threaded and synchronous. Side effects (the
// built-in print function) occur in the exact order the reducer visits
// call nodes, which a [Trace] can record for inspection.
package lang
