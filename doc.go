// Package tridiff computes, represents, applies, and three-way merges
// textual diffs in the unified-diff format produced and consumed by
// line-oriented version-control tooling.
//
// The package is purely computational: every exported function is a
// synchronous, CPU-bound transformation from inputs to outputs. There is
// no I/O, no global mutable state, and no internal concurrency. Callers
// may invoke any function concurrently as long as the inputs passed to a
// single call are not mutated for its duration.
package tridiff
