// Package snapshot matches actual values against named, persisted
// snapshots.
//
// A match attempt runs through these states:
//
//	Start -> Created                          (no snapshot: write it, pass)
//	Start -> Resolved -> Matched | Mismatched (compare normalized forms)
//
// With Options.Update a mismatch becomes Updated and the snapshot is
// rewritten. Without it a mismatch never writes.
//
// Configuration is explicit: a Matcher holds immutable Defaults, and each
// call resolves them with its Options into ComparisonOptions. Nothing is
// read from global state.
//
// Attempts against distinct names are independent. Two attempts racing to
// create the same name both write and the last write wins; callers that
// run in parallel must serialize by name.
package snapshot
