// Package normalize implements the comparison-time transforms applied to
// snapshots and actual values.
//
// Tree canonicalizes structured values: dynamic attributes are blanked and
// arrays under ignore-order fields are sorted. Mask replaces regular
// expression matches in text with a fixed sentinel.
//
// Both transforms are pure and idempotent. They are never applied to what
// gets persisted, only to what gets compared.
package normalize
