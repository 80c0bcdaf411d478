// Package value provides the structured value tree that snapshot
// comparison operates on.
//
// A Value is the parse result of a JSON document: Null, Bool, Int, Float,
// String, Array or Object. The package owns three operations over it:
//
//   - Parse: decode exactly one JSON document
//   - Equal: structural equality (objects ignore key order, numbers compare by value)
//   - MarshalCanonical: RFC 8785 encoding used as a deterministic total order
//
// value imports nothing internal.
package value
