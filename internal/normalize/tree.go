package normalize

import (
	"slices"

	"github.com/roach88/snapmatch/internal/value"
)

// DynamicSentinel replaces the value of every dynamic attribute.
const DynamicSentinel = value.String("===DYNAMIC===")

// Rules names the fields that normalization treats specially.
// Both sets match field names at any depth.
type Rules struct {
	// DynamicAttributes are fields whose values always compare equal.
	DynamicAttributes map[string]bool

	// IgnoreOrder are fields whose array values compare as multisets.
	IgnoreOrder map[string]bool
}

// NewRules builds Rules from field name lists.
func NewRules(dynamicAttributes, ignoreOrder []string) Rules {
	return Rules{
		DynamicAttributes: toSet(dynamicAttributes),
		IgnoreOrder:       toSet(ignoreOrder),
	}
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

// Tree returns the canonical form of v under r.
//
// Values under a dynamic attribute are replaced by DynamicSentinel.
// Arrays found directly under an ignore-order field are sorted by
// value.Compare over their normalized elements. The root is never
// sorted because it has no field name. v is not modified.
func Tree(v value.Value, r Rules) value.Value {
	return tree(v, "", false, r)
}

func tree(v value.Value, key string, keyed bool, r Rules) value.Value {
	switch val := v.(type) {
	case value.Object:
		out := make(value.Object, len(val))
		for k, child := range val {
			if r.DynamicAttributes[k] {
				out[k] = DynamicSentinel
				continue
			}
			out[k] = tree(child, k, true, r)
		}
		return out

	case value.Array:
		// Elements inherit the enclosing key so that arrays of arrays
		// under an ignore-order field are sorted at every level.
		out := make(value.Array, len(val))
		for i, elem := range val {
			out[i] = tree(elem, key, keyed, r)
		}
		if keyed && r.IgnoreOrder[key] {
			sortValues(out)
		}
		return out

	default:
		return v
	}
}

// sortValues sorts arr in place by value.Compare. Elements that compare
// equal are interchangeable, so every permutation sorts to an equal array.
func sortValues(arr value.Array) {
	slices.SortStableFunc(arr, value.Compare)
}
