package normalize

import (
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/roach88/snapmatch/internal/value"
)

func ints(xs []int) value.Array {
	arr := make(value.Array, len(xs))
	for i, x := range xs {
		arr[i] = value.Int(x)
	}
	return arr
}

// document builds a nested payload where every interesting field appears
// both at the top level and inside an array of objects.
func document(id int, name string, xs []int) value.Object {
	items := make(value.Array, len(xs))
	for i, x := range xs {
		items[i] = value.Object{
			"id":        value.Int(x),
			"name":      value.String(name),
			"unordered": ints(xs[i:]),
			"ordered":   ints(xs[:i]),
		}
	}
	return value.Object{
		"id":        value.Int(id),
		"unordered": ints(xs),
		"ordered":   ints(xs),
		"items":     items,
	}
}

// mixed holds elements that are easy to mis-order: equal numbers of
// different types, numbers past float64 precision, strings in both
// Unicode normalization forms and containers holding them.
var mixed = []value.Value{
	value.Null{},
	value.Bool(true),
	value.Int(1),
	value.Float(1),
	value.Float(1.5),
	value.Int(2),
	value.Float(2),
	value.Int(9007199254740992),
	value.Int(9007199254740993),
	value.Float(9007199254740992),
	value.String("a"),
	value.String("caf\u00e9"),
	value.String("cafe\u0301"),
	value.Array{value.Int(2), value.Float(1)},
	value.Array{value.Float(2), value.Int(1)},
	value.Object{"a": value.Int(1)},
	value.Object{"a": value.Float(1)},
	value.Object{"b": value.String("cafe\u0301")},
}

func pick(codes []int) value.Array {
	arr := make(value.Array, len(codes))
	for i, c := range codes {
		arr[i] = mixed[c]
	}
	return arr
}

func permute(xs []int, seed int64) []int {
	out := make([]int, len(xs))
	for i, j := range rand.New(rand.NewSource(seed)).Perm(len(xs)) {
		out[i] = xs[j]
	}
	return out
}

func properties(t *testing.T) *gopter.Properties {
	t.Helper()
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	return gopter.NewProperties(parameters)
}

func TestTreeIdempotentProperty(t *testing.T) {
	r := NewRules([]string{"id"}, []string{"unordered", "items"})
	props := properties(t)

	props.Property("Tree(Tree(v)) == Tree(v)", prop.ForAll(
		func(id int, name string, xs []int) bool {
			once := Tree(document(id, name, xs), r)
			twice := Tree(once, r)
			return value.Equal(once, twice)
		},
		gen.Int(),
		gen.AlphaString(),
		gen.SliceOf(gen.IntRange(-20, 20)),
	))

	props.TestingRun(t)
}

func TestDynamicAttributeInvarianceProperty(t *testing.T) {
	r := NewRules([]string{"id"}, nil)
	props := properties(t)

	props.Property("replacing a dynamic value with any type keeps equality", prop.ForAll(
		func(xs []int, replacement string, asString bool) bool {
			original := document(1, "n", xs)
			changed := document(1, "n", xs)
			if asString {
				changed["id"] = value.String(replacement)
			} else {
				changed["id"] = value.Array{value.Bool(true), value.Null{}}
			}
			for i := range changed["items"].(value.Array) {
				changed["items"].(value.Array)[i].(value.Object)["id"] = value.String(replacement)
			}
			return value.Equal(Tree(original, r), Tree(changed, r))
		},
		gen.SliceOf(gen.IntRange(-20, 20)),
		gen.AlphaString(),
		gen.Bool(),
	))

	props.TestingRun(t)
}

func TestOrderInvarianceScopingProperty(t *testing.T) {
	r := NewRules(nil, []string{"unordered"})
	props := properties(t)

	props.Property("permuting an ignore-order array keeps equality", prop.ForAll(
		func(xs []int, seed int64) bool {
			a := value.Object{"unordered": ints(xs)}
			b := value.Object{"unordered": ints(permute(xs, seed))}
			return value.Equal(Tree(a, r), Tree(b, r))
		},
		gen.SliceOf(gen.IntRange(-20, 20)),
		gen.Int64(),
	))

	props.Property("permuting mixed ignore-order elements keeps equality", prop.ForAll(
		func(codes []int, seed int64) bool {
			a := value.Object{"unordered": pick(codes)}
			b := value.Object{"unordered": pick(permute(codes, seed))}
			return value.Equal(Tree(a, r), Tree(b, r))
		},
		gen.SliceOf(gen.IntRange(0, len(mixed)-1)),
		gen.Int64(),
	))

	props.Property("normalizing mixed elements is idempotent", prop.ForAll(
		func(codes []int) bool {
			once := Tree(value.Object{"unordered": pick(codes)}, r)
			return value.Equal(once, Tree(once, r))
		},
		gen.SliceOf(gen.IntRange(0, len(mixed)-1)),
	))

	props.Property("permuting an unlisted array matters", prop.ForAll(
		func(xs []int, seed int64) bool {
			p := permute(xs, seed)
			a := value.Object{"ordered": ints(xs)}
			b := value.Object{"ordered": ints(p)}
			return value.Equal(Tree(a, r), Tree(b, r)) == value.Equal(ints(xs), ints(p))
		},
		gen.SliceOf(gen.IntRange(-20, 20)),
		gen.Int64(),
	))

	props.TestingRun(t)
}
