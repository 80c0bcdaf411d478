package value

import (
	"cmp"
	"math"
	"strings"
)

// Compare is a total order over values. It returns 0 exactly when
// Equal(a, b) holds, so sorting by Compare gives the same result for any
// permutation of equal elements.
//
// Types order as null < bool < number < string < array < object. Numbers
// compare by exact value across Int and Float. Strings compare by bytes.
// Arrays compare element-wise, then by length. Objects compare their
// entries in SortedKeys order, key first, then by size.
func Compare(a, b Value) int {
	if c := cmp.Compare(rank(a), rank(b)); c != 0 {
		return c
	}

	switch x := a.(type) {
	case Null:
		return 0
	case Bool:
		y := b.(Bool)
		switch {
		case x == y:
			return 0
		case !bool(x):
			return -1
		}
		return 1
	case Int:
		switch y := b.(type) {
		case Int:
			return cmp.Compare(x, y)
		case Float:
			return compareIntFloat(int64(x), float64(y))
		}
	case Float:
		switch y := b.(type) {
		case Float:
			return cmp.Compare(float64(x), float64(y))
		case Int:
			return -compareIntFloat(int64(y), float64(x))
		}
	case String:
		return strings.Compare(string(x), string(b.(String)))
	case Array:
		y := b.(Array)
		for i := 0; i < min(len(x), len(y)); i++ {
			if c := Compare(x[i], y[i]); c != 0 {
				return c
			}
		}
		return cmp.Compare(len(x), len(y))
	case Object:
		y := b.(Object)
		xk, yk := x.SortedKeys(), y.SortedKeys()
		for i := 0; i < min(len(xk), len(yk)); i++ {
			if c := compareKeysRFC8785(xk[i], yk[i]); c != 0 {
				return c
			}
			if c := Compare(x[xk[i]], y[yk[i]]); c != 0 {
				return c
			}
		}
		return cmp.Compare(len(xk), len(yk))
	}
	return 0
}

func rank(v Value) int {
	switch v.(type) {
	case Null:
		return 0
	case Bool:
		return 1
	case Int, Float:
		return 2
	case String:
		return 3
	case Array:
		return 4
	case Object:
		return 5
	}
	return 6
}

// compareIntFloat orders i against f without rounding i to float64.
func compareIntFloat(i int64, f float64) int {
	switch {
	case f >= math.MaxInt64: // 2^63, first float above every int64
		return -1
	case f < math.MinInt64:
		return 1
	}
	t := math.Trunc(f)
	if c := cmp.Compare(i, int64(t)); c != 0 {
		return c
	}
	// Same integer part: the fraction decides.
	switch {
	case f > t:
		return -1
	case f < t:
		return 1
	}
	return 0
}
