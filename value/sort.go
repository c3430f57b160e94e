package value

import (
	"cmp"
	"slices"
)

// Compare orders hashable values: numbers by value, then strings
// lexically, then tuples element by element, then everything else by kind.
func Compare(a, b Value) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}

	switch x := a.(type) {
	case Int, Float:
		return cmp.Compare(toFloat(x), toFloat(b))

	case String:
		return cmp.Compare(x, b.(String))

	case *Tuple:
		y := b.(*Tuple)

		return slices.CompareFunc(x.elems, y.elems, Compare)
	}

	return 0
}

func rank(v Value) int {
	switch v.(type) {
	case Int, Float:
		return 0
	case String:
		return 1
	case *Tuple:
		return 2
	default:
		return 3
	}
}

func toFloat(v Value) float64 {
	switch n := v.(type) {
	case Int:
		return float64(n)
	case Float:
		return float64(n)
	}

	return 0
}

func sortValues(vs []Value) {
	slices.SortStableFunc(vs, Compare)
}
