package value

import (
	"math"
	"strconv"
)

// Value is one configuration value.
//
// The set of implementations is closed: [Int], [Float], [String], [*Tuple],
// [*List], [*Set], [*Dict] and [*Namespace]. Code that branches on a Value
// uses a type switch over exactly these types.
type Value interface {
	// Kind returns the variant tag.
	Kind() Kind
	// String returns the dialect literal spelling of the value, the same
	// text the rewriter emits for it. Non-finite floats and namespaces have
	// no literal spelling and render descriptively.
	String() string

	sealed()
}

// Int is a signed integer value.
type Int int64

// Float is a double-precision floating point value.
type Float float64

// String is a text value.
type String string

func (Int) Kind() Kind    { return KindInt }
func (Float) Kind() Kind  { return KindFloat }
func (String) Kind() Kind { return KindString }

func (Int) sealed()    {}
func (Float) sealed()  {}
func (String) sealed() {}

func (v Int) String() string { return strconv.FormatInt(int64(v), 10) }

func (v Float) String() string { return FormatFloat(float64(v)) }

func (v String) String() string { return Quote(string(v)) }

// IsFinite reports whether the float has a literal spelling.
func (v Float) IsFinite() bool {
	return !math.IsInf(float64(v), 0) && !math.IsNaN(float64(v))
}

// Zero returns the natural zero value of kind k: 0, 0.0, an empty string, (), [],
// set(), {} or an empty namespace. It returns nil for [KindInvalid].
func Zero(k Kind) Value {
	switch k {
	case KindInt:
		return Int(0)
	case KindFloat:
		return Float(0)
	case KindString:
		return String("")
	case KindTuple:
		return NewTuple()
	case KindList:
		return NewList()
	case KindSet:
		return emptySet()
	case KindDict:
		return emptyDict()
	case KindNamespace:
		return NewNamespaceBuilder().Build()
	default:
		return nil
	}
}

// Equal reports whether a and b are deeply equal.
//
// Numbers compare by value across Int and Float, so 1 equals 1.0. Sets,
// dicts and namespaces compare without regard to order. A tuple never
// equals a list.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if na, ok := number(a); ok {
		nb, ok := number(b)

		return ok && numberEqual(na, nb)
	}

	switch x := a.(type) {
	case String:
		y, ok := b.(String)

		return ok && x == y

	case *Tuple:
		y, ok := b.(*Tuple)

		return ok && sliceEqual(x.elems, y.elems)

	case *List:
		y, ok := b.(*List)

		return ok && sliceEqual(x.elems, y.elems)

	case *Set:
		y, ok := b.(*Set)
		if !ok || x.Len() != y.Len() {
			return false
		}

		for _, e := range x.elems {
			if !y.Has(e) {
				return false
			}
		}

		return true

	case *Dict:
		y, ok := b.(*Dict)
		if !ok || x.Len() != y.Len() {
			return false
		}

		for i, k := range x.keys {
			v, ok := y.Get(k)
			if !ok || !Equal(x.vals[i], v) {
				return false
			}
		}

		return true

	case *Namespace:
		y, ok := b.(*Namespace)
		if !ok || x.Len() != y.Len() {
			return false
		}

		for name, v := range x.All() {
			w, ok := y.Get(name)
			if !ok || !Equal(v, w) {
				return false
			}
		}

		return true
	}

	return false
}

type numeric struct {
	i     int64
	f     float64
	float bool
}

func number(v Value) (numeric, bool) {
	switch n := v.(type) {
	case Int:
		return numeric{i: int64(n)}, true
	case Float:
		return numeric{f: float64(n), float: true}, true
	default:
		return numeric{}, false
	}
}

func numberEqual(a, b numeric) bool {
	switch {
	case !a.float && !b.float:
		return a.i == b.i
	case a.float && b.float:
		return a.f == b.f
	case a.float:
		return floatEqualsInt(a.f, b.i)
	default:
		return floatEqualsInt(b.f, a.i)
	}
}

// floatEqualsInt compares exactly, without rounding i to float64.
func floatEqualsInt(f float64, i int64) bool {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return false
	}

	return int64(f) == i
}

func sliceEqual(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}

	return true
}
