package value

import (
	"iter"
	"log/slog"
	"slices"
	"strings"
)

// Tuple is an ordered, fixed sequence of values.
type Tuple struct {
	elems []Value
}

// NewTuple returns a tuple of the given elements.
func NewTuple(elems ...Value) *Tuple {
	return &Tuple{elems: slices.Clone(elems)}
}

func (*Tuple) Kind() Kind { return KindTuple }
func (*Tuple) sealed()    {}

// Len returns the number of elements.
func (t *Tuple) Len() int { return len(t.elems) }

// At returns the element at index i.
func (t *Tuple) At(i int) Value { return t.elems[i] }

// All returns an iterator over index-element pairs.
func (t *Tuple) All() iter.Seq2[int, Value] { return slices.All(t.elems) }

// Values returns an iterator over the elements.
func (t *Tuple) Values() iter.Seq[Value] { return slices.Values(t.elems) }

func (t *Tuple) String() string {
	if len(t.elems) == 1 {
		return "(" + t.elems[0].String() + ",)"
	}

	return "(" + join(t.elems) + ")"
}

// List is an immutable ordered sequence of values.
type List struct {
	immutable

	elems []Value
}

// NewList returns a list of the given elements.
func NewList(elems ...Value) *List {
	return &List{immutable: "List", elems: slices.Clone(elems)}
}

func (*List) Kind() Kind { return KindList }
func (*List) sealed()    {}

// Len returns the number of elements.
func (l *List) Len() int { return len(l.elems) }

// At returns the element at index i.
func (l *List) At(i int) Value { return l.elems[i] }

// All returns an iterator over index-element pairs.
func (l *List) All() iter.Seq2[int, Value] { return slices.All(l.elems) }

// Values returns an iterator over the elements.
func (l *List) Values() iter.Seq[Value] { return slices.Values(l.elems) }

func (l *List) String() string { return "[" + join(l.elems) + "]" }

// Set is an immutable collection of distinct hashable values.
// Iteration follows first-insertion order.
type Set struct {
	immutable

	elems []Value
	index map[hashKey]int
}

// NewSet returns a set of the given elements. Duplicates collapse onto the
// first occurrence. It fails with [ErrUnhashable] if an element is a list,
// set, dict, namespace, or a tuple containing one of those.
func NewSet(elems ...Value) (*Set, error) {
	s := emptySet()

	for _, e := range elems {
		k, err := keyOf(e)
		if err != nil {
			return nil, err
		}

		if _, ok := s.index[k]; ok {
			continue
		}

		s.index[k] = len(s.elems)
		s.elems = append(s.elems, e)
	}

	return s, nil
}

// MustSet is like [NewSet] but panics on error.
func MustSet(elems ...Value) *Set {
	s, err := NewSet(elems...)
	if err != nil {
		panic(err)
	}

	return s
}

func emptySet() *Set {
	return &Set{immutable: "Set", index: map[hashKey]int{}}
}

func (*Set) Kind() Kind { return KindSet }
func (*Set) sealed()    {}

// Len returns the number of elements.
func (s *Set) Len() int { return len(s.elems) }

// Has reports whether v is an element of the set.
func (s *Set) Has(v Value) bool {
	k, err := keyOf(v)
	if err != nil {
		return false
	}

	_, ok := s.index[k]

	return ok
}

// Values returns an iterator over the elements.
func (s *Set) Values() iter.Seq[Value] { return slices.Values(s.elems) }

func (s *Set) String() string {
	if len(s.elems) == 0 {
		return "set()"
	}

	return "{" + join(s.elems) + "}"
}

// Entry is one key-value pair of a [Dict].
type Entry struct {
	Key   Value
	Value Value
}

// Dict is an immutable mapping from scalar keys to values.
// Iteration follows first-insertion order of the keys.
type Dict struct {
	immutable

	keys  []Value
	vals  []Value
	index map[hashKey]int
}

// NewDict returns a dict of the given entries. A repeated key keeps its
// first position and takes the last value. It fails with [ErrInvalidKey]
// if a key is not an int, float or str.
func NewDict(entries ...Entry) (*Dict, error) {
	d := emptyDict()

	for _, e := range entries {
		if e.Key == nil || !e.Key.Kind().IsScalar() {
			kind := KindInvalid
			if e.Key != nil {
				kind = e.Key.Kind()
			}

			return nil, ErrInvalidKey.With(slog.String("kind", kind.String()))
		}

		k, err := keyOf(e.Key)
		if err != nil {
			return nil, err
		}

		if i, ok := d.index[k]; ok {
			d.vals[i] = e.Value

			continue
		}

		d.index[k] = len(d.keys)
		d.keys = append(d.keys, e.Key)
		d.vals = append(d.vals, e.Value)
	}

	return d, nil
}

// MustDict is like [NewDict] but panics on error.
func MustDict(entries ...Entry) *Dict {
	d, err := NewDict(entries...)
	if err != nil {
		panic(err)
	}

	return d
}

func emptyDict() *Dict {
	return &Dict{immutable: "Dict", index: map[hashKey]int{}}
}

func (*Dict) Kind() Kind { return KindDict }
func (*Dict) sealed()    {}

// Len returns the number of entries.
func (d *Dict) Len() int { return len(d.keys) }

// Get returns the value bound to key.
func (d *Dict) Get(key Value) (Value, bool) {
	k, err := keyOf(key)
	if err != nil {
		return nil, false
	}

	i, ok := d.index[k]
	if !ok {
		return nil, false
	}

	return d.vals[i], true
}

// Keys returns an iterator over the keys.
func (d *Dict) Keys() iter.Seq[Value] { return slices.Values(d.keys) }

// All returns an iterator over key-value pairs.
func (d *Dict) All() iter.Seq2[Value, Value] {
	return func(yield func(Value, Value) bool) {
		for i, k := range d.keys {
			if !yield(k, d.vals[i]) {
				return
			}
		}
	}
}

func (d *Dict) String() string {
	var sb strings.Builder

	sb.WriteByte('{')

	for i, k := range d.keys {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(k.String())
		sb.WriteString(": ")
		sb.WriteString(d.vals[i].String())
	}

	sb.WriteByte('}')

	return sb.String()
}

func join(elems []Value) string {
	var sb strings.Builder

	for i, e := range elems {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(e.String())
	}

	return sb.String()
}
