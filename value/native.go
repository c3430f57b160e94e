package value

import (
	"log/slog"
	"math"
	"reflect"

	"github.com/ardnew/litcfg/pkg"
)

// Native converts v to plain Go values:
//
//	Int        int64
//	Float      float64
//	String     string
//	*Tuple     []any
//	*List      []any
//	*Set       []any (insertion order)
//	*Dict      map[string]any if every key is a str, else map[any]any
//	*Namespace map[string]any
//
// The result is suitable for encoders, expression environments and struct
// decoders.
func Native(v Value) any {
	switch x := v.(type) {
	case Int:
		return int64(x)

	case Float:
		return float64(x)

	case String:
		return string(x)

	case *Tuple:
		return nativeSlice(x.elems)

	case *List:
		return nativeSlice(x.elems)

	case *Set:
		return nativeSlice(x.elems)

	case *Dict:
		if x.stringKeys() {
			m := make(map[string]any, x.Len())
			for i, k := range x.keys {
				m[string(k.(String))] = Native(x.vals[i])
			}

			return m
		}

		m := make(map[any]any, x.Len())
		for i, k := range x.keys {
			m[Native(k)] = Native(x.vals[i])
		}

		return m

	case *Namespace:
		m := make(map[string]any, x.Len())
		for name, e := range x.All() {
			m[name] = Native(e)
		}

		return m
	}

	return nil
}

func nativeSlice(elems []Value) []any {
	out := make([]any, len(elems))
	for i, e := range elems {
		out[i] = Native(e)
	}

	return out
}

func (d *Dict) stringKeys() bool {
	for _, k := range d.keys {
		if _, ok := k.(String); !ok {
			return false
		}
	}

	return true
}

// FromNative converts a Go value to a [Value]:
//
//   - a Value is returned unchanged
//   - bool becomes Int 1 or 0
//   - integer types become Int, failing if an unsigned value overflows int64
//   - float types become Float
//   - string becomes String
//   - slices become List and arrays become Tuple
//   - map[K]struct{} becomes Set
//   - other maps become Dict, visited in key order for determinism
//
// Anything else, including nil, fails with [pkg.ErrUnrepresentable].
func FromNative(x any) (Value, error) {
	if v, ok := x.(Value); ok {
		return v, nil
	}

	return fromReflect(reflect.ValueOf(x), 0)
}

const maxNativeDepth = 64

func fromReflect(rv reflect.Value, depth int) (Value, error) {
	if depth > maxNativeDepth {
		return nil, pkg.ErrTooDeep.With(slog.Int("depth", depth))
	}

	if !rv.IsValid() {
		return nil, pkg.ErrUnrepresentable.With(slog.String("type", "nil"))
	}

	if rv.CanInterface() {
		if v, ok := rv.Interface().(Value); ok {
			return v, nil
		}
	}

	switch rv.Kind() {
	case reflect.Bool:
		if rv.Bool() {
			return Int(1), nil
		}

		return Int(0), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return nil, pkg.ErrUnrepresentable.With(slog.Uint64("uint", u))
		}

		return Int(int64(u)), nil

	case reflect.Float32, reflect.Float64:
		return Float(rv.Float()), nil

	case reflect.String:
		return String(rv.String()), nil

	case reflect.Interface, reflect.Pointer:
		if rv.IsNil() {
			return nil, pkg.ErrUnrepresentable.With(slog.String("type", rv.Type().String()))
		}

		return fromReflect(rv.Elem(), depth+1)

	case reflect.Slice, reflect.Array:
		elems := make([]Value, rv.Len())

		for i := range rv.Len() {
			e, err := fromReflect(rv.Index(i), depth+1)
			if err != nil {
				return nil, err
			}

			elems[i] = e
		}

		if rv.Kind() == reflect.Array {
			return NewTuple(elems...), nil
		}

		return NewList(elems...), nil

	case reflect.Map:
		return fromMap(rv, depth)
	}

	return nil, pkg.ErrUnrepresentable.With(slog.String("type", rv.Type().String()))
}

func fromMap(rv reflect.Value, depth int) (Value, error) {
	keys := make([]Value, 0, rv.Len())
	index := make(map[hashKey]reflect.Value, rv.Len())

	for _, rk := range rv.MapKeys() {
		k, err := fromReflect(rk, depth+1)
		if err != nil {
			return nil, err
		}

		hk, err := keyOf(k)
		if err != nil {
			return nil, err
		}

		keys = append(keys, k)
		index[hk] = rk
	}

	sortValues(keys)

	if rv.Type().Elem() == reflect.TypeFor[struct{}]() {
		return NewSet(keys...)
	}

	entries := make([]Entry, len(keys))

	for i, k := range keys {
		hk, _ := keyOf(k)

		v, err := fromReflect(rv.MapIndex(index[hk]), depth+1)
		if err != nil {
			return nil, err
		}

		entries[i] = Entry{Key: k, Value: v}
	}

	return NewDict(entries...)
}
