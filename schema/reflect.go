package schema

import (
	"log/slog"
	"reflect"
	"slices"
	"strings"

	"github.com/ardnew/litcfg/value"
)

// TagName is the struct tag read by [Of] and [Decode].
const TagName = "cfg"

// Defaulter is implemented by field types that compute their own default.
// [Of] calls Default on the zero value of the field's type each time the
// default is needed.
type Defaulter interface {
	Default() (value.Value, error)
}

//nolint:gochecknoglobals
var (
	defaulterType = reflect.TypeFor[Defaulter]()
	valueType     = reflect.TypeFor[value.Value]()
	emptyType     = reflect.TypeFor[struct{}]()
)

// Of derives a schema from a struct, or a pointer to one.
//
// Every exported field becomes an entry named by its "cfg" tag, or by the
// field name if the tag is absent; a tag of "-" skips the field. Fields of
// struct type become blocks. The field's value in prototype becomes a
// [Fixed] default when it is not the zero value, and fields whose type
// implements [Defaulter] get a [Factory] default.
//
// Field types map to kinds as follows: integers to int, floats to float,
// strings to str, slices to list, arrays to tuple, map[K]struct{} to set,
// other maps to dict, and value types to their own kind. Any other type,
// bool included, fails with [ErrUnsupportedType]. Types that nest deeper
// than the configured maximum, such as self-referential ones, fail with
// [pkg.ErrTooDeep].
func Of(prototype any, opts ...Option) (*Node, error) {
	o := options{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}

	rv := reflect.ValueOf(prototype)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			rv = reflect.Zero(rv.Type().Elem())

			continue
		}

		rv = rv.Elem()
	}

	if rv.Kind() != reflect.Struct {
		return nil, ErrUnsupportedType.With(slog.String("type", typeName(rv)))
	}

	return ofStruct(rv, nil, o)
}

func ofStruct(rv reflect.Value, path []string, o options) (*Node, error) {
	if len(path) > o.maxDepth {
		return nil, tooDeep(path, o)
	}

	rt := rv.Type()
	entries := make([]Entry, 0, rt.NumField())

	for i := range rt.NumField() {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		name, skip := fieldName(sf)
		if skip {
			continue
		}

		e, err := ofField(name, rv.Field(i), append(slices.Clone(path), name), o)
		if err != nil {
			return nil, err
		}

		entries = append(entries, e)
	}

	return New(entries...)
}

func ofField(name string, fv reflect.Value, path []string, o options) (Entry, error) {
	ft := fv.Type()

	if ft.Implements(defaulterType) {
		return Value(name, kindOrDefault(ft), Factory(defaulterFor(ft))), nil
	}

	if ft.Kind() == reflect.Pointer && ft.Elem().Kind() == reflect.Struct && !ft.Implements(valueType) {
		if fv.IsNil() {
			fv = reflect.Zero(ft.Elem())
		} else {
			fv = fv.Elem()
		}

		ft = fv.Type()
	}

	if ft.Kind() == reflect.Struct {
		node, err := ofStruct(fv, path, o)
		if err != nil {
			return nil, err
		}

		return Nested(name, node), nil
	}

	kind, ok := kindOf(ft, fv)
	if !ok {
		return nil, ErrUnsupportedType.With(
			slog.String("field", strings.Join(path, ".")),
			slog.String("type", ft.String()),
		)
	}

	if fv.IsZero() {
		return Value(name, kind, Zero()), nil
	}

	v, err := value.FromNative(fv.Interface())
	if err != nil {
		return nil, ErrUnsupportedType.Wrap(err).
			With(slog.String("field", strings.Join(path, ".")))
	}

	return Value(name, kind, Fixed(v)), nil
}

// fieldName returns the entry name of sf and whether it is skipped.
func fieldName(sf reflect.StructField) (string, bool) {
	tag, ok := sf.Tag.Lookup(TagName)
	if !ok {
		return sf.Name, false
	}

	name, _, _ := strings.Cut(tag, ",")

	switch name {
	case "-":
		return "", true
	case "":
		return sf.Name, false
	}

	return name, false
}

// kindOf returns the kind a field of type t holds. For interface fields
// the kind is taken from the value in fv.
func kindOf(t reflect.Type, fv reflect.Value) (value.Kind, bool) {
	if t.Implements(valueType) {
		if t.Kind() != reflect.Interface {
			fv = reflect.Zero(t)
		}

		if !fv.IsValid() || t.Kind() == reflect.Interface && fv.IsNil() {
			return value.KindInvalid, false
		}

		v, _ := fv.Interface().(value.Value)

		return v.Kind(), true
	}

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return value.KindInt, true

	case reflect.Float32, reflect.Float64:
		return value.KindFloat, true

	case reflect.String:
		return value.KindString, true

	case reflect.Slice:
		return value.KindList, true

	case reflect.Array:
		return value.KindTuple, true

	case reflect.Map:
		if _, ok := kindOf(t.Key(), reflect.Value{}); !ok || !t.Key().Comparable() {
			return value.KindInvalid, false
		}

		if t.Elem() == emptyType {
			return value.KindSet, true
		}

		return value.KindDict, true
	}

	return value.KindInvalid, false
}

// kindOrDefault returns the kind of t, or the kind of the default it
// produces when t itself has none.
func kindOrDefault(t reflect.Type) value.Kind {
	if k, ok := kindOf(t, reflect.Zero(t)); ok {
		return k
	}

	if v, err := defaulterFor(t)(); err == nil && v != nil {
		return v.Kind()
	}

	return value.KindInvalid
}

func defaulterFor(t reflect.Type) func() (value.Value, error) {
	return func() (value.Value, error) {
		d, _ := reflect.Zero(t).Interface().(Defaulter)
		if t.Kind() == reflect.Pointer {
			d, _ = reflect.New(t.Elem()).Interface().(Defaulter)
		}

		return d.Default()
	}
}

func typeName(rv reflect.Value) string {
	if !rv.IsValid() {
		return "nil"
	}

	return rv.Type().String()
}
