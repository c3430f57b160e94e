package schema

import (
	"iter"
	"reflect"

	"github.com/go-viper/mapstructure/v2"

	"github.com/ardnew/litcfg/value"
)

// Decode stores the bindings of ns in the struct pointed to by out, matching
// names against the "cfg" tag of each field, or the field name when there
// is no tag.
//
// Conversion is weakly typed, so an int may fill a bool or a string field.
// Fields whose type is a value type receive the value itself; a set fills
// a map[K]struct{}. Failures wrap [ErrDecode].
func Decode(ns *value.Namespace, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.DecodeHookFuncType(decodeHook),
		TagName:          TagName,
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return ErrDecode.Wrap(err)
	}

	if err := dec.Decode(ns); err != nil {
		return ErrDecode.Wrap(err)
	}

	return nil
}

// decodeHook unwraps one level of a value for the decoder. The decoder
// calls it again for every element, so nested values are unwrapped as they
// are reached.
func decodeHook(_, to reflect.Type, data any) (any, error) {
	v, ok := data.(value.Value)
	if !ok || v == nil {
		return data, nil
	}

	rt := reflect.TypeOf(v)

	switch {
	case to.Kind() == reflect.Interface && to.NumMethod() == 0:
		return value.Native(v), nil

	case rt.AssignableTo(to), rt.Kind() == reflect.Pointer && rt.Elem() == to:
		return v, nil
	}

	switch x := v.(type) {
	case value.Int:
		return int64(x), nil

	case value.Float:
		return float64(x), nil

	case value.String:
		return string(x), nil

	case *value.Tuple:
		return elements(x.Values()), nil

	case *value.List:
		return elements(x.Values()), nil

	case *value.Set:
		if to.Kind() != reflect.Map {
			return elements(x.Values()), nil
		}

		m := make(map[any]any, x.Len())
		for e := range x.Values() {
			m[e] = struct{}{}
		}

		return m, nil

	case *value.Dict:
		m := make(map[any]any, x.Len())
		for k, e := range x.All() {
			m[k] = e
		}

		return m, nil

	case *value.Namespace:
		m := make(map[string]any, x.Len())
		for name, e := range x.All() {
			m[name] = e
		}

		return m, nil
	}

	return data, nil
}

func elements(seq iter.Seq[value.Value]) []any {
	var out []any
	for e := range seq {
		out = append(out, e)
	}

	return out
}
