package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"log/slog"
	"maps"
	"slices"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/litcfg/lang"
	"github.com/ardnew/litcfg/pkg"
	"github.com/ardnew/litcfg/schema"
	"github.com/ardnew/litcfg/value"
)

// maxDataDepth bounds the nesting of sequences and mappings in decoded
// documents.
const maxDataDepth = 64

// object is a mapping that keeps its keys in document order. Members hold
// either a nested object, raw JSON text, or a decoded scalar or sequence.
type object []member

type member struct {
	Key   string
	Value any
}

// number is a float that always spells as one, so "0.0" does not come
// back as an int.
type number float64

// MarshalJSON writes n with a fraction or exponent.
func (n number) MarshalJSON() ([]byte, error) {
	return []byte(value.FormatFloat(float64(n))), nil
}

// index returns the position of the last member named key, or -1.
func (o object) index(key string) int {
	for i := len(o) - 1; i >= 0; i-- {
		if o[i].Key == key {
			return i
		}
	}

	return -1
}

// MarshalJSON writes the members in order.
func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(m.Key)
		if err != nil {
			return nil, err
		}

		val, err := json.Marshal(m.Value)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// namespace evaluates o as a tree of blocks. Later members replace earlier
// ones with the same key.
func (o object) namespace(depth int) (*value.Namespace, error) {
	b := value.NewNamespaceBuilder()
	if err := o.bind(b, depth); err != nil {
		return nil, err
	}

	return b.Build(), nil
}

func (o object) bind(b *value.NamespaceBuilder, depth int) error {
	if depth > schema.DefaultMaxDepth {
		return pkg.ErrTooDeep.With(slog.Int("depth", depth))
	}

	for _, m := range o {
		if child, ok := m.Value.(object); ok {
			if err := child.bind(b.Block(m.Key), depth+1); err != nil {
				return err
			}

			continue
		}

		v, err := fromData(m.Value, 0)
		if err != nil {
			return pkg.WrapError(err).With(slog.String("name", m.Key))
		}

		b.Set(m.Key, v)
	}

	return nil
}

// merge returns a copy of o with the additions in m appended at each
// level. Additions below a key that does not hold a mapping are dropped,
// as the diff never reports them.
func (o object) merge(m *schema.Missing) (object, error) {
	out := slices.Clone(o)

	for _, child := range m.Children() {
		i := out.index(child.Name())
		if i < 0 {
			continue
		}

		nested, ok := out[i].Value.(object)
		if !ok {
			continue
		}

		merged, err := nested.merge(child)
		if err != nil {
			return nil, err
		}

		out[i].Value = merged
	}

	for _, a := range m.Additions() {
		d, err := toData(a.Value, 0)
		if err != nil {
			return nil, err
		}

		out = append(out, member{Key: a.Name, Value: d})
	}

	return out, nil
}

// fromData converts a decoded scalar or sequence to a value. Mappings
// found here, such as those inside a sequence, become dicts.
func fromData(x any, depth int) (value.Value, error) {
	if depth > maxDataDepth {
		return nil, pkg.ErrTooDeep.With(slog.Int("depth", depth))
	}

	switch x := x.(type) {
	case nil:
		return nil, pkg.ErrUnrepresentable.With(slog.String("type", "null"))

	case json.RawMessage:
		dec := json.NewDecoder(bytes.NewReader(x))
		dec.UseNumber()

		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, pkg.ErrSyntax.Wrap(err)
		}

		return fromData(v, depth)

	case json.Number:
		if i, err := x.Int64(); err == nil {
			return value.Int(i), nil
		}

		f, err := x.Float64()
		if err != nil {
			return nil, pkg.ErrUnrepresentable.Wrap(err).With(slog.String("number", x.String()))
		}

		return value.Float(f), nil

	case []any:
		elems := make([]value.Value, len(x))

		for i, e := range x {
			v, err := fromData(e, depth+1)
			if err != nil {
				return nil, err
			}

			elems[i] = v
		}

		return value.NewList(elems...), nil

	case map[string]any:
		keys := slices.Sorted(maps.Keys(x))

		entries := make([]value.Entry, len(keys))

		for i, k := range keys {
			v, err := fromData(x[k], depth+1)
			if err != nil {
				return nil, err
			}

			entries[i] = value.Entry{Key: value.String(k), Value: v}
		}

		return value.NewDict(entries...)

	case yaml.MapSlice:
		entries := make([]value.Entry, len(x))

		for i, item := range x {
			k, err := fromData(item.Key, depth+1)
			if err != nil {
				return nil, err
			}

			v, err := fromData(item.Value, depth+1)
			if err != nil {
				return nil, err
			}

			entries[i] = value.Entry{Key: k, Value: v}
		}

		return value.NewDict(entries...)

	case object:
		entries := make([]value.Entry, len(x))

		for i, m := range x {
			v, err := fromData(m.Value, depth+1)
			if err != nil {
				return nil, err
			}

			entries[i] = value.Entry{Key: value.String(m.Key), Value: v}
		}

		return value.NewDict(entries...)
	}

	return value.FromNative(x)
}

// toData converts v to data an encoder spells naturally: numbers, strings,
// sequences and ordered objects. Dict keys that are not strings are
// spelled by their literal text.
func toData(v value.Value, depth int) (any, error) {
	if depth > maxDataDepth {
		return nil, pkg.ErrTooDeep.With(slog.Int("depth", depth))
	}

	switch x := v.(type) {
	case value.Int:
		return int64(x), nil

	case value.Float:
		if !x.IsFinite() {
			return nil, pkg.ErrUnrepresentable.With(slog.String("float", x.String()))
		}

		return number(x), nil

	case value.String:
		return string(x), nil

	case *value.Tuple:
		return sequence(x.Values(), x.Len(), depth)

	case *value.List:
		return sequence(x.Values(), x.Len(), depth)

	case *value.Set:
		return sequence(x.Values(), x.Len(), depth)

	case *value.Dict:
		out := make(object, 0, x.Len())

		for k, e := range x.All() {
			d, err := toData(e, depth+1)
			if err != nil {
				return nil, err
			}

			out = append(out, member{Key: keyText(k), Value: d})
		}

		return out, nil

	case *value.Namespace:
		out := make(object, 0, x.Len())

		for name, e := range x.All() {
			d, err := toData(e, depth+1)
			if err != nil {
				return nil, err
			}

			out = append(out, member{Key: name, Value: d})
		}

		return out, nil
	}

	return nil, pkg.ErrUnrepresentable.With(slog.String("type", fmt.Sprintf("%T", v)))
}

func sequence(seq iter.Seq[value.Value], n, depth int) ([]any, error) {
	out := make([]any, 0, n)

	for e := range seq {
		d, err := toData(e, depth+1)
		if err != nil {
			return nil, err
		}

		out = append(out, d)
	}

	return out, nil
}

func keyText(k value.Value) string {
	if s, ok := k.(value.String); ok {
		return string(s)
	}

	return k.String()
}

// scalarText spells a value the way line-oriented formats store it:
// strings bare, everything else as a dialect literal.
func scalarText(v value.Value) (string, error) {
	if s, ok := v.(value.String); ok {
		return string(s), nil
	}

	return lang.Literal(v)
}
