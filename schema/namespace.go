package schema

import (
	"slices"

	"github.com/ardnew/litcfg/value"
)

// FromNamespace derives a schema from a template namespace. Every binding
// becomes a field with its value as a [Fixed] default, and every nested
// namespace becomes a block, in binding order.
func FromNamespace(ns *value.Namespace, opts ...Option) (*Node, error) {
	o := options{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}

	return fromNamespace(ns, nil, o)
}

func fromNamespace(ns *value.Namespace, path []string, o options) (*Node, error) {
	if len(path) > o.maxDepth {
		return nil, tooDeep(path, o)
	}

	entries := make([]Entry, 0, ns.Len())

	for name, v := range ns.All() {
		child, ok := v.(*value.Namespace)
		if !ok {
			entries = append(entries, Value(name, v.Kind(), Fixed(v)))

			continue
		}

		node, err := fromNamespace(child, append(slices.Clone(path), name), o)
		if err != nil {
			return nil, err
		}

		entries = append(entries, Nested(name, node))
	}

	return New(entries...)
}
