package schema

import (
	"iter"
	"log/slog"
	"slices"
	"strings"

	"github.com/ardnew/litcfg/pkg"
	"github.com/ardnew/litcfg/value"
)

// DefaultMaxDepth bounds the nesting of blocks visited by [Diff].
const DefaultMaxDepth = 16

// Option configures [Diff].
type Option func(*options)

type options struct {
	maxDepth int
}

// WithMaxDepth sets the maximum block nesting [Diff] descends into.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		if depth > 0 {
			o.maxDepth = depth
		}
	}
}

// Addition is one name absent from a namespace together with the value it
// should be bound to. An absent block carries a fully materialized
// *value.Namespace.
type Addition struct {
	Name  string
	Value value.Value
}

// Missing is the sparse tree of names a schema declares but a namespace
// lacks. Each level lists its additions in schema order and holds a child
// for every present block that lacks names of its own.
type Missing struct {
	path     []string
	adds     []Addition
	children []*Missing
}

// Path returns the block names leading to this level.
func (m *Missing) Path() []string { return slices.Clone(m.path) }

// Name returns the name of the block this level describes, or the empty
// string for the root.
func (m *Missing) Name() string {
	if len(m.path) == 0 {
		return ""
	}

	return m.path[len(m.path)-1]
}

// Additions returns the names absent at this level in schema order.
func (m *Missing) Additions() []Addition {
	if m == nil {
		return nil
	}

	return m.adds
}

// Children returns the present blocks that lack names, in schema order.
func (m *Missing) Children() []*Missing {
	if m == nil {
		return nil
	}

	return m.children
}

// Empty reports whether nothing is missing anywhere in the tree.
func (m *Missing) Empty() bool {
	return m == nil || len(m.adds) == 0 && len(m.children) == 0
}

// At returns the level for the block at path, or nil if nothing is
// missing there.
func (m *Missing) At(path ...string) *Missing {
	cur := m

	for _, name := range path {
		if cur == nil {
			return nil
		}

		var next *Missing

		for _, c := range cur.children {
			if c.Name() == name {
				next = c

				break
			}
		}

		cur = next
	}

	return cur
}

// Len returns the number of additions in the whole tree. An absent block
// counts once.
func (m *Missing) Len() int {
	if m == nil {
		return 0
	}

	n := len(m.adds)
	for _, c := range m.children {
		n += c.Len()
	}

	return n
}

// Paths returns the dotted path of every addition, walking each level's
// additions before its children.
func (m *Missing) Paths() []string {
	var paths []string

	for path, a := range m.All() {
		paths = append(paths, strings.Join(append(path, a.Name), "."))
	}

	return paths
}

// All yields every addition with the block path it belongs to, in the
// order of [Missing.Paths]. Each path is a fresh slice.
func (m *Missing) All() iter.Seq2[[]string, Addition] {
	return func(yield func([]string, Addition) bool) {
		m.walk(yield)
	}
}

func (m *Missing) walk(yield func([]string, Addition) bool) bool {
	if m == nil {
		return true
	}

	for _, a := range m.adds {
		if !yield(slices.Clone(m.path), a) {
			return false
		}
	}

	for _, c := range m.children {
		if !c.walk(yield) {
			return false
		}
	}

	return true
}

// Diff compares ns against the schema node and returns what is missing.
//
// Levels are compared independently in schema order. A name the schema
// declares that ns does not bind becomes an [Addition] holding the entry's
// default; an absent block is materialized with every default it
// declares. A block present in ns is descended into. A name bound to
// something other than a namespace where the schema declares a block
// counts as present and is not descended into. Names in ns the schema
// does not declare are ignored.
//
// Diff fails with [pkg.ErrTooDeep] if the schema nests deeper than the
// configured maximum.
func Diff(node *Node, ns *value.Namespace, opts ...Option) (*Missing, error) {
	o := options{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}

	return diff(node, ns, nil, o)
}

func diff(node *Node, ns *value.Namespace, path []string, o options) (*Missing, error) {
	if len(path) > o.maxDepth {
		return nil, tooDeep(path, o)
	}

	m := &Missing{path: slices.Clone(path)}

	for e := range node.Entries() {
		bound, ok := ns.Get(e.Name())

		switch e := e.(type) {
		case *Field:
			if ok {
				continue
			}

			v, err := e.def.Materialize(e.kind)
			if err != nil {
				return nil, err
			}

			m.adds = append(m.adds, Addition{Name: e.name, Value: v})

		case *Block:
			sub := append(slices.Clone(path), e.name)

			if !ok {
				v, err := materialize(e.node, sub, o)
				if err != nil {
					return nil, err
				}

				m.adds = append(m.adds, Addition{Name: e.name, Value: v})

				continue
			}

			child, isNS := bound.(*value.Namespace)
			if !isNS {
				continue
			}

			c, err := diff(e.node, child, sub, o)
			if err != nil {
				return nil, err
			}

			if !c.Empty() {
				m.children = append(m.children, c)
			}
		}
	}

	return m, nil
}

// Materialize returns a namespace holding every default node declares.
func Materialize(node *Node, opts ...Option) (*value.Namespace, error) {
	o := options{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}

	return materialize(node, nil, o)
}

func materialize(node *Node, path []string, o options) (*value.Namespace, error) {
	b := value.NewNamespaceBuilder()

	if err := fill(b, node, path, o); err != nil {
		return nil, err
	}

	return b.Build(), nil
}

func fill(b *value.NamespaceBuilder, node *Node, path []string, o options) error {
	if len(path) > o.maxDepth {
		return tooDeep(path, o)
	}

	for e := range node.Entries() {
		switch e := e.(type) {
		case *Field:
			v, err := e.def.Materialize(e.kind)
			if err != nil {
				return err
			}

			b.Set(e.name, v)

		case *Block:
			if err := fill(b.Block(e.name), e.node, append(slices.Clone(path), e.name), o); err != nil {
				return err
			}
		}
	}

	return nil
}

func tooDeep(path []string, o options) error {
	return pkg.ErrTooDeep.With(
		slog.String("path", strings.Join(path, ".")),
		slog.Int("max", o.maxDepth),
	)
}
