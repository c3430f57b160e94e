package schema

import (
	"iter"
	"log/slog"
	"slices"
	"strings"
	"unicode"

	"github.com/ardnew/litcfg/pkg"
	"github.com/ardnew/litcfg/value"
)

// Predefined errors (sentinel values).
var (
	ErrDuplicateEntry  = pkg.NewError("duplicate schema entry")
	ErrInvalidName     = pkg.NewError("schema entry name must be an identifier")
	ErrUnsupportedType = pkg.ErrUnsupported.Kind("type has no schema kind")
	ErrDecode          = pkg.NewError("failed to decode namespace")
)

// Node is one level of a schema: named entries in declaration order. Each
// entry is a [*Field] or a [*Block].
type Node struct {
	entries []Entry
	index   map[string]int
}

// Entry is a [*Field] or a [*Block].
type Entry interface {
	Name() string
	entry()
}

// New returns a schema level holding entries in the given order.
// It fails with [ErrDuplicateEntry] if two entries share a name, and with
// [ErrInvalidName] if a name is not an identifier.
func New(entries ...Entry) (*Node, error) {
	n := &Node{index: make(map[string]int, len(entries))}

	for _, e := range entries {
		name := e.Name()

		if !IsIdentifier(name) {
			return nil, ErrInvalidName.With(slog.String("name", name))
		}

		if _, ok := n.index[name]; ok {
			return nil, ErrDuplicateEntry.With(slog.String("name", name))
		}

		n.index[name] = len(n.entries)
		n.entries = append(n.entries, e)
	}

	return n, nil
}

// MustNew is like [New] but panics on error.
func MustNew(entries ...Entry) *Node {
	n, err := New(entries...)
	if err != nil {
		panic(err)
	}

	return n
}

// Len returns the number of entries.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}

	return len(n.entries)
}

// Entries returns an iterator over the entries in declaration order.
func (n *Node) Entries() iter.Seq[Entry] {
	if n == nil {
		return func(func(Entry) bool) {}
	}

	return slices.Values(n.entries)
}

// Lookup returns the entry named name.
func (n *Node) Lookup(name string) (Entry, bool) {
	if n == nil {
		return nil, false
	}

	i, ok := n.index[name]
	if !ok {
		return nil, false
	}

	return n.entries[i], true
}

// String renders the schema as "{name: kind, block: {...}}".
func (n *Node) String() string {
	var sb strings.Builder

	sb.WriteByte('{')

	for i, e := range n.entries {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(e.Name())
		sb.WriteString(": ")

		switch e := e.(type) {
		case *Field:
			sb.WriteString(e.kind.String())
		case *Block:
			sb.WriteString(e.node.String())
		}
	}

	sb.WriteByte('}')

	return sb.String()
}

// Field is a leaf entry with a kind and a default.
type Field struct {
	name string
	kind value.Kind
	def  Default
}

// Value returns a field named name of the given kind. A nil def means
// [Zero].
func Value(name string, kind value.Kind, def Default) *Field {
	if def == nil {
		def = Zero()
	}

	return &Field{name: name, kind: kind, def: def}
}

func (f *Field) Name() string { return f.name }
func (*Field) entry()         {}

// Kind returns the declared kind of the field.
func (f *Field) Kind() value.Kind { return f.kind }

// Default returns the field's default.
func (f *Field) Default() Default { return f.def }

// Block is an entry holding a nested schema level.
type Block struct {
	name string
	node *Node
}

// Nested returns a block entry named name with the given body.
func Nested(name string, node *Node) *Block {
	return &Block{name: name, node: node}
}

func (b *Block) Name() string { return b.name }
func (*Block) entry()         {}

// Node returns the block's body.
func (b *Block) Node() *Node { return b.node }

// Default produces the value a missing field is filled with. It is one of
// [Fixed], [Factory] or [Zero].
type Default interface {
	// Materialize returns the default for a field of the given kind.
	Materialize(kind value.Kind) (value.Value, error)

	sealed()
}

type fixed struct{ v value.Value }

type factory func() (value.Value, error)

type zero struct{}

// Fixed returns a default that is always v.
func Fixed(v value.Value) Default { return fixed{v: v} }

// Factory returns a default computed by fn each time it is needed.
func Factory(fn func() (value.Value, error)) Default { return factory(fn) }

// Zero returns the default that is the zero value of the field's kind.
func Zero() Default { return zero{} }

func (d fixed) Materialize(value.Kind) (value.Value, error)   { return d.v, nil }
func (d factory) Materialize(value.Kind) (value.Value, error) { return d() }
func (zero) Materialize(kind value.Kind) (value.Value, error) {
	v := value.Zero(kind)
	if v == nil {
		return nil, ErrUnsupportedType.With(slog.String("kind", kind.String()))
	}

	return v, nil
}

func (fixed) sealed()   {}
func (factory) sealed() {}
func (zero) sealed()    {}

// IsIdentifier reports whether s can name a field or block: a letter or
// underscore followed by letters, digits or underscores.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		switch {
		case r == '_', unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}

	return true
}
