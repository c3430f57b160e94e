package value

import (
	"iter"
	"slices"
	"strings"
)

// Namespace is an ordered mapping from identifier to [Value]; it models one
// block of a configuration document. A value bound in a namespace may itself
// be a *Namespace.
//
// Namespaces are built with a [NamespaceBuilder] and are read-only once
// built.
type Namespace struct {
	names []string
	vals  map[string]Value
}

func (*Namespace) Kind() Kind { return KindNamespace }
func (*Namespace) sealed()    {}

// Len returns the number of names bound in the namespace.
func (n *Namespace) Len() int {
	if n == nil {
		return 0
	}

	return len(n.names)
}

// Names returns the bound names in binding order.
func (n *Namespace) Names() []string {
	if n == nil {
		return nil
	}

	return slices.Clone(n.names)
}

// Get returns the value bound to name.
func (n *Namespace) Get(name string) (Value, bool) {
	if n == nil {
		return nil, false
	}

	v, ok := n.vals[name]

	return v, ok
}

// Has reports whether name is bound.
func (n *Namespace) Has(name string) bool {
	_, ok := n.Get(name)

	return ok
}

// All returns an iterator over name-value pairs in binding order.
func (n *Namespace) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if n == nil {
			return
		}

		for _, name := range n.names {
			if !yield(name, n.vals[name]) {
				return
			}
		}
	}
}

// Lookup follows path through nested namespaces and returns the value at
// its end. An empty path returns n itself.
func (n *Namespace) Lookup(path ...string) (Value, bool) {
	var cur Value = n

	for _, name := range path {
		ns, ok := cur.(*Namespace)
		if !ok {
			return nil, false
		}

		if cur, ok = ns.Get(name); !ok {
			return nil, false
		}
	}

	return cur, cur != nil
}

// Block returns the nested namespace bound to name, if any.
func (n *Namespace) Block(name string) (*Namespace, bool) {
	v, ok := n.Get(name)
	if !ok {
		return nil, false
	}

	ns, ok := v.(*Namespace)

	return ns, ok
}

// String renders the namespace as "namespace(name=value, ...)".
// Namespaces have no literal spelling; the rewriter emits them as blocks.
func (n *Namespace) String() string {
	var sb strings.Builder

	sb.WriteString("namespace(")

	for i, name := range n.Names() {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(name)
		sb.WriteByte('=')
		sb.WriteString(n.vals[name].String())
	}

	sb.WriteByte(')')

	return sb.String()
}

// NamespaceBuilder accumulates bindings for one namespace and its nested
// blocks. The zero value is not usable; call [NewNamespaceBuilder].
type NamespaceBuilder struct {
	ns       *Namespace
	children map[string]*NamespaceBuilder
	built    bool
}

// NewNamespaceBuilder returns a builder for an empty namespace.
func NewNamespaceBuilder() *NamespaceBuilder {
	return &NamespaceBuilder{
		ns:       &Namespace{vals: map[string]Value{}},
		children: map[string]*NamespaceBuilder{},
	}
}

// Set binds name to v. Rebinding a name replaces its value and keeps its
// original position.
func (b *NamespaceBuilder) Set(name string, v Value) *NamespaceBuilder {
	b.mustOpen()

	delete(b.children, name)
	b.bind(name, v)

	return b
}

// Block binds name to a fresh empty namespace and returns the builder for
// it. The binding is visible before the child is filled.
func (b *NamespaceBuilder) Block(name string) *NamespaceBuilder {
	b.mustOpen()

	child := NewNamespaceBuilder()
	b.children[name] = child
	b.bind(name, child.ns)

	return child
}

// Len returns the number of names bound so far.
func (b *NamespaceBuilder) Len() int { return b.ns.Len() }

// Has reports whether name is bound so far.
func (b *NamespaceBuilder) Has(name string) bool { return b.ns.Has(name) }

// Build freezes the namespace and every nested block and returns it.
// Further calls to Set or Block panic; further calls to Build return the
// same namespace.
func (b *NamespaceBuilder) Build() *Namespace {
	if b.built {
		return b.ns
	}

	for _, child := range b.children {
		child.Build()
	}

	b.built = true

	return b.ns
}

func (b *NamespaceBuilder) bind(name string, v Value) {
	if _, ok := b.ns.vals[name]; !ok {
		b.ns.names = append(b.ns.names, name)
	}

	b.ns.vals[name] = v
}

func (b *NamespaceBuilder) mustOpen() {
	if b.built {
		panic("value: NamespaceBuilder used after Build")
	}
}
