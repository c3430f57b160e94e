package schema

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/litcfg/pkg"
	"github.com/ardnew/litcfg/value"
)

func namespace(bind func(b *value.NamespaceBuilder)) *value.Namespace {
	b := value.NewNamespaceBuilder()
	bind(b)

	return b.Build()
}

func TestDiff_PerLevel(t *testing.T) {
	t.Parallel()

	node := MustNew(
		Value("a", value.KindInt, Fixed(value.Int(1))),
		Nested("nested", MustNew(
			Value("b", value.KindString, Fixed(value.String("bee"))),
		)),
	)

	tests := []struct {
		name  string
		ns    *value.Namespace
		paths []string
		root  []Addition
	}{
		{
			name:  "only top level present",
			ns:    namespace(func(b *value.NamespaceBuilder) { b.Set("a", value.Int(7)) }),
			paths: []string{"nested"},
			root: []Addition{{
				Name: "nested",
				Value: namespace(func(b *value.NamespaceBuilder) {
					b.Set("b", value.String("bee"))
				}),
			}},
		},
		{
			name: "nested present",
			ns: namespace(func(b *value.NamespaceBuilder) {
				b.Set("a", value.Int(7))
				b.Block("nested").Set("b", value.String("x"))
			}),
		},
		{
			name: "nested present but empty",
			ns: namespace(func(b *value.NamespaceBuilder) {
				b.Set("a", value.Int(7))
				b.Block("nested")
			}),
			paths: []string{"nested.b"},
		},
		{
			name:  "nil namespace",
			ns:    nil,
			paths: []string{"a", "nested"},
			root: []Addition{
				{Name: "a", Value: value.Int(1)},
				{Name: "nested", Value: namespace(func(b *value.NamespaceBuilder) {
					b.Set("b", value.String("bee"))
				})},
			},
		},
		{
			name: "field shadowing block",
			ns: namespace(func(b *value.NamespaceBuilder) {
				b.Set("a", value.Int(7))
				b.Set("nested", value.String("flat"))
			}),
		},
		{
			name: "deep field does not count upward",
			ns: namespace(func(b *value.NamespaceBuilder) {
				b.Block("nested").Set("a", value.Int(1))
			}),
			paths: []string{"a", "nested.b"},
			root:  []Addition{{Name: "a", Value: value.Int(1)}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, err := Diff(node, tt.ns)
			if err != nil {
				t.Fatalf("Diff() error = %v", err)
			}

			if diff := cmp.Diff(tt.paths, m.Paths()); diff != "" {
				t.Errorf("Paths() mismatch (-want +got):\n%s", diff)
			}

			if m.Empty() != (len(tt.paths) == 0) {
				t.Errorf("Empty() = %v with paths %v", m.Empty(), m.Paths())
			}

			if m.Len() != len(tt.paths) {
				t.Errorf("Len() = %d, want %d", m.Len(), len(tt.paths))
			}

			if tt.root == nil {
				return
			}

			if diff := cmp.Diff(tt.root, m.Additions(), cmp.Comparer(value.Equal)); diff != "" {
				t.Errorf("Additions() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMissing_At(t *testing.T) {
	t.Parallel()

	node := MustNew(Nested("a", MustNew(
		Value("x", value.KindInt, nil),
		Nested("b", MustNew(Value("y", value.KindInt, nil))),
	)))

	ns := namespace(func(b *value.NamespaceBuilder) {
		b.Block("a").Block("b")
	})

	m, err := Diff(node, ns)
	if err != nil {
		t.Fatalf("Diff() error = %v", err)
	}

	if len(m.Additions()) != 0 {
		t.Errorf("root Additions() = %v, want none", m.Additions())
	}

	a := m.At("a")
	if a == nil || a.Name() != "a" || len(a.Additions()) != 1 {
		t.Fatalf("At(a) = %+v", a)
	}

	b := m.At("a", "b")
	if b == nil || cmp.Diff([]string{"a", "b"}, b.Path()) != "" {
		t.Fatalf("At(a, b) = %+v", b)
	}

	if got := b.Additions()[0]; got.Name != "y" || !value.Equal(got.Value, value.Int(0)) {
		t.Errorf("At(a, b).Additions()[0] = %+v, want y = 0", got)
	}

	if m.At("a", "c") != nil || m.At("z") != nil {
		t.Error("At() found a level for an unknown path")
	}

	var none *Missing
	if !none.Empty() || none.Len() != 0 || none.Additions() != nil || none.At("a") != nil {
		t.Error("nil Missing is not empty")
	}
}

func TestMissing_All(t *testing.T) {
	t.Parallel()

	node := MustNew(
		Value("x", value.KindInt, nil),
		Nested("a", MustNew(Value("y", value.KindString, Fixed(value.String("why"))))),
	)

	m, err := Diff(node, namespace(func(b *value.NamespaceBuilder) { b.Block("a") }))
	if err != nil {
		t.Fatalf("Diff() error = %v", err)
	}

	var got []string

	for path, a := range m.All() {
		got = append(got, fmt.Sprintf("%v %s=%s", path, a.Name, a.Value))
	}

	want := []string{"[] x=0", "[a] y='why'"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("All() mismatch (-want +got):\n%s", diff)
	}

	n := 0
	for range m.All() {
		n++

		break
	}

	if n != 1 {
		t.Errorf("All() yielded %d after break, want 1", n)
	}
}

func TestDiff_MaxDepth(t *testing.T) {
	t.Parallel()

	node := MustNew(Value("leaf", value.KindInt, nil))
	for range 5 {
		node = MustNew(Nested("n", node))
	}

	if _, err := Diff(node, nil, WithMaxDepth(3)); !errors.Is(err, pkg.ErrTooDeep) {
		t.Errorf("Diff() error = %v, want %v", err, pkg.ErrTooDeep)
	}

	if _, err := Materialize(node, WithMaxDepth(3)); !errors.Is(err, pkg.ErrTooDeep) {
		t.Errorf("Materialize() error = %v, want %v", err, pkg.ErrTooDeep)
	}

	ns, err := Materialize(node)
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}

	if v, ok := ns.Lookup("n", "n", "n", "n", "n", "leaf"); !ok || !value.Equal(v, value.Int(0)) {
		t.Errorf("Lookup(leaf) = %v, %v", v, ok)
	}
}

func TestDiff_FactoryError(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	node := MustNew(Value("a", value.KindInt, Factory(func() (value.Value, error) {
		return nil, errBoom
	})))

	if _, err := Diff(node, nil); !errors.Is(err, errBoom) {
		t.Errorf("Diff() error = %v, want %v", err, errBoom)
	}
}
