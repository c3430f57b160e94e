package value

import (
	"slices"
	"testing"
)

func TestNamespaceBuilder_LastWriteWins(t *testing.T) {
	t.Parallel()

	b := NewNamespaceBuilder()
	b.Set("a", Int(1)).Set("b", Int(2)).Set("a", Int(3))

	ns := b.Build()

	if got := ns.Names(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Names() = %v, want [a b]", got)
	}

	if v, _ := ns.Get("a"); v != Int(3) {
		t.Errorf("a = %v, want 3", v)
	}
}

func TestNamespaceBuilder_BlockBoundBeforeFilled(t *testing.T) {
	t.Parallel()

	root := NewNamespaceBuilder()
	child := root.Block("server")

	if !root.Has("server") {
		t.Fatal("block must be bound before its body is built")
	}

	child.Set("host", String("localhost"))
	child.Block("tls").Set("enabled", Int(1))

	ns := root.Build()

	v, ok := ns.Lookup("server", "tls", "enabled")
	if !ok || v != Int(1) {
		t.Errorf("Lookup(server.tls.enabled) = %v, %v", v, ok)
	}

	if _, ok := ns.Lookup("server", "host", "x"); ok {
		t.Error("Lookup through a scalar should fail")
	}

	if blk, ok := ns.Block("server"); !ok || blk.Len() != 2 {
		t.Errorf("Block(server) = %v, %v", blk, ok)
	}
}

func TestNamespaceBuilder_RebindBlock(t *testing.T) {
	t.Parallel()

	root := NewNamespaceBuilder()
	root.Block("a").Set("x", Int(1))
	root.Block("a").Set("y", Int(2))

	ns := root.Build()

	blk, _ := ns.Block("a")
	if blk.Has("x") || !blk.Has("y") {
		t.Errorf("redefined block should replace the earlier one, got %v", blk)
	}
}

func TestNamespaceBuilder_PanicsAfterBuild(t *testing.T) {
	t.Parallel()

	b := NewNamespaceBuilder()
	ns := b.Build()

	if b.Build() != ns {
		t.Error("Build must be idempotent")
	}

	defer func() {
		if recover() == nil {
			t.Error("Set after Build should panic")
		}
	}()

	b.Set("late", Int(1))
}

func TestNamespace_NilSafe(t *testing.T) {
	t.Parallel()

	var ns *Namespace

	if ns.Len() != 0 || ns.Has("a") || ns.Names() != nil {
		t.Error("nil namespace must behave as empty")
	}

	for range ns.All() {
		t.Error("nil namespace must not yield")
	}
}
