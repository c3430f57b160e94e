package repl

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
)

func entries(h *History) []string {
	out := make([]string, 0, h.Len())

	for i := range h.Len() {
		line, _ := h.At(i)
		out = append(out, line)
	}

	return out
}

func TestHistory(t *testing.T) {
	fsys := afero.NewMemMapFs()
	path := filepath.Join("cache", "litcfg", HistoryFile)

	h := NewHistory(fsys, path)
	if err := h.Load(); err != nil {
		t.Fatalf("Load() of missing file error = %v", err)
	}

	for _, line := range []string{"a", "  ", "b", "b", "c", "a"} {
		if err := h.Add(line); err != nil {
			t.Fatalf("Add(%q) error = %v", line, err)
		}
	}

	want := []string{"b", "c", "a"}
	if diff := cmp.Diff(want, entries(h)); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if got := string(data); got != "b\nc\na\n" {
		t.Errorf("file = %q, want %q", got, "b\nc\na\n")
	}

	if err := h.Add("d"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	reloaded := NewHistory(fsys, path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if diff := cmp.Diff([]string{"b", "c", "a", "d"}, entries(reloaded)); diff != "" {
		t.Errorf("reloaded mismatch (-want +got):\n%s", diff)
	}

	if _, ok := reloaded.At(4); ok {
		t.Errorf("At(4) ok = true, want false")
	}
}

func TestHistory_InMemory(t *testing.T) {
	h := NewHistory(nil, "")

	if err := h.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if err := h.Add("x"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if got, ok := h.At(0); !ok || got != "x" {
		t.Errorf("At(0) = %q, %v", got, ok)
	}
}
