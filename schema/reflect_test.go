package schema

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/litcfg/pkg"
	"github.com/ardnew/litcfg/value"
)

type token string

func (token) Default() (value.Value, error) { return value.String("generated"), nil }

type database struct {
	Host    string         `cfg:"host"`
	Port    int            `cfg:"port"`
	Options map[string]int `cfg:"options"`
}

type service struct {
	Name     string              `cfg:"name"`
	Ratio    float64             `cfg:"ratio"`
	Hosts    []string            `cfg:"hosts"`
	Pair     [2]int              `cfg:"pair"`
	Tags     map[string]struct{} `cfg:"tags"`
	Secret   token               `cfg:"secret"`
	Raw      *value.List         `cfg:"raw"`
	Database database            `cfg:"database"`
	Cache    *database           `cfg:"cache"`
	Ignored  string              `cfg:"-"`
	Untagged int
	internal int
}

func TestOf(t *testing.T) {
	t.Parallel()

	proto := service{
		Name:     "api",
		Hosts:    []string{"a", "b"},
		Database: database{Host: "localhost", Port: 5432},
	}

	node, err := Of(&proto)
	if err != nil {
		t.Fatalf("Of() error = %v", err)
	}

	const want = "{name: str, ratio: float, hosts: list, pair: tuple, tags: set, " +
		"secret: str, raw: list, database: {host: str, port: int, options: dict}, " +
		"cache: {host: str, port: int, options: dict}, Untagged: int}"

	if got := node.String(); got != want {
		t.Errorf("Of() =\n%s\nwant\n%s", got, want)
	}

	ns, err := Materialize(node)
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}

	tests := []struct {
		path []string
		want value.Value
	}{
		{[]string{"name"}, value.String("api")},
		{[]string{"ratio"}, value.Float(0)},
		{[]string{"hosts"}, value.NewList(value.String("a"), value.String("b"))},
		{[]string{"pair"}, value.NewTuple()},
		{[]string{"tags"}, value.MustSet()},
		{[]string{"secret"}, value.String("generated")},
		{[]string{"raw"}, value.NewList()},
		{[]string{"database", "host"}, value.String("localhost")},
		{[]string{"database", "port"}, value.Int(5432)},
		{[]string{"database", "options"}, value.MustDict()},
		{[]string{"cache", "port"}, value.Int(0)},
		{[]string{"Untagged"}, value.Int(0)},
	}

	for _, tt := range tests {
		got, ok := ns.Lookup(tt.path...)
		if !ok {
			t.Errorf("Lookup(%v) not found", tt.path)

			continue
		}

		if diff := cmp.Diff(tt.want, got, cmp.Comparer(value.Equal)); diff != "" {
			t.Errorf("Lookup(%v) mismatch (-want +got):\n%s", tt.path, diff)
		}
	}
}

func TestOf_Unsupported(t *testing.T) {
	t.Parallel()

	type recursive struct {
		Next *recursive `cfg:"next"`
	}

	tests := []struct {
		name  string
		proto any
		err   error
	}{
		{"not a struct", 42, ErrUnsupportedType},
		{"nil", nil, ErrUnsupportedType},
		{"bool field", struct{ On bool }{}, ErrUnsupportedType},
		{"func field", struct{ F func() }{}, ErrUnsupportedType},
		{"bool key map", struct{ M map[bool]int }{}, ErrUnsupportedType},
		{"nil value field", struct{ V value.Value }{}, ErrUnsupportedType},
		{"recursive", recursive{}, pkg.ErrTooDeep},
		{"invalid name", struct {
			A int `cfg:"a-b"`
		}{}, ErrInvalidName},
		{"duplicate name", struct {
			A int `cfg:"x"`
			B int `cfg:"x"`
		}{}, ErrDuplicateEntry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := Of(tt.proto); !errors.Is(err, tt.err) {
				t.Errorf("Of() error = %v, want %v", err, tt.err)
			}
		})
	}
}

func TestFromNamespace(t *testing.T) {
	t.Parallel()

	tmpl := namespace(func(b *value.NamespaceBuilder) {
		b.Set("name", value.String("api"))
		b.Block("db").Set("port", value.Int(5432))
	})

	node, err := FromNamespace(tmpl)
	if err != nil {
		t.Fatalf("FromNamespace() error = %v", err)
	}

	if got, want := node.String(), "{name: str, db: {port: int}}"; got != want {
		t.Errorf("FromNamespace() = %s, want %s", got, want)
	}

	ns, err := Materialize(node)
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}

	if !value.Equal(ns, tmpl) {
		t.Errorf("Materialize() = %v, want %v", ns, tmpl)
	}
}
