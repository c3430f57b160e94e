package query

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/litcfg/lang"
	"github.com/ardnew/litcfg/pkg"
	"github.com/ardnew/litcfg/value"
)

const document = `
name = 'api'
hosts = ['a', 'b']
class server:
    port = 8080
    class tls:
        cert = '/etc/cert.pem'
`

func load(t *testing.T) *value.Namespace {
	t.Helper()

	ns, err := lang.Load(t.Context(), document)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	return ns
}

func TestLookup(t *testing.T) {
	t.Parallel()

	ns := load(t)

	tests := []struct {
		path string
		want value.Value
	}{
		{"name", value.String("api")},
		{"server.port", value.Int(8080)},
		{"server.tls.cert", value.String("/etc/cert.pem")},
		{"hosts", value.NewList(value.String("a"), value.String("b"))},
	}

	for _, tt := range tests {
		got, err := Lookup(ns, tt.path)
		if err != nil {
			t.Errorf("Lookup(%q) error = %v", tt.path, err)

			continue
		}

		if diff := cmp.Diff(tt.want, got, cmp.Comparer(value.Equal)); diff != "" {
			t.Errorf("Lookup(%q) mismatch (-want +got):\n%s", tt.path, diff)
		}
	}

	tls, err := Lookup(ns, "server.tls")
	if err != nil || tls.Kind() != value.KindNamespace {
		t.Errorf("Lookup(server.tls) = %v, %v, want namespace", tls, err)
	}

	if root, err := Lookup(ns, ""); err != nil || root != value.Value(ns) {
		t.Errorf("Lookup(\"\") = %v, %v, want the namespace", root, err)
	}
}

func TestLookup_NotFound(t *testing.T) {
	t.Parallel()

	ns := load(t)

	tests := []struct {
		path     string
		name     string
		parent   string
		suggest  []string
		notBlock bool
		message  string
	}{
		{
			path:    "server.prt",
			name:    "prt",
			parent:  "server",
			suggest: []string{"port"},
			message: `name not found: "server.prt"; did you mean "port"?`,
		},
		{
			path:    "hst",
			name:    "hst",
			suggest: []string{"hosts"},
		},
		{
			path:    "server.zzz",
			name:    "zzz",
			parent:  "server",
			suggest: []string{},
			message: `name not found: "server.zzz"`,
		},
		{
			path:     "name.first",
			name:     "first",
			parent:   "name",
			notBlock: true,
			message:  `name not found: "name.first" ("name" is not a block)`,
		},
	}

	for _, tt := range tests {
		_, err := Lookup(ns, tt.path)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Lookup(%q) error = %v, want %v", tt.path, err, ErrNotFound)

			continue
		}

		var nf *NotFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("Lookup(%q) error is %T, want *NotFoundError", tt.path, err)
		}

		if nf.Name != tt.name || nf.Parent != tt.parent || nf.NotBlock != tt.notBlock {
			t.Errorf("Lookup(%q) = %+v", tt.path, nf)
		}

		if !tt.notBlock {
			if diff := cmp.Diff(tt.suggest, nf.Suggestions); diff != "" {
				t.Errorf("Lookup(%q) suggestions mismatch (-want +got):\n%s", tt.path, diff)
			}
		}

		if tt.message != "" && err.Error() != tt.message {
			t.Errorf("Lookup(%q) error = %q, want %q", tt.path, err.Error(), tt.message)
		}
	}
}

func TestSuggest(t *testing.T) {
	t.Parallel()

	candidates := []string{"timeout", "time_limit", "tls", "title", "other"}

	got := Suggest("ti", candidates)
	if len(got) != maxSuggestions {
		t.Errorf("Suggest(ti) = %v, want %d names", got, maxSuggestions)
	}

	for _, s := range got {
		if s == "other" {
			t.Errorf("Suggest(ti) = %v, includes a non-match", got)
		}
	}

	if got := Suggest("", candidates); got != nil {
		t.Errorf("Suggest(\"\") = %v, want nil", got)
	}
}

func TestEval(t *testing.T) {
	t.Parallel()

	ns := load(t)

	tests := []struct {
		src  string
		want value.Value
	}{
		{`server.port + 1`, value.Int(8081)},
		{`len(hosts)`, value.Int(2)},
		{`hosts[1]`, value.String("b")},
		{`name + "-v2"`, value.String("api-v2")},
		{`upper(name)`, value.String("API")},
		{`server.port > 1024`, value.Int(1)},
		{`server.tls.cert endsWith ".pem"`, value.Int(1)},
		{`"a" in hosts`, value.Int(1)},
		{`server.port / 2`, value.Float(4040)},
	}

	for _, tt := range tests {
		out, err := Eval(t.Context(), ns, tt.src)
		if err != nil {
			t.Errorf("Eval(%q) error = %v", tt.src, err)

			continue
		}

		got, err := value.FromNative(out)
		if err != nil {
			t.Errorf("Eval(%q) = %#v, not a value: %v", tt.src, out, err)

			continue
		}

		if !value.Equal(got, tt.want) {
			t.Errorf("Eval(%q) = %v, want %v", tt.src, got, tt.want)
		}
	}
}

func TestEval_Errors(t *testing.T) {
	t.Parallel()

	ns := load(t)

	for _, src := range []string{
		`missing + 1`,
		`server.port +`,
		`hosts[5]`,
		`name = 'x'`,
	} {
		if _, err := Eval(t.Context(), ns, src); !errors.Is(err, ErrQuery) {
			t.Errorf("Eval(%q) error = %v, want %v", src, err, ErrQuery)
		}
	}

	if out, err := Eval(t.Context(), nil, `1 + 2`); err != nil || out != 3 {
		t.Errorf("Eval(nil, 1 + 2) = %v, %v, want 3", out, err)
	}
}

func TestText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		result any
		want   string
	}{
		{true, "true"},
		{false, "false"},
		{8081, "8081"},
		{2.0, "2.0"},
		{"it's", `"it's"`},
		{[]any{"a", 1}, "['a', 1]"},
		{map[string]any{"b": 2, "a": 1}, "{'a': 1, 'b': 2}"},
	}

	for _, tt := range tests {
		got, err := Text(tt.result)
		if err != nil || got != tt.want {
			t.Errorf("Text(%#v) = %q, %v, want %q", tt.result, got, err, tt.want)
		}
	}

	if _, err := Text(nil); !errors.Is(err, pkg.ErrUnrepresentable) {
		t.Errorf("Text(nil) error = %v, want %v", err, pkg.ErrUnrepresentable)
	}
}
