package lang

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/litcfg/pkg"
	"github.com/ardnew/litcfg/schema"
	"github.com/ardnew/litcfg/value"
)

func TestUpdate(t *testing.T) {
	t.Parallel()

	hello := schema.MustNew(
		schema.Value("hello", value.KindString, schema.Fixed(value.String("world"))),
	)

	server := schema.MustNew(
		schema.Value("debug", value.KindInt, nil),
		schema.Nested("server", schema.MustNew(
			schema.Value("port", value.KindInt, schema.Fixed(value.Int(8080))),
			schema.Value("host", value.KindString, nil),
		)),
	)

	tests := []struct {
		name   string
		input  string
		schema *schema.Node
		want   string
		paths  []string
	}{
		{
			name:   "empty document",
			input:  "",
			schema: hello,
			want:   "hello = 'world'\n",
			paths:  []string{"hello"},
		},
		{
			name:   "comment only document",
			input:  "# settings",
			schema: hello,
			want:   "# settings\nhello = 'world'\n",
			paths:  []string{"hello"},
		},
		{
			name:   "prepended to root",
			input:  "abc = 12  # Comment",
			schema: hello,
			want:   "hello = 'world'\nabc = 12  # Comment",
			paths:  []string{"hello"},
		},
		{
			name:   "below header comment",
			input:  "# header\n\nabc = 1\n",
			schema: hello,
			want:   "# header\n\nhello = 'world'\nabc = 1\n",
			paths:  []string{"hello"},
		},
		{
			name:   "above attached comment",
			input:  "# about abc\nabc = 1\n",
			schema: hello,
			want:   "hello = 'world'\n# about abc\nabc = 1\n",
			paths:  []string{"hello"},
		},
		{
			name:   "nested block",
			input:  "class server:\n    host = 'localhost'  # keep\n",
			schema: server,
			want:   "debug = 0\nclass server:\n    port = 8080\n    host = 'localhost'  # keep\n",
			paths:  []string{"debug", "server.port"},
		},
		{
			name:   "comment inside block",
			input:  "class server:\n    # listen address\n    host = 'h'\n",
			schema: server,
			want:   "debug = 0\nclass server:\n    port = 8080\n    # listen address\n    host = 'h'\n",
			paths:  []string{"debug", "server.port"},
		},
		{
			name:   "whitespace-only lines and odd comment",
			input:  "debug = 1\n   \nclass server:\n    host = 'h'\n    \n  # odd\n",
			schema: server,
			want:   "debug = 1\n   \nclass server:\n    port = 8080\n    host = 'h'\n    \n  # odd\n",
			paths:  []string{"server.port"},
		},
		{
			name:   "nested block after blank line",
			input:  "debug = 1\nclass server:  # net\n\n  host = 'h'\n",
			schema: server,
			want:   "debug = 1\nclass server:  # net\n\n  port = 8080\n  host = 'h'\n",
			paths:  []string{"server.port"},
		},
		{
			name:   "inline suite",
			input:  "debug = 1\nclass server: host = 'h'\n",
			schema: server,
			want:   "debug = 1\nclass server:\n    port = 8080\n    host = 'h'\n",
			paths:  []string{"server.port"},
		},
		{
			name:   "absent block",
			input:  "debug = 1\n",
			schema: server,
			want:   "class server:\n    port = 8080\n    host = ''\ndebug = 1\n",
			paths:  []string{"server"},
		},
		{
			name:   "tabs and crlf",
			input:  "class server:\r\n\thost = 'h'\r\n",
			schema: server,
			want:   "debug = 0\r\nclass server:\r\n\tport = 8080\r\n\thost = 'h'\r\n",
			paths:  []string{"debug", "server.port"},
		},
		{
			name:   "non-namespace where block expected",
			input:  "debug = 1\nserver = 'elsewhere'\n",
			schema: server,
			want:   "debug = 1\nserver = 'elsewhere'\n",
		},
		{
			name:   "repeated block",
			input:  "class server:\n    port = 1\nclass server:\n    host = 'h'\ndebug = 0\n",
			schema: server,
			want:   "class server:\n    port = 8080\n    port = 1\nclass server:\n    port = 8080\n    host = 'h'\ndebug = 0\n",
			paths:  []string{"server.port"},
		},
		{
			name:   "extra names kept",
			input:  "extra = [1, 2]\nhello = 'there'\n",
			schema: hello,
			want:   "extra = [1, 2]\nhello = 'there'\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, missing, err := Update(t.Context(), tt.input, tt.schema)
			if err != nil {
				t.Fatalf("Update() error = %v", err)
			}

			if got != tt.want {
				t.Errorf("Update() =\n%q\nwant\n%q", got, tt.want)
			}

			if diff := cmp.Diff(tt.paths, missing.Paths()); diff != "" {
				t.Errorf("Paths() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUpdate_EveryKind(t *testing.T) {
	t.Parallel()

	node := schema.MustNew(
		schema.Value("i", value.KindInt, nil),
		schema.Value("f", value.KindFloat, nil),
		schema.Value("s", value.KindString, nil),
		schema.Value("t", value.KindTuple, nil),
		schema.Value("l", value.KindList, nil),
		schema.Value("e", value.KindSet, nil),
		schema.Value("d", value.KindDict, nil),
		schema.Value("n", value.KindNamespace, nil),
		schema.Value("x", value.KindDict, schema.Fixed(value.MustDict(
			value.Entry{Key: value.Int(1), Value: value.NewTuple(value.String("a\n"))},
		))),
	)

	want := "i = 0\nf = 0.0\ns = ''\nt = ()\nl = []\ne = set()\nd = {}\n" +
		"class n:\n    pass\nx = {1: ('a\\n',)}\n"

	got, _, err := Update(t.Context(), "", node)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if got != want {
		t.Errorf("Update() =\n%s\nwant\n%s", got, want)
	}

	ns, err := Load(t.Context(), got)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want2, err := schema.Materialize(node)
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}

	if diff := cmp.Diff(want2, ns, cmp.Comparer(value.Equal)); diff != "" {
		t.Errorf("reloaded namespace mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdate_Idempotent(t *testing.T) {
	t.Parallel()

	node := schema.MustNew(
		schema.Value("name", value.KindString, schema.Fixed(value.String("api"))),
		schema.Nested("db", schema.MustNew(
			schema.Value("host", value.KindString, schema.Fixed(value.String("localhost"))),
			schema.Nested("pool", schema.MustNew(
				schema.Value("size", value.KindInt, schema.Fixed(value.Int(4))),
			)),
		)),
	)

	inputs := []string{
		"",
		"# only a comment\n",
		"name = 'web'\n",
		"class db: host = 'remote'\n",
		"class db:\n  class pool:\n    pass\n",
	}

	for _, input := range inputs {
		first, _, err := Update(t.Context(), input, node)
		if err != nil {
			t.Fatalf("Update(%q) error = %v", input, err)
		}

		second, missing, err := Update(t.Context(), first, node)
		if err != nil {
			t.Fatalf("Update(%q) error = %v", first, err)
		}

		if second != first {
			t.Errorf("second Update(%q) =\n%q\nwant\n%q", input, second, first)
		}

		if !missing.Empty() {
			t.Errorf("second Update(%q) missing = %v, want none", input, missing.Paths())
		}

		before, err := Load(t.Context(), input)
		if err != nil {
			t.Fatalf("Load(%q) error = %v", input, err)
		}

		after, err := Load(t.Context(), first)
		if err != nil {
			t.Fatalf("Load(%q) error = %v", first, err)
		}

		for name, v := range before.All() {
			if _, isNS := v.(*value.Namespace); isNS {
				continue
			}

			if w, ok := after.Get(name); !ok || !value.Equal(v, w) {
				t.Errorf("Update(%q) lost %s = %v", input, name, v)
			}
		}
	}
}

func TestUpdate_Factory(t *testing.T) {
	t.Parallel()

	calls := 0
	node := schema.MustNew(
		schema.Value("token", value.KindString, schema.Factory(func() (value.Value, error) {
			calls++

			return value.String("generated"), nil
		})),
	)

	got, _, err := Update(t.Context(), "token = 'set'\n", node)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if got != "token = 'set'\n" || calls != 0 {
		t.Errorf("Update() = %q after %d calls, want unchanged with no calls", got, calls)
	}

	got, _, err = Update(t.Context(), "", node)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if got != "token = 'generated'\n" || calls != 1 {
		t.Errorf("Update() = %q after %d calls, want generated once", got, calls)
	}
}

func TestUpdate_Options(t *testing.T) {
	t.Parallel()

	node := schema.MustNew(schema.Nested("a", schema.MustNew(
		schema.Value("x", value.KindInt, nil),
	)))

	got, _, err := Update(t.Context(), "", node, WithIndent("  "), WithNewline("\r\n"))
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if want := "class a:\r\n  x = 0\r\n"; got != want {
		t.Errorf("Update() = %q, want %q", got, want)
	}
}

func TestUpdate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		node  *schema.Node
		kind  error
	}{
		{
			name: "infinite float",
			node: schema.MustNew(schema.Value("f", value.KindFloat,
				schema.Fixed(value.Float(math.Inf(1))))),
			kind: pkg.ErrUnrepresentable,
		},
		{
			name: "nan in list",
			node: schema.MustNew(schema.Value("l", value.KindList,
				schema.Fixed(value.NewList(value.Float(math.NaN()))))),
			kind: pkg.ErrUnrepresentable,
		},
		{
			name: "keyword name",
			node: schema.MustNew(schema.Value("class", value.KindInt, nil)),
			kind: pkg.ErrUnrepresentable,
		},
		{
			name:  "unsupported input",
			input: "a = b\n",
			node:  schema.MustNew(schema.Value("a", value.KindInt, nil)),
			kind:  ErrVariableReference,
		},
		{
			name:  "syntax error",
			input: "a = (\n",
			node:  schema.MustNew(schema.Value("a", value.KindInt, nil)),
			kind:  pkg.ErrSyntax,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := Update(t.Context(), tt.input, tt.node)
			if !errors.Is(err, tt.kind) {
				t.Errorf("Update() error = %v, want %v", err, tt.kind)
			}
		})
	}
}

func TestRewrite_SharesUntouchedNodes(t *testing.T) {
	t.Parallel()

	mod, err := Parse(t.Context(), "class a:\n    x = 1\nclass b:\n    y = 2\n")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	ns, err := LoadModule(t.Context(), mod)
	if err != nil {
		t.Fatalf("LoadModule() error = %v", err)
	}

	node := schema.MustNew(
		schema.Nested("a", schema.MustNew(schema.Value("x", value.KindInt, nil))),
		schema.Nested("b", schema.MustNew(
			schema.Value("y", value.KindInt, nil),
			schema.Value("z", value.KindInt, nil),
		)),
	)

	missing, err := schema.Diff(node, ns)
	if err != nil {
		t.Fatalf("Diff() error = %v", err)
	}

	out, err := RewriteModule(t.Context(), mod, missing)
	if err != nil {
		t.Fatalf("RewriteModule() error = %v", err)
	}

	if out.Body[0] != mod.Body[0] {
		t.Error("untouched block a was copied")
	}

	if out.Body[1] == mod.Body[1] {
		t.Error("block b was modified in place")
	}

	if got, want := Print(mod), "class a:\n    x = 1\nclass b:\n    y = 2\n"; got != want {
		t.Errorf("original module changed: %q", got)
	}

	if got, want := Print(out), "class a:\n    x = 1\nclass b:\n    z = 0\n    y = 2\n"; got != want {
		t.Errorf("Print() = %q, want %q", got, want)
	}
}

func TestLiteral(t *testing.T) {
	t.Parallel()

	tests := []struct {
		v    value.Value
		want string
		err  error
	}{
		{value.Int(-3), "-3", nil},
		{value.Float(1e16), "1e+16", nil},
		{value.String("it's"), `"it's"`, nil},
		{value.NewTuple(value.Int(1)), "(1,)", nil},
		{value.MustSet(), "set()", nil},
		{value.Float(math.Inf(-1)), "", pkg.ErrUnrepresentable},
		{value.String("\xff"), "", pkg.ErrUnrepresentable},
		{value.NewNamespaceBuilder().Build(), "", pkg.ErrUnrepresentable},
		{nil, "", pkg.ErrUnrepresentable},
	}

	for _, tt := range tests {
		got, err := Literal(tt.v)
		if !errors.Is(err, tt.err) {
			t.Errorf("Literal(%v) error = %v, want %v", tt.v, err, tt.err)

			continue
		}

		if got != tt.want {
			t.Errorf("Literal(%v) = %s, want %s", tt.v, got, tt.want)
		}
	}
}
