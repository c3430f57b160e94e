package cmd

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/litcfg/config"
	"github.com/ardnew/litcfg/format"
	"github.com/ardnew/litcfg/lang"
	"github.com/ardnew/litcfg/schema"
	"github.com/ardnew/litcfg/value"
)

func TestSource_Format(t *testing.T) {
	tests := []struct {
		name    string
		source  Source
		want    format.Format
		wantErr bool
	}{
		{name: "by_extension", source: Source{File: "app.json"}},
		{name: "stdin", source: Source{File: stdinSource}, want: format.Native{}},
		{name: "named", source: Source{File: "app.txt", Format: "yaml"}, want: format.YAML{}},
		{name: "stdin_named", source: Source{File: stdinSource, Format: "env"}, want: format.Env{}},
		{name: "unknown", source: Source{File: "app", Format: "toml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.source.format()
			if (err != nil) != tt.wantErr {
				t.Fatalf("format() error = %v, wantErr %v", err, tt.wantErr)
			}

			if reflect.TypeOf(got) != reflect.TypeOf(tt.want) {
				t.Errorf("format() = %T, want %T", got, tt.want)
			}
		})
	}
}

func TestWriteDiff(t *testing.T) {
	tests := []struct {
		name   string
		change config.Change
		want   string
	}{
		{
			name:   "unchanged",
			change: config.Change{Path: "app.pyi", Before: "a = 1\n", After: "a = 1\n"},
			want:   "",
		},
		{
			name:   "appended",
			change: config.Change{Path: "app.pyi", Before: "a = 1\n", After: "a = 1\nb = 2\n"},
			want:   "--- app.pyi\n+++ app.pyi\n a = 1\n+b = 2\n",
		},
		{
			name:   "new_file",
			change: config.Change{Path: "new.pyi", After: "b = 2\n"},
			want:   "--- new.pyi\n+++ new.pyi\n+b = 2\n",
		},
		{
			name:   "no_trailing_newline",
			change: config.Change{Path: "app.pyi", Before: "a = 1", After: "a = 1\nb = 2"},
			want: "--- app.pyi\n+++ app.pyi\n" +
				"-a = 1\n\\ No newline at end of file\n" +
				"+a = 1\n+b = 2\n\\ No newline at end of file\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := writeDiff(&buf, &tt.change); err != nil {
				t.Fatalf("writeDiff() error = %v", err)
			}

			if diff := cmp.Diff(tt.want, buf.String()); diff != "" {
				t.Errorf("writeDiff() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWriteReport(t *testing.T) {
	load := func(src string) *value.Namespace {
		ns, err := lang.Load(t.Context(), src)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		return ns
	}

	node, err := schema.FromNamespace(load(
		"a = 1\nname = 'x'\nclass db:\n    host = 'h'\n    port = 1\nclass log:\n    level = 'warn'\n",
	))
	if err != nil {
		t.Fatalf("FromNamespace() error = %v", err)
	}

	missing, err := schema.Diff(node, load("a = 1\nclass log:\n    pass\n"))
	if err != nil {
		t.Fatalf("Diff() error = %v", err)
	}

	var buf bytes.Buffer
	if err := writeReport(&buf, &config.Change{Path: "app.pyi", Missing: missing}); err != nil {
		t.Fatalf("writeReport() error = %v", err)
	}

	want := "Added 3 fields to app.pyi:\n" +
		"  + name = 'x'\n" +
		"  + db = <block of 2>\n" +
		"  + log.level = 'warn'\n" +
		"Review the added fields and adjust their values.\n"

	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("writeReport() mismatch (-want +got):\n%s", diff)
	}

	buf.Reset()

	empty, err := schema.Diff(node, load("a = 1\nname = 'y'\nclass db:\n    pass\nclass log:\n    level = 'info'\n"))
	if err != nil {
		t.Fatalf("Diff() error = %v", err)
	}

	if err := writeReport(&buf, &config.Change{Path: "app.pyi", Missing: empty}); err != nil {
		t.Fatalf("writeReport() error = %v", err)
	}

	// db exists, so only its members are missing.
	if got := buf.String(); got == "" {
		t.Errorf("writeReport() = empty, want the members of db")
	}
}

func TestFlagValue(t *testing.T) {
	tests := []struct {
		name   string
		in     any
		want   value.Value
		wantOK bool
	}{
		{name: "true", in: true, want: value.Int(1), wantOK: true},
		{name: "false", in: false, want: value.Int(0), wantOK: true},
		{name: "string", in: "warn", want: value.String("warn"), wantOK: true},
		{name: "int", in: 3, want: value.Int(3), wantOK: true},
		{name: "empty", in: ""},
		{name: "nil", in: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := flagValue(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("flagValue(%v) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}

			if got != tt.want {
				t.Errorf("flagValue(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
