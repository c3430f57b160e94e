package config

import (
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/spf13/afero"

	"github.com/ardnew/litcfg/format"
	"github.com/ardnew/litcfg/pkg"
	"github.com/ardnew/litcfg/schema"
	"github.com/ardnew/litcfg/value"
)

type database struct {
	Host string `cfg:"host"`
	Port int    `cfg:"port"`
}

type settings struct {
	Name  string   `cfg:"name"`
	Port  int      `cfg:"port"`
	Hosts []string `cfg:"hosts"`
	DB    database `cfg:"db"`
}

func defaults() settings {
	return settings{
		Name: "api",
		Port: 8080,
		DB:   database{Host: "localhost", Port: 5432},
	}
}

func readFile(t *testing.T, fsys afero.Fs, path string) string {
	t.Helper()

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		t.Fatalf("ReadFile(%s) error = %v", path, err)
	}

	return string(data)
}

func TestLoad_CreatesFile(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	path := "/etc/svc/settings.pyi"

	got := defaults()

	err := Load(t.Context(), path, &got, WithFs(fsys))

	var mf *MissingFieldsError
	if !errors.As(err, &mf) || !errors.Is(err, ErrFieldsMissing) {
		t.Fatalf("Load() error = %v, want %v", err, ErrFieldsMissing)
	}

	if diff := cmp.Diff([]string{"name", "port", "hosts", "db"}, mf.Fields); diff != "" {
		t.Errorf("Fields mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(defaults(), got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}

	const want = "name = 'api'\nport = 8080\nhosts = []\nclass db:\n" +
		"    host = 'localhost'\n    port = 5432\n"

	if text := readFile(t, fsys, path); text != want {
		t.Errorf("file =\n%s\nwant\n%s", text, want)
	}

	again := defaults()
	if err := Load(t.Context(), path, &again, WithFs(fsys)); err != nil {
		t.Errorf("second Load() error = %v", err)
	}

	if text := readFile(t, fsys, path); text != want {
		t.Errorf("second Load() changed the file:\n%s", text)
	}
}

func TestLoad_ExistingFile(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	path := "settings.pyi"

	const src = "# service settings\n\nport = 9090  # public\nclass db:\n    host = 'db.internal'\n"

	if err := afero.WriteFile(fsys, path, []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}

	got := defaults()

	err := Load(t.Context(), path, &got, WithFs(fsys))
	if !errors.Is(err, ErrFieldsMissing) {
		t.Fatalf("Load() error = %v, want %v", err, ErrFieldsMissing)
	}

	var mf *MissingFieldsError
	if errors.As(err, &mf) {
		if diff := cmp.Diff([]string{"name", "hosts", "db.port"}, mf.Fields); diff != "" {
			t.Errorf("Fields mismatch (-want +got):\n%s", diff)
		}
	}

	want := settings{
		Name: "api",
		Port: 9090,
		DB:   database{Host: "db.internal", Port: 5432},
	}

	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}

	text := readFile(t, fsys, path)

	const wantText = "# service settings\n\nname = 'api'\nhosts = []\nport = 9090  # public\n" +
		"class db:\n    port = 5432\n    host = 'db.internal'\n"

	if text != wantText {
		t.Errorf("file =\n%s\nwant\n%s", text, wantText)
	}

	fi, err := fsys.Stat(path)
	if err != nil {
		t.Fatal(err)
	}

	if fi.Mode().Perm() != 0o600 {
		t.Errorf("file mode = %v, want %v", fi.Mode().Perm(), fs.FileMode(0o600))
	}
}

func TestLoad_Formats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		opts []Option
	}{
		{path: "settings.json"},
		{path: "settings.yaml"},
		{path: "settings", opts: []Option{WithFormat(format.YAML{})}},
		{path: "settings.pyi", opts: []Option{WithFormat(format.JSON{})}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			fsys := afero.NewMemMapFs()
			opts := append([]Option{WithFs(fsys)}, tt.opts...)

			got := defaults()
			if err := Load(t.Context(), tt.path, &got, opts...); !errors.Is(err, ErrFieldsMissing) {
				t.Fatalf("Load() error = %v, want %v", err, ErrFieldsMissing)
			}

			if diff := cmp.Diff(defaults(), got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Load() mismatch (-want +got):\n%s", diff)
			}

			again := settings{}
			if err := Load(t.Context(), tt.path, &again, opts...); err != nil {
				t.Fatalf("second Load() error = %v", err)
			}

			if diff := cmp.Diff(defaults(), again, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("second Load() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	t.Run("read only", func(t *testing.T) {
		t.Parallel()

		fsys := afero.NewReadOnlyFs(afero.NewMemMapFs())

		got := defaults()
		if err := Load(t.Context(), "a/b.pyi", &got, WithFs(fsys)); !errors.Is(err, ErrWriteFile) {
			t.Errorf("Load() error = %v, want %v", err, ErrWriteFile)
		}
	})

	t.Run("syntax", func(t *testing.T) {
		t.Parallel()

		fsys := afero.NewMemMapFs()
		if err := afero.WriteFile(fsys, "bad.pyi", []byte("port = = 1\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		got := defaults()
		if err := Load(t.Context(), "bad.pyi", &got, WithFs(fsys)); !errors.Is(err, pkg.ErrSyntax) {
			t.Errorf("Load() error = %v, want %v", err, pkg.ErrSyntax)
		}

		if text := readFile(t, fsys, "bad.pyi"); text != "port = = 1\n" {
			t.Errorf("Load() rewrote a malformed file:\n%s", text)
		}
	})

	t.Run("not a struct", func(t *testing.T) {
		t.Parallel()

		n := 1
		if err := Load(t.Context(), "x.pyi", &n, WithFs(afero.NewMemMapFs())); !errors.Is(err, schema.ErrUnsupportedType) {
			t.Errorf("Load() error = %v, want %v", err, schema.ErrUnsupportedType)
		}
	})

	t.Run("decode", func(t *testing.T) {
		t.Parallel()

		fsys := afero.NewMemMapFs()
		if err := afero.WriteFile(fsys, "s.pyi", []byte("port = 'eighty'\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		got := defaults()
		if err := Load(t.Context(), "s.pyi", &got, WithFs(fsys)); !errors.Is(err, schema.ErrDecode) {
			t.Errorf("Load() error = %v, want %v", err, schema.ErrDecode)
		}
	})
}

func TestUpdate_DryRun(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	node := schema.MustNew(schema.Value("a", value.KindInt, schema.Fixed(value.Int(1))))

	c, err := Update(t.Context(), "x/y.pyi", node, WithFs(fsys), WithDryRun(true))
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if !c.Changed() || c.Written || c.After != "a = 1\n" || c.Format != "native" {
		t.Errorf("Update() = %+v", c)
	}

	if ok, _ := afero.Exists(fsys, "x/y.pyi"); ok {
		t.Error("dry run wrote the file")
	}

	c, err = Update(t.Context(), "x/y.pyi", node, WithFs(fsys), WithFileMode(0o600))
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if !c.Written {
		t.Errorf("Update() did not write: %+v", c)
	}

	fi, err := fsys.Stat("x/y.pyi")
	if err != nil {
		t.Fatal(err)
	}

	if fi.Mode().Perm() != 0o600 {
		t.Errorf("file mode = %v, want %v", fi.Mode().Perm(), fs.FileMode(0o600))
	}
}

func TestRead(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()

	if _, err := Read(t.Context(), "none.pyi", WithFs(fsys)); !errors.Is(err, ErrReadFile) {
		t.Errorf("Read(absent) error = %v, want %v", err, ErrReadFile)
	}

	if err := afero.WriteFile(fsys, "s.env", []byte("PORT=1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ns, err := Read(t.Context(), "s.env", WithFs(fsys))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if v, _ := ns.Get("PORT"); !value.Equal(v, value.String("1")) {
		t.Errorf("Read() PORT = %v, want '1'", v)
	}
}

func TestMissingFieldsError(t *testing.T) {
	t.Parallel()

	err := &MissingFieldsError{Path: "s.pyi", Fields: []string{"a", "b.c"}}

	if got, want := err.Error(), "configuration fields missing in s.pyi: a, b.c"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	if !strings.Contains(err.LogValue().String(), "b.c") {
		t.Errorf("LogValue() = %v, want fields", err.LogValue())
	}
}
