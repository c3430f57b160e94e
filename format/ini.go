package format

import (
	"bytes"
	"context"
	"log/slog"

	"gopkg.in/ini.v1"

	"github.com/ardnew/litcfg/pkg"
	"github.com/ardnew/litcfg/schema"
	"github.com/ardnew/litcfg/value"
)

// INI reads documents of "key = value" lines grouped under "[section]"
// headers. Keys before the first header bind at the top level and every
// section is a block of strings. Sections do not nest.
type INI struct{}

// Name returns "ini".
func (INI) Name() string { return "ini" }

// Parse evaluates src.
func (INI) Parse(_ context.Context, src string) (*value.Namespace, error) {
	f, err := loadINI(src)
	if err != nil {
		return nil, err
	}

	return iniNamespace(f), nil
}

// Update adds the names src lacks: top-level fields to the default section,
// blocks as new sections and block fields to their sections. Existing keys
// and their comments are kept.
func (INI) Update(
	_ context.Context,
	src string,
	node *schema.Node,
) (string, *schema.Missing, error) {
	f, err := loadINI(src)
	if err != nil {
		return "", nil, err
	}

	missing, err := schema.Diff(node, iniNamespace(f))
	if err != nil {
		return "", nil, err
	}

	if missing.Empty() {
		return src, missing, nil
	}

	for _, a := range missing.Additions() {
		ns, ok := a.Value.(*value.Namespace)
		if !ok {
			if err := addKey(f.Section(ini.DefaultSection), a.Name, a.Value); err != nil {
				return "", nil, err
			}

			continue
		}

		sec, err := f.NewSection(a.Name)
		if err != nil {
			return "", nil, pkg.ErrUnrepresentable.Wrap(err).With(slog.String("name", a.Name))
		}

		for name, v := range ns.All() {
			if err := addKey(sec, name, v); err != nil {
				return "", nil, err
			}
		}
	}

	for _, child := range missing.Children() {
		sec := f.Section(child.Name())

		for _, a := range child.Additions() {
			if err := addKey(sec, a.Name, a.Value); err != nil {
				return "", nil, err
			}
		}

		if len(child.Children()) > 0 {
			return "", nil, pkg.ErrTooDeep.With(slog.Any("path", child.Children()[0].Path()))
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return "", nil, pkg.ErrUnrepresentable.Wrap(err)
	}

	return buf.String(), missing, nil
}

func loadINI(src string) (*ini.File, error) {
	f, err := ini.Load([]byte(src))
	if err != nil {
		return nil, pkg.ErrSyntax.Wrap(err).With(slog.String("format", "ini"))
	}

	return f, nil
}

func iniNamespace(f *ini.File) *value.Namespace {
	b := value.NewNamespaceBuilder()

	for _, sec := range f.Sections() {
		if sec.Name() == ini.DefaultSection {
			bindKeys(b, sec)

			continue
		}

		bindKeys(b.Block(sec.Name()), sec)
	}

	return b.Build()
}

func bindKeys(b *value.NamespaceBuilder, sec *ini.Section) {
	for _, k := range sec.Keys() {
		b.Set(k.Name(), value.String(k.Value()))
	}
}

func addKey(sec *ini.Section, name string, v value.Value) error {
	if _, ok := v.(*value.Namespace); ok {
		return pkg.ErrTooDeep.With(
			slog.String("section", sec.Name()),
			slog.String("name", name),
		)
	}

	text, err := scalarText(v)
	if err != nil {
		return err
	}

	if _, err := sec.NewKey(name, text); err != nil {
		return pkg.ErrUnrepresentable.Wrap(err).With(slog.String("name", name))
	}

	return nil
}
