package format

import (
	"context"
	"log/slog"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ardnew/litcfg/pkg"
	"github.com/ardnew/litcfg/schema"
	"github.com/ardnew/litcfg/value"
)

// ErrUnknownFormat is returned by [ByName] for a name no format answers to.
var ErrUnknownFormat = pkg.NewError("unknown configuration format")

// Format reads and extends one configuration syntax.
type Format interface {
	// Name returns the short name used by [ByName].
	Name() string

	// Parse evaluates src into a namespace tree.
	Parse(ctx context.Context, src string) (*value.Namespace, error)

	// Update adds every name node declares but src lacks and returns the
	// new text with what was added. If nothing is missing, src is returned
	// unchanged.
	Update(ctx context.Context, src string, node *schema.Node) (string, *schema.Missing, error)
}

// Encoder is implemented by formats that can spell any namespace directly.
type Encoder interface {
	Encode(ctx context.Context, ns *value.Namespace) (string, error)
}

//nolint:gochecknoglobals
var (
	byName = map[string]Format{
		Native{}.Name(): Native{},
		JSON{}.Name():   JSON{},
		YAML{}.Name():   YAML{},
		INI{}.Name():    INI{},
		Env{}.Name():    Env{},
	}

	byExt = map[string]Format{
		".pyi":  Native{},
		".py":   Native{},
		".cfg":  Native{},
		".conf": Native{},
		".json": JSON{},
		".yaml": YAML{},
		".yml":  YAML{},
		".ini":  INI{},
		".env":  Env{},
	}
)

// ForPath returns the format for a file by its extension. Dotenv files
// such as ".env.local" are recognized by name. Files with any other
// extension use the native dialect.
func ForPath(path string) Format {
	if f, ok := byExt[strings.ToLower(filepath.Ext(path))]; ok {
		return f
	}

	if strings.HasPrefix(filepath.Base(path), ".env.") {
		return Env{}
	}

	return Native{}
}

// ByName returns the format with the given name.
func ByName(name string) (Format, error) {
	if f, ok := byName[strings.ToLower(name)]; ok {
		return f, nil
	}

	return nil, ErrUnknownFormat.With(
		slog.String("name", name),
		slog.Any("known", Names()),
	)
}

// Names returns the names of every format in sorted order.
func Names() []string {
	return slices.Sorted(maps.Keys(byName))
}

// Encode spells ns in format f. Formats that do not implement [Encoder]
// render ns as an update of an empty document.
func Encode(ctx context.Context, f Format, ns *value.Namespace) (string, error) {
	if e, ok := f.(Encoder); ok {
		return e.Encode(ctx, ns)
	}

	node, err := schema.FromNamespace(ns)
	if err != nil {
		return "", err
	}

	out, _, err := f.Update(ctx, "", node)

	return out, err
}
