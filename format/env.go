package format

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/joho/godotenv"

	"github.com/ardnew/litcfg/pkg"
	"github.com/ardnew/litcfg/schema"
	"github.com/ardnew/litcfg/value"
)

// Env reads dotenv files of NAME=value lines. Every name binds a string
// at the top level; there are no blocks.
type Env struct{}

// Name returns "env".
func (Env) Name() string { return "env" }

// Parse evaluates src. Names are bound in sorted order.
func (Env) Parse(_ context.Context, src string) (*value.Namespace, error) {
	vars, err := godotenv.Unmarshal(src)
	if err != nil {
		return nil, pkg.ErrSyntax.Wrap(err).With(slog.String("format", "env"))
	}

	b := value.NewNamespaceBuilder()
	for _, name := range slices.Sorted(maps.Keys(vars)) {
		b.Set(name, value.String(vars[name]))
	}

	return b.Build(), nil
}

// Update appends a line for each name src lacks, separated from the
// existing text by a blank line.
func (f Env) Update(
	ctx context.Context,
	src string,
	node *schema.Node,
) (string, *schema.Missing, error) {
	ns, err := f.Parse(ctx, src)
	if err != nil {
		return "", nil, err
	}

	missing, err := schema.Diff(node, ns)
	if err != nil {
		return "", nil, err
	}

	if missing.Empty() {
		return src, missing, nil
	}

	if len(missing.Children()) > 0 {
		return "", nil, pkg.ErrTooDeep.With(slog.Any("path", missing.Children()[0].Path()))
	}

	lines := make([]string, 0, len(missing.Additions()))

	for _, a := range missing.Additions() {
		if _, ok := a.Value.(*value.Namespace); ok {
			return "", nil, pkg.ErrTooDeep.With(slog.String("name", a.Name))
		}

		text, err := scalarText(a.Value)
		if err != nil {
			return "", nil, err
		}

		line, err := godotenv.Marshal(map[string]string{a.Name: text})
		if err != nil {
			return "", nil, pkg.ErrUnrepresentable.Wrap(err).With(slog.String("name", a.Name))
		}

		lines = append(lines, line)
	}

	out := strings.Join(lines, "\n") + "\n"
	if body := strings.TrimRight(src, "\r\n"); strings.TrimSpace(body) != "" {
		out = body + "\n\n" + out
	}

	return out, missing, nil
}
