package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/litcfg/format"
	"github.com/ardnew/litcfg/lang"
	"github.com/ardnew/litcfg/query"
	"github.com/ardnew/litcfg/value"
)

// Get prints the value bound at a dotted path.
type Get struct {
	Source

	Path string `arg:""           help:"Dotted path of the value, such as server.port." name:"path"`
	Raw  bool   `help:"Print strings without quotes." short:"r"`
}

// Run executes the get command.
func (g *Get) Run(ctx context.Context) error {
	ns, err := g.namespace(ctx)
	if err != nil {
		return fail(err, "get", slog.String("file", g.File))
	}

	v, err := query.Lookup(ns, g.Path)
	if err != nil {
		return fail(err, "get", slog.String("path", g.Path))
	}

	text, err := g.text(ctx, v)
	if err != nil {
		return fail(err, "get", slog.String("path", g.Path))
	}

	if _, err := fmt.Fprintln(stdout(ctx), text); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}

// text spells v as a literal. A block is spelled as the statements of its
// body.
func (g *Get) text(ctx context.Context, v value.Value) (string, error) {
	switch x := v.(type) {
	case value.String:
		if g.Raw {
			return string(x), nil
		}

	case *value.Namespace:
		out, err := format.Encode(ctx, format.Native{}, x)
		if err != nil {
			return "", err
		}

		return trimNewline(out), nil
	}

	return lang.Literal(v)
}

func trimNewline(s string) string {
	if n := len(s); n > 0 && s[n-1] == '\n' {
		return s[:n-1]
	}

	return s
}
