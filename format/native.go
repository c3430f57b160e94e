package format

import (
	"context"

	"github.com/ardnew/litcfg/lang"
	"github.com/ardnew/litcfg/schema"
	"github.com/ardnew/litcfg/value"
)

// Native reads the literal-only configuration dialect. Updates insert the
// missing names without altering any existing text.
type Native struct {
	// Options are passed to every parse, load and rewrite.
	Options []lang.Option
}

// Name returns "native".
func (Native) Name() string { return "native" }

// Parse loads src with [lang.Load].
func (f Native) Parse(ctx context.Context, src string) (*value.Namespace, error) {
	return lang.Load(ctx, src, f.Options...)
}

// Update extends src with [lang.Update].
func (f Native) Update(
	ctx context.Context,
	src string,
	node *schema.Node,
) (string, *schema.Missing, error) {
	return lang.Update(ctx, src, node, f.Options...)
}
