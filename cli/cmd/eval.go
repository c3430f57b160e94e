package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/litcfg/query"
)

// Eval evaluates a read-only expression over a configuration file.
type Eval struct {
	Source

	Expr string `arg:"" help:"Expression over the file's names, such as 'len(hosts)'." name:"expr"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) error {
	ns, err := e.namespace(ctx)
	if err != nil {
		return fail(err, "eval", slog.String("file", e.File))
	}

	result, err := query.Eval(ctx, ns, e.Expr)
	if err != nil {
		return fail(err, "eval", slog.String("expr", e.Expr))
	}

	text, err := query.Text(result)
	if err != nil {
		return fail(err, "eval", slog.String("expr", e.Expr))
	}

	if _, err := fmt.Fprintln(stdout(ctx), text); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
