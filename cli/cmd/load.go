package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/litcfg/format"
)

// Load prints a configuration file, converting it to another format.
type Load struct {
	Source

	Output string `default:"native" enum:"${formats}" help:"Output format." short:"o"`
}

// Run executes the load command.
func (l *Load) Run(ctx context.Context) error {
	ns, err := l.namespace(ctx)
	if err != nil {
		return fail(err, "load", slog.String("file", l.File))
	}

	f, err := format.ByName(l.Output)
	if err != nil {
		return fail(err, "load")
	}

	out, err := format.Encode(ctx, f, ns)
	if err != nil {
		return fail(err, "load", slog.String("output", l.Output))
	}

	if _, err := io.WriteString(stdout(ctx), out); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
