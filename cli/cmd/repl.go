package cmd

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/ardnew/litcfg/cli/cmd/repl"
	"github.com/ardnew/litcfg/log"
)

// Repl starts an interactive prompt that evaluates expressions over a
// configuration file.
type Repl struct {
	Source

	NoHistory bool `help:"Do not read or write the history file." name:"no-history"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	if r.File == stdinSource {
		return fail(ErrInteractiveStdin, "repl")
	}

	ns, err := r.namespace(ctx)
	if err != nil {
		return fail(err, "repl", slog.String("file", r.File))
	}

	history := repl.NewHistory(afero.NewOsFs(), r.historyPath(ctx))

	if err := repl.Run(ctx, ns, history, log.Default()); err != nil {
		return fail(err, "repl")
	}

	return nil
}

// historyPath returns the history file in the cache directory, or "" to
// keep history in memory.
func (r *Repl) historyPath(ctx context.Context) string {
	if r.NoHistory {
		return ""
	}

	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ""
	}

	dir, ok := ktx.Model.Vars()[CacheIdentifier]
	if !ok || dir == "" {
		return ""
	}

	return filepath.Join(dir, repl.HistoryFile)
}
