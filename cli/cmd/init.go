package cmd

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/litcfg/config"
	"github.com/ardnew/litcfg/format"
	"github.com/ardnew/litcfg/log"
	"github.com/ardnew/litcfg/profile"
	"github.com/ardnew/litcfg/schema"
	"github.com/ardnew/litcfg/value"
)

// configBlock is the block of the defaults file holding flag values.
const configBlock = "config"

// Init writes the current flag values to the defaults file. Flags the file
// already sets are left alone unless --force replaces the whole file.
type Init struct {
	Force bool `help:"Replace the defaults file instead of adding to it." short:"F"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) error {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		panic("internal error: kong context undefined")
	}

	path, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: defaults file path undefined")
	}

	if i.Force {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return ErrWriteConfig.Wrap(err).With(slog.String("path", path))
		}
	}

	node, err := schema.FromNamespace(flagNamespace(ktx))
	if err != nil {
		return fail(err, "init")
	}

	change, err := config.Update(ctx, path, node,
		config.WithFormat(format.Native{}),
		config.WithLogger(log.Default()),
	)
	if err != nil {
		return ErrWriteConfig.Wrap(err).With(slog.String("path", path))
	}

	log.DebugContext(ctx, "initialized defaults file",
		slog.String("path", path),
		slog.Int("added", change.Missing.Len()),
	)

	if err := writeReport(stderr(ctx), change); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}

// flagNamespace binds the value of every visible root flag in a
// [configBlock] block, spelling hyphens as underscores.
func flagNamespace(ktx *kong.Context) *value.Namespace {
	b := value.NewNamespaceBuilder()
	block := b.Block(configBlock)

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || flag.Name == "help" ||
			strings.HasPrefix(flag.Name, profile.Tag+"-") {
			continue
		}

		v, ok := flagValue(ktx.FlagValue(flag))
		if !ok {
			continue
		}

		block.Set(strings.ReplaceAll(flag.Name, "-", "_"), v)
	}

	return b.Build()
}

// flagValue converts a parsed flag value to a dialect value. Booleans
// become 1 and 0; empty strings and values without a spelling are
// skipped.
func flagValue(x any) (value.Value, bool) {
	v, err := value.FromNative(x)
	if err != nil {
		return nil, false
	}

	if s, ok := v.(value.String); ok && s == "" {
		return nil, false
	}

	return v, true
}
