package cli

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/litcfg/lang"
	"github.com/ardnew/litcfg/log"
	"github.com/ardnew/litcfg/query"
	"github.com/ardnew/litcfg/value"
)

// resolve returns a [kong.ConfigurationLoader] that reads flag defaults from
// the block called name in a dialect file.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(ctx, "config"), "/path/to/config.pyi")
//
// Flag names with hyphens (e.g., "log-level") are spelled with underscores
// in the file (e.g., "log_level"). The dialect has no booleans, so boolean
// flags take 1 and 0:
//
//	class config:
//	    log_level = 'debug'
//	    log_format = 'json'
//	    log_pretty = 0
//
// Command-line flags override values from the file. A file that does not
// load, or lacks the block, contributes nothing.
func resolve(ctx context.Context, name string) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		src, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}

		ns, err := lang.Load(ctx, string(src))
		if err != nil {
			log.WarnContext(ctx, "ignoring flag defaults",
				slog.String("block", name),
				slog.Any("error", err),
			)

			return config{}, nil
		}

		block, ok := ns.Block(name)
		if !ok {
			return config{}, nil
		}

		return newConfig(block), nil
	}
}

// config implements [kong.Resolver] for one block of a dialect file.
type config map[string]any

func newConfig(ns *value.Namespace) config {
	c := make(config, ns.Len())

	for name, v := range ns.All() {
		c[name] = flagValue(v)
	}

	return c
}

// flagValue converts v to what kong decodes flags from. Numbers become
// strings, as kong parses them from text.
func flagValue(v value.Value) any {
	switch x := v.(type) {
	case value.Int:
		return strconv.FormatInt(int64(x), 10)

	case value.Float:
		return strconv.FormatFloat(float64(x), 'f', -1, 64)

	case value.String:
		return string(x)
	}

	return value.Native(v)
}

// Validate implements [kong.Resolver]. Names that match no flag are
// reported with the closest flag names but do not fail the run.
func (r config) Validate(app *kong.Application) error {
	var known []string

	for _, group := range app.AllFlags(true) {
		for _, flag := range group {
			known = append(known, flag.Name)
		}
	}

	for name := range r {
		flag := strings.ReplaceAll(name, "_", "-")
		if slices.Contains(known, flag) {
			continue
		}

		log.Warn("unknown flag in defaults file",
			slog.String("name", name),
			slog.Any("suggestions", query.Suggest(flag, known)),
		)
	}

	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if v, ok := r[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return v, nil
	}

	if v, ok := r[flag.Name]; ok {
		return v, nil
	}

	return nil, nil //nolint:nilnil
}
