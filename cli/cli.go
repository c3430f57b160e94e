package cli

import (
	"context"
	"iter"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/litcfg/cli/cmd"
	"github.com/ardnew/litcfg/pkg"
)

// CLI is the top-level command-line interface for litcfg.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Load   cmd.Load   `cmd:"" help:"Print a configuration file in any supported format."`
	Get    cmd.Get    `cmd:"" help:"Print one value by dotted path."`
	Eval   cmd.Eval   `cmd:"" help:"Evaluate a read-only expression over a configuration file."`
	Update cmd.Update `cmd:"" help:"Add the fields a template declares but a configuration file lacks."`
	Init   cmd.Init   `cmd:"" help:"Write the current flag values to the defaults file."`
	Repl   cmd.Repl   `cmd:"" help:"Evaluate expressions interactively over a configuration file."`

	Version cmd.Version `cmd:"" help:"Print version information."`
}

// Run executes the litcfg CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	configFilePath := configPath(baseConfig + configExt)

	vars := kong.Vars{
		cmd.ConfigIdentifier:  configFilePath,
		cmd.FormatsIdentifier: cmd.Formats(),
		cmd.CacheIdentifier:   cachePath(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags so that errors reported while kong parses
	// are already formatted as requested.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configPath(baseConfig+".json")),
		kong.Configuration(resolve(ctx, baseConfig), configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	defer cli.Log.start(ctx)()

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}

func join(seq iter.Seq[string]) string {
	return strings.Join(slices.Collect(seq), ",")
}
