package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/litcfg/config"
	"github.com/ardnew/litcfg/format"
	"github.com/ardnew/litcfg/log"
	"github.com/ardnew/litcfg/pkg"
	"github.com/ardnew/litcfg/value"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// stdout returns the writer for command output.
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// stderr returns the writer for reports addressed to the user.
func stderr(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stderr != nil {
		return ktx.Stderr
	}

	return os.Stderr
}

// Formats returns the names accepted by --format and --output.
func Formats() string {
	return strings.Join(format.Names(), ",")
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// Source is a configuration file named on the command line.
type Source struct {
	File   string `arg:""                                       help:"Configuration file or '-' for stdin." name:"file"`
	Format string `default:"" enum:",${formats}" help:"Format of FILE (default: by extension)." short:"f"`
}

// format returns the format named by --format, or nil to select one by
// extension.
func (s *Source) format() (format.Format, error) {
	if s.Format == "" {
		if s.File == stdinSource {
			return format.Native{}, nil
		}

		return nil, nil //nolint:nilnil
	}

	return format.ByName(s.Format)
}

// namespace reads and evaluates the source.
func (s *Source) namespace(ctx context.Context) (*value.Namespace, error) {
	f, err := s.format()
	if err != nil {
		return nil, err
	}

	if s.File == stdinSource {
		src, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, config.ErrReadFile.Wrap(err).With(slog.String("path", s.File))
		}

		return f.Parse(ctx, string(src))
	}

	opts := []config.Option{config.WithLogger(log.Default())}
	if f != nil {
		opts = append(opts, config.WithFormat(f))
	}

	return config.Read(ctx, s.File, opts...)
}

// fail attaches the command name and attrs to err. Errors that carry
// their own detail, such as a lookup miss with suggestions, are wrapped
// rather than reduced to the kind they match.
func fail(err error, command string, attrs ...slog.Attr) error {
	e, ok := err.(*pkg.Error)
	if !ok {
		e = ErrCommand.Wrap(err)
	}

	return e.With(append([]slog.Attr{slog.String("command", command)}, attrs...)...)
}
