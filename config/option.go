package config

import (
	"io/fs"

	"github.com/spf13/afero"

	"github.com/ardnew/litcfg/format"
	"github.com/ardnew/litcfg/lang"
	"github.com/ardnew/litcfg/log"
)

// Permissions used for files and directories created by [Load].
const (
	DefaultFileMode fs.FileMode = 0o644
	DefaultDirMode  fs.FileMode = 0o755
)

// Option configures file access.
type Option func(*options)

type options struct {
	fs     afero.Fs
	format format.Format
	logger log.Logger
	mode   fs.FileMode
	dryRun bool
}

func makeOptions(path string, opts ...Option) options {
	o := options{
		fs:   afero.NewOsFs(),
		mode: DefaultFileMode,
	}

	for _, opt := range opts {
		opt(&o)
	}

	if o.format == nil {
		o.format = format.ForPath(path)
	}

	if n, ok := o.format.(format.Native); ok {
		n.Options = append(n.Options[:len(n.Options):len(n.Options)], lang.WithLogger(o.logger))
		o.format = n
	}

	return o
}

// WithFs sets the filesystem files are read from and written to.
func WithFs(fsys afero.Fs) Option {
	return func(o *options) {
		if fsys != nil {
			o.fs = fsys
		}
	}
}

// WithFormat sets the file format instead of choosing it by extension.
func WithFormat(f format.Format) Option {
	return func(o *options) { o.format = f }
}

// WithLogger sets the logger for trace and debug output.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithFileMode sets the permissions of newly created files. Existing files
// keep their own.
func WithFileMode(mode fs.FileMode) Option {
	return func(o *options) { o.mode = mode.Perm() }
}

// WithDryRun computes updates without writing them.
func WithDryRun(enable bool) Option {
	return func(o *options) { o.dryRun = enable }
}
