package config

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/ardnew/litcfg/schema"
	"github.com/ardnew/litcfg/value"
)

// Change describes one update of a configuration file.
type Change struct {
	Path    string
	Format  string          // name of the file's format
	Before  string          // text read; empty if the file did not exist
	After   string          // text with every missing field added
	Missing *schema.Missing // what was added
	Written bool            // After was written to Path
}

// Changed reports whether the update added anything.
func (c *Change) Changed() bool { return c.Before != c.After }

// Read loads the file at path into a namespace. Unlike [Load], a file
// that does not exist is an error.
func Read(ctx context.Context, path string, opts ...Option) (*value.Namespace, error) {
	o := makeOptions(path, opts...)

	data, err := afero.ReadFile(o.fs, path)
	if err != nil {
		return nil, ErrReadFile.Wrap(err).With(slog.String("path", path))
	}

	return o.format.Parse(ctx, string(data))
}

// Update adds every name node declares but the file at path lacks, and
// writes the file back if that changed its text. A file that does not
// exist is treated as empty and created along with its parent directories.
func Update(ctx context.Context, path string, node *schema.Node, opts ...Option) (*Change, error) {
	return update(ctx, path, node, makeOptions(path, opts...))
}

func update(ctx context.Context, path string, node *schema.Node, o options) (*Change, error) {
	before, mode, err := read(o.fs, path, o.mode)
	if err != nil {
		return nil, err
	}

	after, missing, err := o.format.Update(ctx, before, node)
	if err != nil {
		return nil, err
	}

	c := &Change{
		Path:    path,
		Format:  o.format.Name(),
		Before:  before,
		After:   after,
		Missing: missing,
	}

	o.logger.TraceContext(ctx, "configuration compared",
		slog.String("path", path),
		slog.String("format", c.Format),
		slog.Int("missing", missing.Len()))

	if !c.Changed() || o.dryRun {
		return c, nil
	}

	if err := write(o.fs, path, after, mode); err != nil {
		return nil, err
	}

	c.Written = true

	o.logger.DebugContext(ctx, "configuration updated",
		slog.String("path", path),
		slog.Any("added", missing.Paths()))

	return c, nil
}

// Load reads the configuration file at path into out, a pointer to a
// struct, adding to the file every field it lacks.
//
// The schema is derived from out with [schema.Of], so the values out holds
// on entry are the defaults written for absent fields. After the file is
// updated it is parsed again and decoded into out. If any field was added,
// Load returns a *[MissingFieldsError] once out is fully populated.
func Load(ctx context.Context, path string, out any, opts ...Option) error {
	node, err := schema.Of(out)
	if err != nil {
		return err
	}

	o := makeOptions(path, opts...)

	c, err := update(ctx, path, node, o)
	if err != nil {
		return err
	}

	ns, err := o.format.Parse(ctx, c.After)
	if err != nil {
		return err
	}

	if err := schema.Decode(ns, out); err != nil {
		return err
	}

	if c.Missing.Empty() {
		return nil
	}

	return &MissingFieldsError{Path: path, Fields: c.Missing.Paths(), Missing: c.Missing}
}

// read returns the text of path and the mode to write it back with. A
// missing file reads as empty text with the default mode.
func read(fsys afero.Fs, path string, mode fs.FileMode) (string, fs.FileMode, error) {
	data, err := afero.ReadFile(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", mode, nil
	}

	if err != nil {
		return "", 0, ErrReadFile.Wrap(err).With(slog.String("path", path))
	}

	if fi, err := fsys.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}

	return string(data), mode, nil
}

func write(fsys afero.Fs, path, text string, mode fs.FileMode) error {
	if err := fsys.MkdirAll(filepath.Dir(path), DefaultDirMode); err != nil {
		return ErrWriteFile.Wrap(err).With(slog.String("path", path))
	}

	if err := afero.WriteFile(fsys, path, []byte(text), mode); err != nil {
		return ErrWriteFile.Wrap(err).With(slog.String("path", path))
	}

	return nil
}
