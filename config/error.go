package config

import (
	"log/slog"
	"strings"

	"github.com/ardnew/litcfg/pkg"
	"github.com/ardnew/litcfg/schema"
)

// Errors returned by file operations.
var (
	// ErrFieldsMissing is matched by a *[MissingFieldsError].
	ErrFieldsMissing = pkg.NewError("configuration fields missing")

	// ErrReadFile is returned when a configuration file cannot be read.
	ErrReadFile = pkg.NewError("cannot read configuration file")

	// ErrWriteFile is returned when a configuration file cannot be written.
	ErrWriteFile = pkg.NewError("cannot write configuration file")
)

// MissingFieldsError reports the fields [Load] added to a file. The target
// struct is fully populated when it is returned.
type MissingFieldsError struct {
	Path    string          // file that was updated
	Fields  []string        // dotted path of each addition
	Missing *schema.Missing // the additions themselves
}

func (e *MissingFieldsError) Error() string {
	return ErrFieldsMissing.Error() + " in " + e.Path + ": " +
		strings.Join(e.Fields, ", ")
}

// Unwrap returns [ErrFieldsMissing].
func (e *MissingFieldsError) Unwrap() error { return ErrFieldsMissing }

// LogValue implements slog.LogValuer.
func (e *MissingFieldsError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", ErrFieldsMissing.Error()),
		slog.String("path", e.Path),
		slog.Any("fields", e.Fields),
	)
}
