// Package config keeps a configuration file in step with the Go struct
// that holds it.
//
// [Load] reflects the struct into a schema, adds any field the file lacks
// with the struct's own values as defaults, writes the file back if it
// changed and decodes the result into the struct:
//
//	cfg := Settings{Port: 8080}
//
//	err := config.Load(ctx, "/etc/svc/settings.pyi", &cfg)
//	if errors.Is(err, config.ErrFieldsMissing) {
//		// cfg is usable; the file gained fields the user should review.
//	}
//
// The file format follows the path's extension; see package format.
// Files are accessed through an afero.Fs, the host filesystem by default.
// Concurrent writers to the same file are not coordinated.
package config
