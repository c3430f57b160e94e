package cli

import (
	"path/filepath"

	"github.com/ardnew/litcfg/pkg"
)

const (
	// baseConfig is the base name of the defaults file and the name of the
	// block inside it that holds flag values.
	baseConfig = "config"

	// configExt is the extension of the dialect defaults file.
	configExt = ".pyi"
)

// configPath returns the path formed by joining the user configuration
// directory with the given path elements.
//
// If no elements are given, it is equivalent to calling [pkg.ConfigDir].
func configPath(elem ...string) string {
	return filepath.Join(append([]string{pkg.ConfigDir()}, elem...)...)
}

// cachePath is [configPath] for the user cache directory.
func cachePath(elem ...string) string {
	return filepath.Join(append([]string{pkg.CacheDir()}, elem...)...)
}
