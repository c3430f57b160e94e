// Package cmd implements the litcfg subcommands.
package cmd

//nolint:gochecknoglobals
var (
	// ConfigIdentifier is the kong variable identifier containing the path
	// of the flag defaults file.
	ConfigIdentifier = "config"

	// FormatsIdentifier is the kong variable identifier containing the
	// comma-separated names of every configuration format.
	FormatsIdentifier = "formats"

	// CacheIdentifier is the kong variable identifier containing the user
	// cache directory, where the REPL keeps its history.
	CacheIdentifier = "cache"
)
