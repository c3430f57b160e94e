// Package cli contains the command line interface for litcfg.
//
// # Usage
//
//	litcfg load app.pyi --output json
//	litcfg get app.pyi server.port
//	litcfg eval app.pyi 'server.port + 1'
//	litcfg update app.pyi --template defaults.pyi --dry-run
//
// Every command that reads a configuration file picks its format by
// extension (see [format.ForPath]) unless --format names one. A file named
// "-" is read from stdin.
//
// # Flag Defaults
//
// Flag defaults are read from the "config" block of the dialect file
// config.pyi in the user configuration directory, for example
// $XDG_CONFIG_HOME/litcfg/config.pyi:
//
//	class config:
//	    log_level = 'debug'
//	    log_pretty = 0
//
// The init command writes that file from the current flag values. Flags
// given on the command line override the file.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, etc.)
//   - --[no-]log-caller: Include caller information in log output
//   - --[no-]log-pretty: Colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o litcfg .
//
// It is then controlled with:
//
//   - --pprof-mode: Enable profiling (see [profile.Modes])
//   - --pprof-dir: Set profile output directory
package cli
