package cmd

import "github.com/ardnew/litcfg/pkg"

var (
	ErrCommand     = pkg.NewError("command failed")
	ErrWriteOutput = pkg.NewError("write output")
	ErrWriteConfig = pkg.NewError("write defaults file")

	ErrInteractiveStdin = pkg.NewError("standard input is reserved for the interactive prompt")
)
