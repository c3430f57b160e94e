package cmd

import (
	"context"
	"fmt"

	"github.com/ardnew/litcfg/pkg"
)

// Version prints the program name and version.
type Version struct{}

// Run executes the version command.
func (Version) Run(ctx context.Context) error {
	if _, err := fmt.Fprintln(stdout(ctx), pkg.Name, pkg.Version); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
