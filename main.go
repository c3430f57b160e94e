package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/litcfg/cli"
	"github.com/ardnew/litcfg/log"
)

func main() {
	os.Exit(run())
}

func run() int {
	err := cli.Run(context.Background(), os.Exit, os.Args[1:]...)
	if err != nil {
		log.Error(
			"run failed",
			slog.Any("error", err),
		) // slog automatically uses LogValue()

		return 1
	}

	return 0
}
