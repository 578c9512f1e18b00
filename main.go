package main

import (
	"context"
	"os"

	"github.com/fieldquery/fieldquery/cli"
	"github.com/fieldquery/fieldquery/internal/errors"
	"github.com/fieldquery/fieldquery/options"
	"github.com/fieldquery/fieldquery/pkg/log"
	urfavecli "github.com/urfave/cli/v2"
)

// The main entrypoint for fieldquery
func main() {
	opts := options.NewQueryOptions()

	defer errors.Recover(checkForErrorsAndExit(opts))

	app := cli.NewApp(opts)

	ctx := log.ContextWithLogger(context.Background(), opts.Logger)
	err := app.RunContext(ctx, os.Args)

	checkForErrorsAndExit(opts)(err)
}

// If there is an error, display it in the console and exit with a non-zero exit code. Otherwise, exit 0.
func checkForErrorsAndExit(opts *options.QueryOptions) func(error) {
	return func(err error) {
		if err == nil {
			os.Exit(0)
		}

		// The logger is replaced once flags are parsed.
		logger := opts.Logger

		if msg := err.Error(); msg != "" {
			logger.Error(msg)
		}

		if errStack := errors.ErrorStack(err); errStack != "" {
			logger.Trace(errStack)
		}

		var exitCoder urfavecli.ExitCoder
		if errors.As(err, &exitCoder) {
			os.Exit(exitCoder.ExitCode())
		}

		os.Exit(1)
	}
}
