// Package cli wires the fieldquery commands into a urfave/cli application.
package cli

import (
	"context"
	"os"

	"github.com/fieldquery/fieldquery/cli/commands/check"
	"github.com/fieldquery/fieldquery/cli/commands/format"
	"github.com/fieldquery/fieldquery/cli/commands/parse"
	"github.com/fieldquery/fieldquery/internal/errors"
	"github.com/fieldquery/fieldquery/options"
	"github.com/fieldquery/fieldquery/pkg/env"
	"github.com/fieldquery/fieldquery/pkg/log"
	"github.com/fieldquery/fieldquery/telemetry"
	"github.com/urfave/cli/v2"
)

const (
	AppName = "fieldquery"

	// Version is set at build time with -ldflags.
	defaultVersion = "dev"
)

// Version of the binary, overwritten by the release build.
var Version = defaultVersion

// App is the fieldquery CLI.
type App struct {
	*cli.App
	opts      *options.QueryOptions
	telemeter *telemetry.Telemeter
}

// NewApp creates the fieldquery CLI app.
func NewApp(opts *options.QueryOptions) *App {
	app := cli.NewApp()
	app.Name = AppName
	app.Usage = "Parse, validate and format search-condition queries."
	app.UsageText = AppName + " [global options] <command> [options] [QUERY]"
	app.Version = Version
	app.Writer = opts.Writer
	app.ErrWriter = opts.ErrWriter
	app.Reader = opts.Reader
	app.Flags = NewGlobalFlags(opts)
	app.Commands = []*cli.Command{
		parse.NewCommand(opts),
		check.NewCommand(opts),
		format.NewCommand(opts),
	}
	app.ExitErrHandler = func(*cli.Context, error) {}
	app.HideHelpCommand = true

	wrapped := &App{App: app, opts: opts}
	app.Before = wrapped.initialSetup

	return wrapped
}

// RunContext runs the app. Telemetry is initialised after flag parsing and flushed on return.
func (app *App) RunContext(ctx context.Context, args []string) (err error) {
	ctx = options.ContextWithOptions(ctx, app.opts)

	defer func() {
		if app.telemeter == nil {
			return
		}

		if shutdownErr := app.telemeter.Shutdown(context.WithoutCancel(ctx)); shutdownErr != nil && err == nil {
			err = shutdownErr
		}
	}()

	return app.App.RunContext(ctx, args)
}

func (app *App) initialSetup(cliCtx *cli.Context) error {
	opts := app.opts

	formatter, err := log.NewFormatter(opts.LogFormat, opts.ErrWriter, opts.DisableColor)
	if err != nil {
		return cli.Exit(err, 1)
	}

	opts.Logger = log.New(
		log.WithOutput(opts.ErrWriter),
		log.WithLevel(opts.LogLevel),
		log.WithFormatter(formatter),
	)

	if len(opts.Env) == 0 {
		opts.Env = env.ParseEnvs(os.Environ())
	}

	if opts.Telemetry.TraceParent == "" {
		opts.Telemetry.TraceParent = env.GetString(opts.Env, EnvVarTraceParent, "")
	}

	tlm, err := telemetry.NewTelemeter(cliCtx.Context, AppName, cliCtx.App.Version, opts.ErrWriter, opts.Telemetry)
	if err != nil {
		return cli.Exit(errors.Errorf("unable to set up telemetry: %w", err), 1)
	}

	app.telemeter = tlm
	opts.Logger.SetOptions(log.WithHooks(telemetry.NewLogHook(tlm)))
	cliCtx.Context = telemetry.ContextWithTelemeter(cliCtx.Context, tlm)
	cliCtx.Context = log.ContextWithLogger(cliCtx.Context, opts.Logger)

	opts.Logger.Debugf("%s version %s", AppName, cliCtx.App.Version)

	return nil
}
