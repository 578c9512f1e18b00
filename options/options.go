// Package options provides the runtime options shared by the fieldquery commands.
package options

import (
	"context"
	"io"
	"os"
	"runtime"

	"github.com/fieldquery/fieldquery/internal/input"
	"github.com/fieldquery/fieldquery/pkg/log"
	"github.com/fieldquery/fieldquery/telemetry"
)

const ContextKey ctxKey = iota

const (
	// DefaultConfigPath is looked up in the working directory when no config path is given.
	DefaultConfigPath = "fieldquery.hcl"

	// Output formats of the parse command.
	TextOutputFormat = "text"
	JSONOutputFormat = "json"

	defaultLogLevel = log.InfoLevel
)

type ctxKey byte

// QueryOptions configure one run of the fieldquery program. Values set from flags take
// precedence over the config file, see config.LoadProcessorConfig.
type QueryOptions struct {
	Writer    io.Writer
	ErrWriter io.Writer
	Reader    io.Reader
	Logger    log.Logger
	Env       map[string]string
	Telemetry *telemetry.Options

	// ConfigPath points at the HCL field set definition. `~` is expanded.
	ConfigPath   string
	Profile      string
	DefaultField string
	LogFormat    string
	// InputFile is read by the check command; stdin when empty.
	InputFile string
	// WorkingDir is where DefaultConfigPath is looked up.
	WorkingDir string

	Limits      input.Limits
	Parallelism int
	LogLevel    log.Level

	DisableColor bool
}

// NewQueryOptions returns options writing to stdout and stderr.
func NewQueryOptions() *QueryOptions {
	return NewQueryOptionsWithWriters(os.Stdout, os.Stderr)
}

// NewQueryOptionsWithWriters returns options with reasonable defaults for the given writers.
func NewQueryOptionsWithWriters(stdout, stderr io.Writer) *QueryOptions {
	workingDir, err := os.Getwd()
	if err != nil {
		workingDir = "."
	}

	return &QueryOptions{
		Writer:      stdout,
		ErrWriter:   stderr,
		Reader:      os.Stdin,
		Logger:      log.New(log.WithOutput(stderr), log.WithLevel(defaultLogLevel)),
		Env:         map[string]string{},
		Telemetry:   &telemetry.Options{},
		WorkingDir:  workingDir,
		LogFormat:   log.PrettyFormat,
		LogLevel:    defaultLogLevel,
		Parallelism: runtime.NumCPU(),
	}
}

// OptionsFromContext tries to retrieve options from context, otherwise, returns its own instance.
func (opts *QueryOptions) OptionsFromContext(ctx context.Context) *QueryOptions {
	if val := ctx.Value(ContextKey); val != nil {
		if opts, ok := val.(*QueryOptions); ok {
			return opts
		}
	}

	return opts
}

// ContextWithOptions returns a context carrying opts.
func ContextWithOptions(ctx context.Context, opts *QueryOptions) context.Context {
	return context.WithValue(ctx, ContextKey, opts)
}
