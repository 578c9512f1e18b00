package cli

import (
	"strings"

	"github.com/fieldquery/fieldquery/internal/lexer"
	"github.com/fieldquery/fieldquery/options"
	"github.com/fieldquery/fieldquery/pkg/log"
	"github.com/urfave/cli/v2"
)

const (
	EnvVarPrefix = "FIELDQUERY_"

	FlagNameConfig       = "config"
	FlagNameProfile      = "profile"
	FlagNameDefaultField = "default-field"
	FlagNameMaxNesting   = "max-nesting"
	FlagNameMaxValues    = "max-values"
	FlagNameMaxGroups    = "max-groups"
	FlagNameLogLevel     = "log-level"
	FlagNameLogFormat    = "log-format"
	FlagNameNoColor      = "no-color"

	FlagNameTelemetryTraceExporter             = "telemetry-trace-exporter"
	FlagNameTelemetryTraceExporterHTTPEndpoint = "telemetry-trace-exporter-http-endpoint"
	FlagNameTelemetryTraceExporterInsecure     = "telemetry-trace-exporter-insecure-endpoint"
	FlagNameTelemetryMetricExporter            = "telemetry-metric-exporter"
	FlagNameTelemetryMetricExporterInsecure    = "telemetry-metric-exporter-insecure-endpoint"

	// EnvVarTraceParent continues a trace started by the caller.
	EnvVarTraceParent = "TRACEPARENT"
)

func envVars(name string) []string {
	return []string{EnvVarPrefix + envName(name)}
}

func envName(flagName string) string {
	return strings.ToUpper(strings.ReplaceAll(flagName, "-", "_"))
}

// NewGlobalFlags returns the flags shared by every command.
func NewGlobalFlags(opts *options.QueryOptions) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        FlagNameConfig,
			EnvVars:     envVars(FlagNameConfig),
			Destination: &opts.ConfigPath,
			Usage:       "Path to the field set configuration. Default is " + options.DefaultConfigPath + " in the working directory.",
		},
		&cli.StringFlag{
			Name:        FlagNameProfile,
			EnvVars:     envVars(FlagNameProfile),
			Destination: &opts.Profile,
			Usage:       "Lexer profile, overrides the config file. Supported values: " + lexer.DefaultProfile.String() + ", " + lexer.LegacyProfile.String() + ".",
		},
		&cli.StringFlag{
			Name:        FlagNameDefaultField,
			EnvVars:     envVars(FlagNameDefaultField),
			Destination: &opts.DefaultField,
			Usage:       "Field receiving values listed without a field name, overrides the config file.",
		},
		&cli.IntFlag{
			Name:        FlagNameMaxNesting,
			EnvVars:     envVars(FlagNameMaxNesting),
			Destination: &opts.Limits.MaxNesting,
			Usage:       "Maximum group nesting, the root group counts as level 1.",
		},
		&cli.IntFlag{
			Name:        FlagNameMaxValues,
			EnvVars:     envVars(FlagNameMaxValues),
			Destination: &opts.Limits.MaxValues,
			Usage:       "Maximum number of values per field statement.",
		},
		&cli.IntFlag{
			Name:        FlagNameMaxGroups,
			EnvVars:     envVars(FlagNameMaxGroups),
			Destination: &opts.Limits.MaxGroups,
			Usage:       "Maximum number of subgroups per group.",
		},
		&cli.GenericFlag{
			Name:    FlagNameLogLevel,
			EnvVars: envVars(FlagNameLogLevel),
			Value:   &opts.LogLevel,
			Usage:   "Log level. Supported values: " + log.AllLevels.String() + ".",
		},
		&cli.StringFlag{
			Name:        FlagNameLogFormat,
			EnvVars:     envVars(FlagNameLogFormat),
			Destination: &opts.LogFormat,
			Value:       opts.LogFormat,
			Usage:       "Log format. Supported values: " + log.PrettyFormat + ", " + log.JSONFormat + ", " + log.BareFormat + ".",
		},
		&cli.BoolFlag{
			Name:        FlagNameNoColor,
			EnvVars:     envVars(FlagNameNoColor),
			Destination: &opts.DisableColor,
			Usage:       "Disable coloured output.",
		},
		&cli.StringFlag{
			Name:        FlagNameTelemetryTraceExporter,
			EnvVars:     envVars(FlagNameTelemetryTraceExporter),
			Destination: &opts.Telemetry.TraceExporter,
			Usage:       "Trace exporter: none, console, otlpHttp, otlpGrpc or http.",
		},
		&cli.StringFlag{
			Name:        FlagNameTelemetryTraceExporterHTTPEndpoint,
			EnvVars:     envVars(FlagNameTelemetryTraceExporterHTTPEndpoint),
			Destination: &opts.Telemetry.TraceExporterHTTPEndpoint,
			Usage:       "Endpoint of the http trace exporter.",
		},
		&cli.BoolFlag{
			Name:        FlagNameTelemetryTraceExporterInsecure,
			EnvVars:     envVars(FlagNameTelemetryTraceExporterInsecure),
			Destination: &opts.Telemetry.TraceExporterInsecureEndpoint,
			Usage:       "Send traces over plain HTTP.",
		},
		&cli.StringFlag{
			Name:        FlagNameTelemetryMetricExporter,
			EnvVars:     envVars(FlagNameTelemetryMetricExporter),
			Destination: &opts.Telemetry.MetricExporter,
			Usage:       "Metric exporter: none, console, otlpHttp or otlpGrpc.",
		},
		&cli.BoolFlag{
			Name:        FlagNameTelemetryMetricExporterInsecure,
			EnvVars:     envVars(FlagNameTelemetryMetricExporterInsecure),
			Destination: &opts.Telemetry.MetricExporterInsecureEndpoint,
			Usage:       "Send metrics over plain HTTP.",
		},
	}
}
