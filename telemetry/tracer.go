package telemetry

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/fieldquery/fieldquery/internal/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	noneTraceExporterType     traceExporterType = "none"
	consoleTraceExporterType  traceExporterType = "console"
	otlpHTTPTraceExporterType traceExporterType = "otlpHttp"
	otlpGrpcTraceExporterType traceExporterType = "otlpGrpc"
	httpTraceExporterType     traceExporterType = "http"

	traceParentParts = 4
)

type traceExporterType string

// Tracer wraps an sdk tracer provider. A nil *Tracer runs functions untraced.
type Tracer struct {
	trace.Tracer
	provider *sdktrace.TracerProvider
	parent   *trace.SpanContext
}

// NewTracer returns nil, nil when tracing is disabled.
func NewTracer(ctx context.Context, appName, appVersion string, writer io.Writer, opts *Options) (*Tracer, error) {
	exporter, err := NewTraceExporter(ctx, writer, opts)
	if err != nil {
		return nil, err
	}

	if exporter == nil {
		return nil, nil
	}

	res, err := newResource(appName, appVersion)
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)

	tracer := &Tracer{
		Tracer:   provider.Tracer(appName),
		provider: provider,
	}

	if opts.TraceParent != "" {
		parent, err := parseTraceParent(opts.TraceParent)
		if err != nil {
			return nil, err
		}

		tracer.parent = parent
	}

	return tracer, nil
}

// NewTraceExporter creates the span exporter named in opts, or nil for none.
func NewTraceExporter(ctx context.Context, writer io.Writer, opts *Options) (sdktrace.SpanExporter, error) {
	switch exporterType := traceExporterType(opts.TraceExporter); exporterType {
	case "", noneTraceExporterType:
		return nil, nil
	case consoleTraceExporterType:
		return stdouttrace.New(stdouttrace.WithWriter(writer))
	case otlpHTTPTraceExporterType:
		var config []otlptracehttp.Option
		if opts.TraceExporterInsecureEndpoint {
			config = append(config, otlptracehttp.WithInsecure())
		}

		return otlptracehttp.New(ctx, config...)
	case httpTraceExporterType:
		if opts.TraceExporterHTTPEndpoint == "" {
			return nil, errors.New(&ErrorMissingEnvVariable{Vars: []string{"FIELDQUERY_TELEMETRY_TRACE_EXPORTER_HTTP_ENDPOINT"}})
		}

		config := []otlptracehttp.Option{otlptracehttp.WithEndpoint(opts.TraceExporterHTTPEndpoint)}
		if opts.TraceExporterInsecureEndpoint {
			config = append(config, otlptracehttp.WithInsecure())
		}

		return otlptracehttp.New(ctx, config...)
	case otlpGrpcTraceExporterType:
		var config []otlptracegrpc.Option
		if opts.TraceExporterInsecureEndpoint {
			config = append(config, otlptracegrpc.WithInsecure())
		}

		return otlptracegrpc.New(ctx, config...)
	default:
		return nil, errors.New(&ErrorUnknownExporter{Kind: "trace", Name: string(exporterType)})
	}
}

// Trace runs fn inside a span named name. Errors returned by fn are recorded on the span.
func (tracer *Tracer) Trace(ctx context.Context, name string, attrs map[string]any, fn func(childCtx context.Context) error) error {
	if tracer == nil || tracer.provider == nil {
		return fn(ctx)
	}

	if tracer.parent != nil {
		ctx = trace.ContextWithSpanContext(ctx, *tracer.parent)
	}

	ctx, span := tracer.Start(ctx, name)
	defer span.End()

	span.SetAttributes(mapToAttributes(attrs)...)

	if err := fn(ctx); err != nil {
		span.RecordError(err)
		return err
	}

	return nil
}

// parseTraceParent reads a W3C traceparent header: version-traceid-spanid-flags.
func parseTraceParent(value string) (*trace.SpanContext, error) {
	parts := strings.Split(value, "-")
	if len(parts) != traceParentParts {
		return nil, errors.Errorf("invalid TRACEPARENT value %s", value)
	}

	flag, err := strconv.Atoi(parts[3])
	if err != nil {
		return nil, errors.Errorf("invalid trace flags: %w", err)
	}

	traceID, err := trace.TraceIDFromHex(parts[1])
	if err != nil {
		return nil, errors.New(err)
	}

	spanID, err := trace.SpanIDFromHex(parts[2])
	if err != nil {
		return nil, errors.New(err)
	}

	flags := trace.FlagsSampled
	if flag == 0 {
		flags = 0
	}

	spanContext := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: flags,
		Remote:     true,
	})

	return &spanContext, nil
}

func newResource(appName, appVersion string) (*resource.Resource, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(appName),
			semconv.ServiceVersion(appVersion),
		),
	)
	if err != nil {
		return nil, errors.New(err)
	}

	return res, nil
}
