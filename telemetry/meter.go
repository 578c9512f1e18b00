package telemetry

import (
	"context"
	"io"
	"time"

	"github.com/fieldquery/fieldquery/internal/errors"
	"github.com/puzpuzpuz/xsync/v3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const (
	noneMetricExporterType     metricExporterType = "none"
	consoleMetricExporterType  metricExporterType = "console"
	otlpHTTPMetricExporterType metricExporterType = "otlpHttp"
	otlpGrpcMetricExporterType metricExporterType = "otlpGrpc"

	metricExportInterval = time.Second
)

type metricExporterType string

// Meter records operation durations and counts. A nil *Meter records nothing.
type Meter struct {
	metric.Meter
	provider   *sdkmetric.MeterProvider
	histograms *xsync.MapOf[string, metric.Int64Histogram]
	counters   *xsync.MapOf[string, metric.Int64Counter]
}

// NewMeter returns nil, nil when metrics are disabled.
func NewMeter(ctx context.Context, appName, appVersion string, writer io.Writer, opts *Options) (*Meter, error) {
	exporter, err := NewMetricExporter(ctx, writer, opts)
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

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(metricExportInterval))),
	)
	otel.SetMeterProvider(provider)

	return &Meter{
		Meter:      provider.Meter(appName),
		provider:   provider,
		histograms: xsync.NewMapOf[string, metric.Int64Histogram](),
		counters:   xsync.NewMapOf[string, metric.Int64Counter](),
	}, nil
}

// NewMetricExporter creates the exporter named in opts, or nil for none.
func NewMetricExporter(ctx context.Context, writer io.Writer, opts *Options) (sdkmetric.Exporter, error) {
	switch exporterType := metricExporterType(opts.MetricExporter); exporterType {
	case "", noneMetricExporterType:
		return nil, nil
	case consoleMetricExporterType:
		return stdoutmetric.New(stdoutmetric.WithWriter(writer))
	case otlpHTTPMetricExporterType:
		var config []otlpmetrichttp.Option
		if opts.MetricExporterInsecureEndpoint {
			config = append(config, otlpmetrichttp.WithInsecure())
		}

		return otlpmetrichttp.New(ctx, config...)
	case otlpGrpcMetricExporterType:
		var config []otlpmetricgrpc.Option
		if opts.MetricExporterInsecureEndpoint {
			config = append(config, otlpmetricgrpc.WithInsecure())
		}

		return otlpmetricgrpc.New(ctx, config...)
	default:
		return nil, errors.New(&ErrorUnknownExporter{Kind: "metric", Name: string(exporterType)})
	}
}

// Time runs fn and records its duration in milliseconds under `<name>_duration`, plus
// `<name>_success_count` or `<name>_errors_count`.
func (meter *Meter) Time(ctx context.Context, name string, attrs map[string]any, fn func(childCtx context.Context) error) error {
	if meter == nil || meter.provider == nil {
		return fn(ctx)
	}

	name = CleanMetricName(name)
	options := metric.WithAttributes(mapToAttributes(attrs)...)
	started := time.Now()

	err := fn(ctx)

	if histogram, histErr := meter.histogram(name + "_duration"); histErr == nil && histogram != nil {
		histogram.Record(ctx, time.Since(started).Milliseconds(), options)
	}

	suffix := "_success_count"
	if err != nil {
		suffix = "_errors_count"
	}

	meter.Count(ctx, name+suffix, 1)

	return err
}

// Count adds value to the counter called name.
func (meter *Meter) Count(ctx context.Context, name string, value int64) {
	if meter == nil || meter.provider == nil {
		return
	}

	counter, err := meter.counter(CleanMetricName(name))
	if err != nil || counter == nil {
		return
	}

	counter.Add(ctx, value)
}

func (meter *Meter) histogram(name string) (metric.Int64Histogram, error) {
	var err error

	histogram, _ := meter.histograms.LoadOrCompute(name, func() metric.Int64Histogram {
		var histogram metric.Int64Histogram

		histogram, err = meter.Int64Histogram(name, metric.WithUnit("ms"))

		return histogram
	})

	return histogram, err
}

func (meter *Meter) counter(name string) (metric.Int64Counter, error) {
	var err error

	counter, _ := meter.counters.LoadOrCompute(name, func() metric.Int64Counter {
		var counter metric.Int64Counter

		counter, err = meter.Int64Counter(name)

		return counter
	})

	return counter, err
}
