package telemetry

// Options selects the exporters. Empty exporter names disable collection.
type Options struct {
	// TraceExporter is one of none, console, otlpHttp, otlpGrpc, http.
	TraceExporter string
	// TraceExporterHTTPEndpoint is required by the http exporter.
	TraceExporterHTTPEndpoint     string
	TraceExporterInsecureEndpoint bool
	// TraceParent continues an existing W3C trace, e.g. from the TRACEPARENT env var.
	TraceParent string

	// MetricExporter is one of none, console, otlpHttp, otlpGrpc.
	MetricExporter                 string
	MetricExporterInsecureEndpoint bool
}
