package input

import (
	"context"

	"github.com/fieldquery/fieldquery/telemetry"
)

// Telemetry operation names.
const (
	TelemetryOpProcess = "query_process"
	TelemetryOpBatch   = "query_batch"
)

// Telemetry attribute keys.
const (
	AttrQueryLength  = "query.length"
	AttrQueryProfile = "query.profile"
	AttrFieldSet     = "query.field_set"
	AttrBatchSize    = "batch.size"
	AttrBatchWorkers = "batch.workers"
)

// TraceProcess wraps the parse of one query with telemetry.
// The underlying Telemeter.Collect handles unconfigured telemetry gracefully.
func TraceProcess(ctx context.Context, cfg *ProcessorConfig, query string, fn func(ctx context.Context) error) error {
	attrs := map[string]any{
		AttrQueryLength: len(query),
	}

	if cfg != nil {
		attrs[AttrQueryProfile] = cfg.Profile.String()

		if cfg.FieldSet != nil && cfg.FieldSet.Name() != "" {
			attrs[AttrFieldSet] = cfg.FieldSet.Name()
		}
	}

	return telemetry.TelemeterFromContext(ctx).Collect(ctx, TelemetryOpProcess, attrs, fn)
}

// TraceBatch wraps a batch parse with telemetry.
func TraceBatch(ctx context.Context, size, workers int, fn func(ctx context.Context) error) error {
	return telemetry.TelemeterFromContext(ctx).Collect(ctx, TelemetryOpBatch, map[string]any{
		AttrBatchSize:    size,
		AttrBatchWorkers: workers,
	}, fn)
}
