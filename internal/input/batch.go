package input

import (
	"context"
	"runtime"

	"github.com/fieldquery/fieldquery/internal/condition"
	"github.com/fieldquery/fieldquery/internal/errors"
	"github.com/fieldquery/fieldquery/pkg/log"
	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"
	"golang.org/x/sync/errgroup"
)

// BatchResult is the outcome of one query of a batch.
type BatchResult struct {
	Condition *condition.SearchCondition
	Err       error
	// ID identifies the query in logs and telemetry.
	ID    string
	Query string
	Index int
}

// Batch is the outcome of ProcessBatch, results are in input order.
type Batch struct {
	Results []BatchResult
	Failed  int
}

// ErrorOrNil returns a MultiError with one entry per failed query.
func (batch *Batch) ErrorOrNil() error {
	errs := &errors.MultiError{}

	for _, result := range batch.Results {
		if result.Err != nil {
			errs = errs.Append(errors.Errorf("query %d: %w", result.Index+1, result.Err))
		}
	}

	return errs.ErrorOrNil()
}

// ProcessBatch parses queries concurrently with at most workers goroutines, or one per CPU
// when workers is not positive. A failing query does not stop the others; the returned
// error is only set when ctx is done.
func (in *StringQueryInput) ProcessBatch(ctx context.Context, cfg *ProcessorConfig, queries []string, workers int) (*Batch, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	batch := &Batch{Results: make([]BatchResult, len(queries))}
	failed := xsync.NewCounter()

	err := TraceBatch(ctx, len(queries), workers, func(ctx context.Context) error {
		g, ctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)

		logger := log.LoggerFromContext(ctx)

		for i, query := range queries {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return errors.New(err)
				}

				id := uuid.NewString()
				queryCtx := log.ContextWithLogger(ctx, logger.WithField(log.FieldKeyQueryID, id))

				cond, err := in.Process(queryCtx, cfg, query)
				if err != nil {
					failed.Inc()
				}

				batch.Results[i] = BatchResult{
					ID:        id,
					Index:     i,
					Query:     query,
					Condition: cond,
					Err:       err,
				}

				return nil
			})
		}

		return g.Wait()
	})

	batch.Failed = int(failed.Value())

	return batch, err
}
