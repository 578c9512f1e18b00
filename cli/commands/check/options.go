package check

import (
	"github.com/fieldquery/fieldquery/internal/errors"
	"github.com/fieldquery/fieldquery/options"
)

type Options struct {
	*options.QueryOptions

	// Quiet suppresses the lines of valid queries.
	Quiet bool
}

func NewOptions(opts *options.QueryOptions) *Options {
	return &Options{QueryOptions: opts}
}

func (o *Options) Validate() error {
	if o.Parallelism < 1 {
		return errors.Errorf("invalid parallelism %d, must be at least 1", o.Parallelism)
	}

	return nil
}
