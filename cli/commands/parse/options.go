package parse

import (
	"github.com/fieldquery/fieldquery/internal/errors"
	"github.com/fieldquery/fieldquery/options"
)

type Options struct {
	*options.QueryOptions

	// Format of the parsed condition, text or json.
	Format string

	// JSON is an alias for --format=json.
	JSON bool
}

func NewOptions(opts *options.QueryOptions) *Options {
	return &Options{
		QueryOptions: opts,
		Format:       options.TextOutputFormat,
	}
}

func (o *Options) Validate() error {
	switch o.Format {
	case options.TextOutputFormat, options.JSONOutputFormat:
		return nil
	default:
		return errors.New("invalid format: " + o.Format)
	}
}
