package format

import (
	"context"
	"fmt"

	"github.com/fieldquery/fieldquery/cli/commands/common"
	"github.com/fieldquery/fieldquery/internal/condition"
	"github.com/fieldquery/fieldquery/internal/errors"
	"github.com/fieldquery/fieldquery/internal/fieldset"
	"github.com/fieldquery/fieldquery/options"
	"github.com/urfave/cli/v2"
)

// Run parses query and prints it back with normalized spacing, quoting and markers.
func Run(ctx context.Context, opts *options.QueryOptions, query string) error {
	in, cfg, err := common.Prepare(ctx, opts)
	if err != nil {
		return err
	}

	cond, err := in.Process(ctx, cfg, query)
	if err != nil {
		if writeErr := common.WriteQueryErrors(opts.ErrWriter, err, common.UseColor(opts, opts.ErrWriter)); writeErr != nil {
			return errors.New(writeErr)
		}

		return cli.Exit("", common.ExitCodeInvalidQuery)
	}

	exported := condition.Export(cond, condition.WithRawFields(fieldset.GrammarFields(cfg.FieldSet)...))

	if _, err := fmt.Fprintln(opts.Writer, exported); err != nil {
		return errors.New(err)
	}

	return nil
}
