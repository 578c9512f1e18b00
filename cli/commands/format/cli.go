// Package format implements the `fieldquery fmt` command, which prints a query in its
// canonical form.
package format

import (
	"github.com/fieldquery/fieldquery/cli/commands/common"
	"github.com/fieldquery/fieldquery/options"
	"github.com/urfave/cli/v2"
)

const CommandName = "fmt"

func NewCommand(opts *options.QueryOptions) *cli.Command {
	return &cli.Command{
		Name:      CommandName,
		Usage:     "Print a query in canonical form.",
		ArgsUsage: "QUERY",
		Action: func(cliCtx *cli.Context) error {
			query, err := common.QueryArg(cliCtx)
			if err != nil {
				return err
			}

			return Run(cliCtx.Context, opts, query)
		},
	}
}
