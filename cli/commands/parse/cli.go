// Package parse implements the `fieldquery parse` command, which prints the condition tree of a query.
package parse

import (
	"github.com/fieldquery/fieldquery/cli/commands/common"
	"github.com/fieldquery/fieldquery/options"
	"github.com/urfave/cli/v2"
)

const (
	CommandName  = "parse"
	CommandAlias = "p"

	FormatFlagName = "format"
	JSONFlagName   = "json"
)

func NewFlags(opts *Options) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        FormatFlagName,
			Destination: &opts.Format,
			Value:       opts.Format,
			Usage:       "Output format of the condition. Valid values: text, json.",
		},
		&cli.BoolFlag{
			Name:        JSONFlagName,
			Destination: &opts.JSON,
			Usage:       "Output in JSON format (equivalent to --format=json).",
		},
	}
}

func NewCommand(opts *options.QueryOptions) *cli.Command {
	cmdOpts := NewOptions(opts)

	return &cli.Command{
		Name:      CommandName,
		Aliases:   []string{CommandAlias},
		Usage:     "Parse a query and print its condition tree.",
		ArgsUsage: "QUERY",
		Flags:     NewFlags(cmdOpts),
		Before: func(_ *cli.Context) error {
			if cmdOpts.JSON {
				cmdOpts.Format = options.JSONOutputFormat
			}

			if err := cmdOpts.Validate(); err != nil {
				return cli.Exit(err, common.ExitCodeGeneralError)
			}

			return nil
		},
		Action: func(cliCtx *cli.Context) error {
			query, err := common.QueryArg(cliCtx)
			if err != nil {
				return err
			}

			return Run(cliCtx.Context, cmdOpts, query)
		},
	}
}
