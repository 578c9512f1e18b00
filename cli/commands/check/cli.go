// Package check implements the `fieldquery check` command, which validates one query per line
// of a file or stdin.
package check

import (
	"github.com/fieldquery/fieldquery/cli/commands/common"
	"github.com/fieldquery/fieldquery/options"
	"github.com/urfave/cli/v2"
)

const (
	CommandName = "check"

	FileFlagName        = "file"
	ParallelismFlagName = "parallelism"
	QuietFlagName       = "quiet"
)

func NewFlags(opts *options.QueryOptions, cmdOpts *Options) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        FileFlagName,
			Aliases:     []string{"f"},
			Destination: &opts.InputFile,
			Usage:       "File with one query per line. Reads stdin when omitted.",
		},
		&cli.IntFlag{
			Name:        ParallelismFlagName,
			Destination: &opts.Parallelism,
			Value:       opts.Parallelism,
			Usage:       "Number of queries parsed concurrently.",
		},
		&cli.BoolFlag{
			Name:        QuietFlagName,
			Aliases:     []string{"q"},
			Destination: &cmdOpts.Quiet,
			Usage:       "Only print the lines with errors.",
		},
	}
}

func NewCommand(opts *options.QueryOptions) *cli.Command {
	cmdOpts := NewOptions(opts)

	return &cli.Command{
		Name:  CommandName,
		Usage: "Validate one query per line of a file or stdin.",
		Flags: NewFlags(opts, cmdOpts),
		Before: func(_ *cli.Context) error {
			if err := cmdOpts.Validate(); err != nil {
				return cli.Exit(err, common.ExitCodeGeneralError)
			}

			return nil
		},
		Action: func(cliCtx *cli.Context) error {
			return Run(cliCtx.Context, cmdOpts)
		},
	}
}
