// Package common holds helpers shared by the query commands.
package common

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fieldquery/fieldquery/config"
	"github.com/fieldquery/fieldquery/internal/errors"
	"github.com/fieldquery/fieldquery/internal/input"
	"github.com/fieldquery/fieldquery/internal/lexer"
	"github.com/fieldquery/fieldquery/options"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
)

const (
	ExitCodeSuccess      = 0
	ExitCodeGeneralError = 1
	// ExitCodeInvalidQuery is returned when a query could not be parsed.
	ExitCodeInvalidQuery = 2
)

// Prepare loads the processor configuration and creates the query input.
func Prepare(ctx context.Context, opts *options.QueryOptions) (*input.StringQueryInput, *input.ProcessorConfig, error) {
	cfg, err := config.LoadProcessorConfig(ctx, opts)
	if err != nil {
		return nil, nil, cli.Exit(err, ExitCodeGeneralError)
	}

	return input.NewStringQueryInput(input.WithLogger(opts.Logger)), cfg, nil
}

// QueryArg returns the query given as the only positional argument.
func QueryArg(cliCtx *cli.Context) (string, error) {
	switch cliCtx.NArg() {
	case 0:
		return "", cli.Exit(errors.New("missing QUERY argument"), ExitCodeGeneralError)
	case 1:
		return cliCtx.Args().First(), nil
	}

	return "", cli.Exit(errors.Errorf("expected a single QUERY argument, got %d; quote the query", cliCtx.NArg()), ExitCodeGeneralError)
}

// UseColor reports whether w is a terminal and colours were not disabled.
func UseColor(opts *options.QueryOptions, w io.Writer) bool {
	if opts.DisableColor {
		return false
	}

	file, ok := w.(*os.File)

	return ok && isatty.IsTerminal(file.Fd())
}

// WriteQueryErrors prints the errors of a failed query. Scan errors are rendered as a
// diagnostic pointing at the offending character, the others as `path: message` lines.
func WriteQueryErrors(w io.Writer, err error, useColor bool) error {
	if diagnostic, ok := lexer.FormatDiagnostic(err, useColor); ok {
		_, writeErr := io.WriteString(w, diagnostic)
		return writeErr
	}

	var invalid input.InvalidSearchConditionError
	if !errors.As(err, &invalid) {
		_, writeErr := fmt.Fprintln(w, err)
		return writeErr
	}

	var sb strings.Builder

	for _, msg := range invalid.Errors {
		sb.WriteString(msg.Error() + "\n")
	}

	_, writeErr := io.WriteString(w, sb.String())

	return writeErr
}
