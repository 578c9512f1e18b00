package check

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fieldquery/fieldquery/cli/commands/common"
	"github.com/fieldquery/fieldquery/internal/errors"
	"github.com/fieldquery/fieldquery/pkg/log"
	"github.com/urfave/cli/v2"
)

// query is a non-blank input line.
type query struct {
	text string
	line int
}

// Run checks every non-blank line of the input and prints `line N: ok` or the errors of the
// line. It ends with ExitCodeInvalidQuery when any query is invalid.
func Run(ctx context.Context, opts *Options) error {
	queries, err := readQueries(opts)
	if err != nil {
		return cli.Exit(err, common.ExitCodeGeneralError)
	}

	in, cfg, err := common.Prepare(ctx, opts.QueryOptions)
	if err != nil {
		return err
	}

	texts := make([]string, len(queries))
	for i, q := range queries {
		texts[i] = q.text
	}

	batch, err := in.ProcessBatch(ctx, cfg, texts, opts.Parallelism)
	if err != nil {
		return err
	}

	useColor := common.UseColor(opts.QueryOptions, opts.Writer)

	for _, result := range batch.Results {
		line := queries[result.Index].line

		if result.Err == nil {
			if !opts.Quiet {
				if _, err := fmt.Fprintf(opts.Writer, "line %d: ok\n", line); err != nil {
					return errors.New(err)
				}
			}

			continue
		}

		if _, err := fmt.Fprintf(opts.Writer, "line %d: invalid\n", line); err != nil {
			return errors.New(err)
		}

		if err := common.WriteQueryErrors(opts.Writer, result.Err, useColor); err != nil {
			return errors.New(err)
		}
	}

	log.LoggerFromContext(ctx).Debugf("Checked %d queries, %d invalid", len(queries), batch.Failed)

	if batch.Failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d queries are invalid", batch.Failed, len(queries)), common.ExitCodeInvalidQuery)
	}

	return nil
}

func readQueries(opts *Options) ([]query, error) {
	var reader io.Reader = opts.Reader

	if opts.InputFile != "" {
		file, err := os.Open(opts.InputFile)
		if err != nil {
			return nil, errors.New(err)
		}
		defer file.Close()

		reader = file
	}

	var (
		queries []query
		scanner = bufio.NewScanner(reader)
		line    = 0
	)

	for scanner.Scan() {
		line++

		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}

		queries = append(queries, query{text: text, line: line})
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.New(err)
	}

	return queries, nil
}
