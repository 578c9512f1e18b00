package parse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fieldquery/fieldquery/cli/commands/common"
	"github.com/fieldquery/fieldquery/internal/condition"
	"github.com/fieldquery/fieldquery/internal/errors"
	"github.com/fieldquery/fieldquery/internal/fieldset"
	"github.com/fieldquery/fieldquery/options"
	"github.com/mgutz/ansi"
	"github.com/urfave/cli/v2"
)

const indent = "  "

// Run parses query and writes the condition to opts.Writer. An invalid query is reported on
// opts.ErrWriter and ends with ExitCodeInvalidQuery.
func Run(ctx context.Context, opts *Options, query string) error {
	in, cfg, err := common.Prepare(ctx, opts.QueryOptions)
	if err != nil {
		return err
	}

	cond, err := in.Process(ctx, cfg, query)
	if err != nil {
		if writeErr := common.WriteQueryErrors(opts.ErrWriter, err, common.UseColor(opts.QueryOptions, opts.ErrWriter)); writeErr != nil {
			return errors.New(writeErr)
		}

		return cli.Exit("", common.ExitCodeInvalidQuery)
	}

	switch opts.Format {
	case options.JSONOutputFormat:
		return outputJSON(opts.Writer, cond)
	case options.TextOutputFormat:
		rawFields := condition.WithRawFields(fieldset.GrammarFields(cfg.FieldSet)...)
		return outputText(opts.Writer, cond, NewColorizer(common.UseColor(opts.QueryOptions, opts.Writer)), rawFields)
	default:
		return errors.New("invalid format: " + opts.Format)
	}
}

func outputJSON(w io.Writer, cond *condition.SearchCondition) error {
	jsonBytes, err := json.MarshalIndent(cond, "", indent)
	if err != nil {
		return errors.New(err)
	}

	if _, err := fmt.Fprintln(w, string(jsonBytes)); err != nil {
		return errors.New(err)
	}

	return nil
}

type Colorizer struct {
	logicalColorizer func(string) string
	fieldColorizer   func(string) string
	orderColorizer   func(string) string
}

// NewColorizer returns a colorizer; with colours disabled every function is the identity.
func NewColorizer(useColor bool) *Colorizer {
	if !useColor {
		identity := func(str string) string { return str }

		return &Colorizer{
			logicalColorizer: identity,
			fieldColorizer:   identity,
			orderColorizer:   identity,
		}
	}

	return &Colorizer{
		logicalColorizer: ansi.ColorFunc("yellow+b"),
		fieldColorizer:   ansi.ColorFunc("blue+bh"),
		orderColorizer:   ansi.ColorFunc("green+bh"),
	}
}

// outputText writes one line per group, field and order entry:
//
//	AND
//	  id: 1, 2
//	  OR
//	    name: foo
//	order
//	  @id: DESC
func outputText(w io.Writer, cond *condition.SearchCondition, colorizer *Colorizer, exportOpts ...condition.ExportOption) error {
	var sb strings.Builder

	writeGroup(&sb, cond.Values, 0, colorizer, exportOpts)

	if cond.Order.Len() > 0 {
		sb.WriteString(colorizer.logicalColorizer("order") + "\n")

		for _, field := range cond.Order.Fields() {
			dir, _ := cond.Order.Direction(field)
			sb.WriteString(indent + colorizer.orderColorizer(field) + ": " + string(dir) + "\n")
		}
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return errors.New(err)
	}

	return nil
}

func writeGroup(sb *strings.Builder, group *condition.ValuesGroup, depth int, colorizer *Colorizer, exportOpts []condition.ExportOption) {
	prefix := strings.Repeat(indent, depth)

	sb.WriteString(prefix + colorizer.logicalColorizer(string(group.Logical())) + "\n")

	for _, name := range group.FieldNames() {
		bag, _ := group.Field(name)
		sb.WriteString(prefix + indent + colorizer.fieldColorizer(name) + ": " + condition.ExportValues(name, bag, exportOpts...) + "\n")
	}

	for _, sub := range group.Groups() {
		writeGroup(sb, sub, depth+1, colorizer, exportOpts)
	}
}
