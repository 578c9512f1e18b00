package condition

import (
	"strings"
	"unicode"

	"github.com/fieldquery/fieldquery/internal/lexer"
)

var patternOperators = map[PatternType]string{
	PatternContains:   "*",
	PatternStartsWith: ">",
	PatternEndsWith:   "<",
	PatternEquals:     "=",
	PatternRegex:      "?",
}

// ExportOption configures Export.
type ExportOption func(*exporter)

// WithRawFields writes the values of the named fields without quoting. Fields read by a custom
// value grammar need it, the grammar does not accept quotes. Pattern-match values are always
// quoted when needed.
func WithRawFields(names ...string) ExportOption {
	return func(e *exporter) {
		for _, name := range names {
			e.rawFields[name] = struct{}{}
		}
	}
}

type exporter struct {
	rawFields map[string]struct{}
}

func newExporter(opts []ExportOption) *exporter {
	e := &exporter{rawFields: make(map[string]struct{})}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Export serializes cond into the query syntax. Parsing the result yields an equal condition
// as long as the fields read by a value grammar are passed to WithRawFields. Values
// containing line feeds cannot be expressed and do not round-trip.
func Export(cond *SearchCondition, opts ...ExportOption) string {
	parts := newExporter(opts).groupParts(cond.Values)

	if cond.Order != nil {
		for _, field := range cond.Order.Fields() {
			dir, _ := cond.Order.Direction(field)
			parts = append(parts, field+": "+string(dir))
		}
	}

	prefix := ""
	if cond.Values.Logical() == LogicalOr {
		prefix = "*"
	}

	return prefix + strings.Join(parts, "; ")
}

// ExportGroup serializes one group without its surrounding parentheses or logical marker.
func ExportGroup(group *ValuesGroup, opts ...ExportOption) string {
	return strings.Join(newExporter(opts).groupParts(group), "; ")
}

// ExportValues serializes the values of the named field, separated by commas.
func ExportValues(field string, bag *ValuesBag, opts ...ExportOption) string {
	return newExporter(opts).values(field, bag)
}

func (e *exporter) groupParts(group *ValuesGroup) []string {
	var parts []string

	for _, name := range group.FieldNames() {
		bag, _ := group.Field(name)
		if bag.IsEmpty() {
			continue
		}

		parts = append(parts, name+": "+e.values(name, bag))
	}

	for _, sub := range group.Groups() {
		marker := ""
		if sub.Logical() == LogicalOr {
			marker = "*"
		}

		parts = append(parts, marker+"("+strings.Join(e.groupParts(sub), "; ")+")")
	}

	return parts
}

func (e *exporter) values(field string, bag *ValuesBag) string {
	quote := QuoteValue
	if _, ok := e.rawFields[field]; ok {
		quote = func(value string) string { return value }
	}

	values := make([]string, 0, bag.Count())

	for _, value := range bag.SimpleValues {
		values = append(values, quote(value))
	}

	for _, value := range bag.ExcludedSimpleValues {
		values = append(values, "!"+quote(value))
	}

	for _, r := range bag.Ranges {
		values = append(values, exportRange(r, quote))
	}

	for _, r := range bag.ExcludedRanges {
		values = append(values, "!"+exportRange(r, quote))
	}

	for _, c := range bag.Comparisons {
		values = append(values, c.Operator+quote(c.Value))
	}

	for _, p := range bag.PatternMatchers {
		values = append(values, exportPatternMatch(p))
	}

	return strings.Join(values, ", ")
}

func exportRange(r Range, quote func(string) string) string {
	if r.LowerInclusive && r.UpperInclusive {
		return quote(r.Lower) + "~" + quote(r.Upper)
	}

	lower, upper := "]", "["
	if r.LowerInclusive {
		lower = "["
	}

	if r.UpperInclusive {
		upper = "]"
	}

	return lower + quote(r.Lower) + "~" + quote(r.Upper) + upper
}

func exportPatternMatch(p PatternMatch) string {
	var sb strings.Builder

	sb.WriteString("~")

	if p.CaseInsensitive {
		sb.WriteString("i")
	}

	if p.Type.IsNegated() {
		sb.WriteString("!")
	}

	sb.WriteString(patternOperators[p.Type.Base()])
	sb.WriteString(QuoteValue(p.Value))

	return sb.String()
}

// QuoteValue returns value as is when it can be written unquoted, otherwise surrounded by
// quotes with inner quotes doubled.
func QuoteValue(value string) string {
	if !needsQuotes(value) {
		return value
	}

	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

func needsQuotes(value string) bool {
	if value == "" || strings.ContainsAny(value, lexer.SpecialChars+`":`) {
		return true
	}

	return strings.IndexFunc(value, func(r rune) bool {
		return unicode.IsSpace(r) || !unicode.IsPrint(r)
	}) >= 0
}
