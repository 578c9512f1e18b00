// Package input turns query strings into search conditions.
//
// The parser reports two kinds of problems. Malformed input (an unterminated quote, a
// misplaced operator) stops the parse at the first occurrence. Structural and semantic
// problems (unknown fields, exceeded limits, invalid ranges) are addressed by a path and
// collected over the whole input, so one call reports all of them.
package input

import (
	"context"

	"github.com/fieldquery/fieldquery/internal/condition"
	"github.com/fieldquery/fieldquery/internal/errors"
	"github.com/fieldquery/fieldquery/internal/fieldset"
	"github.com/fieldquery/fieldquery/internal/lexer"
	"github.com/fieldquery/fieldquery/pkg/log"
)

const (
	groupLogicalPattern     = `[*&]`
	groupLogicalBeforeGroup = `[*&][\t\p{Zs}]*\(`
	valueListEndPattern     = `[;)]`
	rootLevel               = 1
	expectedGroupClose      = ")"
)

// LabelResolver returns the label a field is known by in the input. Fields stay reachable by
// their name.
type LabelResolver func(field *fieldset.FieldConfig) string

// DefaultLabelResolver returns the configured label.
func DefaultLabelResolver(field *fieldset.FieldConfig) string {
	return field.Label
}

// Option configures a StringQueryInput.
type Option func(*StringQueryInput)

// WithLabelResolver replaces DefaultLabelResolver.
func WithLabelResolver(resolver LabelResolver) Option {
	return func(in *StringQueryInput) {
		in.labelResolver = resolver
	}
}

// WithLogger sets the logger; by default the logger is taken from the context.
func WithLogger(logger log.Logger) Option {
	return func(in *StringQueryInput) {
		in.logger = logger
	}
}

// StringQueryInput parses the query syntax. Every Process call uses its own scanner, so one
// instance may serve concurrent calls.
type StringQueryInput struct {
	labelResolver LabelResolver
	logger        log.Logger
}

// NewStringQueryInput returns a parser.
func NewStringQueryInput(opts ...Option) *StringQueryInput {
	in := &StringQueryInput{labelResolver: DefaultLabelResolver}

	for _, opt := range opts {
		opt(in)
	}

	return in
}

// Process parses query. On failure the returned error wraps an InvalidSearchConditionError.
func (in *StringQueryInput) Process(ctx context.Context, cfg *ProcessorConfig, query string) (*condition.SearchCondition, error) {
	var cond *condition.SearchCondition

	err := TraceProcess(ctx, cfg, query, func(ctx context.Context) error {
		var err error

		cond, err = in.process(ctx, cfg, query)

		return err
	})

	return cond, err
}

func (in *StringQueryInput) process(ctx context.Context, cfg *ProcessorConfig, query string) (*condition.SearchCondition, error) {
	if cfg == nil || cfg.FieldSet == nil {
		return nil, errors.New("input: processor config without field set")
	}

	logger := in.logger
	if logger == nil {
		logger = log.LoggerFromContext(ctx)
	}

	p := &parser{
		cfg:    cfg,
		limits: cfg.Limits.WithDefaults(),
		lex:    lexer.New(cfg.Profile),
		labels: resolveLabels(cfg.FieldSet, in.labelResolver),
		order:  condition.NewSearchOrder(),
	}

	p.lex.Parse(query, fieldset.Grammars(cfg.FieldSet))

	root, err := p.parse()
	if err != nil {
		p.errs = []ConditionErrorMessage{scanErrorMessage(err)}
	}

	logger.Debugf("Parsed query of %d characters with profile %s: %d error(s)", len(query), cfg.Profile, len(p.errs))

	if len(p.errs) > 0 {
		return nil, errors.New(InvalidSearchConditionError{Input: query, Errors: p.errs})
	}

	if p.order.Len() == 0 && !p.orderSeen {
		p.applyDefaultOrder()
	}

	return condition.NewSearchCondition(root, p.order), nil
}

// resolveLabels maps field names and labels to field names.
func resolveLabels(fields fieldset.FieldSet, resolver LabelResolver) map[string]string {
	labels := make(map[string]string)

	for _, field := range fields.All() {
		labels[field.Name] = field.Name
	}

	if resolver == nil {
		return labels
	}

	for _, field := range fields.All() {
		if label := resolver(field); label != "" && label != field.Name {
			labels[label] = field.Name
		}
	}

	return labels
}

// parser holds the state of one Process call.
type parser struct {
	cfg    *ProcessorConfig
	lex    *lexer.Lexer
	labels map[string]string
	order  *condition.SearchOrder
	errs   []ConditionErrorMessage
	limits Limits

	orderSeen          bool
	noDefaultFieldSeen bool
}

func (p *parser) addError(msg ConditionErrorMessage) {
	p.errs = append(p.errs, msg)
}

func (p *parser) parse() (*condition.ValuesGroup, error) {
	root := condition.NewValuesGroup(condition.LogicalAnd)

	// a marker directly before `(` belongs to that group
	if p.lex.IsGlimpse(groupLogicalPattern) && !p.lex.IsGlimpse(groupLogicalBeforeGroup) {
		marker, _ := p.lex.MatchOptional(groupLogicalPattern)

		logical, err := condition.ParseLogical(marker)
		if err != nil {
			return nil, err
		}

		root.SetLogical(logical)
	}

	if err := p.fieldValuesPairs(root, rootLevel, "", false); err != nil {
		return nil, err
	}

	return root, nil
}

// fieldValuesPairs reads the statements of one group up to, not including, its closing
// parenthesis. In discard mode the input is only checked for syntax.
func (p *parser) fieldValuesPairs(group *condition.ValuesGroup, level int, path string, discard bool) error {
	groupCount := 0

	for {
		p.lex.SkipEmptyLines()

		if p.lex.IsEnd() {
			if level > rootLevel {
				_, err := p.lex.Expects(")", expectedGroupClose)
				return err
			}

			return nil
		}

		if p.lex.IsGlimpse(")") {
			if level == rootLevel {
				return p.lex.NewFormatError(lexer.ErrorCodeGroupNotOpen)
			}

			return nil
		}

		if p.lex.IsGlimpse("(") || p.lex.IsGlimpse(groupLogicalBeforeGroup) {
			if err := p.subGroup(group, level, indexPath(path, groupCount), groupCount, discard); err != nil {
				return err
			}

			groupCount++

			continue
		}

		if p.lex.IsGlimpse(groupLogicalPattern) {
			return p.lex.NewFormatError(lexer.ErrorCodeMisplacedGroupLogical)
		}

		if err := p.statement(group, level, path, discard); err != nil {
			return err
		}
	}
}

func (p *parser) subGroup(parent *condition.ValuesGroup, level int, path string, index int, discard bool) error {
	logical := condition.LogicalAnd

	if marker, ok := p.lex.MatchOptional(groupLogicalPattern); ok {
		var err error

		if logical, err = condition.ParseLogical(marker); err != nil {
			return err
		}
	}

	if _, err := p.lex.Expects("("); err != nil {
		return err
	}

	if !discard {
		switch {
		case index >= p.limits.MaxGroups:
			p.addError(groupsOverflowError(path, p.limits.MaxGroups))

			discard = true
		case level+1 > p.limits.MaxNesting:
			p.addError(nestingExceededError(path, p.limits.MaxNesting))

			discard = true
		}
	}

	group := condition.NewValuesGroup(logical)

	if err := p.fieldValuesPairs(group, level+1, path, discard); err != nil {
		return err
	}

	if _, err := p.lex.Expects(")", expectedGroupClose); err != nil {
		return err
	}

	p.lex.MatchOptional(";")

	if !discard {
		parent.AddGroup(group)
	}

	return nil
}

// statement reads `name: values` or, without a field name, values for the default field.
func (p *parser) statement(group *condition.ValuesGroup, level int, path string, discard bool) error {
	if !p.lex.IsFieldGlimpse() {
		return p.defaultFieldValues(group, path, discard)
	}

	name, err := p.lex.FieldIdentification()
	if err != nil {
		return err
	}

	if fieldset.IsOrderField(name) {
		return p.orderField(name, level, discard)
	}

	fieldName, known := p.labels[name]

	switch {
	case discard:
	case fieldset.IsPrivateField(name):
		p.addError(privateFieldError(path, name))

		discard = true
	case !known:
		p.addError(unknownFieldError(path, name))

		discard = true
	}

	if discard {
		return p.valueList(name, nil, condition.NewValuesBag(), "", true)
	}

	return p.fieldValues(group, fieldName, path)
}

func (p *parser) defaultFieldValues(group *condition.ValuesGroup, path string, discard bool) error {
	if discard {
		return p.valueList("", nil, condition.NewValuesBag(), "", true)
	}

	if p.cfg.DefaultField == "" {
		if !p.noDefaultFieldSeen {
			p.addError(noDefaultFieldError())
			p.noDefaultFieldSeen = true
		}

		return p.valueList("", nil, condition.NewValuesBag(), "", true)
	}

	fieldName, known := p.labels[p.cfg.DefaultField]
	if !known {
		p.addError(unknownFieldError(path, p.cfg.DefaultField))
		return p.valueList(p.cfg.DefaultField, nil, condition.NewValuesBag(), "", true)
	}

	return p.fieldValues(group, fieldName, path)
}

// fieldValues reads the values of a known field and merges them into group.
func (p *parser) fieldValues(group *condition.ValuesGroup, fieldName, path string) error {
	field, err := p.cfg.FieldSet.Get(fieldName)
	if err != nil {
		return err
	}

	bag := condition.NewValuesBag()

	if err := p.valueList(fieldName, field, bag, fieldPath(path, fieldName), false); err != nil {
		return err
	}

	if bag.IsEmpty() {
		return nil
	}

	if existing, ok := group.Field(fieldName); ok {
		existing.Merge(bag)
		return nil
	}

	group.AddField(fieldName, bag)

	return nil
}

// valueList reads `value, value, ...` up to `;`, `)` or the end of input. field is nil in
// discard mode and for order fields, which skip the value type and limit checks.
func (p *parser) valueList(fieldName string, field *fieldset.FieldConfig, bag *condition.ValuesBag, path string, discard bool) error {
	if p.lex.IsEnd() || p.lex.IsGlimpse(valueListEndPattern) {
		return p.lex.NewFormatError(lexer.ErrorCodeFieldWithoutValues)
	}

	overflowed := false

	for index := 0; ; index++ {
		valueType, err := p.lex.DetectValueType(fieldName)
		if err != nil {
			return err
		}

		skip := discard || overflowed

		if !skip && field != nil {
			switch {
			case index >= p.limits.MaxValues:
				p.addError(valuesOverflowError(indexPath(path, index), fieldName, p.limits.MaxValues))

				overflowed, skip = true, true
			case !field.Supports(valueType):
				p.addError(unsupportedValueError(indexPath(path, index), fieldName, valueType))

				skip = true
			}
		}

		if err := p.value(fieldName, field, valueType, bag, indexPath(path, index), skip); err != nil {
			return err
		}

		p.lex.SkipEmptyLines()

		if _, ok := p.lex.MatchOptional(","); ok {
			p.lex.SkipEmptyLines()

			// `a, , b` leaves an empty slot
			if p.lex.IsEnd() || p.lex.IsGlimpse(valueListEndPattern) || p.lex.IsGlimpse(",") {
				return p.lex.NewFormatError(lexer.ErrorCodeValuesNotSeparated)
			}

			continue
		}

		if _, ok := p.lex.MatchOptional(";"); ok {
			return nil
		}

		if p.lex.IsEnd() || p.lex.IsGlimpse(")") {
			return nil
		}

		return p.lex.NewFormatError(lexer.ErrorCodeValuesNotSeparated)
	}
}

// value reads one value of the detected type. skip reads it without adding it to bag.
func (p *parser) value(fieldName string, field *fieldset.FieldConfig, valueType lexer.ValueType, bag *condition.ValuesBag, path string, skip bool) error {
	switch valueType {
	case lexer.ValueTypeSimple:
		_, excluded := p.lex.MatchOptional("!")

		value, err := p.lex.ValuePart(fieldName, lexer.ValueTerminators)
		if err != nil {
			return err
		}

		switch {
		case skip:
		case excluded:
			bag.AddExcludedSimpleValue(value)
		default:
			bag.AddSimpleValue(value)
		}

	case lexer.ValueTypeRange:
		_, excluded := p.lex.MatchOptional("!")

		raw, err := p.lex.RangeValue(fieldName)
		if err != nil {
			return err
		}

		if skip {
			return nil
		}

		if field != nil && !validRange(field.Comparator, raw) {
			p.addError(invalidRangeError(path, raw.Lower, raw.Upper))
			return nil
		}

		r := condition.Range{
			Lower:          raw.Lower,
			Upper:          raw.Upper,
			LowerInclusive: raw.LowerInclusive,
			UpperInclusive: raw.UpperInclusive,
		}

		if excluded {
			bag.AddExcludedRange(r)
		} else {
			bag.AddRange(r)
		}

	case lexer.ValueTypeCompare:
		raw, err := p.lex.ComparisonValue(fieldName)
		if err != nil {
			return err
		}

		if !skip {
			bag.AddComparison(condition.Compare{Operator: raw.Operator, Value: raw.Value})
		}

	case lexer.ValueTypePatternMatch:
		raw, err := p.lex.PatternMatchValue()
		if err != nil {
			return err
		}

		if !skip {
			bag.AddPatternMatch(condition.PatternMatch{
				Type:            condition.PatternType(raw.Type),
				Value:           raw.Value,
				CaseInsensitive: raw.CaseInsensitive,
			})
		}

	case lexer.ValueTypeNone:
		_, err := p.lex.StringValue(lexer.ValueTerminators)
		return err
	}

	return nil
}

func validRange(cmp fieldset.ValueComparator, r lexer.RangeValue) bool {
	if cmp == nil || !cmp.Accepts(r.Lower) || !cmp.Accepts(r.Upper) {
		return true
	}

	return cmp.IsLower(r.Lower, r.Upper)
}
