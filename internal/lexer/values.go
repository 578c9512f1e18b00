package lexer

import (
	"strings"
	"unicode"
)

// ValueType is the classification made by DetectValueType.
type ValueType string

const (
	ValueTypeNone         ValueType = ""
	ValueTypeSimple       ValueType = "simple-value"
	ValueTypeRange        ValueType = "range"
	ValueTypeCompare      ValueType = "compare"
	ValueTypePatternMatch ValueType = "pattern-match"
)

// Pattern-match types as produced by PatternMatchValue. Negated types carry the NOT_ prefix.
const (
	PatternContains   = "CONTAINS"
	PatternStartsWith = "STARTS_WITH"
	PatternEndsWith   = "ENDS_WITH"
	PatternEquals     = "EQUALS"
	PatternRegex      = "REGEX"

	negatedPatternPrefix = "NOT_"
)

var patternOperatorTypes = map[string]string{
	"*": PatternContains,
	">": PatternStartsWith,
	"<": PatternEndsWith,
	"=": PatternEquals,
	"?": PatternRegex,
}

var patternFlags = map[string]struct{}{
	"":   {},
	"i":  {},
	"!":  {},
	"i!": {},
	"!i": {},
}

// RangeValue is the raw result of reading `[lower ~ upper]`.
type RangeValue struct {
	Lower          string
	Upper          string
	LowerInclusive bool
	UpperInclusive bool
}

// CompareValue is the raw result of reading `>=value`.
type CompareValue struct {
	Operator string
	Value    string
}

// PatternMatchValue is the raw result of reading `~i!*value`.
type PatternMatchValue struct {
	Type            string
	Value           string
	CaseInsensitive bool
}

// StringValue reads a quoted value, or an unquoted one that ends before any character of
// allowedNext, a line feed or the end of input. Unquoted values are right-trimmed, never empty
// and may not contain spaces, quotes or SpecialChars. Bytes that are not valid UTF-8 are kept
// as is.
func (l *Lexer) StringValue(allowedNext string) (string, error) {
	if l.IsEnd() {
		return "", l.NewSyntaxError("StringValue")
	}

	if l.current() == '"' {
		return l.quotedValue(allowedNext)
	}

	var value strings.Builder

	for !l.IsEnd() {
		char := l.current()

		if char == '\n' || strings.ContainsRune(allowedNext, char) {
			break
		}

		if char == '"' {
			return "", l.NewFormatError(ErrorCodeQuotedValueRequiresQuoting)
		}

		if strings.ContainsRune(SpecialChars, char) {
			return "", l.NewFormatError(ErrorCodeSpecialCharsRequireQuoting)
		}

		value.WriteString(l.advance())
	}

	result := strings.TrimRightFunc(value.String(), unicode.IsSpace)
	if result == "" {
		return "", l.NewSyntaxError("StringValue")
	}

	if strings.IndexFunc(result, unicode.IsSpace) >= 0 {
		return "", l.NewFormatError(ErrorCodeSpacesRequireQuoting)
	}

	return result, nil
}

// quotedValue reads `"..."` where `""` stands for one literal quote.
func (l *Lexer) quotedValue(allowedNext string) (string, error) {
	var value strings.Builder

	l.moveCursor(`"`)

	for {
		if l.IsEnd() || l.current() == '\n' {
			return "", l.NewFormatError(ErrorCodeMissingEndQuote)
		}

		char := l.current()

		if char == '"' {
			if l.next() != '"' {
				break
			}

			l.moveCursor(`""`)
			value.WriteByte('"')

			continue
		}

		value.WriteString(l.advance())
	}

	l.moveCursor(`"`)
	l.SkipWhitespace()

	// `"foo"bar"` leaves text behind the closing quote
	if !l.IsEnd() && l.current() != '\n' && !strings.ContainsRune(allowedNext, l.current()) {
		return "", l.NewFormatError(ErrorCodeQuotesMustEscape)
	}

	return value.String(), nil
}

// IsFieldGlimpse reports whether a field name (`name:`) starts at the cursor.
func (l *Lexer) IsFieldGlimpse() bool {
	return l.IsGlimpse(l.profile.fieldNamePattern())
}

// FieldIdentification reads `name:` and returns the name, markers included.
func (l *Lexer) FieldIdentification() (string, error) {
	match, err := l.Expects(l.profile.fieldNamePattern(), "FieldIdentification")
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(match), ":")), nil
}

// ValuePart reads a value for field with its custom grammar when one is registered.
func (l *Lexer) ValuePart(field, allowedNext string) (string, error) {
	if grammar, ok := l.grammars[field]; ok && grammar != nil {
		return grammar.LexValue(l, allowedNext)
	}

	return l.StringValue(allowedNext)
}

// RangeValue reads `[lower ~ upper]`. `[` opens and `]` closes inclusively, which is also the
// default when a bracket is omitted; `]lower` and `upper[` are exclusive.
func (l *Lexer) RangeValue(field string) (RangeValue, error) {
	result := RangeValue{LowerInclusive: true, UpperInclusive: true}

	if bracket, ok := l.MatchOptional(bracketPattern); ok {
		result.LowerInclusive = bracket == "["
	}

	var err error

	l.SkipWhitespace()

	if result.Lower, err = l.ValuePart(field, RangeLowerTerminators); err != nil {
		return result, err
	}

	l.SkipWhitespace()

	if _, err = l.Expects("~"); err != nil {
		return result, err
	}

	l.SkipWhitespace()

	if result.Upper, err = l.ValuePart(field, RangeUpperTerminators); err != nil {
		return result, err
	}

	if bracket, ok := l.MatchOptional(bracketPattern); ok {
		result.UpperInclusive = bracket == "]"
	}

	l.SkipEmptyLines()

	return result, nil
}

// ComparisonValue reads `<>`, `<`, `<=`, `>` or `>=` followed by a value.
func (l *Lexer) ComparisonValue(field string) (CompareValue, error) {
	var (
		result CompareValue
		err    error
	)

	if result.Operator, err = l.Expects(comparePattern, "CompareOperator"); err != nil {
		return result, err
	}

	l.SkipWhitespace()

	if result.Value, err = l.ValuePart(field, ValueTerminators); err != nil {
		return result, err
	}

	l.SkipEmptyLines()

	return result, nil
}

// PatternMatchValue reads `~`, optional `i`/`!` flags, an operator and the pattern.
func (l *Lexer) PatternMatchValue() (PatternMatchValue, error) {
	var result PatternMatchValue

	if _, err := l.Expects("~"); err != nil {
		return result, err
	}

	if l.IsEnd() {
		return result, l.NewFormatError(ErrorCodeIncompletePattern)
	}

	groups := compilePattern(l.profile.patternMatchOperator()).FindStringSubmatch(l.data[l.pos.Cursor:])
	if groups == nil {
		return result, l.NewSyntaxError("PatternMatch")
	}

	if strings.IndexFunc(groups[0], unicode.IsSpace) >= 0 {
		return result, l.NewFormatError(ErrorCodeSpacesInOperator)
	}

	flags := groups[1]
	if _, ok := patternFlags[flags]; !ok {
		return result, l.NewFormatError(ErrorCodeUnknownPatternFlag)
	}

	result.CaseInsensitive = strings.Contains(flags, "i")
	result.Type = patternOperatorTypes[groups[2]]

	if strings.Contains(flags, "!") {
		result.Type = negatedPatternPrefix + result.Type
	}

	l.moveCursor(groups[0])
	l.SkipWhitespace()

	value, err := l.StringValue(ValueTerminators)
	if err != nil {
		return result, err
	}

	result.Value = value

	l.SkipEmptyLines()

	return result, nil
}

// DetectValueType classifies the value at the cursor without consuming it. The detection is
// loose: it stops at the first positive signal and leaves real validation to the reader of
// the detected type. Errors raised while scanning ahead are returned as is.
func (l *Lexer) DetectValueType(field string) (ValueType, error) {
	if l.IsEnd() {
		return ValueTypeNone, nil
	}

	if l.IsGlimpse("~") {
		return ValueTypePatternMatch, nil
	}

	// also matches the invalid `><`; ComparisonValue rejects it with a better error
	if l.IsGlimpse(compareGlimpsePattern) {
		return ValueTypeCompare, nil
	}

	l.Snapshot()
	defer l.RestoreCursor()

	l.MatchOptional("!")

	if _, ok := l.MatchOptional(bracketPattern); ok {
		return ValueTypeRange, nil
	}

	if _, err := l.ValuePart(field, detectTerminators); err != nil {
		return ValueTypeNone, err
	}

	if _, ok := l.MatchOptional("~"); ok {
		return ValueTypeRange, nil
	}

	return ValueTypeSimple, nil
}
