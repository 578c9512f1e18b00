package lexer_test

import (
	"testing"

	"github.com/fieldquery/fieldquery/internal/errors"
	"github.com/fieldquery/fieldquery/internal/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLexer(t *testing.T, input string) *lexer.Lexer {
	t.Helper()

	l := lexer.New(lexer.DefaultProfile)
	l.Parse(input, nil)

	return l
}

func requireFormatError(t *testing.T, err error, code lexer.ErrorCode, line, column int) {
	t.Helper()

	var formatErr lexer.FormatError

	require.Error(t, err)
	require.True(t, errors.As(err, &formatErr), "expected a FormatError, got %T: %v", err, err)
	assert.Equal(t, code, formatErr.Code)
	assert.Equal(t, line, formatErr.Line)
	assert.Equal(t, column, formatErr.Column)
}

func requireSyntaxError(t *testing.T, err error, column int, found string, expected ...string) {
	t.Helper()

	var syntaxErr lexer.SyntaxError

	require.Error(t, err)
	require.True(t, errors.As(err, &syntaxErr), "expected a SyntaxError, got %T: %v", err, err)
	assert.Equal(t, column, syntaxErr.Column)
	assert.Equal(t, found, syntaxErr.Found)
	assert.Equal(t, expected, syntaxErr.Expected)
}

func TestLexer_ParseNormalizesLineEndings(t *testing.T) {
	t.Parallel()

	l := newLexer(t, "\r\n\r\nname: foo\rbar")

	assert.Equal(t, "\n\nname: foo\nbar", l.Input())
	assert.Equal(t, lexer.Position{Cursor: 2, Offset: 2, Line: 3, Column: 0}, l.Position())
}

func TestLexer_PositionCountsCharacters(t *testing.T) {
	t.Parallel()

	l := newLexer(t, "naïve: café;")

	name, err := l.FieldIdentification()
	require.NoError(t, err)
	assert.Equal(t, "naïve", name)
	assert.Equal(t, lexer.Position{Cursor: 8, Offset: 7, Line: 1, Column: 7}, l.Position())

	value, err := l.StringValue(lexer.ValueTerminators)
	require.NoError(t, err)
	assert.Equal(t, "café", value)
	assert.Equal(t, lexer.Position{Cursor: 13, Offset: 11, Line: 1, Column: 11}, l.Position())
}

func TestLexer_ColumnResetsOnNewLine(t *testing.T) {
	t.Parallel()

	l := newLexer(t, "name: foo,\n  bar;")

	_, err := l.FieldIdentification()
	require.NoError(t, err)

	_, err = l.StringValue(lexer.ValueTerminators)
	require.NoError(t, err)

	_, ok := l.MatchOptional(",")
	require.True(t, ok)

	l.SkipEmptyLines()

	assert.Equal(t, 2, l.Position().Line)
	assert.Equal(t, 2, l.Position().Column)

	value, err := l.StringValue(lexer.ValueTerminators)
	require.NoError(t, err)
	assert.Equal(t, "bar", value)
}

func TestLexer_RestoreCursorWithoutSnapshotPanics(t *testing.T) {
	t.Parallel()

	l := newLexer(t, "name: foo;")

	assert.PanicsWithValue(t, lexer.ErrNoSnapshot, l.RestoreCursor)
}

func TestLexer_SnapshotHoldsOnePosition(t *testing.T) {
	t.Parallel()

	l := newLexer(t, "name: foo;")

	l.Snapshot()

	_, err := l.FieldIdentification()
	require.NoError(t, err)

	second := l.Position()
	l.Snapshot()

	_, err = l.StringValue(lexer.ValueTerminators)
	require.NoError(t, err)

	l.RestoreCursor()
	assert.Equal(t, second, l.Position())

	assert.Panics(t, l.RestoreCursor)
}

func TestLexer_MatchOptional(t *testing.T) {
	t.Parallel()

	l := newLexer(t, "(  foo")

	assert.True(t, l.IsGlimpse("("))
	assert.False(t, l.IsGlimpse(")"))

	_, ok := l.MatchOptional(")")
	assert.False(t, ok)
	assert.Equal(t, 0, l.Position().Column)

	match, ok := l.MatchOptional("(")
	assert.True(t, ok)
	assert.Equal(t, "(", match)
	assert.Equal(t, 3, l.Position().Column)

	match, ok = l.MatchOptional(`[a-z]+`)
	assert.True(t, ok)
	assert.Equal(t, "foo", match)
	assert.True(t, l.IsEnd())
}

func TestLexer_ExpectsReportsWhatWasFound(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		found    string
		column   int
		expected []string
	}{
		{
			name:     "remaining input is cut to ten characters",
			input:    "name: value, value2;",
			found:    "value, val",
			column:   6,
			expected: []string{"("},
		},
		{
			name:     "end of input",
			input:    "name: ",
			found:    "end of string",
			column:   6,
			expected: []string{"("},
		},
		{
			name:     "line end",
			input:    "name:\nfoo",
			found:    "line end",
			column:   5,
			expected: []string{"("},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			l := newLexer(t, tc.input)

			_, err := l.FieldIdentification()
			require.NoError(t, err)

			_, err = l.Expects("(")
			requireSyntaxError(t, err, tc.column, tc.found, tc.expected...)
		})
	}
}

func TestLexer_SyntaxErrorMessage(t *testing.T) {
	t.Parallel()

	l := newLexer(t, "name: ")

	_, err := l.FieldIdentification()
	require.NoError(t, err)

	_, err = l.StringValue(lexer.ValueTerminators)
	require.EqualError(t, err, `Syntax error on line 1 column 6: expected "StringValue" but found end of string`)

	l = newLexer(t, "name: )foo")

	_, err = l.FieldIdentification()
	require.NoError(t, err)

	_, err = l.Expects("(", "(", "value")
	require.EqualError(t, err, `Syntax error on line 1 column 6: expected "(" or "value" but found ")foo"`)

	var syntaxErr lexer.SyntaxError

	require.True(t, errors.As(err, &syntaxErr))
	assert.Equal(t, map[string]string{
		"line":     "1",
		"column":   "6",
		"expected": `"(" or "value"`,
		"found":    `")foo"`,
	}, syntaxErr.Parameters())
}

func TestLexer_StringValue(t *testing.T) {
	t.Parallel()

	l := newLexer(t, `name: "value", "value""2", "!foo", bar  ;`)

	_, err := l.FieldIdentification()
	require.NoError(t, err)

	var values []string

	for {
		value, err := l.StringValue(lexer.ValueTerminators)
		require.NoError(t, err)

		values = append(values, value)

		if _, ok := l.MatchOptional(","); !ok {
			break
		}
	}

	assert.Equal(t, []string{"value", `value"2`, "!foo", "bar"}, values)
	assert.True(t, l.IsGlimpse(";"))
}

func TestLexer_StringValueKeepsInvalidBytes(t *testing.T) {
	t.Parallel()

	l := newLexer(t, "\xffbcdef;")

	value, err := l.StringValue(lexer.ValueTerminators)
	require.NoError(t, err)
	assert.Equal(t, "\xffbcdef", value)
	assert.Equal(t, lexer.Position{Cursor: 6, Offset: 6, Line: 1, Column: 6}, l.Position())

	l = newLexer(t, "\"a\xffb\xe2\x82\";")

	value, err = l.StringValue(lexer.ValueTerminators)
	require.NoError(t, err)
	assert.Equal(t, "a\xffb\xe2\x82", value)
	assert.True(t, l.IsGlimpse(";"))
}

func TestLexer_StringValueRejectsEmptyValue(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input  string
		found  string
		column int
	}{
		{input: ", b", found: ", b", column: 0},
		{input: "  ;", found: ";", column: 2},
		{input: ")", found: ")", column: 0},
		{input: "\n", found: "end of string", column: 0},
	}

	for _, tc := range testCases {
		l := newLexer(t, tc.input)

		_, err := l.StringValue(lexer.ValueTerminators)
		requireSyntaxError(t, err, tc.column, tc.found, "StringValue")
	}

	l := newLexer(t, `"";`)

	value, err := l.StringValue(lexer.ValueTerminators)
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestLexer_StringValueFormatErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		input  string
		code   lexer.ErrorCode
		line   int
		column int
	}{
		{
			name:   "unquoted spaces",
			input:  "field1: value value2)",
			code:   lexer.ErrorCodeSpacesRequireQuoting,
			line:   1,
			column: 20,
		},
		{
			name:   "unescaped quote after closing quote",
			input:  `name: "foo"bar;`,
			code:   lexer.ErrorCodeQuotesMustEscape,
			line:   1,
			column: 11,
		},
		{
			name:   "missing end quote at end of input",
			input:  `name: "foo`,
			code:   lexer.ErrorCodeMissingEndQuote,
			line:   1,
			column: 10,
		},
		{
			name:   "missing end quote at line end",
			input:  "name: \"foo\nbar\"",
			code:   lexer.ErrorCodeMissingEndQuote,
			line:   1,
			column: 10,
		},
		{
			name:   "quote in unquoted value",
			input:  `name: fo"o;`,
			code:   lexer.ErrorCodeQuotedValueRequiresQuoting,
			line:   1,
			column: 8,
		},
		{
			name:   "special character in unquoted value",
			input:  "name: fo*o;",
			code:   lexer.ErrorCodeSpecialCharsRequireQuoting,
			line:   1,
			column: 8,
		},
		{
			name:   "error on a later line",
			input:  "\n\nname: foo bar;",
			code:   lexer.ErrorCodeSpacesRequireQuoting,
			line:   3,
			column: 13,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			l := newLexer(t, tc.input)

			_, err := l.FieldIdentification()
			require.NoError(t, err)

			_, err = l.StringValue(lexer.ValueTerminators)
			requireFormatError(t, err, tc.code, tc.line, tc.column)
		})
	}
}

func TestLexer_QuotedValueMayEndTheLine(t *testing.T) {
	t.Parallel()

	l := newLexer(t, "name: \"foo\"\n;")

	_, err := l.FieldIdentification()
	require.NoError(t, err)

	value, err := l.StringValue(lexer.ValueTerminators)
	require.NoError(t, err)
	assert.Equal(t, "foo", value)
}

func TestLexer_FieldIdentification(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		expected string
		profile  lexer.Profile
		wantErr  bool
	}{
		{name: "plain", input: "field: x", expected: "field"},
		{name: "digits and dash", input: "field-1: x", expected: "field-1"},
		{name: "underscore", input: "field_name: x", expected: "field_name"},
		{name: "space before colon", input: "field : x", expected: "field"},
		{name: "unicode letters", input: "ŕesumé: x", expected: "ŕesumé"},
		{name: "order marker", input: "@id: x", expected: "@id"},
		{name: "private marker", input: "_id: x", expected: "_id"},
		{name: "order of private field", input: "@_id: x", expected: "@_id"},
		{name: "leading digit", input: "1field: x", wantErr: true},
		{name: "missing colon", input: "field x", wantErr: true},
		{name: "legacy plain", input: "field: x", expected: "field", profile: lexer.LegacyProfile},
		{name: "legacy rejects order marker", input: "@id: x", profile: lexer.LegacyProfile, wantErr: true},
		{name: "legacy rejects private marker", input: "_id: x", profile: lexer.LegacyProfile, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			l := lexer.New(tc.profile)
			l.Parse(tc.input, nil)

			assert.Equal(t, !tc.wantErr, l.IsFieldGlimpse())

			name, err := l.FieldIdentification()
			if tc.wantErr {
				requireSyntaxError(t, err, 0, l.Input()[:min(len(l.Input()), 10)], "FieldIdentification")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, name)
			assert.True(t, l.IsGlimpse("x"))
		})
	}
}

func TestLexer_RangeValue(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		expected lexer.RangeValue
	}{
		{
			name:     "without brackets",
			input:    "1~10",
			expected: lexer.RangeValue{Lower: "1", Upper: "10", LowerInclusive: true, UpperInclusive: true},
		},
		{
			name:     "inclusive brackets with spaces",
			input:    "[1 ~ 10]",
			expected: lexer.RangeValue{Lower: "1", Upper: "10", LowerInclusive: true, UpperInclusive: true},
		},
		{
			name:     "exclusive brackets",
			input:    "]1~10[",
			expected: lexer.RangeValue{Lower: "1", Upper: "10"},
		},
		{
			name:     "exclusive upper",
			input:    "[1~10[",
			expected: lexer.RangeValue{Lower: "1", Upper: "10", LowerInclusive: true},
		},
		{
			name:     "quoted bounds",
			input:    `"a b"~"c~d"`,
			expected: lexer.RangeValue{Lower: "a b", Upper: "c~d", LowerInclusive: true, UpperInclusive: true},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			l := newLexer(t, tc.input)

			value, err := l.RangeValue("field")
			require.NoError(t, err)
			assert.Equal(t, tc.expected, value)
			assert.True(t, l.IsEnd())
		})
	}
}

func TestLexer_RangeValueWithoutUpperBound(t *testing.T) {
	t.Parallel()

	l := newLexer(t, "1~")

	_, err := l.RangeValue("field")
	requireSyntaxError(t, err, 2, "end of string", "StringValue")
}

func TestLexer_ComparisonValue(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input    string
		expected lexer.CompareValue
	}{
		{input: ">=10", expected: lexer.CompareValue{Operator: ">=", Value: "10"}},
		{input: "<=10", expected: lexer.CompareValue{Operator: "<=", Value: "10"}},
		{input: "> 10", expected: lexer.CompareValue{Operator: ">", Value: "10"}},
		{input: "<10", expected: lexer.CompareValue{Operator: "<", Value: "10"}},
		{input: "<> 5", expected: lexer.CompareValue{Operator: "<>", Value: "5"}},
		{input: `>"2020-01-01 10:00"`, expected: lexer.CompareValue{Operator: ">", Value: "2020-01-01 10:00"}},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()

			l := newLexer(t, tc.input)

			value, err := l.ComparisonValue("field")
			require.NoError(t, err)
			assert.Equal(t, tc.expected, value)
		})
	}

	l := newLexer(t, "=5")

	_, err := l.ComparisonValue("field")
	requireSyntaxError(t, err, 0, "=5", "CompareOperator")
}

func TestLexer_PatternMatchValue(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		profile  lexer.Profile
		expected lexer.PatternMatchValue
	}{
		{
			name:     "contains",
			input:    "~*foo",
			expected: lexer.PatternMatchValue{Type: lexer.PatternContains, Value: "foo"},
		},
		{
			name:     "starts with case insensitive",
			input:    "~i>foo",
			expected: lexer.PatternMatchValue{Type: lexer.PatternStartsWith, Value: "foo", CaseInsensitive: true},
		},
		{
			name:     "negated ends with",
			input:    "~!<foo",
			expected: lexer.PatternMatchValue{Type: "NOT_" + lexer.PatternEndsWith, Value: "foo"},
		},
		{
			name:     "negated equals case insensitive",
			input:    "~i!=foo",
			expected: lexer.PatternMatchValue{Type: "NOT_" + lexer.PatternEquals, Value: "foo", CaseInsensitive: true},
		},
		{
			name:     "flags in any order with quoted value",
			input:    `~!i* "foo bar"`,
			expected: lexer.PatternMatchValue{Type: "NOT_" + lexer.PatternContains, Value: "foo bar", CaseInsensitive: true},
		},
		{
			name:     "legacy regex",
			input:    `~?"^foo$"`,
			profile:  lexer.LegacyProfile,
			expected: lexer.PatternMatchValue{Type: lexer.PatternRegex, Value: "^foo$"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			l := lexer.New(tc.profile)
			l.Parse(tc.input, nil)

			value, err := l.PatternMatchValue()
			require.NoError(t, err)
			assert.Equal(t, tc.expected, value)
		})
	}
}

func TestLexer_PatternMatchValueSpaceAfterTilde(t *testing.T) {
	t.Parallel()

	l := newLexer(t, "~ *foo")

	value, err := l.PatternMatchValue()
	require.NoError(t, err)
	assert.Equal(t, lexer.PatternMatchValue{Type: lexer.PatternContains, Value: "foo"}, value)
}

func TestLexer_PatternMatchValueErrors(t *testing.T) {
	t.Parallel()

	l := newLexer(t, `name: ~!!*"value";`)

	_, err := l.FieldIdentification()
	require.NoError(t, err)

	_, err = l.PatternMatchValue()
	requireFormatError(t, err, lexer.ErrorCodeUnknownPatternFlag, 1, 7)

	l = newLexer(t, "~i *foo")
	_, err = l.PatternMatchValue()
	requireFormatError(t, err, lexer.ErrorCodeSpacesInOperator, 1, 1)

	l = newLexer(t, "~*;")
	_, err = l.PatternMatchValue()
	requireSyntaxError(t, err, 2, ";", "StringValue")

	l = newLexer(t, "~")
	_, err = l.PatternMatchValue()
	requireFormatError(t, err, lexer.ErrorCodeIncompletePattern, 1, 1)

	l = newLexer(t, "~?foo")
	_, err = l.PatternMatchValue()
	requireSyntaxError(t, err, 1, "?foo", "PatternMatch")
}

func TestLexer_DetectValueType(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input    string
		expected lexer.ValueType
	}{
		{input: "", expected: lexer.ValueTypeNone},
		{input: "foo", expected: lexer.ValueTypeSimple},
		{input: "!foo", expected: lexer.ValueTypeSimple},
		{input: `"a~b"`, expected: lexer.ValueTypeSimple},
		{input: "foo, bar", expected: lexer.ValueTypeSimple},
		{input: "1~10", expected: lexer.ValueTypeRange},
		{input: "!1 ~ 10", expected: lexer.ValueTypeRange},
		{input: "[1~10]", expected: lexer.ValueTypeRange},
		{input: "]1~10[", expected: lexer.ValueTypeRange},
		{input: "!]1~10", expected: lexer.ValueTypeRange},
		{input: ">10", expected: lexer.ValueTypeCompare},
		{input: "<=10", expected: lexer.ValueTypeCompare},
		{input: "<>10", expected: lexer.ValueTypeCompare},
		{input: "~*foo", expected: lexer.ValueTypePatternMatch},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()

			l := newLexer(t, tc.input)
			before := l.Position()

			valueType, err := l.DetectValueType("field")
			require.NoError(t, err)
			assert.Equal(t, tc.expected, valueType)
			assert.Equal(t, before, l.Position())
		})
	}
}

func TestLexer_DetectValueTypeRestoresOnError(t *testing.T) {
	t.Parallel()

	l := newLexer(t, "foo bar;")

	_, err := l.DetectValueType("field")
	requireFormatError(t, err, lexer.ErrorCodeSpacesRequireQuoting, 1, 7)
	assert.Equal(t, 0, l.Position().Cursor)
}

func TestLexer_CustomValueGrammar(t *testing.T) {
	t.Parallel()

	point := lexer.ValueGrammarFunc(func(l *lexer.Lexer, allowedNext string) (string, error) {
		if _, err := l.Expects("("); err != nil {
			return "", err
		}

		lat, err := l.StringValue(",")
		if err != nil {
			return "", err
		}

		if _, err := l.Expects(","); err != nil {
			return "", err
		}

		lon, err := l.StringValue(")")
		if err != nil {
			return "", err
		}

		if _, err := l.Expects(")"); err != nil {
			return "", err
		}

		return "(" + lat + "," + lon + ")", nil
	})

	grammars := map[string]lexer.ValueGrammar{"geo": point}

	l := lexer.New(lexer.DefaultProfile)
	l.Parse("geo: (12, 16);", grammars)

	field, err := l.FieldIdentification()
	require.NoError(t, err)

	valueType, err := l.DetectValueType(field)
	require.NoError(t, err)
	assert.Equal(t, lexer.ValueTypeSimple, valueType)

	value, err := l.ValuePart(field, lexer.ValueTerminators)
	require.NoError(t, err)
	assert.Equal(t, "(12,16)", value)
	assert.True(t, l.IsGlimpse(";"))

	l.Parse("geo: value, value2;", grammars)

	field, err = l.FieldIdentification()
	require.NoError(t, err)

	_, err = l.ValuePart(field, lexer.ValueTerminators)
	requireSyntaxError(t, err, 5, "value, val", "(")

	// other fields keep the plain string grammar
	l.Parse("name: value;", grammars)

	field, err = l.FieldIdentification()
	require.NoError(t, err)

	value, err = l.ValuePart(field, lexer.ValueTerminators)
	require.NoError(t, err)
	assert.Equal(t, "value", value)
}

func TestParseProfile(t *testing.T) {
	t.Parallel()

	profile, err := lexer.ParseProfile("")
	require.NoError(t, err)
	assert.Equal(t, lexer.DefaultProfile, profile)

	profile, err = lexer.ParseProfile("Legacy")
	require.NoError(t, err)
	assert.Equal(t, lexer.LegacyProfile, profile)
	assert.Equal(t, "legacy", profile.String())
	assert.True(t, profile.SupportsRegex())
	assert.False(t, profile.SupportsFieldMarkers())

	_, err = lexer.ParseProfile("modern")
	require.Error(t, err)
}
