package lexer_test

import (
	"strings"
	"testing"

	"github.com/fieldquery/fieldquery/internal/errors"
	"github.com/fieldquery/fieldquery/internal/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDiagnostic_FormatError(t *testing.T) {
	t.Parallel()

	l := newLexer(t, "field1: value value2)")

	_, err := l.FieldIdentification()
	require.NoError(t, err)

	_, err = l.StringValue(lexer.ValueTerminators)
	require.Error(t, err)

	out, ok := lexer.FormatDiagnostic(err, false)
	require.True(t, ok)

	expected := strings.Join([]string{
		"Query error: unquoted space",
		" --> line 1, column 20",
		"",
		"  1 | field1: value value2)",
		"    | " + strings.Repeat(" ", 20) + "^ A value containing spaces must be surrounded by quotes",
		"",
		`  hint: Surround the value with quotes, e.g. "New York".`,
		"",
	}, "\n")

	assert.Equal(t, expected, out)
}

func TestFormatDiagnostic_SyntaxError(t *testing.T) {
	t.Parallel()

	l := newLexer(t, "name: foo;\n1field: bar;")

	_, err := l.FieldIdentification()
	require.NoError(t, err)

	_, err = l.StringValue(lexer.ValueTerminators)
	require.NoError(t, err)

	_, ok := l.MatchOptional(";")
	require.True(t, ok)
	l.SkipEmptyLines()

	_, err = l.FieldIdentification()
	require.Error(t, err)

	out, ok := lexer.FormatDiagnostic(err, false)
	require.True(t, ok)

	assert.Contains(t, out, "Query error: unexpected input")
	assert.Contains(t, out, " --> line 2, column 0")
	assert.Contains(t, out, "  2 | 1field: bar;")
	assert.Contains(t, out, `    | ^ expected "FieldIdentification"`)
	assert.Contains(t, out, "hint: Field names start with a letter")
}

func TestFormatDiagnostic_Color(t *testing.T) {
	t.Parallel()

	l := newLexer(t, `name: "foo`)

	_, err := l.FieldIdentification()
	require.NoError(t, err)

	_, err = l.StringValue(lexer.ValueTerminators)
	require.Error(t, err)

	plain, ok := lexer.FormatDiagnostic(err, false)
	require.True(t, ok)
	assert.NotContains(t, plain, "\x1b[")

	colored, ok := lexer.FormatDiagnostic(err, true)
	require.True(t, ok)
	assert.Contains(t, colored, "\x1b[")
	assert.Contains(t, colored, "unterminated quoted value")
}

func TestFormatDiagnostic_OtherErrors(t *testing.T) {
	t.Parallel()

	_, ok := lexer.FormatDiagnostic(errors.New("boom"), false)
	assert.False(t, ok)
}

func TestGetHint(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		code     lexer.ErrorCode
		found    string
		expected []string
		contains string
	}{
		{
			name:     "compare operator",
			code:     lexer.ErrorCodeUnexpectedInput,
			found:    "=5",
			expected: []string{"CompareOperator"},
			contains: "<, <=, >, >= and <>",
		},
		{
			name:     "unbalanced parenthesis",
			code:     lexer.ErrorCodeUnexpectedInput,
			found:    ");",
			expected: []string{"("},
			contains: "no matching '('",
		},
		{
			name:     "reserved character",
			code:     lexer.ErrorCodeSpecialCharsRequireQuoting,
			found:    "*o;",
			contains: "The character '*' is reserved",
		},
		{
			name:     "unknown flag",
			code:     lexer.ErrorCodeUnknownPatternFlag,
			contains: "'~i!*value'",
		},
		{
			name:     "misplaced logical",
			code:     lexer.ErrorCodeMisplacedGroupLogical,
			contains: "'&' (AND)",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Contains(t, lexer.GetHint(tc.code, tc.found, tc.expected), tc.contains)
		})
	}

	assert.Empty(t, lexer.GetHint(lexer.ErrorCodeUnexpectedInput, "foo", []string{"("}))
	assert.Empty(t, lexer.GetHint(lexer.ErrorCodeUnknown, "", nil))
}
