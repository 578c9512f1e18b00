package lexer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fieldquery/fieldquery/internal/errors"
)

// ErrorCode categorizes lexer and parser failures for message templates and hint lookup.
type ErrorCode int

const (
	ErrorCodeUnknown ErrorCode = iota
	ErrorCodeUnexpectedInput
	ErrorCodeUnexpectedEnd
	ErrorCodeMissingEndQuote
	ErrorCodeQuotesMustEscape
	ErrorCodeQuotedValueRequiresQuoting
	ErrorCodeSpecialCharsRequireQuoting
	ErrorCodeSpacesRequireQuoting
	ErrorCodeIncompletePattern
	ErrorCodeUnknownPatternFlag
	ErrorCodeSpacesInOperator
	ErrorCodeValuesNotSeparated
	ErrorCodeFieldWithoutValues
	ErrorCodeGroupNotOpen
	ErrorCodeMisplacedGroupLogical
)

var errorMessages = map[ErrorCode]string{
	ErrorCodeMissingEndQuote:            "Missing end quote",
	ErrorCodeQuotesMustEscape:           `Quotes inside a quoted value must be escaped by doubling them`,
	ErrorCodeQuotedValueRequiresQuoting: "A value containing quotes must be surrounded by quotes",
	ErrorCodeSpecialCharsRequireQuoting: "A value containing special characters (" + SpecialChars + ") must be surrounded by quotes",
	ErrorCodeSpacesRequireQuoting:       "A value containing spaces must be surrounded by quotes",
	ErrorCodeIncompletePattern:          `A pattern-match value requires an operator after "~"`,
	ErrorCodeUnknownPatternFlag:         `Unknown operator flag, expected "i" and/or "!"`,
	ErrorCodeSpacesInOperator:           "A pattern-match operator cannot contain spaces",
	ErrorCodeValuesNotSeparated:         `Values must be separated by a ",". A values list must end with ";" or ")"`,
	ErrorCodeFieldWithoutValues:         "A field must have at least one value",
	ErrorCodeGroupNotOpen:               "Cannot close group as this field is not in a group",
	ErrorCodeMisplacedGroupLogical:      "A group logical operator can only be used at the start of the input or before a group opening",
}

var errorTitles = map[ErrorCode]string{
	ErrorCodeUnexpectedInput:            "unexpected input",
	ErrorCodeUnexpectedEnd:              "unexpected end of input",
	ErrorCodeMissingEndQuote:            "unterminated quoted value",
	ErrorCodeQuotesMustEscape:           "unescaped quote",
	ErrorCodeQuotedValueRequiresQuoting: "unquoted quote",
	ErrorCodeSpecialCharsRequireQuoting: "unquoted special character",
	ErrorCodeSpacesRequireQuoting:       "unquoted space",
	ErrorCodeIncompletePattern:          "incomplete pattern match",
	ErrorCodeUnknownPatternFlag:         "unknown pattern-match flag",
	ErrorCodeSpacesInOperator:           "space in pattern-match operator",
	ErrorCodeValuesNotSeparated:         "malformed values list",
	ErrorCodeFieldWithoutValues:         "field without values",
	ErrorCodeGroupNotOpen:               "unbalanced group",
	ErrorCodeMisplacedGroupLogical:      "misplaced group operator",
}

// Message returns the fixed message of a format error code.
func (code ErrorCode) Message() string {
	return errorMessages[code]
}

// Title returns a short headline used by FormatDiagnostic.
func (code ErrorCode) Title() string {
	if title, ok := errorTitles[code]; ok {
		return title
	}

	return "invalid query"
}

// Location is where in the (normalized) query an error was detected.
type Location struct {
	Query  string
	Line   int
	Column int
}

// SourceLine returns the query line the location points at.
func (loc Location) SourceLine() string {
	lines := strings.Split(loc.Query, "\n")
	if loc.Line < 1 || loc.Line > len(lines) {
		return ""
	}

	return lines[loc.Line-1]
}

// SyntaxError means the expected token was not found at the cursor.
type SyntaxError struct {
	Location
	// Expected lists labels or literal tokens that would have been accepted.
	Expected []string
	// Found is "end of string", "line end" or up to ten characters of the remaining input.
	Found string
	Code  ErrorCode
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("Syntax error on line %d column %d: expected %s but found %s",
		e.Line, e.Column, e.expectedList(), e.foundText())
}

// Template returns the message with `{{ name }}` placeholders, see Parameters.
func (e SyntaxError) Template() string {
	return "Syntax error on line {{ line }} column {{ column }}: expected {{ expected }} but found {{ found }}"
}

// Parameters returns the values for Template.
func (e SyntaxError) Parameters() map[string]string {
	return map[string]string{
		"line":     strconv.Itoa(e.Line),
		"column":   strconv.Itoa(e.Column),
		"expected": e.expectedList(),
		"found":    e.foundText(),
	}
}

func (e SyntaxError) expectedList() string {
	quoted := make([]string, len(e.Expected))

	for i, expected := range e.Expected {
		quoted[i] = strconv.Quote(expected)
	}

	return strings.Join(quoted, " or ")
}

func (e SyntaxError) foundText() string {
	if e.Code == ErrorCodeUnexpectedEnd {
		return e.Found
	}

	return strconv.Quote(e.Found)
}

// FormatError means a token was recognized but breaks a finer rule, such as an unquoted space.
type FormatError struct {
	Location
	Code ErrorCode
}

func (e FormatError) Error() string {
	return fmt.Sprintf("Format error on line %d column %d: %s", e.Line, e.Column, e.Code.Message())
}

// Template returns the message with `{{ name }}` placeholders, see Parameters.
func (e FormatError) Template() string {
	return "Format error on line {{ line }} column {{ column }}: " + e.Code.Message()
}

// Parameters returns the values for Template.
func (e FormatError) Parameters() map[string]string {
	return map[string]string{
		"line":   strconv.Itoa(e.Line),
		"column": strconv.Itoa(e.Column),
	}
}

// ErrNoSnapshot is the panic value of RestoreCursor when no snapshot was taken.
var ErrNoSnapshot = errors.New("lexer: unable to restore cursor because no snapshot was stored")

// NewSyntaxError reports that none of expected was found at the cursor.
func (l *Lexer) NewSyntaxError(expected ...string) error {
	err := SyntaxError{
		Location: l.location(),
		Expected: expected,
		Code:     ErrorCodeUnexpectedInput,
	}

	switch {
	case l.IsEnd():
		err.Code = ErrorCodeUnexpectedEnd
		err.Found = "end of string"
	case l.data[l.pos.Cursor] == '\n':
		err.Code = ErrorCodeUnexpectedEnd
		err.Found = "line end"
	default:
		err.Found = l.peek(syntaxContextLength)
	}

	return errors.New(err)
}

// NewFormatError reports code at the cursor.
func (l *Lexer) NewFormatError(code ErrorCode) error {
	return errors.New(FormatError{Location: l.location(), Code: code})
}

func (l *Lexer) location() Location {
	return Location{Query: l.data, Line: l.pos.Line, Column: l.pos.Column}
}
