package lexer

import (
	"fmt"
	"strings"
)

// GetHint returns a suggestion for fixing an error with the given code, or "" when the
// message speaks for itself. found is the offending input (SyntaxError.Found or the character
// at the error column).
func GetHint(code ErrorCode, found string, expected []string) string {
	switch code {
	case ErrorCodeUnexpectedInput:
		return getUnexpectedInputHint(found, expected)
	case ErrorCodeUnexpectedEnd:
		return "The query ended early. Every '(' needs a matching ')' and every field a value."
	case ErrorCodeMissingEndQuote:
		return `Close the quoted value with '"' on the same line.`
	case ErrorCodeQuotesMustEscape, ErrorCodeQuotedValueRequiresQuoting:
		return `Write a literal quote as two quotes inside a quoted value, e.g. "value""2".`
	case ErrorCodeSpecialCharsRequireQuoting:
		return getSpecialCharHint(found)
	case ErrorCodeSpacesRequireQuoting:
		return `Surround the value with quotes, e.g. "New York".`
	case ErrorCodeIncompletePattern:
		return "Add an operator after '~': '*' contains, '>' starts with, '<' ends with, '=' equals."
	case ErrorCodeUnknownPatternFlag:
		return "Only 'i' (case-insensitive) and '!' (negate) may precede the operator, e.g. '~i!*value'."
	case ErrorCodeSpacesInOperator:
		return "Write the flags and the operator without spaces, e.g. '~i>value'."
	case ErrorCodeValuesNotSeparated:
		return "Remove the trailing ',' or add a value after it."
	case ErrorCodeFieldWithoutValues:
		return "Give the field at least one value, e.g. 'name: value;', or remove it."
	case ErrorCodeGroupNotOpen:
		return "This ')' has no matching '('."
	case ErrorCodeMisplacedGroupLogical:
		return "Use '*' (OR) or '&' (AND) as the very first character of the query or directly before '('."

	// Nothing useful can be said about these.
	case ErrorCodeUnknown:
		return ""
	}

	return ""
}

func getUnexpectedInputHint(found string, expected []string) string {
	for _, label := range expected {
		switch label {
		case "FieldIdentification":
			return "Field names start with a letter and end with a colon, e.g. 'name: value'."
		case "CompareOperator":
			return "Valid comparison operators are <, <=, >, >= and <>."
		case "PatternMatch":
			return "A pattern match looks like '~*value', with optional 'i' and '!' flags before the operator."
		}
	}

	if strings.HasPrefix(found, ")") {
		return "This ')' has no matching '('."
	}

	return ""
}

func getSpecialCharHint(found string) string {
	if found == "" {
		return `Surround the value with quotes, e.g. "a;b".`
	}

	return fmt.Sprintf("The character '%c' is reserved. Surround the value with quotes to use it literally.", []rune(found)[0])
}
