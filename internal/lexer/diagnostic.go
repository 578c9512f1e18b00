package lexer

import (
	"fmt"
	"strings"

	"github.com/fieldquery/fieldquery/internal/errors"
	"github.com/mgutz/ansi"
	"github.com/mitchellh/go-wordwrap"
)

const hintWidth = 80

// FormatDiagnostic renders a SyntaxError or FormatError found in err's chain as a multi-line
// message pointing at the offending column. ok is false for any other error.
//
//	Query error: unquoted space
//	 --> line 1, column 20
//
//	   1 | field1: value value2)
//	     |                     ^ A value containing spaces must be surrounded by quotes
//
//	  hint: Surround the value with quotes, e.g. "New York".
func FormatDiagnostic(err error, useColor bool) (string, bool) {
	var (
		syntaxErr SyntaxError
		formatErr FormatError
		loc       Location
		code      ErrorCode
		detail    string
		hint      string
	)

	switch {
	case errors.As(err, &syntaxErr):
		loc, code = syntaxErr.Location, syntaxErr.Code
		detail = "expected " + syntaxErr.expectedList()
		hint = GetHint(code, syntaxErr.Found, syntaxErr.Expected)
	case errors.As(err, &formatErr):
		loc, code = formatErr.Location, formatErr.Code
		detail = code.Message()
		hint = GetHint(code, runesFrom(loc.SourceLine(), loc.Column), nil)
	default:
		return "", false
	}

	paint := func(str, style string) string {
		if !useColor {
			return str
		}

		return ansi.Color(str, style)
	}

	var sb strings.Builder

	lineNo := fmt.Sprintf("%d", loc.Line)
	gutter := strings.Repeat(" ", len(lineNo))

	fmt.Fprintf(&sb, "Query error: %s\n", code.Title())
	fmt.Fprintf(&sb, "%s line %d, column %d\n", paint(gutter+"-->", "blue+b"), loc.Line, loc.Column)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "  %s %s %s\n", lineNo, paint("|", "blue+b"), loc.SourceLine())
	fmt.Fprintf(&sb, "  %s %s %s%s %s\n", gutter, paint("|", "blue+b"), strings.Repeat(" ", loc.Column), paint("^", "red+b"), detail)

	if hint != "" {
		wrapped := strings.ReplaceAll(wordwrap.WrapString(hint, hintWidth), "\n", "\n        ")
		fmt.Fprintf(&sb, "\n  %s %s\n", paint("hint:", "cyan+b"), wrapped)
	}

	return sb.String(), true
}

// runesFrom returns line from the column-th character on.
func runesFrom(line string, column int) string {
	runes := []rune(line)
	if column >= len(runes) {
		return ""
	}

	return string(runes[column:])
}
