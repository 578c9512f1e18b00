package lexer

import (
	"regexp"

	"github.com/puzpuzpuz/xsync/v3"
)

const (
	horizontalSpacePattern = `[\t\p{Zs}]+`
	anySpacePattern        = `[\s\p{Zs}]+`
	bracketPattern         = `[\[\]]`
	comparePattern         = `<>|[<>]=?`
	compareGlimpsePattern  = `[<>]=?`
)

// SpecialChars may not appear in an unquoted value.
const SpecialChars = `<>[](),;~!*?=&`

// Terminator sets passed as allowedNext.
const (
	ValueTerminators      = ",;)"
	RangeLowerTerminators = "~"
	RangeUpperTerminators = "[],;)"
	detectTerminators     = ",;)~"
)

// compiled patterns are shared by every lexer, parsers running in parallel included.
var patternCache = xsync.NewMapOf[string, *regexp.Regexp]()

// compilePattern anchors pattern at the cursor. An invalid pattern panics, it can only come
// from a broken value grammar.
func compilePattern(pattern string) *regexp.Regexp {
	re, _ := patternCache.LoadOrCompute(pattern, func() *regexp.Regexp {
		return regexp.MustCompile(`^(?:` + pattern + `)`)
	})

	return re
}
