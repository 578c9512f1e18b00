package lexer

import (
	"strings"
	"unicode/utf8"
)

const syntaxContextLength = 10

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// ValueGrammar reads one raw value for a field in place of StringValue. It receives the
// characters that may legally follow the value. Implementations should use Expects,
// MatchOptional, IsGlimpse and StringValue only.
type ValueGrammar interface {
	LexValue(l *Lexer, allowedNext string) (string, error)
}

// ValueGrammarFunc adapts a function to ValueGrammar.
type ValueGrammarFunc func(l *Lexer, allowedNext string) (string, error)

// LexValue implements ValueGrammar.
func (fn ValueGrammarFunc) LexValue(l *Lexer, allowedNext string) (string, error) {
	return fn(l, allowedNext)
}

// Lexer is a cursor over one query. It is not safe for concurrent use; Parse resets all state
// so an instance can be reused sequentially.
type Lexer struct {
	profile  Profile
	grammars map[string]ValueGrammar
	data     string
	end      int
	pos      Position
	snapshot *Position
}

// New returns a lexer for the given profile.
func New(profile Profile) *Lexer {
	return &Lexer{profile: profile}
}

// Profile returns the grammar dialect of the lexer.
func (l *Lexer) Profile() Profile {
	return l.profile
}

// Parse resets the lexer to the start of input and skips leading blank space. grammars maps
// field names to custom value grammars and may be nil.
func (l *Lexer) Parse(input string, grammars map[string]ValueGrammar) {
	l.data = lineEndings.Replace(input)
	l.end = len(l.data)
	l.grammars = grammars
	l.pos = Position{Line: 1}
	l.snapshot = nil

	l.SkipEmptyLines()
}

// Input returns the normalized input.
func (l *Lexer) Input() string {
	return l.data
}

// Position returns the current location.
func (l *Lexer) Position() Position {
	return l.pos
}

// IsEnd reports whether the whole input was consumed.
func (l *Lexer) IsEnd() bool {
	return l.pos.Cursor >= l.end
}

// SkipWhitespace skips horizontal white space.
func (l *Lexer) SkipWhitespace() {
	if match, ok := l.match(horizontalSpacePattern); ok {
		l.moveCursor(match)
	}
}

// SkipEmptyLines skips all white space, line feeds included.
func (l *Lexer) SkipEmptyLines() {
	if match, ok := l.match(anySpacePattern); ok {
		l.moveCursor(match)
	}
}

// Snapshot saves the current position for RestoreCursor. Only one snapshot is held; a second
// call replaces the first.
func (l *Lexer) Snapshot() {
	pos := l.pos
	l.snapshot = &pos
}

// RestoreCursor returns to the snapshot and clears it. Restoring without a snapshot is a
// programming error and panics with ErrNoSnapshot.
func (l *Lexer) RestoreCursor() {
	if l.snapshot == nil {
		panic(ErrNoSnapshot)
	}

	l.pos = *l.snapshot
	l.snapshot = nil
}

// IsGlimpse reports whether pattern matches at the cursor without consuming it. A single
// character is compared literally, anything longer is a regular expression.
func (l *Lexer) IsGlimpse(pattern string) bool {
	_, ok := l.match(pattern)
	return ok
}

// MatchOptional consumes pattern and trailing horizontal white space when it matches at the
// cursor. Otherwise nothing is consumed.
func (l *Lexer) MatchOptional(pattern string) (string, bool) {
	match, ok := l.match(pattern)
	if !ok {
		return "", false
	}

	l.moveCursor(match)
	l.SkipWhitespace()

	return match, true
}

// Expects is MatchOptional that fails with a SyntaxError. expected labels the missing token
// in the error and defaults to pattern.
func (l *Lexer) Expects(pattern string, expected ...string) (string, error) {
	if match, ok := l.MatchOptional(pattern); ok {
		return match, nil
	}

	if len(expected) == 0 {
		expected = []string{pattern}
	}

	return "", l.NewSyntaxError(expected...)
}

func (l *Lexer) match(pattern string) (string, bool) {
	if l.IsEnd() {
		return "", false
	}

	rest := l.data[l.pos.Cursor:]

	if utf8.RuneCountInString(pattern) == 1 {
		return pattern, strings.HasPrefix(rest, pattern)
	}

	loc := compilePattern(pattern).FindStringIndex(rest)
	if loc == nil || loc[1] == 0 {
		return "", false
	}

	return rest[:loc[1]], true
}

func (l *Lexer) moveCursor(text string) {
	chars := utf8.RuneCountInString(text)

	l.pos.Cursor += len(text)
	l.pos.Offset += chars

	if idx := strings.LastIndexByte(text, '\n'); idx >= 0 {
		l.pos.Line += strings.Count(text, "\n")
		l.pos.Column = utf8.RuneCountInString(text[idx+1:])

		return
	}

	l.pos.Column += chars
}

// advance consumes the character at the cursor and returns its bytes. An invalid UTF-8 byte
// is consumed on its own.
func (l *Lexer) advance() string {
	_, size := utf8.DecodeRuneInString(l.data[l.pos.Cursor:])
	text := l.data[l.pos.Cursor : l.pos.Cursor+size]

	l.moveCursor(text)

	return text
}

// current returns the rune at the cursor, or utf8.RuneError at the end.
func (l *Lexer) current() rune {
	r, _ := utf8.DecodeRuneInString(l.data[l.pos.Cursor:])
	return r
}

// next returns the rune following the one at the cursor.
func (l *Lexer) next() rune {
	_, size := utf8.DecodeRuneInString(l.data[l.pos.Cursor:])
	r, _ := utf8.DecodeRuneInString(l.data[l.pos.Cursor+size:])

	return r
}

// peek returns up to n characters from the cursor.
func (l *Lexer) peek(n int) string {
	rest := l.data[l.pos.Cursor:]

	for i := range rest {
		if n == 0 {
			return rest[:i]
		}

		n--
	}

	return rest
}
