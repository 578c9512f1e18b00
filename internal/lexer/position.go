package lexer

// Position tracks the scanner location. Cursor is a byte index used for slicing, Offset and
// Column count characters so that reported locations stay correct for multi-byte input.
type Position struct {
	Cursor int
	Offset int
	// Line starts at 1.
	Line int
	// Column starts at 0 on every line.
	Column int
}
