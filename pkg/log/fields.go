package log

// Field keys shared by the CLI and the parser.
const (
	FieldKeyCommand = "command"
	FieldKeyProfile = "profile"
	FieldKeyQueryID = "query-id"
	FieldKeyLine    = "line"
)

// Fields is passed to WithFields.
type Fields map[string]any
