package log

import (
	"io"
	"os"

	"github.com/fieldquery/fieldquery/internal/errors"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// Supported values of the --log-format flag.
const (
	PrettyFormat = "pretty"
	JSONFormat   = "json"
	BareFormat   = "bare"
)

// NewFormatter returns the logrus formatter for the named format. Colours are enabled for the
// pretty format only when out is a terminal and disableColors is false.
func NewFormatter(name string, out io.Writer, disableColors bool) (logrus.Formatter, error) {
	switch name {
	case "", PrettyFormat:
		return &logrus.TextFormatter{
			ForceColors:      !disableColors && isTerminal(out),
			DisableColors:    disableColors || !isTerminal(out),
			DisableTimestamp: true,
			PadLevelText:     true,
		}, nil
	case JSONFormat:
		return &logrus.JSONFormatter{}, nil
	case BareFormat:
		return new(bareFormatter), nil
	}

	return nil, errors.Errorf("invalid log format %q, supported formats: %s, %s, %s", name, PrettyFormat, JSONFormat, BareFormat)
}

// bareFormatter prints the message only.
type bareFormatter struct{}

func (*bareFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	return []byte(entry.Message + "\n"), nil
}

func isTerminal(out io.Writer) bool {
	file, ok := out.(*os.File)

	return ok && (isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd()))
}
