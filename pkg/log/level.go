package log

import (
	"strings"

	"github.com/fieldquery/fieldquery/internal/errors"
	"github.com/sirupsen/logrus"
)

// Log levels, from the least to the most verbose.
const (
	// ErrorLevel is for failures the user has to act on.
	ErrorLevel Level = iota
	// WarnLevel is for suspicious input that still parsed.
	WarnLevel
	// InfoLevel is the default.
	InfoLevel
	// DebugLevel reports parser decisions.
	DebugLevel
	// TraceLevel adds stack traces and per-token detail.
	TraceLevel
)

// AllLevels lists every supported level.
var AllLevels = Levels{ErrorLevel, WarnLevel, InfoLevel, DebugLevel, TraceLevel}

var levelNames = map[Level]string{
	ErrorLevel: "error",
	WarnLevel:  "warn",
	InfoLevel:  "info",
	DebugLevel: "debug",
	TraceLevel: "trace",
}

var logrusLevels = map[Level]logrus.Level{
	ErrorLevel: logrus.ErrorLevel,
	WarnLevel:  logrus.WarnLevel,
	InfoLevel:  logrus.InfoLevel,
	DebugLevel: logrus.DebugLevel,
	TraceLevel: logrus.TraceLevel,
}

// Level is a logging priority.
type Level uint32

// ParseLevel converts a level name, case-insensitively, into a Level.
func ParseLevel(str string) (Level, error) {
	for level, name := range levelNames {
		if strings.EqualFold(name, str) {
			return level, nil
		}
	}

	return InfoLevel, errors.Errorf("invalid level %q, supported levels: %s", str, AllLevels)
}

func (level Level) String() string {
	return levelNames[level]
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (level *Level) UnmarshalText(text []byte) error {
	lvl, err := ParseLevel(string(text))
	if err != nil {
		return err
	}

	*level = lvl

	return nil
}

// Set implements flag.Value.
func (level *Level) Set(str string) error {
	return level.UnmarshalText([]byte(str))
}

// MarshalText implements encoding.TextMarshaler.
func (level Level) MarshalText() ([]byte, error) {
	if name := level.String(); name != "" {
		return []byte(name), nil
	}

	return nil, errors.Errorf("invalid level: %d", level)
}

// ToLogrusLevel maps level onto logrus. Unknown levels map to info.
func (level Level) ToLogrusLevel() logrus.Level {
	if lvl, ok := logrusLevels[level]; ok {
		return lvl
	}

	return logrus.InfoLevel
}

// FromLogrusLevel is the inverse of ToLogrusLevel. Panic and fatal collapse into ErrorLevel.
func FromLogrusLevel(lvl logrus.Level) Level {
	for level, logrusLevel := range logrusLevels {
		if logrusLevel == lvl {
			return level
		}
	}

	return ErrorLevel
}

// Levels is a list of levels.
type Levels []Level

// Names returns the level names in order.
func (levels Levels) Names() []string {
	names := make([]string, len(levels))

	for i, level := range levels {
		names[i] = level.String()
	}

	return names
}

func (levels Levels) String() string {
	return strings.Join(levels.Names(), ", ")
}
