// Package log provides a leveled logger with structured fields on top of logrus.
package log

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Logger is the logging surface used across fieldquery. It hides logrus so that levels,
// formatting and cloning stay under our control.
type Logger interface {
	// Clone returns an independent copy of the logger, fields included.
	Clone() Logger

	// SetOptions applies the given options to this instance.
	SetOptions(opts ...Option)

	// WithOptions is Clone followed by SetOptions.
	WithOptions(opts ...Option) Logger

	// Level returns the current log level.
	Level() Level

	// SetLevel parses and sets the log level.
	SetLevel(str string) error

	// WithField returns a logger carrying one extra field.
	WithField(key string, value any) Logger

	// WithFields returns a logger carrying the extra fields.
	WithFields(fields Fields) Logger

	// WithError returns a logger carrying err under the `error` key.
	WithError(err error) Logger

	// Writer returns a pipe that logs every written line at the given level.
	Writer(level Level) *io.PipeWriter

	Logf(level Level, format string, args ...any)
	Tracef(format string, args ...any)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)

	Log(level Level, args ...any)
	Trace(args ...any)
	Debug(args ...any)
	Info(args ...any)
	Warn(args ...any)
	Error(args ...any)
}

type logger struct {
	*logrus.Entry
}

// New returns a logger writing to stderr at info level unless opts say otherwise.
func New(opts ...Option) Logger {
	logger := &logger{Entry: logrus.NewEntry(logrus.New())}
	logger.Logger.SetLevel(InfoLevel.ToLogrusLevel())
	logger.SetOptions(opts...)

	return logger
}

func (logger *logger) Clone() Logger {
	return logger.clone()
}

func (logger *logger) SetOptions(opts ...Option) {
	for _, opt := range opts {
		opt(logger)
	}
}

func (logger *logger) WithOptions(opts ...Option) Logger {
	if len(opts) == 0 {
		return logger
	}

	clone := logger.clone()
	clone.SetOptions(opts...)

	return clone
}

func (logger *logger) Level() Level {
	return FromLogrusLevel(logger.Logger.Level)
}

func (logger *logger) SetLevel(str string) error {
	level, err := ParseLevel(str)
	if err != nil {
		return err
	}

	logger.Logger.SetLevel(level.ToLogrusLevel())

	return nil
}

func (logger *logger) WithField(key string, value any) Logger {
	return logger.WithFields(Fields{key: value})
}

func (logger *logger) WithFields(fields Fields) Logger {
	return logger.setEntry(logger.Entry.WithFields(logrus.Fields(fields)))
}

func (logger *logger) WithError(err error) Logger {
	return logger.setEntry(logger.Entry.WithError(err))
}

func (logger *logger) Writer(level Level) *io.PipeWriter {
	return logger.Entry.WriterLevel(level.ToLogrusLevel())
}

func (logger *logger) Logf(level Level, format string, args ...any) {
	logger.Entry.Logf(level.ToLogrusLevel(), format, args...)
}

func (logger *logger) Tracef(format string, args ...any) { logger.Logf(TraceLevel, format, args...) }
func (logger *logger) Debugf(format string, args ...any) { logger.Logf(DebugLevel, format, args...) }
func (logger *logger) Infof(format string, args ...any)  { logger.Logf(InfoLevel, format, args...) }
func (logger *logger) Warnf(format string, args ...any)  { logger.Logf(WarnLevel, format, args...) }
func (logger *logger) Errorf(format string, args ...any) { logger.Logf(ErrorLevel, format, args...) }

func (logger *logger) Log(level Level, args ...any) {
	logger.Entry.Log(level.ToLogrusLevel(), args...)
}

func (logger *logger) Trace(args ...any) { logger.Log(TraceLevel, args...) }
func (logger *logger) Debug(args ...any) { logger.Log(DebugLevel, args...) }
func (logger *logger) Info(args ...any)  { logger.Log(InfoLevel, args...) }
func (logger *logger) Warn(args ...any)  { logger.Log(WarnLevel, args...) }
func (logger *logger) Error(args ...any) { logger.Log(ErrorLevel, args...) }

func (logger *logger) setEntry(entry *logrus.Entry) *logger {
	newLogger := *logger
	newLogger.Entry = entry

	return &newLogger
}

// clone detaches the copy from the parent's logrus instance so options set on one
// do not leak into the other.
func (logger *logger) clone() *logger {
	parent := logger.Logger

	inner := logrus.New()
	inner.SetOutput(parent.Out)
	inner.SetLevel(parent.Level)
	inner.SetFormatter(parent.Formatter)
	inner.ReplaceHooks(parent.Hooks)

	newLogger := *logger
	newLogger.Entry = logger.Dup()
	newLogger.Logger = inner

	return &newLogger
}
