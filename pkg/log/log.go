package log

var std = New()

// Default returns the package-level logger. Tests should build their own with New.
func Default() Logger {
	return std
}

// SetOptions configures the package-level logger.
func SetOptions(opts ...Option) {
	std.SetOptions(opts...)
}

// WithField derives a logger from the package-level one.
func WithField(key string, value any) Logger {
	return std.WithField(key, value)
}

// Debugf logs on the package-level logger.
func Debugf(format string, args ...any) {
	std.Debugf(format, args...)
}

// Errorf logs on the package-level logger.
func Errorf(format string, args ...any) {
	std.Errorf(format, args...)
}
