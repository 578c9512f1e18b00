package telemetry

import (
	"context"

	"github.com/sirupsen/logrus"
)

// LogHook counts warnings and errors written by a logger under `log_<level>_count`.
type LogHook struct {
	meter *Meter
}

// NewLogHook returns a hook reporting to the meter of tlm. A telemeter without a meter
// makes the hook a no-op.
func NewLogHook(tlm *Telemeter) *LogHook {
	return &LogHook{meter: tlm.Meter}
}

// Levels implements logrus.Hook.
func (hook *LogHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel, logrus.WarnLevel}
}

// Fire implements logrus.Hook.
func (hook *LogHook) Fire(entry *logrus.Entry) error {
	ctx := entry.Context
	if ctx == nil {
		ctx = context.Background()
	}

	hook.meter.Count(ctx, "log_"+entry.Level.String()+"_count", 1)

	return nil
}
