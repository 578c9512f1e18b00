package telemetry

import "context"

type ctxKey byte

const telemeterContextKey ctxKey = iota

// ContextWithTelemeter returns a copy of ctx carrying tlm.
func ContextWithTelemeter(ctx context.Context, tlm *Telemeter) context.Context {
	return context.WithValue(ctx, telemeterContextKey, tlm)
}

// TelemeterFromContext returns the telemeter stored in ctx, or a no-op telemeter.
func TelemeterFromContext(ctx context.Context) *Telemeter {
	if tlm, ok := ctx.Value(telemeterContextKey).(*Telemeter); ok && tlm != nil {
		return tlm
	}

	return new(Telemeter)
}
