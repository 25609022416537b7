package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// FromContext returns the logger carried by ctx, or a disabled logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithContext attaches logger to ctx.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// WithComponent tags log lines with the emitting component, e.g. "bridge".
func WithComponent(ctx context.Context, component string) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Str("component", component).Logger()
	return WithContext(ctx, childLogger)
}

// WithTabID tags log lines with the tab a host request touched.
func WithTabID(ctx context.Context, tabID int) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Int("tab_id", tabID).Logger()
	return WithContext(ctx, childLogger)
}

// WithRequestID tags log lines with the bridge request they belong to.
func WithRequestID(ctx context.Context, id uint64) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Uint64("request_id", id).Logger()
	return WithContext(ctx, childLogger)
}
