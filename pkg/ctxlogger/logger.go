package ctxlogger

import (
	"context"

	"github.com/IsaacDSC/miracle/pkg/logs"
)

type loggerKey struct{}

func WithLogger(ctx context.Context, logger *logs.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger returns the request/task scoped logger, or the default one.
func GetLogger(ctx context.Context) *logs.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*logs.Logger); ok {
		return logger
	}

	return logs.Default()
}
