package middleware

import (
	"time"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RequestObserver records per-operation request outcomes.
type RequestObserver interface {
	ObserveRequest(operation string, status int, elapsed time.Duration)
}

// AccessLog logs one line per request and reports it to observer when non-nil.
// Server errors log at error level, client errors at warn.
func AccessLog(logger *zap.Logger, observer RequestObserver) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		start := time.Now()

		next(ctx)

		elapsed := time.Since(start)
		status := ctx.Status()
		operation := ctx.Operation().OperationID

		if observer != nil {
			observer.ObserveRequest(operation, status, elapsed)
		}

		level := zapcore.InfoLevel

		switch {
		case status >= 500:
			level = zapcore.ErrorLevel
		case status >= 400:
			level = zapcore.WarnLevel
		}

		logger.Log(level, "request",
			zap.String("method", ctx.Method()),
			zap.String("path", ctx.URL().Path),
			zap.String("operation", operation),
			zap.Int("status", status),
			zap.Duration("duration", elapsed),
			zap.String("clientIp", clientIP(ctx)),
		)
	}
}
