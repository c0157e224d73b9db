package sink

import (
	"context"

	"github.com/serroba/shortlink/internal/analytics"
	"go.uber.org/zap"
)

// Log is an analytics.Sink that writes every event to a logger.
type Log struct {
	logger *zap.Logger
}

// NewLog creates a logging sink.
func NewLog(logger *zap.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) LinkCreated(_ context.Context, event *analytics.LinkCreatedEvent) error {
	l.logger.Info("link created",
		zap.String("shortId", event.ShortID),
		zap.String("redirectUrl", event.RedirectURL),
		zap.Time("createdAt", event.CreatedAt),
		zap.String("clientIp", event.ClientIP),
	)

	return nil
}

func (l *Log) LinkVisited(_ context.Context, event *analytics.LinkVisitedEvent) error {
	l.logger.Info("link visited",
		zap.String("shortId", event.ShortID),
		zap.Time("visitedAt", event.VisitedAt),
		zap.String("referrer", event.Referrer),
		zap.String("userAgent", event.UserAgent),
	)

	return nil
}

var _ analytics.Sink = (*Log)(nil)
