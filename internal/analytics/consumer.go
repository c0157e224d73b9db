package analytics

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/serroba/shortlink/internal/messaging"
	"go.uber.org/zap"
)

// ConsumerGroupName is the Redis stream consumer group shared by analytics consumers.
const ConsumerGroupName = "analytics"

// Sink receives decoded link events.
type Sink interface {
	LinkCreated(ctx context.Context, event *LinkCreatedEvent) error
	LinkVisited(ctx context.Context, event *LinkVisitedEvent) error
}

// RegisterConsumers adds one consumer per link topic to group, each feeding sink.
func RegisterConsumers(group *messaging.ConsumerGroup, subscriber message.Subscriber, sink Sink, logger *zap.Logger) {
	group.Add(messaging.NewConsumer(subscriber, TopicLinkCreated, sink.LinkCreated, logger))
	group.Add(messaging.NewConsumer(subscriber, TopicLinkVisited, sink.LinkVisited, logger))
}
