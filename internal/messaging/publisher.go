package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/zap"
)

// MetadataPublishedAt is the message metadata key holding the RFC 3339 publish time.
const MetadataPublishedAt = "published_at"

// Publish sends a typed event.
type Publish[T any] func(ctx context.Context, event *T) error

// NewPublishFunc creates a typed publish function for a specific topic.
// Events are JSON encoded into the message payload.
func NewPublishFunc[T any](publisher message.Publisher, topic string) Publish[T] {
	return func(ctx context.Context, event *T) error {
		payload, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("marshal %s event: %w", topic, err)
		}

		msg := message.NewMessage(watermill.NewUUID(), payload)
		msg.Metadata.Set(MetadataPublishedAt, time.Now().UTC().Format(time.RFC3339Nano))
		msg.SetContext(ctx)

		if err := publisher.Publish(topic, msg); err != nil {
			return fmt.Errorf("publish to %s: %w", topic, err)
		}

		return nil
	}
}

// NopPublisher discards every message. It stands in for a broker when event
// publishing is turned off.
type NopPublisher struct{}

func (NopPublisher) Publish(string, ...*message.Message) error { return nil }
func (NopPublisher) Close() error                              { return nil }

// PublisherGroup owns the publisher shared by every typed publish function.
type PublisherGroup struct {
	publisher message.Publisher
	logger    *zap.Logger
}

// NewPublisherGroup creates a new publisher group.
func NewPublisherGroup(publisher message.Publisher, logger *zap.Logger) *PublisherGroup {
	return &PublisherGroup{publisher: publisher, logger: logger}
}

// Publisher returns the underlying message publisher for creating typed publish functions.
func (g *PublisherGroup) Publisher() message.Publisher {
	return g.publisher
}

// Shutdown closes the underlying publisher.
func (g *PublisherGroup) Shutdown() error {
	g.logger.Info("closing event publisher")

	return g.publisher.Close()
}
