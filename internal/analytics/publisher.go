package analytics

import (
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/serroba/shortlink/internal/messaging"
)

// Publishers bundles the typed publish functions for link events.
type Publishers struct {
	LinkCreated messaging.Publish[LinkCreatedEvent]
	LinkVisited messaging.Publish[LinkVisitedEvent]
}

// NewPublishers binds each event type to its topic on publisher.
func NewPublishers(publisher message.Publisher) *Publishers {
	return &Publishers{
		LinkCreated: messaging.NewPublishFunc[LinkCreatedEvent](publisher, TopicLinkCreated),
		LinkVisited: messaging.NewPublishFunc[LinkVisitedEvent](publisher, TopicLinkVisited),
	}
}
