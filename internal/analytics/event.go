package analytics

import "time"

// Topics carrying link lifecycle events.
const (
	TopicLinkCreated = "link.created"
	TopicLinkVisited = "link.visited"
)

// LinkCreatedEvent is emitted after a short link has been stored.
type LinkCreatedEvent struct {
	ShortID     string    `json:"shortId"`
	RedirectURL string    `json:"redirectUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	ClientIP    string    `json:"clientIp"`
	UserAgent   string    `json:"userAgent"`
}

// LinkVisitedEvent is emitted after a visit has been recorded and the
// visitor redirected.
type LinkVisitedEvent struct {
	ShortID   string    `json:"shortId"`
	VisitedAt time.Time `json:"visitedAt"`
	ClientIP  string    `json:"clientIp"`
	UserAgent string    `json:"userAgent"`
	Referrer  string    `json:"referrer,omitempty"`
}
