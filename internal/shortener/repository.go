package shortener

import (
	"context"
	"time"
)

// Repository is the durable, uniquely keyed store of short links.
// Implementations must be safe for concurrent use.
type Repository interface {
	// Insert stores a new link. It returns ErrDuplicateKey if the ID is taken
	// and never overwrites an existing record.
	Insert(ctx context.Context, link *ShortLink) error

	// FindByID returns the link or ErrNotFound.
	FindByID(ctx context.Context, id ID) (*ShortLink, error)

	// AppendVisit atomically appends a visit at the given time and returns the
	// updated link, or ErrNotFound. Concurrent appends to one ID are never lost.
	AppendVisit(ctx context.Context, id ID, at time.Time) (*ShortLink, error)
}
