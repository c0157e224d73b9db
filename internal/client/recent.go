package client

import (
	"sync"
	"time"
)

// MaxRecentLinks bounds the recent links list.
const MaxRecentLinks = 10

// RecentLink is a link created through this client.
type RecentLink struct {
	OriginalURL string
	ShortURL    string
	CreatedAt   time.Time
}

// RecentLinks keeps the most recently created links, newest first.
// Adding to a full list evicts the oldest entry.
type RecentLinks struct {
	mu    sync.Mutex
	links []RecentLink
}

// Add records link as the newest entry.
func (r *RecentLinks) Add(link RecentLink) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.links = append([]RecentLink{link}, r.links...)
	if len(r.links) > MaxRecentLinks {
		r.links = r.links[:MaxRecentLinks]
	}
}

// List returns a copy of the entries, newest first.
func (r *RecentLinks) List() []RecentLink {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]RecentLink, len(r.links))
	copy(out, r.links)

	return out
}
