package shortener

import "time"

// ID is a short link identifier.
type ID string

// Visit records one resolution of a short link.
type Visit struct {
	// Seq is assigned by the store and increases with every append to the same link.
	Seq       int64
	Timestamp time.Time
}

// ShortLink is the persisted mapping from a short identifier to its target URL.
type ShortLink struct {
	ID          ID
	RedirectURL string
	CreatedAt   time.Time
	Visits      []Visit
}

// Clone returns a deep copy so callers never share the visit slice with a store.
func (l *ShortLink) Clone() *ShortLink {
	c := *l
	c.Visits = append([]Visit(nil), l.Visits...)

	return &c
}

// Resolution is the outcome of a recorded visit.
type Resolution struct {
	RedirectURL string
	VisitedAt   time.Time
}

// Analytics is the aggregated view of a link's visit history.
type Analytics struct {
	ID          ID
	TotalClicks int
	Visits      []Visit
}
