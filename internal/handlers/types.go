package handlers

// CreateLinkRequest is the request body for creating a short link.
// url is validated by the service so that a missing value maps to 400.
type CreateLinkRequest struct {
	Body struct {
		URL string `doc:"The URL to shorten" example:"https://example.com/a/very/long/path" json:"url" required:"false"`
	}
}

// CreateLinkResponse is the response for a successfully created short link.
type CreateLinkResponse struct {
	Location string `doc:"The short URL" header:"Location"`
	Body     struct {
		ID          string `doc:"The short id"                             example:"aZ3kP9qL"                             json:"id"`
		ShortURL    string `doc:"The full short URL"                       example:"http://localhost:8888/aZ3kP9qL"       json:"shortUrl"`
		RedirectURL string `doc:"The original URL"                         example:"https://example.com/a/very/long/path" json:"redirectUrl"`
		CreatedAt   int64  `doc:"Creation time in Unix epoch milliseconds" example:"1705320000000"                        json:"createdAt"`
	}
}

// AnalyticsRequest identifies the link whose analytics are requested.
type AnalyticsRequest struct {
	ShortID string `doc:"The short id" example:"aZ3kP9qL" path:"shortId"`
}

// VisitBody is one entry of a link's visit history.
type VisitBody struct {
	Timestamp int64 `doc:"Visit time in Unix epoch milliseconds" example:"1705320000000" json:"timestamp"`
}

// AnalyticsResponse carries the click count and chronological visit history.
type AnalyticsResponse struct {
	Body struct {
		TotalClicks int         `doc:"Number of recorded visits"              json:"totalClicks"`
		Analytics   []VisitBody `doc:"Visits in ascending chronological order" json:"analytics"`
	}
}

// RedirectRequest is the request for resolving a short link.
type RedirectRequest struct {
	ShortID string `doc:"The short id" example:"aZ3kP9qL" path:"shortId"`
}

// RedirectResponse is either a 302 with Location or a plain-text 404.
type RedirectResponse struct {
	Status      int
	Location    string `header:"Location"`
	ContentType string `header:"Content-Type"`
	Body        []byte
}
