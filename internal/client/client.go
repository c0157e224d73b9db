package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/imroc/req/v3"
)

// ErrNotFound is returned when the server does not know a short id.
var ErrNotFound = errors.New("short link not found")

// APIError is a non-success response decoded from the server's error envelope.
type APIError struct {
	Status  int    `json:"status"`
	Message string `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("shortlink api: %d %s", e.Status, e.Message)
}

// Link is a created short link.
type Link struct {
	ID          string `json:"id"`
	ShortURL    string `json:"shortUrl"`
	RedirectURL string `json:"redirectUrl"`
	CreatedAt   int64  `json:"createdAt"`
}

// Visit is one analytics entry; Timestamp is in Unix epoch milliseconds.
type Visit struct {
	Timestamp int64 `json:"timestamp"`
}

// Time returns the visit time.
func (v Visit) Time() time.Time {
	return time.UnixMilli(v.Timestamp)
}

// Analytics is the click summary of a short link.
type Analytics struct {
	TotalClicks int     `json:"totalClicks"`
	Analytics   []Visit `json:"analytics"`
}

// Client talks to the shortlink JSON API and remembers the links it created.
type Client struct {
	http   *req.Client
	recent RecentLinks
}

// New creates a client for the server at baseURL.
func New(baseURL string) *Client {
	return &Client{
		http: req.C().
			SetBaseURL(baseURL).
			SetTimeout(5*time.Second).
			SetUserAgent("shortlink-client").
			SetCommonHeader("Accept", "application/json"),
	}
}

// Shorten creates a short link for longURL and adds it to the recent list.
func (c *Client) Shorten(ctx context.Context, longURL string) (*Link, error) {
	var (
		link   Link
		apiErr APIError
	)

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"url": longURL}).
		SetSuccessResult(&link).
		SetErrorResult(&apiErr).
		Post("/url")
	if err != nil {
		return nil, fmt.Errorf("create short link: %w", err)
	}

	if resp.IsErrorState() {
		return nil, apiError(&apiErr, resp.StatusCode)
	}

	c.recent.Add(RecentLink{
		OriginalURL: link.RedirectURL,
		ShortURL:    link.ShortURL,
		CreatedAt:   time.UnixMilli(link.CreatedAt),
	})

	return &link, nil
}

// Analytics fetches the click summary for id.
func (c *Client) Analytics(ctx context.Context, id string) (*Analytics, error) {
	var (
		stats  Analytics
		apiErr APIError
	)

	resp, err := c.http.R().
		SetContext(ctx).
		SetSuccessResult(&stats).
		SetErrorResult(&apiErr).
		Get("/url/analytics/" + url.PathEscape(id))
	if err != nil {
		return nil, fmt.Errorf("get analytics: %w", err)
	}

	if resp.IsErrorState() {
		return nil, apiError(&apiErr, resp.StatusCode)
	}

	return &stats, nil
}

// Recent returns links created through this client, newest first.
func (c *Client) Recent() []RecentLink {
	return c.recent.List()
}

func apiError(e *APIError, status int) error {
	if e.Status == 0 {
		e.Status = status
	}

	if status == http.StatusNotFound {
		return fmt.Errorf("%w: %w", ErrNotFound, e)
	}

	return e
}
