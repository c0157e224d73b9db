package shortener

import (
	"net/url"
	"strings"
)

// URLPolicy decides which strings are accepted as redirect targets.
type URLPolicy func(rawURL string) error

// AnyNonEmpty accepts every non-empty string, whitespace included.
func AnyNonEmpty(rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: "url", Reason: "must not be empty"}
	}

	return nil
}

// HTTPOnly accepts absolute http and https URLs that name a host.
func HTTPOnly(rawURL string) error {
	if err := AnyNonEmpty(rawURL); err != nil {
		return err
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return &ValidationError{Field: "url", Reason: "not a valid URL"}
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return &ValidationError{Field: "url", Reason: "scheme must be http or https"}
	}

	if u.Host == "" {
		return &ValidationError{Field: "url", Reason: "host is required"}
	}

	return nil
}
