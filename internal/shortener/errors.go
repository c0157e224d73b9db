package shortener

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no link exists for an identifier.
	ErrNotFound = errors.New("short link not found")

	// ErrDuplicateKey is returned by a Repository when the identifier is already taken.
	ErrDuplicateKey = errors.New("short id already exists")

	// ErrGenerationExhausted means no free identifier was found within the attempt bound.
	ErrGenerationExhausted = errors.New("unable to generate a unique short id")
)

// ValidationError reports malformed or missing input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
