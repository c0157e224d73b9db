package shortener

import (
	"fmt"

	"github.com/jaevor/go-nanoid"
)

const (
	// Alphabet is the symbol set short identifiers are drawn from.
	Alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// DefaultIDLength gives 62^8 (about 2.2e14) possible identifiers.
	DefaultIDLength = 8
)

// IDGenerator returns a fresh random identifier on every call.
type IDGenerator func() string

// NewIDGenerator returns a crypto-random alphanumeric generator of the given length.
func NewIDGenerator(length int) (IDGenerator, error) {
	gen, err := nanoid.CustomASCII(Alphabet, length)
	if err != nil {
		return nil, fmt.Errorf("create id generator: %w", err)
	}

	return IDGenerator(gen), nil
}
