package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const (
	defaultSize = 12
	maxLength   = 64
)

// Generator creates opaque request identifiers.
type Generator interface {
	NewID() (string, error)
}

type RandomGenerator struct {
	size int
}

// NewRandomGenerator returns hex ids of size random bytes; size <= 0 uses 12.
func NewRandomGenerator(size int) *RandomGenerator {
	if size <= 0 {
		size = defaultSize
	}
	return &RandomGenerator{size: size}
}

func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, g.size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}

// Acceptable reports whether a caller-supplied id can be propagated as is:
// 1 to 64 characters of letters, digits, '-', '_' or '.'.
func Acceptable(raw string) bool {
	if raw == "" || len(raw) > maxLength {
		return false
	}
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r == '-', r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}
