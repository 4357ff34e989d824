package utils

import (
	"strings"

	"github.com/google/uuid"
)

type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a time-ordered UUIDv7 string, falling back to a random
// UUIDv4.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// GenerateKey returns 32 lowercase hex characters of a random UUIDv4.
// Used for session keys, which must not be guessable from creation time.
func (g *UUIDGenerator) GenerateKey() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
