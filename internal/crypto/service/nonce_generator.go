package service

import (
	"crypto/rand"
	"io"

	cryptoDomain "github.com/allisson/onetime/internal/crypto/domain"
	apperrors "github.com/allisson/onetime/internal/errors"
)

// RandomNonceGenerator reads nonces from a cryptographically secure source.
type RandomNonceGenerator struct {
	reader io.Reader
	size   int
}

// NewRandomNonceGenerator creates a NonceGenerator backed by crypto/rand.
func NewRandomNonceGenerator() *RandomNonceGenerator {
	return NewRandomNonceGeneratorWithReader(rand.Reader)
}

// NewRandomNonceGeneratorWithReader creates a NonceGenerator that reads from r.
func NewRandomNonceGeneratorWithReader(r io.Reader) *RandomNonceGenerator {
	return &RandomNonceGenerator{
		reader: r,
		size:   cryptoDomain.NonceSize,
	}
}

// Generate returns a fresh nonce. A short or failed read is fatal for the operation.
func (g *RandomNonceGenerator) Generate() ([]byte, error) {
	nonce := make([]byte, g.size)
	if _, err := io.ReadFull(g.reader, nonce); err != nil {
		return nil, apperrors.Join(cryptoDomain.ErrRandomSourceExhausted, err)
	}
	return nonce, nil
}
