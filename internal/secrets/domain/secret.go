// Package domain defines the core domain models for one-time secrets.
// A secret is stored encrypted under a password-derived key, can be revealed at most
// once and expires after a fixed time-to-live whether or not it was ever read.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long a stored secret stays readable. It is a policy constant and
// is not configurable by callers.
const DefaultTTL = 24 * time.Hour

// Secret is a revealed secret. It only exists in memory while a reveal is being answered.
type Secret struct {
	// ID is the identifier the secret was created under.
	ID uuid.UUID
	// Plaintext holds the decrypted value in memory only; must be zeroed after use.
	Plaintext []byte `json:"-"`
}

// StoredSecret is the encrypted form of a secret as persisted by a SecretRepository.
type StoredSecret struct {
	// ID is a random (version 4) UUID, also used as AEAD associated data.
	ID uuid.UUID
	// Ciphertext is the AES-GCM output with the authentication tag appended.
	Ciphertext []byte
	// Nonce is the random value used for this encryption only.
	Nonce []byte
	// CreatedAt is the UTC timestamp when the secret was stored.
	CreatedAt time.Time
	// TTL is the lifetime of the stored secret, counted from CreatedAt.
	TTL time.Duration
}

// ExpiresAt returns the instant after which the secret can no longer be revealed.
func (s *StoredSecret) ExpiresAt() time.Time {
	return s.CreatedAt.Add(s.TTL)
}

// IsExpired reports whether the secret has outlived its TTL at instant now.
func (s *StoredSecret) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt())
}
