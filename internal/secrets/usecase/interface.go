// Package usecase defines the interfaces and implementations for one-time secret use cases.
// Use cases orchestrate key derivation, authenticated encryption and the secret
// repository to create secrets and reveal them at most once.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	secretsDomain "github.com/allisson/onetime/internal/secrets/domain"
)

// SecretRepository defines the interface for one-time secret persistence.
//
// Implementations must make TakeAndInvalidate atomic: when several callers take the
// same identifier concurrently, exactly one receives the secret and every other caller
// receives secretsDomain.ErrSecretNotFound. Transport failures are reported as
// secretsDomain.ErrStoreUnavailable.
type SecretRepository interface {
	// Put stores ciphertext and nonce together with an expiry of secret.TTL.
	Put(ctx context.Context, secret *secretsDomain.StoredSecret) error
	// TakeAndInvalidate returns the stored secret and removes it in the same step.
	TakeAndInvalidate(ctx context.Context, id uuid.UUID) (*secretsDomain.StoredSecret, error)
	// DeleteExpired removes secrets that expired before now and returns how many were removed.
	// Stores with native expiration return zero.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error
}

// SecretUseCase defines the interface for one-time secret business logic.
type SecretUseCase interface {
	// Create encrypts plaintext under a key derived from password and stores it for
	// secretsDomain.DefaultTTL. The returned StoredSecret carries the new identifier.
	// The password is neither stored nor returned.
	Create(ctx context.Context, plaintext []byte, password string) (*secretsDomain.StoredSecret, error)
	// Reveal consumes the secret and decrypts it with a key derived from password.
	//
	// The stored secret is destroyed before decryption is attempted, so a wrong password
	// also consumes it. Reveal is not idempotent and must not be retried.
	//
	// Security Note: The returned Secret contains plaintext data in the Plaintext field.
	// Callers MUST zero this data after use by calling cryptoDomain.Zero(secret.Plaintext).
	Reveal(ctx context.Context, id uuid.UUID, password string) (*secretsDomain.Secret, error)
	// PurgeExpired removes expired secrets from stores without native expiration.
	PurgeExpired(ctx context.Context) (int64, error)
}
