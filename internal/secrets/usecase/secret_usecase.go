package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/onetime/internal/crypto/domain"
	cryptoService "github.com/allisson/onetime/internal/crypto/service"
	apperrors "github.com/allisson/onetime/internal/errors"
	secretsDomain "github.com/allisson/onetime/internal/secrets/domain"
)

// secretUseCase implements the SecretUseCase interface for one-time secrets.
type secretUseCase struct {
	secretRepo     SecretRepository
	keyDeriver     cryptoService.KeyDeriver
	nonceGenerator cryptoService.NonceGenerator
	aeadManager    cryptoService.AEADManager
	newID          func() (uuid.UUID, error)
	now            func() time.Time
	ttl            time.Duration
}

// Create derives a key, encrypts plaintext under a fresh nonce and stores the result.
func (s *secretUseCase) Create(
	ctx context.Context,
	plaintext []byte,
	password string,
) (*secretsDomain.StoredSecret, error) {
	id, err := s.newID()
	if err != nil {
		return nil, apperrors.Join(cryptoDomain.ErrRandomSourceExhausted, err)
	}

	// A new nonce for every encryption, never reused
	nonce, err := s.nonceGenerator.Generate()
	if err != nil {
		return nil, err
	}

	key := s.keyDeriver.Derive(password)
	defer key.Destroy()

	cipher, err := s.aeadManager.CreateCipher(key.Bytes())
	if err != nil {
		return nil, err
	}

	// Bind the ciphertext to its identifier
	ciphertext, err := cipher.Encrypt(nonce, plaintext, id[:])
	if err != nil {
		return nil, err
	}

	secret := &secretsDomain.StoredSecret{
		ID:         id,
		Ciphertext: ciphertext,
		Nonce:      nonce,
		CreatedAt:  s.now().UTC(),
		TTL:        s.ttl,
	}

	if err := s.secretRepo.Put(ctx, secret); err != nil {
		return nil, err
	}

	return secret, nil
}

// Reveal takes the secret out of the store first and only then checks the password.
func (s *secretUseCase) Reveal(
	ctx context.Context,
	id uuid.UUID,
	password string,
) (*secretsDomain.Secret, error) {
	stored, takeErr := s.secretRepo.TakeAndInvalidate(ctx, id)

	// Derive even when nothing was found so both failures cost the same
	key := s.keyDeriver.Derive(password)
	defer key.Destroy()

	if takeErr != nil {
		return nil, takeErr
	}

	cipher, err := s.aeadManager.CreateCipher(key.Bytes())
	if err != nil {
		return nil, err
	}

	plaintext, err := cipher.Decrypt(stored.Nonce, stored.Ciphertext, id[:])
	if err != nil {
		return nil, cryptoDomain.ErrAuthenticationFailed
	}

	return &secretsDomain.Secret{
		ID:        id,
		Plaintext: plaintext,
	}, nil
}

// PurgeExpired removes secrets whose TTL has elapsed.
func (s *secretUseCase) PurgeExpired(ctx context.Context) (int64, error) {
	return s.secretRepo.DeleteExpired(ctx, s.now().UTC())
}

// Option customizes a secret use case.
type Option func(*secretUseCase)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *secretUseCase) {
		s.now = now
	}
}

// WithIDGenerator replaces uuid.NewRandom.
func WithIDGenerator(newID func() (uuid.UUID, error)) Option {
	return func(s *secretUseCase) {
		s.newID = newID
	}
}

// NewSecretUseCase creates a new secret use case instance with the provided dependencies.
// Secrets are stored for secretsDomain.DefaultTTL.
func NewSecretUseCase(
	secretRepo SecretRepository,
	keyDeriver cryptoService.KeyDeriver,
	nonceGenerator cryptoService.NonceGenerator,
	aeadManager cryptoService.AEADManager,
	opts ...Option,
) SecretUseCase {
	uc := &secretUseCase{
		secretRepo:     secretRepo,
		keyDeriver:     keyDeriver,
		nonceGenerator: nonceGenerator,
		aeadManager:    aeadManager,
		newID:          uuid.NewRandom,
		now:            time.Now,
		ttl:            secretsDomain.DefaultTTL,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}
