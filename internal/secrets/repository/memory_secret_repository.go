package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	secretsDomain "github.com/allisson/onetime/internal/secrets/domain"
)

type memoryEntry struct {
	secret    secretsDomain.StoredSecret
	expiresAt time.Time
}

// MemorySecretRepository keeps secrets in a process-local map.
// Expired entries are treated as absent on read and pruned on write.
type MemorySecretRepository struct {
	mu      sync.Mutex
	secrets map[uuid.UUID]memoryEntry
	now     func() time.Time
}

// NewMemorySecretRepository creates an empty in-memory repository using time.Now.
func NewMemorySecretRepository() *MemorySecretRepository {
	return NewMemorySecretRepositoryWithClock(time.Now)
}

// NewMemorySecretRepositoryWithClock creates an empty in-memory repository using now as its clock.
func NewMemorySecretRepositoryWithClock(now func() time.Time) *MemorySecretRepository {
	return &MemorySecretRepository{
		secrets: make(map[uuid.UUID]memoryEntry),
		now:     now,
	}
}

// Put stores a copy of secret that expires secret.TTL from now.
func (m *MemorySecretRepository) Put(ctx context.Context, secret *secretsDomain.StoredSecret) error {
	if err := ctx.Err(); err != nil {
		return unavailable(err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.pruneLocked(now)

	if _, exists := m.secrets[secret.ID]; exists {
		return secretsDomain.ErrSecretConflict
	}

	stored := *secret
	stored.Ciphertext = cloneBytes(secret.Ciphertext)
	stored.Nonce = cloneBytes(secret.Nonce)

	m.secrets[secret.ID] = memoryEntry{
		secret:    stored,
		expiresAt: now.Add(secret.TTL),
	}
	return nil
}

// TakeAndInvalidate removes the secret under the repository lock and returns it.
func (m *MemorySecretRepository) TakeAndInvalidate(
	ctx context.Context,
	id uuid.UUID,
) (*secretsDomain.StoredSecret, error) {
	if err := ctx.Err(); err != nil {
		return nil, unavailable(err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.secrets[id]
	if !ok {
		return nil, secretsDomain.ErrSecretNotFound
	}
	delete(m.secrets, id)

	if !m.now().Before(entry.expiresAt) {
		return nil, secretsDomain.ErrSecretNotFound
	}

	secret := entry.secret
	return &secret, nil
}

// DeleteExpired removes entries that expired at or before now.
func (m *MemorySecretRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, unavailable(err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.pruneLocked(now), nil
}

// Ping always succeeds.
func (m *MemorySecretRepository) Ping(ctx context.Context) error {
	return nil
}

// Len returns the number of entries held, expired or not.
func (m *MemorySecretRepository) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.secrets)
}

func (m *MemorySecretRepository) pruneLocked(now time.Time) int64 {
	var count int64
	for id, entry := range m.secrets {
		if !now.Before(entry.expiresAt) {
			delete(m.secrets, id)
			count++
		}
	}
	return count
}
