package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/onetime/internal/errors"
)

func TestStoredSecret_ExpiresAt(t *testing.T) {
	createdAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	secret := &StoredSecret{ID: uuid.New(), CreatedAt: createdAt, TTL: DefaultTTL}

	assert.Equal(t, createdAt.Add(24*time.Hour), secret.ExpiresAt())
}

func TestStoredSecret_IsExpired(t *testing.T) {
	createdAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	secret := &StoredSecret{CreatedAt: createdAt, TTL: time.Minute}

	assert.False(t, secret.IsExpired(createdAt))
	assert.False(t, secret.IsExpired(createdAt.Add(59*time.Second)))
	assert.True(t, secret.IsExpired(createdAt.Add(time.Minute)))
	assert.True(t, secret.IsExpired(createdAt.Add(time.Hour)))
}

func TestErrors(t *testing.T) {
	assert.ErrorIs(t, ErrSecretNotFound, apperrors.ErrNotFound)
	assert.ErrorIs(t, ErrSecretConflict, apperrors.ErrConflict)
	assert.ErrorIs(t, ErrStoreUnavailable, apperrors.ErrUnavailable)
}
