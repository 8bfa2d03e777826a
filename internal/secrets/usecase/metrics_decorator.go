package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/onetime/internal/metrics"
	secretsDomain "github.com/allisson/onetime/internal/secrets/domain"
)

// secretUseCaseWithMetrics decorates SecretUseCase with metrics instrumentation.
type secretUseCaseWithMetrics struct {
	next    SecretUseCase
	metrics metrics.BusinessMetrics
}

// NewSecretUseCaseWithMetrics wraps a SecretUseCase with metrics recording.
func NewSecretUseCaseWithMetrics(useCase SecretUseCase, m metrics.BusinessMetrics) SecretUseCase {
	return &secretUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Create records metrics for secret creation operations.
func (s *secretUseCaseWithMetrics) Create(
	ctx context.Context,
	plaintext []byte,
	password string,
) (*secretsDomain.StoredSecret, error) {
	start := time.Now()
	secret, err := s.next.Create(ctx, plaintext, password)
	s.record(ctx, "secret_create", start, err)
	return secret, err
}

// Reveal records metrics for secret reveal operations.
func (s *secretUseCaseWithMetrics) Reveal(
	ctx context.Context,
	id uuid.UUID,
	password string,
) (*secretsDomain.Secret, error) {
	start := time.Now()
	secret, err := s.next.Reveal(ctx, id, password)
	s.record(ctx, "secret_reveal", start, err)
	return secret, err
}

// PurgeExpired records metrics for expired secret purges.
func (s *secretUseCaseWithMetrics) PurgeExpired(ctx context.Context) (int64, error) {
	start := time.Now()
	count, err := s.next.PurgeExpired(ctx)
	s.record(ctx, "secret_purge_expired", start, err)
	return count, err
}

func (s *secretUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "secrets", operation, status)
	s.metrics.RecordDuration(ctx, "secrets", operation, time.Since(start), status)
}
