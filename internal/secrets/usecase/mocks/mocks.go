// Package mocks provides mock implementations of the secret use case interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	secretsDomain "github.com/allisson/onetime/internal/secrets/domain"
)

// MockSecretRepository is a mock implementation of SecretRepository for testing.
type MockSecretRepository struct {
	mock.Mock
}

// NewMockSecretRepository creates a MockSecretRepository whose expectations are asserted on cleanup.
func NewMockSecretRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSecretRepository {
	m := &MockSecretRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Put mocks the Put method of SecretRepository.
func (m *MockSecretRepository) Put(ctx context.Context, secret *secretsDomain.StoredSecret) error {
	args := m.Called(ctx, secret)
	return args.Error(0)
}

// TakeAndInvalidate mocks the TakeAndInvalidate method of SecretRepository.
func (m *MockSecretRepository) TakeAndInvalidate(
	ctx context.Context,
	id uuid.UUID,
) (*secretsDomain.StoredSecret, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.StoredSecret), args.Error(1)
}

// DeleteExpired mocks the DeleteExpired method of SecretRepository.
func (m *MockSecretRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// Ping mocks the Ping method of SecretRepository.
func (m *MockSecretRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockSecretUseCase is a mock implementation of SecretUseCase for testing.
type MockSecretUseCase struct {
	mock.Mock
}

// NewMockSecretUseCase creates a MockSecretUseCase whose expectations are asserted on cleanup.
func NewMockSecretUseCase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSecretUseCase {
	m := &MockSecretUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Create mocks the Create method of SecretUseCase.
func (m *MockSecretUseCase) Create(
	ctx context.Context,
	plaintext []byte,
	password string,
) (*secretsDomain.StoredSecret, error) {
	args := m.Called(ctx, plaintext, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.StoredSecret), args.Error(1)
}

// Reveal mocks the Reveal method of SecretUseCase.
func (m *MockSecretUseCase) Reveal(
	ctx context.Context,
	id uuid.UUID,
	password string,
) (*secretsDomain.Secret, error) {
	args := m.Called(ctx, id, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.Secret), args.Error(1)
}

// PurgeExpired mocks the PurgeExpired method of SecretUseCase.
func (m *MockSecretUseCase) PurgeExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
