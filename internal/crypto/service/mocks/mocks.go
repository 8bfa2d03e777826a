// Package mocks provides mock implementations of the crypto service interfaces.
package mocks

import (
	"github.com/stretchr/testify/mock"

	cryptoDomain "github.com/allisson/onetime/internal/crypto/domain"
	cryptoService "github.com/allisson/onetime/internal/crypto/service"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockKeyDeriver is a mock implementation of KeyDeriver for testing.
type MockKeyDeriver struct {
	mock.Mock
}

// NewMockKeyDeriver creates a MockKeyDeriver whose expectations are asserted on cleanup.
func NewMockKeyDeriver(t testingT) *MockKeyDeriver {
	m := &MockKeyDeriver{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Derive mocks the Derive method of KeyDeriver.
func (m *MockKeyDeriver) Derive(password string) *cryptoDomain.DerivedKey {
	args := m.Called(password)
	return args.Get(0).(*cryptoDomain.DerivedKey)
}

// MockNonceGenerator is a mock implementation of NonceGenerator for testing.
type MockNonceGenerator struct {
	mock.Mock
}

// NewMockNonceGenerator creates a MockNonceGenerator whose expectations are asserted on cleanup.
func NewMockNonceGenerator(t testingT) *MockNonceGenerator {
	m := &MockNonceGenerator{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Generate mocks the Generate method of NonceGenerator.
func (m *MockNonceGenerator) Generate() ([]byte, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockAEADManager is a mock implementation of AEADManager for testing.
type MockAEADManager struct {
	mock.Mock
}

// NewMockAEADManager creates a MockAEADManager whose expectations are asserted on cleanup.
func NewMockAEADManager(t testingT) *MockAEADManager {
	m := &MockAEADManager{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// CreateCipher mocks the CreateCipher method of AEADManager.
func (m *MockAEADManager) CreateCipher(key []byte) (cryptoService.AEAD, error) {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(cryptoService.AEAD), args.Error(1)
}

// MockAEAD is a mock implementation of AEAD for testing.
type MockAEAD struct {
	mock.Mock
}

// NewMockAEAD creates a MockAEAD whose expectations are asserted on cleanup.
func NewMockAEAD(t testingT) *MockAEAD {
	m := &MockAEAD{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Encrypt mocks the Encrypt method of AEAD.
func (m *MockAEAD) Encrypt(nonce, plaintext, aad []byte) ([]byte, error) {
	args := m.Called(nonce, plaintext, aad)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Decrypt mocks the Decrypt method of AEAD.
func (m *MockAEAD) Decrypt(nonce, ciphertext, aad []byte) ([]byte, error) {
	args := m.Called(nonce, ciphertext, aad)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
