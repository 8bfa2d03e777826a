// Package service provides the cryptographic building blocks of the secret vault:
// Argon2id password key derivation, random nonce generation and AES-256-GCM
// authenticated encryption.
package service

import (
	cryptoDomain "github.com/allisson/onetime/internal/crypto/domain"
)

// KeyDeriver turns a password into a fixed-length symmetric key.
type KeyDeriver interface {
	// Derive is deterministic and total: every password, including the empty
	// string, yields a key. Callers must Destroy the returned key.
	Derive(password string) *cryptoDomain.DerivedKey
}

// NonceGenerator produces a fresh random nonce for every encryption.
type NonceGenerator interface {
	// Generate returns cryptoDomain.NonceSize random bytes or
	// cryptoDomain.ErrRandomSourceExhausted.
	Generate() ([]byte, error)
}

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt seals plaintext under nonce, authenticating aad. The output is the
	// ciphertext with the authentication tag appended.
	Encrypt(nonce, plaintext, aad []byte) ([]byte, error)

	// Decrypt opens ciphertext sealed with the same nonce and aad.
	// Every failure is reported as cryptoDomain.ErrAuthenticationFailed.
	Decrypt(nonce, ciphertext, aad []byte) ([]byte, error)
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher bound to key.
	CreateCipher(key []byte) (AEAD, error)
}
