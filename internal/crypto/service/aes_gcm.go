package service

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	cryptoDomain "github.com/allisson/onetime/internal/crypto/domain"
)

// AESGCMCipher implements the AEAD interface using AES-256-GCM
// (Advanced Encryption Standard with Galois/Counter Mode).
//
// Security properties:
//   - 256-bit key size
//   - 12-byte nonce supplied by the caller, never reused under the same key
//   - 16-byte authentication tag appended to the ciphertext
//
// The nonce is an explicit input so that encryption is a pure function of
// (key, nonce, plaintext, aad); generating it is the NonceGenerator's job.
//
// Thread safety:
//
//	The cipher instance is stateless and safe for concurrent use from multiple goroutines.
type AESGCMCipher struct {
	aead cipher.AEAD
}

// NewAESGCM creates a new AES-256-GCM cipher instance.
//
// The key must be exactly 32 bytes (256 bits); any other length returns
// cryptoDomain.ErrInvalidKeySize.
func NewAESGCM(key []byte) (*AESGCMCipher, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &AESGCMCipher{aead: aead}, nil
}

// Encrypt seals plaintext with the given nonce and additional authenticated data.
//
// The AAD is authenticated but not encrypted; the vault passes the secret
// identifier so a ciphertext cannot be moved to another identifier. The returned
// slice is freshly allocated and carries the tag at its end.
func (a *AESGCMCipher) Encrypt(nonce, plaintext, aad []byte) ([]byte, error) {
	if len(nonce) != a.aead.NonceSize() {
		return nil, cryptoDomain.ErrInvalidNonceSize
	}
	return a.aead.Seal(nil, nonce, plaintext, aad), nil
}

// Decrypt verifies and opens ciphertext.
//
// A malformed nonce is reported exactly like a failed tag check: the caller
// cannot tell a wrong key from corrupted data.
func (a *AESGCMCipher) Decrypt(nonce, ciphertext, aad []byte) ([]byte, error) {
	if len(nonce) != a.aead.NonceSize() {
		return nil, cryptoDomain.ErrAuthenticationFailed
	}

	plaintext, err := a.aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, cryptoDomain.ErrAuthenticationFailed
	}
	return plaintext, nil
}
