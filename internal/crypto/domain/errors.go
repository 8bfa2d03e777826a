package domain

import (
	"github.com/allisson/onetime/internal/errors"
)

// Cryptographic operation error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors so the
// HTTP layer can map them without knowing about cryptography.
var (
	// ErrAuthenticationFailed indicates that an AEAD open operation rejected its input.
	//
	// This single error covers a wrong password (and therefore a wrong key), a
	// tampered ciphertext, a tampered or truncated nonce and mismatched associated
	// data. The cause is never disclosed. It wraps ErrNotFound so that a caller
	// probing passwords sees exactly what a caller probing identifiers sees.
	//
	// HTTP Status: 404 Not Found
	ErrAuthenticationFailed = errors.Wrap(errors.ErrNotFound, "authentication failed")

	// ErrInvalidKeySize indicates a key that is not exactly KeySize bytes.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrInvalidNonceSize indicates an encryption was attempted with a nonce of the wrong length.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrInvalidNonceSize = errors.Wrap(errors.ErrInvalidInput, "invalid nonce size")

	// ErrRandomSourceExhausted indicates the secure random source failed to produce bytes.
	//
	// The operation is aborted; there is no fallback to a weaker source.
	//
	// HTTP Status: 500 Internal Server Error
	ErrRandomSourceExhausted = errors.New("random source exhausted")
)
