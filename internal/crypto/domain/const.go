// Package domain defines the cryptographic primitives shared by the secret vault:
// password-derived keys, nonce sizing and the errors produced by key derivation
// and authenticated encryption.
package domain

const (
	// KeySize is the length in bytes of every derived key (256 bits).
	KeySize = 32

	// NonceSize is the length in bytes of an AES-GCM nonce (96 bits).
	//
	// A nonce is generated from crypto/rand for every encryption. Reusing a nonce
	// under the same derived key breaks GCM confidentiality and authenticity, so
	// callers never cache or derive nonces.
	NonceSize = 12

	// TagSize is the length in bytes of the GCM authentication tag appended to ciphertext.
	TagSize = 16
)

// KDFSalt is the fixed salt mixed into every password derivation.
//
// The salt is the same for all secrets so that a reveal can recompute the key from
// the password alone. Two secrets protected by the same password therefore share a
// key; their ciphertexts still differ because each encryption draws a fresh nonce.
var KDFSalt = []byte("onetime/secret-vault/argon2id/v1")
