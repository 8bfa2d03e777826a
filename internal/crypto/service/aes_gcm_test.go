package service

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/onetime/internal/crypto/domain"
)

func newTestCipher(t *testing.T) *AESGCMCipher {
	t.Helper()
	key := make([]byte, cryptoDomain.KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)

	cipher, err := NewAESGCM(key)
	require.NoError(t, err)
	return cipher
}

func newTestNonce(t *testing.T) []byte {
	t.Helper()
	nonce := make([]byte, cryptoDomain.NonceSize)
	_, err := rand.Read(nonce)
	require.NoError(t, err)
	return nonce
}

func TestNewAESGCM(t *testing.T) {
	t.Run("valid 32-byte key", func(t *testing.T) {
		cipher, err := NewAESGCM(make([]byte, 32))
		require.NoError(t, err)
		assert.NotNil(t, cipher)
	})

	t.Run("rejects 16-byte key", func(t *testing.T) {
		_, err := NewAESGCM(make([]byte, 16))
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize)
	})

	t.Run("rejects empty key", func(t *testing.T) {
		_, err := NewAESGCM([]byte{})
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize)
	})
}

func TestAESGCMCipher_Encrypt(t *testing.T) {
	cipher := newTestCipher(t)

	t.Run("ciphertext carries the authentication tag", func(t *testing.T) {
		plaintext := []byte("launch codes")
		ciphertext, err := cipher.Encrypt(newTestNonce(t), plaintext, nil)
		require.NoError(t, err)
		assert.Len(t, ciphertext, len(plaintext)+cryptoDomain.TagSize)
		assert.False(t, bytes.Contains(ciphertext, plaintext))
	})

	t.Run("deterministic for identical inputs", func(t *testing.T) {
		nonce := newTestNonce(t)
		first, err := cipher.Encrypt(nonce, []byte("x"), []byte("id"))
		require.NoError(t, err)
		second, err := cipher.Encrypt(nonce, []byte("x"), []byte("id"))
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("different nonces give different ciphertexts", func(t *testing.T) {
		first, err := cipher.Encrypt(newTestNonce(t), []byte("x"), nil)
		require.NoError(t, err)
		second, err := cipher.Encrypt(newTestNonce(t), []byte("x"), nil)
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})

	t.Run("empty plaintext", func(t *testing.T) {
		ciphertext, err := cipher.Encrypt(newTestNonce(t), []byte{}, nil)
		require.NoError(t, err)
		assert.Len(t, ciphertext, cryptoDomain.TagSize)
	})

	t.Run("rejects wrong nonce size", func(t *testing.T) {
		_, err := cipher.Encrypt(make([]byte, 8), []byte("x"), nil)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidNonceSize)
	})
}

func TestAESGCMCipher_Decrypt(t *testing.T) {
	cipher := newTestCipher(t)
	nonce := newTestNonce(t)
	aad := []byte("secret-id")
	plaintext := []byte("launch codes")

	ciphertext, err := cipher.Encrypt(nonce, plaintext, aad)
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		decrypted, err := cipher.Decrypt(nonce, ciphertext, aad)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)
	})

	t.Run("wrong key", func(t *testing.T) {
		other := newTestCipher(t)
		_, err := other.Decrypt(nonce, ciphertext, aad)
		assert.ErrorIs(t, err, cryptoDomain.ErrAuthenticationFailed)
	})

	t.Run("tampered ciphertext", func(t *testing.T) {
		tampered := append([]byte(nil), ciphertext...)
		tampered[0] ^= 0xFF
		_, err := cipher.Decrypt(nonce, tampered, aad)
		assert.ErrorIs(t, err, cryptoDomain.ErrAuthenticationFailed)
	})

	t.Run("tampered nonce", func(t *testing.T) {
		tampered := append([]byte(nil), nonce...)
		tampered[0] ^= 0xFF
		_, err := cipher.Decrypt(tampered, ciphertext, aad)
		assert.ErrorIs(t, err, cryptoDomain.ErrAuthenticationFailed)
	})

	t.Run("truncated nonce", func(t *testing.T) {
		_, err := cipher.Decrypt(nonce[:4], ciphertext, aad)
		assert.ErrorIs(t, err, cryptoDomain.ErrAuthenticationFailed)
	})

	t.Run("different aad", func(t *testing.T) {
		_, err := cipher.Decrypt(nonce, ciphertext, []byte("other-id"))
		assert.ErrorIs(t, err, cryptoDomain.ErrAuthenticationFailed)
	})

	t.Run("wrong key and corrupted data report the same error", func(t *testing.T) {
		other := newTestCipher(t)
		_, wrongKeyErr := other.Decrypt(nonce, ciphertext, aad)

		corrupted := append([]byte(nil), ciphertext...)
		corrupted[len(corrupted)-1] ^= 0x01
		_, corruptErr := cipher.Decrypt(nonce, corrupted, aad)

		assert.Equal(t, wrongKeyErr, corruptErr)
		assert.Equal(t, wrongKeyErr.Error(), corruptErr.Error())
	})
}
