package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/onetime/internal/crypto/domain"
)

// cheapParams keeps key derivation fast in tests.
var cheapParams = Argon2Params{Time: 1, Memory: 64, Threads: 1}

func TestNewArgon2KeyDeriver(t *testing.T) {
	deriver := NewArgon2KeyDeriver()
	assert.Equal(t, DefaultArgon2Params, deriver.params)
	assert.Equal(t, cryptoDomain.KDFSalt, deriver.salt)
}

func TestDefaultArgon2Params(t *testing.T) {
	// Any change here also makes every stored secret unreadable.
	assert.Equal(t, Argon2Params{Time: 3, Memory: 64 * 1024, Threads: 4}, DefaultArgon2Params)

	assert.GreaterOrEqual(t, DefaultArgon2Params.Memory, uint32(32*1024), "memory cost must be tens of MiB")
	assert.GreaterOrEqual(t, DefaultArgon2Params.Time, uint32(2), "must run multiple passes")
	assert.GreaterOrEqual(t, DefaultArgon2Params.Threads, uint8(1))
	assert.Equal(t, 32, cryptoDomain.KeySize, "keys must be 256 bits")
}

func TestArgon2KeyDeriver_DefaultParamsOutput(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping full-cost key derivation in short mode")
	}

	deriver := NewArgon2KeyDeriver()
	key := deriver.Derive("orange")
	defer key.Destroy()
	require.Len(t, key.Bytes(), cryptoDomain.KeySize)

	cheap := NewArgon2KeyDeriverWithParams(cheapParams).Derive("orange")
	defer cheap.Destroy()
	assert.NotEqual(t, cheap.Bytes(), key.Bytes())
}

func TestArgon2KeyDeriver_Derive(t *testing.T) {
	deriver := NewArgon2KeyDeriverWithParams(cheapParams)

	t.Run("produces 256-bit keys", func(t *testing.T) {
		key := deriver.Derive("orange")
		defer key.Destroy()
		assert.Len(t, key.Bytes(), cryptoDomain.KeySize)
	})

	t.Run("deterministic", func(t *testing.T) {
		first := deriver.Derive("orange")
		defer first.Destroy()
		second := deriver.Derive("orange")
		defer second.Destroy()
		assert.Equal(t, first.Bytes(), second.Bytes())
	})

	t.Run("different passwords give different keys", func(t *testing.T) {
		first := deriver.Derive("correct")
		defer first.Destroy()
		second := deriver.Derive("wrong")
		defer second.Destroy()
		assert.NotEqual(t, first.Bytes(), second.Bytes())
	})

	t.Run("empty password still derives", func(t *testing.T) {
		key := deriver.Derive("")
		defer key.Destroy()
		require.Len(t, key.Bytes(), cryptoDomain.KeySize)

		again := deriver.Derive("")
		defer again.Destroy()
		assert.Equal(t, key.Bytes(), again.Bytes())
	})

	t.Run("pathological password still derives", func(t *testing.T) {
		password := string([]byte{0x00, 0xFF, 0xFE}) + "‮" + string(make([]byte, 4096))
		key := deriver.Derive(password)
		defer key.Destroy()
		assert.Len(t, key.Bytes(), cryptoDomain.KeySize)
	})

	t.Run("cost parameters change the key", func(t *testing.T) {
		other := NewArgon2KeyDeriverWithParams(Argon2Params{Time: 2, Memory: 64, Threads: 1})
		first := deriver.Derive("orange")
		defer first.Destroy()
		second := other.Derive("orange")
		defer second.Destroy()
		assert.NotEqual(t, first.Bytes(), second.Bytes())
	})

	t.Run("derived key works with AES-GCM", func(t *testing.T) {
		key := deriver.Derive("orange")
		defer key.Destroy()
		_, err := NewAESGCM(key.Bytes())
		assert.NoError(t, err)
	})
}
