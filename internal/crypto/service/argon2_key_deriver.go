package service

import (
	"golang.org/x/crypto/argon2"

	cryptoDomain "github.com/allisson/onetime/internal/crypto/domain"
)

// Argon2Params are the Argon2id cost parameters.
type Argon2Params struct {
	// Time is the number of passes over memory.
	Time uint32
	// Memory is the memory cost in KiB.
	Memory uint32
	// Threads is the degree of parallelism. It changes the output, so it is part of the key format.
	Threads uint8
}

// DefaultArgon2Params are the parameters every production key is derived with:
// 3 passes over 64 MiB with 4 lanes. Changing them makes existing secrets unreadable.
var DefaultArgon2Params = Argon2Params{
	Time:    3,
	Memory:  64 * 1024,
	Threads: 4,
}

// Argon2KeyDeriver derives keys with Argon2id over a fixed salt.
type Argon2KeyDeriver struct {
	params Argon2Params
	salt   []byte
}

// NewArgon2KeyDeriver creates a KeyDeriver using DefaultArgon2Params and cryptoDomain.KDFSalt.
func NewArgon2KeyDeriver() *Argon2KeyDeriver {
	return NewArgon2KeyDeriverWithParams(DefaultArgon2Params)
}

// NewArgon2KeyDeriverWithParams creates a KeyDeriver with explicit cost parameters.
// Only tests should need anything other than DefaultArgon2Params.
func NewArgon2KeyDeriverWithParams(params Argon2Params) *Argon2KeyDeriver {
	return &Argon2KeyDeriver{
		params: params,
		salt:   cryptoDomain.KDFSalt,
	}
}

// Derive returns a 256-bit key for password. The intermediate password bytes are zeroed.
func (d *Argon2KeyDeriver) Derive(password string) *cryptoDomain.DerivedKey {
	pw := []byte(password)
	defer cryptoDomain.Zero(pw)

	key := argon2.IDKey(pw, d.salt, d.params.Time, d.params.Memory, d.params.Threads, cryptoDomain.KeySize)
	return cryptoDomain.NewDerivedKey(key)
}
