// Package repository implements one-time secret persistence.
//
// Every implementation stores ciphertext and nonce under the secret identifier with an
// expiry, and hands a secret out at most once: TakeAndInvalidate reads and removes the
// record in a single atomic step of the backing store. Redis is the primary store and
// relies on native key expiry. The PostgreSQL and MySQL stores filter expired rows on
// read and are swept by the purge command. The in-memory store is meant for
// development and tests.
package repository

import (
	apperrors "github.com/allisson/onetime/internal/errors"
	secretsDomain "github.com/allisson/onetime/internal/secrets/domain"
)

// unavailable attaches a transport error to secretsDomain.ErrStoreUnavailable.
func unavailable(err error) error {
	return apperrors.Join(secretsDomain.ErrStoreUnavailable, err)
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
