package service

import (
	"context"

	"golang.org/x/sync/semaphore"

	cryptoDomain "github.com/allisson/onetime/internal/crypto/domain"
)

// LimitedKeyDeriver bounds the number of derivations in flight across all callers.
// Argon2id holds its whole memory cost for the duration of a call, so the limit caps
// peak KDF memory at roughly limit * Argon2Params.Memory.
type LimitedKeyDeriver struct {
	next KeyDeriver
	sem  *semaphore.Weighted
}

// NewLimitedKeyDeriver wraps next so that at most limit derivations run at once.
// A limit below 1 is treated as 1.
func NewLimitedKeyDeriver(next KeyDeriver, limit int) *LimitedKeyDeriver {
	if limit < 1 {
		limit = 1
	}
	return &LimitedKeyDeriver{
		next: next,
		sem:  semaphore.NewWeighted(int64(limit)),
	}
}

// Derive waits for a free slot and delegates. Derivation stays total: callers queue
// rather than fail.
func (d *LimitedKeyDeriver) Derive(password string) *cryptoDomain.DerivedKey {
	// Acquire only fails on a done context, and Background is never done
	_ = d.sem.Acquire(context.Background(), 1)
	defer d.sem.Release(1)

	return d.next.Derive(password)
}
