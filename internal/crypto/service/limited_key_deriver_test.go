package service

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/onetime/internal/crypto/domain"
)

// blockingKeyDeriver counts derivations in flight and blocks each one until release is closed.
type blockingKeyDeriver struct {
	release  chan struct{}
	inFlight atomic.Int32
	maxSeen  atomic.Int32
	calls    atomic.Int32
}

func (b *blockingKeyDeriver) Derive(password string) *cryptoDomain.DerivedKey {
	b.calls.Add(1)
	n := b.inFlight.Add(1)
	for {
		seen := b.maxSeen.Load()
		if n <= seen || b.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}
	<-b.release
	b.inFlight.Add(-1)
	return cryptoDomain.NewDerivedKey(make([]byte, cryptoDomain.KeySize))
}

func TestLimitedKeyDeriver_Derive(t *testing.T) {
	t.Run("Success_DelegatesToWrappedDeriver", func(t *testing.T) {
		inner := NewArgon2KeyDeriverWithParams(cheapParams)
		limited := NewLimitedKeyDeriver(inner, 2)

		want := inner.Derive("orange")
		defer want.Destroy()
		got := limited.Derive("orange")
		defer got.Destroy()

		assert.Equal(t, want.Bytes(), got.Bytes())
	})

	t.Run("Success_BoundsConcurrentDerivations", func(t *testing.T) {
		const (
			limit   = 2
			callers = 10
		)
		inner := &blockingKeyDeriver{release: make(chan struct{})}
		limited := NewLimitedKeyDeriver(inner, limit)

		var wg sync.WaitGroup
		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				limited.Derive("orange").Destroy()
			}()
		}

		require.Eventually(t, func() bool {
			return inner.inFlight.Load() == limit
		}, time.Second, time.Millisecond)

		// The remaining callers must stay queued while the slots are held
		time.Sleep(20 * time.Millisecond)
		assert.Equal(t, int32(limit), inner.calls.Load())

		close(inner.release)
		wg.Wait()

		assert.Equal(t, int32(callers), inner.calls.Load())
		assert.Equal(t, int32(limit), inner.maxSeen.Load())
	})

	t.Run("Success_LimitBelowOneSerializes", func(t *testing.T) {
		inner := &blockingKeyDeriver{release: make(chan struct{})}
		limited := NewLimitedKeyDeriver(inner, 0)

		var wg sync.WaitGroup
		for i := 0; i < 3; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				limited.Derive("orange").Destroy()
			}()
		}

		require.Eventually(t, func() bool {
			return inner.inFlight.Load() == 1
		}, time.Second, time.Millisecond)

		close(inner.release)
		wg.Wait()

		assert.Equal(t, int32(1), inner.maxSeen.Load())
	})
}
