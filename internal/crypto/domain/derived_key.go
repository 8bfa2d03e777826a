package domain

import (
	"log/slog"
	"sync"
)

const redacted = "[REDACTED]"

// DerivedKey holds key material derived from a password.
//
// A DerivedKey is never persisted and never logged: every formatting path renders
// a placeholder. Callers acquire one per operation and release it with Destroy,
// normally via defer, so the buffer is zeroed on every exit path.
type DerivedKey struct {
	mu  sync.Mutex
	key []byte
}

// NewDerivedKey takes ownership of key. The caller must not retain or modify it.
func NewDerivedKey(key []byte) *DerivedKey {
	return &DerivedKey{key: key}
}

// Bytes returns the raw key material, or nil after Destroy.
// The returned slice aliases the internal buffer and is zeroed by Destroy.
func (k *DerivedKey) Bytes() []byte {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.key
}

// Destroy zeroes the key material. It is safe to call more than once.
func (k *DerivedKey) Destroy() {
	if k == nil {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	Zero(k.key)
	k.key = nil
}

// String implements fmt.Stringer.
func (k *DerivedKey) String() string {
	return redacted
}

// GoString implements fmt.GoStringer so %#v does not print the buffer either.
func (k *DerivedKey) GoString() string {
	return redacted
}

// LogValue implements slog.LogValuer.
func (k *DerivedKey) LogValue() slog.Value {
	return slog.StringValue(redacted)
}
