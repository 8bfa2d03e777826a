package domain

import "runtime"

// Zero overwrites every given buffer with zeros. Nil and empty buffers are skipped.
//
// It is used for plaintext, passwords and derived keys once they are no longer needed.
// The KeepAlive keeps the compiler from treating the writes as dead stores.
func Zero(bufs ...[]byte) {
	for _, b := range bufs {
		clear(b)
		runtime.KeepAlive(b)
	}
}
