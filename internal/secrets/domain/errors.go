package domain

import (
	"github.com/allisson/onetime/internal/errors"
)

// Secret-specific error definitions.
var (
	// ErrSecretNotFound indicates the identifier was never created, has expired or was
	// already revealed. The three cases are deliberately indistinguishable.
	//
	// HTTP Status: 404 Not Found
	ErrSecretNotFound = errors.Wrap(errors.ErrNotFound, "secret not found")

	// ErrSecretConflict indicates a secret with the same identifier already exists.
	//
	// HTTP Status: 409 Conflict
	ErrSecretConflict = errors.Wrap(errors.ErrConflict, "secret already exists")

	// ErrStoreUnavailable indicates the backing store could not be reached, the
	// connection pool was exhausted or the request context ended first.
	//
	// HTTP Status: 503 Service Unavailable
	ErrStoreUnavailable = errors.Wrap(errors.ErrUnavailable, "secret store unavailable")
)
