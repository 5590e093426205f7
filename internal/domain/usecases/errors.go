package usecases

import "github.com/pkg/errors"

var (
	// ErrNotReady is returned when a request arrives before initialization completes.
	ErrNotReady = errors.New("assistant not initialized")

	// ErrUnknownDomain is returned when a request names a domain with no bound index.
	ErrUnknownDomain = errors.New("unknown domain")
)
