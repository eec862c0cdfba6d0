package errdefs

import (
	"context"
	"errors"
	"net"
)

var (
	// ErrValidation marks malformed input to a core operation. Never retried.
	ErrValidation = errors.New("validation error")

	// ErrIntegrity marks a content hash that does not match the expected value.
	ErrIntegrity = errors.New("integrity mismatch")

	// ErrTransient marks a network or read failure that may succeed on retry.
	ErrTransient = errors.New("transient I/O error")

	// ErrNotFound marks a lookup with no result (unknown mod, unmatched hash).
	ErrNotFound = errors.New("not found")
)

// IsRetryable reports whether err is worth a second attempt.
// Explicit transient errors, network timeouts and per-attempt deadlines qualify;
// cancellation by the caller does not.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, ErrValidation) || errors.Is(err, ErrIntegrity) || errors.Is(err, ErrNotFound) {
		return false
	}
	if errors.Is(err, ErrTransient) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return false
}
