package compensation

import (
	"errors"
	"fmt"
)

// ErrInvalidYears guards the wire contract: the accounting service only
// accepts a non-negative whole-year tenure.
var ErrInvalidYears = errors.New("tenure years must not be negative")

// AuthorityUnreachableError is a transport-level failure talking to the
// accounting service: connection refused, DNS, or the request timing out.
// Callers surface it as service-unavailable; this package never retries.
type AuthorityUnreachableError struct {
	Err error
}

func (e *AuthorityUnreachableError) Error() string {
	return fmt.Sprintf("accounting service unreachable: %v", e.Err)
}

func (e *AuthorityUnreachableError) Unwrap() error {
	return e.Err
}

// AuthorityError means the accounting service answered, but not with a
// success. The status and raw body are kept for diagnostics; callers
// surface it as bad-gateway.
type AuthorityError struct {
	StatusCode int
	Body       string
}

func (e *AuthorityError) Error() string {
	return fmt.Sprintf("accounting service returned status %d: %s", e.StatusCode, e.Body)
}
