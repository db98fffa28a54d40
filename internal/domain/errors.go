package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidContactType — contact_type outside {email, phone}; no
	// upstream call is made.
	ErrInvalidContactType = errors.New("invalid contact type")

	// ErrLookupFailed is the generic failure surfaced to callers. The
	// underlying cause is logged, not exposed.
	ErrLookupFailed = errors.New("lookup failed")
)

// UpstreamError is any non-2xx or malformed response from the remote
// order-management API. It aborts the whole lookup: partial results are
// discarded, never returned.
type UpstreamError struct {
	Op     string
	Status int
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("upstream %s: status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("upstream %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
