package session

import "errors"

// Sentinel errors for session operations. Check with errors.Is.
var (
	// ErrInvalidState indicates a session method was called before any
	// query key was set. This is a caller-contract breach and is
	// surfaced loudly instead of corrupting state.
	ErrInvalidState = errors.New("session has no query key")

	// ErrStaleEpoch indicates a result produced under an earlier epoch
	// tried to land after the query key changed. The result must be
	// discarded by the caller.
	ErrStaleEpoch = errors.New("session epoch has changed")

	// ErrInvalidQueryKey indicates a query key with missing required
	// fields for its mode.
	ErrInvalidQueryKey = errors.New("invalid query key")

	// ErrNotFound indicates the requested session does not exist.
	ErrNotFound = errors.New("session not found")
)
