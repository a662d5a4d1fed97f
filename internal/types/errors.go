package types

import "errors"

// Relay failure taxonomy. The relay never retries on its own; callers decide
// based on which of these an error wraps.
var (
	// ErrRateLimited means the upstream capability signalled throttling.
	// Safe to retry later.
	ErrRateLimited = errors.New("upstream rate limited")

	// ErrUnauthenticated means the upstream credential is invalid or
	// missing. Operator action is required; not user-recoverable.
	ErrUnauthenticated = errors.New("upstream authentication failed")

	// ErrMalformedOutput means the upstream payload could not be parsed or
	// normalized into a complete recipe. Safe to retry immediately.
	ErrMalformedOutput = errors.New("malformed generation output")

	// ErrUpstreamUnavailable means the upstream could not be reached.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrAllergenViolation means the generated recipe included an
	// ingredient matching the profile's allergy list. The relay rejects
	// the result rather than serving it; retrying is safe.
	ErrAllergenViolation = errors.New("generated recipe violates allergy constraints")
)
