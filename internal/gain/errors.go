package gain

import "errors"

var (
	// ErrNetwork covers transport failures, timeouts and non-2xx statuses.
	ErrNetwork = errors.New("gain service request failed")
	// ErrMalformedResponse is returned for bodies that do not parse or lack a
	// required channel.
	ErrMalformedResponse = errors.New("malformed gain response")
	// ErrStaleResponse marks a result that arrived after a newer one was applied.
	ErrStaleResponse = errors.New("stale gain response")
)
