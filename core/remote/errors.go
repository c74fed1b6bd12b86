package remote

import "errors"

var (
	// ErrNetworkUnavailable is returned when the provider cannot be reached.
	ErrNetworkUnavailable = errors.New("bundle provider unreachable")
	// ErrRemoteRejected is returned when the provider responds with a
	// non-success status code.
	ErrRemoteRejected = errors.New("bundle provider rejected request")
	// ErrMalformedPayload is returned when the provider's response does not
	// parse into the expected bundle shape.
	ErrMalformedPayload = errors.New("malformed bundle payload")
)
