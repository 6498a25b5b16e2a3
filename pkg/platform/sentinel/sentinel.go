package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Caches and upstream clients
// return these (optionally wrapped) so services can translate them into
// domain errors:
//   - ErrNotFound: the key or record does not exist (cache miss, upstream 404)
//   - ErrUnavailable: a backend is temporarily unreachable
//   - ErrMalformed: a backend answered with data that cannot be decoded
var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("unavailable")
	ErrMalformed   = errors.New("malformed response")
)
