package testutil

import (
	"net/http"
	"time"

	"everypolitician/pkg/requestcontext"
)

// WithRequestID adds a request ID to the request context.
// This simulates what the request ID middleware would do.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}

// WithTime pins the request-scoped clock.
func WithTime(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}
