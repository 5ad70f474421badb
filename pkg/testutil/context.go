package testutil

import (
	"net/http"
	"time"

	"loanengine/pkg/requestcontext"
)

// FixedNow is the clock used by decision tests. Ages in test vectors are
// computed against it.
var FixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// WithRequestTime pins the request-scoped clock, as the requesttime
// middleware would.
func WithRequestTime(req *http.Request, t time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), t))
}

// WithRequestID sets the request id, as the request id middleware would.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}
