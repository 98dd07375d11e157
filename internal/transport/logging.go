package transport

import (
	"net/http"
	"time"

	"github.com/dtroode/finfy-auth/internal/logger"
	"github.com/google/uuid"
)

// Logging logs every outgoing request with a generated request ID. The ID is
// also forwarded to the backend in the X-Request-ID header.
type Logging struct {
	logger *logger.Logger
	next   http.RoundTripper
}

// NewLogging creates a Logging round-tripper delegating to next, or to
// http.DefaultTransport when next is nil.
func NewLogging(logger *logger.Logger, next http.RoundTripper) *Logging {
	if next == nil {
		next = http.DefaultTransport
	}
	return &Logging{logger: logger, next: next}
}

// RoundTrip implements http.RoundTripper and logs method, URL, request ID,
// status and duration for each request.
func (l *Logging) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	requestID := uuid.NewString()

	log := l.logger.With(
		"method", req.Method,
		"url", req.URL.String(),
		"request_id", requestID)

	tagged := req.Clone(req.Context())
	tagged.Header.Set("X-Request-ID", requestID)

	log.Info("http request started")

	resp, err := l.next.RoundTrip(tagged)
	duration := time.Since(start)

	if err != nil {
		log.Error("http request failed",
			"duration_ms", duration.Milliseconds(),
			"error", err.Error())
		return nil, err
	}

	log.Info("http request completed",
		"duration_ms", duration.Milliseconds(),
		"status", resp.StatusCode)

	return resp, nil
}
