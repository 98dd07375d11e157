package transport

import "net/http"

// TokenSource provides the current bearer token. An empty string means the
// process holds no session.
type TokenSource interface {
	Get() string
}

// Signer attaches the current bearer token to outgoing requests. The token is
// read from the source on every request, so a session established after the
// client was constructed is picked up on the very next call.
type Signer struct {
	tokens TokenSource
	next   http.RoundTripper
}

// NewSigner creates a Signer delegating to next, or to http.DefaultTransport
// when next is nil.
func NewSigner(tokens TokenSource, next http.RoundTripper) *Signer {
	if next == nil {
		next = http.DefaultTransport
	}
	return &Signer{tokens: tokens, next: next}
}

// RoundTrip implements http.RoundTripper. Requests are never mutated in
// place; a signed clone is sent when a token is present.
func (s *Signer) RoundTrip(req *http.Request) (*http.Response, error) {
	token := s.tokens.Get()
	if token == "" {
		return s.next.RoundTrip(req)
	}

	signed := req.Clone(req.Context())
	signed.Header.Set("Authorization", "Bearer "+token)
	return s.next.RoundTrip(signed)
}
