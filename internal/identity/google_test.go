package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dtroode/finfy-auth/internal/testutil"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func makeIDToken(t *testing.T) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "google-user"}).
		SignedString([]byte("test"))
	require.NoError(t, err)
	return raw
}

func clientWithTokenEndpoint(tokenURL string) *Client {
	c := NewClient("client-id", "client-secret", "http://127.0.0.1/callback", testutil.MakeNoopLogger())
	c.config.Endpoint = oauth2.Endpoint{TokenURL: tokenURL}
	return c
}

func TestClient_Exchange_Success(t *testing.T) {
	idToken := makeIDToken(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at","token_type":"bearer","id_token":"` + idToken + `"}`))
	}))
	defer srv.Close()

	result := clientWithTokenEndpoint(srv.URL).Exchange(context.Background(), "code")

	require.IsType(t, Success{}, result)
	assert.Equal(t, idToken, result.(Success).IDToken)
}

func TestClient_Exchange_MissingIDTokenIsNoAccount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at","token_type":"bearer"}`))
	}))
	defer srv.Close()

	result := clientWithTokenEndpoint(srv.URL).Exchange(context.Background(), "code")
	assert.IsType(t, NoAccount{}, result)
}

func TestClient_Exchange_UndecodableIDToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at","token_type":"bearer","id_token":"garbage"}`))
	}))
	defer srv.Close()

	result := clientWithTokenEndpoint(srv.URL).Exchange(context.Background(), "code")
	assert.IsType(t, ParseError{}, result)
}

func TestClient_Exchange_InvalidClientIsMisconfigured(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid_client"}`))
	}))
	defer srv.Close()

	result := clientWithTokenEndpoint(srv.URL).Exchange(context.Background(), "code")
	assert.IsType(t, Misconfigured{}, result)
}

func TestClient_Exchange_BlankClientIDShortCircuits(t *testing.T) {
	c := NewClient("", "", "", testutil.MakeNoopLogger())

	result := c.Exchange(context.Background(), "code")
	assert.IsType(t, Misconfigured{}, result)
}

func TestClient_Exchange_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := clientWithTokenEndpoint(srv.URL).Exchange(ctx, "code")
	assert.IsType(t, Cancelled{}, result)
}

func TestFailureMessage_CoversEveryOutcome(t *testing.T) {
	outcomes := []Result{Cancelled{}, NoAccount{}, Misconfigured{}, ParseError{}, Failure{}}
	for _, outcome := range outcomes {
		assert.NotEmpty(t, FailureMessage(outcome))
	}
	assert.Empty(t, FailureMessage(Success{IDToken: "t"}))
}
