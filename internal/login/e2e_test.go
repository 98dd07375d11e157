package login_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dtroode/finfy-auth/internal/cookiejar"
	"github.com/dtroode/finfy-auth/internal/gateway"
	"github.com/dtroode/finfy-auth/internal/login"
	"github.com/dtroode/finfy-auth/internal/session"
	"github.com/dtroode/finfy-auth/internal/testutil"
	"github.com/dtroode/finfy-auth/internal/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	controller *login.Controller
	tokens     *session.Store
	loginCalls *atomic.Int32
	mergeBody  chan string
}

func makeEnv(t *testing.T, conflictEmail string) env {
	t.Helper()

	loginCalls := &atomic.Int32{}
	mergeBody := make(chan string, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		loginCalls.Add(1)
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"INVALID_CREDENTIALS"}`))
			return
		}
		_, _ = w.Write([]byte(`{"accessToken":"token-login"}`))
	})
	mux.HandleFunc("POST /google", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"ACCOUNT_CONFLICT","data":{"email":"` + conflictEmail + `"}}`))
	})
	mux.HandleFunc("POST /google/resolve-conflict", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		mergeBody <- body["credential"]
		_, _ = w.Write([]byte(`{"accessToken":"token-merge"}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	tokens := session.NewStore()
	jar := cookiejar.New()
	client := &http.Client{Jar: jar, Transport: transport.NewSigner(tokens, nil)}
	log := testutil.MakeNoopLogger()

	gw := gateway.New(client, srv.URL, tokens, jar, log)
	return env{
		controller: login.NewController(gw, log, login.WithNavigateDelay(5*time.Millisecond)),
		tokens:     tokens,
		loginCalls: loginCalls,
		mergeBody:  mergeBody,
	}
}

func nextEvent(t *testing.T, c *login.Controller) login.Event {
	t.Helper()
	select {
	case ev := <-c.Events():
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func TestEndToEnd_PasswordLogin(t *testing.T) {
	e := makeEnv(t, "")

	e.controller.OnEmailChange("user@finfy.com")
	e.controller.OnPasswordChange("secret")
	e.controller.Submit(context.Background())

	first := nextEvent(t, e.controller)
	require.IsType(t, login.ShowSnackbar{}, first)

	second := nextEvent(t, e.controller)
	require.IsType(t, login.NavigateHome{}, second)

	st := e.controller.State()
	assert.False(t, st.IsSubmitting)
	require.NotNil(t, st.Feedback)
	assert.Equal(t, login.FeedbackSuccess, st.Feedback.Kind)

	assert.Equal(t, "token-login", e.tokens.Get())
	assert.Equal(t, int32(1), e.loginCalls.Load())
}

func TestEndToEnd_GoogleConflictResolution(t *testing.T) {
	e := makeEnv(t, "x@y.com")

	e.controller.SubmitGoogle(context.Background(), "google-id-token")

	deadline := time.Now().Add(2 * time.Second)
	for !e.controller.State().GoogleConflictOpen {
		require.False(t, time.Now().After(deadline), "conflict dialog never opened")
		time.Sleep(5 * time.Millisecond)
	}

	st := e.controller.State()
	assert.Equal(t, "x@y.com", st.GoogleConflictEmail)
	assert.False(t, st.IsGoogleLoading)
	require.NotNil(t, st.Feedback)
	assert.Equal(t, login.FeedbackInfo, st.Feedback.Kind)

	e.controller.ResolveConflict(context.Background())

	select {
	case credential := <-e.mergeBody:
		assert.Equal(t, "google-id-token", credential, "merge must reuse the held credential")
	case <-time.After(2 * time.Second):
		t.Fatal("merge endpoint was never called")
	}

	require.IsType(t, login.ShowSnackbar{}, nextEvent(t, e.controller))
	require.IsType(t, login.NavigateHome{}, nextEvent(t, e.controller))
	assert.Equal(t, "token-merge", e.tokens.Get())
}
