// Package gateway implements the backend auth API client. Every operation
// performs exactly one network call; the token store is written only on
// success, except Logout which wipes local state unconditionally.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dtroode/finfy-auth/internal/logger"
	"github.com/dtroode/finfy-auth/internal/model"
)

// maxErrorBody caps how much of an error response is read for classification.
const maxErrorBody = 1 << 20

// CookieWiper clears locally cached cookies. Satisfied by cookiejar.Jar.
type CookieWiper interface {
	Clear()
}

// Gateway talks to the auth endpoints of the backend. Retry policy is the
// caller's concern; no operation retries internally.
type Gateway struct {
	client  *http.Client
	baseURL string
	tokens  model.TokenStore
	cookies CookieWiper
	logger  *logger.Logger
}

// New creates a Gateway. The client is expected to carry the request-signing
// transport and the cookie jar; baseURL is the prefix for all auth paths.
func New(client *http.Client, baseURL string, tokens model.TokenStore, cookies CookieWiper, logger *logger.Logger) *Gateway {
	return &Gateway{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		cookies: cookies,
		logger:  logger,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type credentialRequest struct {
	Credential string `json:"credential"`
}

// Login posts credentials and stores the returned access token.
func (g *Gateway) Login(ctx context.Context, email, password string) (model.Session, error) {
	g.logger.Debug("logging in", "email", email)

	var session model.Session
	if err := g.post(ctx, "/login", loginRequest{Email: email, Password: password}, &session); err != nil {
		return model.Session{}, err
	}

	g.tokens.Set(session.AccessToken)
	g.logger.Info("login succeeded", "email", email)
	return session, nil
}

// LoginWithGoogle posts a google credential and stores the returned access
// token. A 409 with error code ACCOUNT_CONFLICT is surfaced as a
// *model.AccountConflictError carrying the conflicting account's email.
func (g *Gateway) LoginWithGoogle(ctx context.Context, credential string) (model.Session, error) {
	var session model.Session
	if err := g.post(ctx, "/google", credentialRequest{Credential: credential}, &session); err != nil {
		return model.Session{}, googleConflictOr(err)
	}

	g.tokens.Set(session.AccessToken)
	g.logger.Info("google login succeeded")
	return session, nil
}

// ResolveGoogleConflict posts the google credential to the merge-accounts
// endpoint and stores the returned access token.
func (g *Gateway) ResolveGoogleConflict(ctx context.Context, credential string) (model.Session, error) {
	var session model.Session
	if err := g.post(ctx, "/google/resolve-conflict", credentialRequest{Credential: credential}, &session); err != nil {
		return model.Session{}, err
	}

	g.tokens.Set(session.AccessToken)
	g.logger.Info("google account conflict resolved")
	return session, nil
}

// Logout posts a logout request and wipes the local token and cookies. The
// wipe is unconditional: a failed network call must not leave stale
// credentials behind.
func (g *Gateway) Logout(ctx context.Context) error {
	err := g.post(ctx, "/logout", nil, nil)

	g.tokens.Clear()
	g.cookies.Clear()

	if err != nil {
		g.logger.Error("logout request failed, local session cleared anyway", "error", err.Error())
		return err
	}

	g.logger.Info("logged out")
	return nil
}

// Refresh exchanges the refresh cookie for a new access token and stores it.
func (g *Gateway) Refresh(ctx context.Context) (model.Session, error) {
	var session model.Session
	if err := g.post(ctx, "/refresh", nil, &session); err != nil {
		return model.Session{}, err
	}

	g.tokens.Set(session.AccessToken)
	g.logger.Info("access token refreshed")
	return session, nil
}

// Status probes the backend and returns the raw response body.
func (g *Gateway) Status(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/status", nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", statusError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	return string(body), nil
}

func (g *Gateway) post(ctx context.Context, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return statusError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// statusError reads the error payload of a non-2xx response. A malformed or
// absent body degrades to an empty payload, never to a parse failure.
func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var payload model.ErrorPayload
	_ = json.Unmarshal(raw, &payload)

	return &model.StatusError{StatusCode: resp.StatusCode, Payload: payload}
}

// googleConflictOr converts a 409 ACCOUNT_CONFLICT status error into the
// dedicated conflict branch; every other error passes through untouched.
func googleConflictOr(err error) error {
	var statusErr *model.StatusError
	if !errors.As(err, &statusErr) {
		return err
	}
	if statusErr.StatusCode != http.StatusConflict || statusErr.Payload.Error != "ACCOUNT_CONFLICT" {
		return err
	}

	conflict := &model.AccountConflictError{}
	if statusErr.Payload.Data != nil {
		conflict.Email = statusErr.Payload.Data.Email
	}
	return conflict
}
