// Package identity wraps the google sign-in capability. The login flow
// consumes it as an opaque source of ID-token credentials: it either produces
// a credential string or one of a closed set of typed failures.
package identity

import (
	"context"
	"errors"

	"golang.org/x/oauth2"
	googleauth "golang.org/x/oauth2/google"

	"github.com/dtroode/finfy-auth/internal/logger"
	"github.com/dtroode/finfy-auth/internal/token"
)

// Result is the closed set of outcomes of a google sign-in attempt.
type Result interface {
	result()
}

// Success carries the google ID token to forward to the backend.
type Success struct {
	IDToken string
}

// Cancelled means the user aborted the sign-in.
type Cancelled struct{}

// NoAccount means google returned no usable credential.
type NoAccount struct{}

// Misconfigured means the OAuth client is not set up (missing client ID or
// rejected client).
type Misconfigured struct{}

// ParseError means the returned ID token was not decodable.
type ParseError struct{}

// Failure is any other provider error.
type Failure struct {
	Err error
}

func (Success) result()       {}
func (Cancelled) result()     {}
func (NoAccount) result()     {}
func (Misconfigured) result() {}
func (ParseError) result()    {}
func (Failure) result()       {}

// FailureMessage maps every non-success outcome to user-facing text. Success
// maps to an empty string.
func FailureMessage(r Result) string {
	switch r.(type) {
	case Cancelled:
		return "Google sign-in was cancelled."
	case NoAccount:
		return "No Google account available."
	case Misconfigured:
		return "Google sign-in is not configured. Check the client ID."
	case ParseError:
		return "Could not authenticate with Google."
	case Failure:
		return "Error authenticating with Google."
	default:
		return ""
	}
}

// Client exchanges an OAuth authorization code for a google ID token.
type Client struct {
	config *oauth2.Config
	logger *logger.Logger
}

// NewClient creates a google identity client. An empty clientID yields a
// client that always reports Misconfigured without touching the network.
func NewClient(clientID, clientSecret, redirectURL string, logger *logger.Logger) *Client {
	return &Client{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     googleauth.Endpoint,
		},
		logger: logger,
	}
}

// AuthCodeURL returns the URL the user must visit to obtain an authorization
// code.
func (c *Client) AuthCodeURL(state string) string {
	return c.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange redeems an authorization code for an ID token.
func (c *Client) Exchange(ctx context.Context, code string) Result {
	if c.config.ClientID == "" {
		return Misconfigured{}
	}

	tok, err := c.config.Exchange(ctx, code)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return Cancelled{}
		}
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.ErrorCode == "invalid_client" {
			return Misconfigured{}
		}
		c.logger.Warn("google code exchange failed", "error", err.Error())
		return Failure{Err: err}
	}

	raw, _ := tok.Extra("id_token").(string)
	if raw == "" {
		return NoAccount{}
	}

	if _, err := token.Inspect(raw); err != nil {
		c.logger.Warn("google returned an undecodable id token", "error", err.Error())
		return ParseError{}
	}

	return Success{IDToken: raw}
}
