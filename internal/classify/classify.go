// Package classify maps failures produced by network operations to a fixed
// set of domain error kinds, in a fixed precedence order.
package classify

import (
	"errors"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/dtroode/finfy-auth/internal/model"
)

// Kind identifies one of the domain error classes.
type Kind int

const (
	KindNone Kind = iota
	KindInvalidCredentials
	KindSessionExpired
	KindNetwork
	KindServer
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindSessionExpired:
		return "session_expired"
	case KindNetwork:
		return "network"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

// Fixed user-facing copy for each classified kind.
const (
	MsgInvalidCredentials = "Incorrect email or password."
	MsgSessionExpired     = "Your session has expired. Please sign in again."
	MsgNetwork            = "Could not reach the server. Check your connection and try again."
	MsgServer             = "Something went wrong. Please try again in a moment."
	MsgUnknown            = "Could not complete the login. Please try again."
)

// Error is a classified failure ready to be rendered.
type Error struct {
	Kind    Kind
	Message string
}

var sessionExpiredCodes = map[string]struct{}{
	"SESSION_EXPIRED":       {},
	"INVALID_REFRESH_TOKEN": {},
	"INVALID_TOKEN_PAYLOAD": {},
	"NO_REFRESH_TOKEN":      {},
}

// Classify maps err to a domain error. Precedence, first match wins:
// transport failure, invalid credentials, session expired, server error,
// unknown. A missing or malformed error payload never aborts classification;
// it is treated as empty.
func Classify(err error) Error {
	if err == nil {
		return Error{Kind: KindNone}
	}

	var statusErr *model.StatusError
	if errors.As(err, &statusErr) {
		return classifyStatus(statusErr)
	}

	var urlErr *url.Error
	var netErr net.Error
	if errors.As(err, &urlErr) || errors.As(err, &netErr) {
		return Error{Kind: KindNetwork, Message: MsgNetwork}
	}

	return Error{Kind: KindUnknown, Message: MsgUnknown}
}

func classifyStatus(err *model.StatusError) Error {
	status := err.StatusCode
	code := err.Payload.Error
	message := err.Payload.Message

	if status == http.StatusUnauthorized && code == "INVALID_CREDENTIALS" {
		return Error{Kind: KindInvalidCredentials, Message: MsgInvalidCredentials}
	}

	_, expiredCode := sessionExpiredCodes[code]
	sessionExpired := status == 419 ||
		status == 440 ||
		(status == http.StatusUnauthorized && expiredCode) ||
		strings.Contains(strings.ToLower(message), "session expired")

	if sessionExpired {
		return Error{Kind: KindSessionExpired, Message: MsgSessionExpired}
	}

	if status >= http.StatusInternalServerError || code == "INTERNAL_ERROR" {
		return Error{Kind: KindServer, Message: MsgServer}
	}

	if message != "" {
		return Error{Kind: KindUnknown, Message: message}
	}
	return Error{Kind: KindUnknown, Message: MsgUnknown}
}
