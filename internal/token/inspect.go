package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the subset of access-token claims surfaced by Inspect.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// Info describes an access token without verifying its signature. The client
// never trusts these values for authorization decisions; verification is the
// backend's job.
type Info struct {
	Subject   string
	UserID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Inspect decodes a JWT access token for display purposes.
func Inspect(raw string) (Info, error) {
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return Info{}, fmt.Errorf("failed to parse token: %w", err)
	}

	info := Info{
		Subject: claims.Subject,
		UserID:  claims.UserID,
	}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}

	return info, nil
}

// Expired reports whether the token's expiry has passed. Tokens without an
// exp claim never report expired.
func (i Info) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && i.ExpiresAt.Before(now)
}
