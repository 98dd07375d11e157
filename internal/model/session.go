package model

import "context"

// Session is the authenticated state returned by the backend after a
// successful login, google login, conflict resolution or token refresh.
type Session struct {
	AccessToken string `json:"accessToken"`
	User        *User  `json:"user,omitempty"`
}

// TokenStore holds the current access token for the lifetime of the process.
// Writes must be immediately visible to concurrent readers; an empty string
// means no session.
type TokenStore interface {
	Get() string
	Set(token string)
	Clear()
}

// AuthGateway performs the session-changing backend calls. Each operation
// issues exactly one network call and writes the token store only on success,
// except Logout which wipes local state unconditionally.
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (Session, error)
	LoginWithGoogle(ctx context.Context, credential string) (Session, error)
	ResolveGoogleConflict(ctx context.Context, credential string) (Session, error)
	Logout(ctx context.Context) error
}
