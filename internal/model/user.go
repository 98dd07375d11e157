package model

// User mirrors the backend user resource optionally attached to a session.
type User struct {
	ID              string         `json:"id,omitempty"`
	Email           string         `json:"email,omitempty"`
	Name            string         `json:"name,omitempty"`
	Avatar          string         `json:"avatar,omitempty"`
	Provider        string         `json:"provider,omitempty"`
	GoogleLinked    bool           `json:"googleLinked,omitempty"`
	EmailVerifiedAt string         `json:"emailVerifiedAt,omitempty"`
	Preferences     map[string]any `json:"preferences,omitempty"`
	Onboarding      map[string]any `json:"onboarding,omitempty"`
}
