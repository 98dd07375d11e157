package login

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	msgInvalidEmail    = "Enter a valid email address."
	msgMissingPassword = "Enter your email and password to continue."
)

// ValidationResult carries at most one field error. Email is checked first;
// the password is only examined once the email is syntactically valid.
type ValidationResult struct {
	EmailError    string
	PasswordError string
}

// Valid reports whether the draft may be submitted.
func (r ValidationResult) Valid() bool {
	return r.EmailError == "" && r.PasswordError == ""
}

// Validate checks a login draft. The email is expected to be trimmed by the
// caller; the password only needs to be non-blank.
func Validate(email, password string) ValidationResult {
	if !emailPattern.MatchString(email) {
		return ValidationResult{EmailError: msgInvalidEmail}
	}

	if strings.TrimSpace(password) == "" {
		return ValidationResult{PasswordError: msgMissingPassword}
	}

	return ValidationResult{}
}
