package login

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_ValidDraft(t *testing.T) {
	result := Validate("user@finfy.com", "secret")
	assert.True(t, result.Valid())
	assert.Empty(t, result.EmailError)
	assert.Empty(t, result.PasswordError)
}

func TestValidate_InvalidEmailReportsOnlyEmail(t *testing.T) {
	result := Validate("not-an-email", "x")
	assert.False(t, result.Valid())
	assert.Equal(t, msgInvalidEmail, result.EmailError)
	assert.Empty(t, result.PasswordError)
}

func TestValidate_InvalidEmailAndBlankPasswordStillOnlyEmail(t *testing.T) {
	result := Validate("nope", "   ")
	assert.Equal(t, msgInvalidEmail, result.EmailError)
	assert.Empty(t, result.PasswordError)
}

func TestValidate_BlankPasswordReportsOnlyPassword(t *testing.T) {
	result := Validate("a@b.com", "   ")
	assert.False(t, result.Valid())
	assert.Empty(t, result.EmailError)
	assert.Equal(t, msgMissingPassword, result.PasswordError)
}

func TestValidate_EmailShapes(t *testing.T) {
	valid := []string{"a@b.co", "first.last@sub.domain.org", "x+tag@y.io"}
	invalid := []string{"", "plain", "a@b", "a b@c.d", "@b.com", "a@.com"}

	for _, email := range valid {
		assert.True(t, Validate(email, "pw").Valid(), email)
	}
	for _, email := range invalid {
		assert.NotEmpty(t, Validate(email, "pw").EmailError, email)
	}
}
