package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeToken(t *testing.T, claims Claims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return raw
}

func TestInspect(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	raw := makeToken(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(15 * time.Minute)),
		},
		UserID: "user-1",
	})

	info, err := Inspect(raw)
	require.NoError(t, err)
	assert.Equal(t, "user-1", info.Subject)
	assert.Equal(t, "user-1", info.UserID)
	assert.Equal(t, now, info.IssuedAt)
	assert.Equal(t, now.Add(15*time.Minute), info.ExpiresAt)
	assert.False(t, info.Expired(now))
	assert.True(t, info.Expired(now.Add(16*time.Minute)))
}

func TestInspect_NoExpiryNeverExpires(t *testing.T) {
	raw := makeToken(t, Claims{UserID: "user-2"})

	info, err := Inspect(raw)
	require.NoError(t, err)
	assert.False(t, info.Expired(time.Now().Add(100 * 24 * time.Hour)))
}

func TestInspect_Garbage(t *testing.T) {
	_, err := Inspect("not-a-jwt")
	require.Error(t, err)
}
