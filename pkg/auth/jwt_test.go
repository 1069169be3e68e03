package auth

import (
	"testing"
	"time"

	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"
)

const testSecret = "test-secret"

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(testSecret, "alice", time.Hour)
	assert.NoError(t, err)
	assert.NotEqual(t, "", token)

	claims, err := ValidateToken(testSecret, token)
	assert.NoError(t, err)
	check.Equal(t, "alice", claims.Username)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(testSecret, "alice", time.Hour)
	assert.NoError(t, err)

	_, err = ValidateToken("other-secret", token)
	check.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	token, err := GenerateToken(testSecret, "alice", -time.Minute)
	assert.NoError(t, err)

	_, err = ValidateToken(testSecret, token)
	check.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	_, err := ValidateToken(testSecret, "not-a-token")
	check.Error(t, err)
}
