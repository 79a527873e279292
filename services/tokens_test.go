package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tokenSecret = []byte("test-secret")

func TestVerificationTokenRoundTrip(t *testing.T) {
	token, err := CreateVerificationToken(7, tokenSecret, time.Now())
	require.NoError(t, err)

	userID, err := ParseVerificationToken(token, tokenSecret)
	require.NoError(t, err)
	assert.EqualValues(t, 7, userID)
}

func TestVerificationTokenRejectsAccessToken(t *testing.T) {
	// An access token lacks the purpose claim and must not verify email.
	token, err := CreateAccessToken(7, tokenSecret, time.Now())
	require.NoError(t, err)

	_, err = ParseVerificationToken(token, tokenSecret)
	assert.Error(t, err)
}

func TestVerificationTokenExpired(t *testing.T) {
	token, err := CreateVerificationToken(7, tokenSecret, time.Now().Add(-48*time.Hour))
	require.NoError(t, err)

	_, err = ParseVerificationToken(token, tokenSecret)
	assert.Error(t, err)
}

func TestVerificationTokenWrongSecret(t *testing.T) {
	token, err := CreateVerificationToken(7, tokenSecret, time.Now())
	require.NoError(t, err)

	_, err = ParseVerificationToken(token, []byte("other-secret"))
	assert.Error(t, err)
}
