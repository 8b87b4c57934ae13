package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *TokenManager {
	return NewTokenManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	tm := newTestManager()

	for _, kind := range []Kind{AccessToken, RefreshToken} {
		token, err := tm.Issue(kind, "user-123")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := tm.Verify(kind, token)
		require.NoError(t, err)
		assert.Equal(t, "user-123", claims.UserID)
		assert.Equal(t, string(kind), claims.Subject)
	}
}

func TestVerifyWrongKind(t *testing.T) {
	tm := newTestManager()

	access, err := tm.Issue(AccessToken, "user-123")
	require.NoError(t, err)

	// Signed with the access secret, so the refresh secret rejects it.
	_, err = tm.Verify(RefreshToken, access)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestVerifySubjectMismatch(t *testing.T) {
	// Same secret for both kinds: the signature passes either way and only
	// the subject claim separates them.
	tm := NewTokenManager("shared", "shared", time.Hour, time.Hour)

	refresh, err := tm.Issue(RefreshToken, "user-123")
	require.NoError(t, err)

	_, err = tm.Verify(AccessToken, refresh)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestVerifyExpired(t *testing.T) {
	tm := NewTokenManager("access-secret", "refresh-secret", -time.Minute, -time.Minute)

	token, err := tm.Issue(RefreshToken, "user-123")
	require.NoError(t, err)

	_, err = tm.Verify(RefreshToken, token)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestVerifyMalformed(t *testing.T) {
	tm := newTestManager()

	for _, input := range []string{"", "garbage", "a.b.c"} {
		_, err := tm.Verify(AccessToken, input)
		assert.ErrorIs(t, err, ErrInvalid, "input %q", input)
	}
}

func TestVerifyTamperedSignature(t *testing.T) {
	tm := newTestManager()
	other := NewTokenManager("other-secret", "other-secret", time.Hour, time.Hour)

	token, err := other.Issue(AccessToken, "user-123")
	require.NoError(t, err)

	_, err = tm.Verify(AccessToken, token)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestIssueUniquePerCall(t *testing.T) {
	tm := newTestManager()

	first, err := tm.Issue(AccessToken, "user-123")
	require.NoError(t, err)
	second, err := tm.Issue(AccessToken, "user-123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
