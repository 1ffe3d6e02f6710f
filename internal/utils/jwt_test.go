package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret   = "test-secret"
	testIssuer   = "event-booking"
	testAudience = "event-booking"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken(testSecret, testIssuer, testAudience, 42, "alice@example.com", "user", 15)
	require.NoError(t, err)
	require.NotEmpty(t, tok.Token)
	assert.WithinDuration(t, time.Now().UTC().Add(15*time.Minute), tok.Exp, 5*time.Second)

	claims, err := ParseExpiredAccessToken(testSecret, testIssuer, testAudience, tok.Token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.Subject)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
}

func TestParseExpiredAccessTokenAcceptsExpired(t *testing.T) {
	// A negative TTL signs a token that expired in the past.
	tok, err := NewAccessToken(testSecret, testIssuer, testAudience, 7, "bob@example.com", "admin", -5)
	require.NoError(t, err)
	require.True(t, tok.Exp.Before(time.Now().UTC()))

	claims, err := ParseExpiredAccessToken(testSecret, testIssuer, testAudience, tok.Token)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), claims.Subject)
	assert.Equal(t, "admin", claims.Role)
}

func TestParseExpiredAccessTokenRejectsTampering(t *testing.T) {
	tok, err := NewAccessToken(testSecret, testIssuer, testAudience, 1, "eve@example.com", "user", 15)
	require.NoError(t, err)

	cases := map[string]struct {
		secret, issuer, audience, token string
	}{
		"wrong secret":   {"other-secret", testIssuer, testAudience, tok.Token},
		"wrong issuer":   {testSecret, "someone-else", testAudience, tok.Token},
		"wrong audience": {testSecret, testIssuer, "someone-else", tok.Token},
		"garbage":        {testSecret, testIssuer, testAudience, "not.a.jwt"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseExpiredAccessToken(tc.secret, tc.issuer, tc.audience, tc.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestNewRefreshTokenUniqueAndOpaque(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		rt, err := NewRefreshToken(7)
		require.NoError(t, err)
		assert.Len(t, rt.Raw, 96) // 48 random bytes hex-encoded
		assert.False(t, seen[rt.Raw], "refresh token repeated")
		seen[rt.Raw] = true
		assert.True(t, rt.Exp.After(time.Now().UTC().Add(6*24*time.Hour)))
	}
}

func TestHashRefreshRaw(t *testing.T) {
	h1 := HashRefreshRaw("some-raw-token")
	h2 := HashRefreshRaw("some-raw-token")
	h3 := HashRefreshRaw("another-raw-token")
	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 64)
	assert.NotContains(t, h1, "some-raw-token")
}
