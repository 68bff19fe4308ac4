package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/forkful/saucier/internal/auth"
)

func newProvider() *auth.TokenProvider {
	return auth.NewTokenProvider("test-secret-0123456789", 15*time.Minute, 7*24*time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	p := newProvider()

	token, err := p.IssueAccessToken("user-1")
	assert.NoError(t, err)

	subject, err := p.ValidateAccessToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", subject)
}

func TestRefreshTokenNotValidAsAccess(t *testing.T) {
	p := newProvider()

	refresh, err := p.IssueRefreshToken("user-1")
	assert.NoError(t, err)

	_, err = p.ValidateAccessToken(refresh)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	subject, err := p.ValidateRefreshToken(refresh)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", subject)
}

func TestExpiredTokenRejected(t *testing.T) {
	p := auth.NewTokenProvider("test-secret-0123456789", -time.Minute, -time.Minute)

	token, err := p.IssueAccessToken("user-1")
	assert.NoError(t, err)

	_, err = p.ValidateAccessToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestForeignSignatureRejected(t *testing.T) {
	other := auth.NewTokenProvider("a-different-secret-key", 15*time.Minute, time.Hour)
	token, err := other.IssueAccessToken("user-1")
	assert.NoError(t, err)

	_, err = newProvider().ValidateAccessToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestGarbageTokenRejected(t *testing.T) {
	_, err := newProvider().ValidateAccessToken("not.a.token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
