package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/forkful/saucier/internal/auth"
	"github.com/forkful/saucier/internal/store/memory"
	"github.com/forkful/saucier/pkg/api"
)

func newAuthService() (*auth.Service, *memory.Repository) {
	repo := memory.New()
	tokens := auth.NewTokenProvider("test-secret-0123456789", 15*time.Minute, time.Hour)
	return auth.NewService(zap.NewNop(), repo, tokens), repo
}

func registerReq() *api.RegisterRequest {
	return &api.RegisterRequest{
		Name:     "Chef",
		Email:    "chef@example.com",
		Password: "super-secret-pw",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	reg, err := svc.Register(ctx, registerReq())
	assert.NoError(t, err)
	assert.NotEmpty(t, reg.AccessToken)
	assert.NotEmpty(t, reg.RefreshToken)
	assert.Equal(t, "Bearer", reg.TokenType)
	assert.Equal(t, "chef@example.com", reg.Email)

	login, err := svc.Login(ctx, &api.LoginRequest{
		Email:    "chef@example.com",
		Password: "super-secret-pw",
	})
	assert.NoError(t, err)
	assert.Equal(t, reg.UserID, login.UserID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq())
	assert.NoError(t, err)

	_, err = svc.Register(ctx, registerReq())
	assert.ErrorIs(t, err, auth.ErrEmailTaken)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq())
	assert.NoError(t, err)

	_, err = svc.Login(ctx, &api.LoginRequest{
		Email:    "chef@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &api.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestRefresh(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	reg, err := svc.Register(ctx, registerReq())
	assert.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, &api.RefreshRequest{RefreshToken: reg.RefreshToken})
	assert.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// An access token is not accepted as a refresh token.
	_, err = svc.Refresh(ctx, &api.RefreshRequest{RefreshToken: reg.AccessToken})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
