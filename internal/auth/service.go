// Package auth handles registration, login and token refresh.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/forkful/saucier/internal/store"
	"github.com/forkful/saucier/internal/store/model"
	"github.com/forkful/saucier/pkg/api"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type Service struct {
	logger *zap.Logger
	repo   store.Repository
	tokens *TokenProvider
}

func NewService(logger *zap.Logger, repo store.Repository, tokens *TokenProvider) *Service {
	return &Service{logger: logger, repo: repo, tokens: tokens}
}

func (s *Service) Register(ctx context.Context, req *api.RegisterRequest) (*api.AuthResponse, error) {
	taken, err := s.repo.Users().ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("email lookup: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &model.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Users().Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID))
	return s.authResponse(user)
}

func (s *Service) Login(ctx context.Context, req *api.LoginRequest) (*api.AuthResponse, error) {
	user, err := s.repo.Users().GetByEmail(ctx, req.Email)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("user lookup: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return s.authResponse(user)
}

// Refresh validates the refresh token first, then re-resolves the user so a
// deleted account cannot mint new tokens.
func (s *Service) Refresh(ctx context.Context, req *api.RefreshRequest) (*api.TokenRefreshResponse, error) {
	userID, err := s.tokens.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if _, err := s.repo.Users().Get(ctx, userID); err != nil {
		if err == store.ErrNotFound {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("user lookup: %w", err)
	}

	access, err := s.tokens.IssueAccessToken(userID)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	return &api.TokenRefreshResponse{
		AccessToken: access,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokens.AccessTTL().Seconds()),
	}, nil
}

func (s *Service) authResponse(user *model.User) (*api.AuthResponse, error) {
	access, err := s.tokens.IssueAccessToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}

	return &api.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.tokens.AccessTTL().Seconds()),
		UserID:       user.ID,
		Name:         user.Name,
		Email:        user.Email,
	}, nil
}
