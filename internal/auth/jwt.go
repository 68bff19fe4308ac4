package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// TokenProvider issues and validates HS256 access and refresh tokens.
type TokenProvider struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenProvider(secret string, accessTTL, refreshTTL time.Duration) *TokenProvider {
	return &TokenProvider{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

type claims struct {
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

func (p *TokenProvider) AccessTTL() time.Duration { return p.accessTTL }

func (p *TokenProvider) IssueAccessToken(userID string) (string, error) {
	return p.issue(userID, tokenTypeAccess, p.accessTTL)
}

func (p *TokenProvider) IssueRefreshToken(userID string) (string, error) {
	return p.issue(userID, tokenTypeRefresh, p.refreshTTL)
}

func (p *TokenProvider) issue(userID, typ string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		TokenType: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return token.SignedString(p.secret)
}

// ValidateAccessToken returns the subject of a valid access token.
func (p *TokenProvider) ValidateAccessToken(raw string) (string, error) {
	return p.validate(raw, tokenTypeAccess)
}

// ValidateRefreshToken returns the subject of a valid refresh token.
func (p *TokenProvider) ValidateRefreshToken(raw string) (string, error) {
	return p.validate(raw, tokenTypeRefresh)
}

func (p *TokenProvider) validate(raw, wantType string) (string, error) {
	var c claims
	token, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if c.TokenType != wantType || c.Subject == "" {
		return "", ErrInvalidToken
	}
	return c.Subject, nil
}
