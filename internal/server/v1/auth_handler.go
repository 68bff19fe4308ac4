package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/forkful/saucier/internal/auth"
	"github.com/forkful/saucier/internal/server/validator"
	"github.com/forkful/saucier/pkg/api"
)

type AuthHandler struct {
	service *auth.Service
}

func NewAuthHandler(service *auth.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register creates a new account and returns a token pair.
//
// POST /v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req api.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(api.ValidationError(validator.ParseError(err)))
		return
	}

	resp, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			_ = c.Error(api.ConflictError("Email is already registered."))
			return
		}
		_ = c.Error(api.InternalError(err))
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login exchanges credentials for a token pair.
//
// POST /v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req api.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(api.ValidationError(validator.ParseError(err)))
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			_ = c.Error(api.UnauthorizedError("Invalid email or password."))
			return
		}
		_ = c.Error(api.InternalError(err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Refresh exchanges a refresh token for a new access token.
//
// POST /v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req api.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(api.ValidationError(validator.ParseError(err)))
		return
	}

	resp, err := h.service.Refresh(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			_ = c.Error(api.UnauthorizedError("Invalid or expired refresh token."))
			return
		}
		_ = c.Error(api.InternalError(err))
		return
	}

	c.JSON(http.StatusOK, resp)
}
