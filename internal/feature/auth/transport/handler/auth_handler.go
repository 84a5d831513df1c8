// Package handler provides the HTTP handlers for the auth feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"caboai_backend/internal/feature/auth/domain/entity"
	"caboai_backend/internal/feature/auth/transport/http/dto"
	"caboai_backend/internal/feature/auth/usecase"
)

// AuthUsecase defines the authentication operations the handler needs.
// Following Go convention: interfaces are defined by the consumer
// (handler), not the provider (usecase).
type AuthUsecase interface {
	// Register creates a new user with the given email, password, and profile fields.
	Register(ctx context.Context, email, password, firstName, lastName string) (*entity.User, error)
	// Login authenticates the user and returns a signed access token.
	Login(ctx context.Context, email, password string) (string, error)
}

// AuthHandler handles HTTP requests for authentication operations.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles the user registration endpoint.
// - 400 on validation failure (malformed email, password length out of range)
// - 409 when the email is already registered
// - 201 with the created user (no password field) on success
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmailAlreadyExists):
			slog.Warn("register conflict", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		case errors.Is(err, usecase.ErrInvalidPassword):
			slog.Warn("register rejected", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		default:
			// Hashing or storage failure; environment problem, not the caller's.
			slog.Error("register failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	slog.Info("user registered", "user_id", user.ID, "email", user.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.NewUserRes(user))
}

// Login handles the user login endpoint.
// - 400 on validation failure
// - 401 on invalid credentials (same response for unknown email and wrong password)
// - 200 with the access token on success
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			slog.Warn("login failed", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}
		slog.Error("login error", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	slog.Info("user login successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.LoginRes{AccessToken: token})
}
