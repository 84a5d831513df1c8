// Package handler provides the HTTP handlers for the users feature.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"caboai_backend/internal/feature/auth/domain/entity"
	"caboai_backend/internal/feature/auth/transport/http/dto"
	jwtmw "caboai_backend/internal/platform/jwt"
)

// ProfileHandler serves the authenticated user's profile.
type ProfileHandler struct{}

// NewProfileHandler creates a new ProfileHandler instance.
func NewProfileHandler() *ProfileHandler {
	return &ProfileHandler{}
}

// Profile returns the profile of the user resolved by the auth
// middleware. The middleware guarantees the context value is present on
// protected routes; a missing value means the route was wired without it.
func (h *ProfileHandler) Profile(c *gin.Context) {
	v, ok := c.Get(jwtmw.ContextUser)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	}
	user, ok := v.(*entity.User)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, dto.NewUserRes(user))
}
