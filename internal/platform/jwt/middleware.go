package jwtmw

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"caboai_backend/internal/feature/auth/domain/entity"
)

// Context keys set by AuthRequired for downstream handlers.
const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"
	ContextUser      = "user"
)

// TokenVerifier verifies an access token and returns its claims.
// Following Go convention: interfaces are defined by the consumer.
type TokenVerifier interface {
	VerifyToken(token string) (*Claims, error)
}

// UserResolver resolves the token subject to a stored user. A valid
// token referencing a deleted account must not pass.
type UserResolver interface {
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// AuthRequired returns a Gin middleware that validates bearer tokens
// and restricts access to authenticated users. On success the resolved
// user is attached to the request context; on any failure the request
// is aborted with 401 and the handler never runs.
func AuthRequired(verifier TokenVerifier, users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		claims, err := verifier.VerifyToken(tokenStr)
		if err != nil {
			// Expired vs. tampered is logged but not exposed to the client.
			slog.Warn("token verification failed", "error", err, "remote_addr", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		user, err := users.FindByID(c.Request.Context(), claims.UserID)
		if err != nil {
			// Valid token for an account that no longer exists.
			slog.Warn("token subject not found", "user_id", claims.UserID, "remote_addr", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextUserEmail, user.Email)
		c.Set(ContextUser, user)
		c.Next()
	}
}
