// Package router wires the HTTP surface of the CaboAi backend.
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "caboai_backend/internal/feature/auth/transport/handler"
	chathandler "caboai_backend/internal/feature/chat/transport/handler"
	usershandler "caboai_backend/internal/feature/users/transport/handler"
	"caboai_backend/internal/platform/config"
	platformhandler "caboai_backend/internal/platform/http/handler"
)

// NewRouter builds the Gin engine with CORS, the public auth and health
// routes, and the token-gated business routes.
func NewRouter(
	cfg *config.Config,
	authH *authhandler.AuthHandler,
	profileH *usershandler.ProfileHandler,
	chatH *chathandler.ChatHandler,
	healthH *platformhandler.HealthHandler,
	authRequired gin.HandlerFunc,
) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health probes are never gated by authentication.
	r.GET("/health", healthH.Check)
	r.GET("/health/ready", healthH.Ready)
	r.GET("/health/live", healthH.Live)

	r.POST("/auth/register", authH.Register)
	r.POST("/auth/login", authH.Login)

	// Everything below requires a valid bearer token.
	auth := r.Group("/")
	auth.Use(authRequired)
	{
		auth.GET("/users/profile", profileH.Profile)
		auth.POST("/chat/message", chatH.SendMessage)
		auth.GET("/chat/conversations", chatH.ListConversations)
		auth.GET("/chat/conversations/:id", chatH.History)
		auth.GET("/chat/usage", chatH.Usage)
	}

	return r
}
