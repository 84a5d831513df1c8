// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"log/slog"
	"time"

	"caboai_backend/internal/feature/chat/adapters/aiservice"
	"caboai_backend/internal/feature/chat/adapters/gemini"
	"caboai_backend/internal/feature/chat/usecase"
	"caboai_backend/internal/platform/config"
	infrahttp "caboai_backend/internal/platform/http"
	"caboai_backend/internal/shared/ratelimiter"
)

// NewReplyGenerator creates the configured ReplyGenerator. When an AI
// service URL is set the external CaboAi AI service is used; otherwise
// replies are generated directly through Gemini.
func NewReplyGenerator(ctx context.Context, cfg *config.Config) (usecase.ReplyGenerator, error) {
	if cfg.AIServiceURL != "" {
		slog.Info("using external AI service", "url", cfg.AIServiceURL)
		httpClient := infrahttp.NewHTTPClient(cfg.AIServiceTimeout)
		limiter := ratelimiter.NewRateLimiter(60, time.Minute)
		return aiservice.NewClient(cfg.AIServiceURL, httpClient, limiter), nil
	}

	slog.Info("using Gemini reply generator", "model", cfg.GeminiModel)
	return gemini.NewGenerator(ctx, cfg.GeminiModel)
}
