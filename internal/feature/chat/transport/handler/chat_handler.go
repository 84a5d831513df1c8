// Package handler provides the HTTP handlers for the chat feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"caboai_backend/internal/feature/chat/domain/entity"
	"caboai_backend/internal/feature/chat/transport/http/dto"
	"caboai_backend/internal/feature/chat/usecase"
	jwtmw "caboai_backend/internal/platform/jwt"
)

// ChatUsecase defines the chat operations the handler needs.
type ChatUsecase interface {
	SendMessage(ctx context.Context, userID uint, in usecase.SendMessageInput) (*usecase.SendMessageOutput, error)
	History(ctx context.Context, userID uint, conversationID string, count int) (*entity.Conversation, []entity.Message, error)
	Conversations(ctx context.Context, userID uint) ([]usecase.ConversationSummary, error)
	Usage(ctx context.Context, userID uint) (*usecase.UsageStats, error)
}

// ChatHandler handles HTTP requests for AI reply generation.
type ChatHandler struct {
	chat ChatUsecase
}

// NewChatHandler creates a new ChatHandler instance.
func NewChatHandler(chat ChatUsecase) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// userID reads the authenticated user's id set by the auth middleware.
func userID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(jwtmw.ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// SendMessage handles the reply-generation endpoint.
// - 400 on validation failure
// - 429 when the daily quota is exhausted
// - 502 when the AI generator fails
// - 200 with the generated reply on success
func (h *ChatHandler) SendMessage(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	}

	var req dto.ChatMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("chat validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	out, err := h.chat.SendMessage(c.Request.Context(), id, usecase.SendMessageInput{
		ConversationID: req.ConversationID,
		BusinessID:     req.BusinessID,
		Message:        req.Message,
		Tone:           req.Tone,
		Industry:       req.Industry,
		Language:       req.Language,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUsageLimitExceeded):
			slog.Warn("daily limit reached", "user_id", id)
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "daily message limit exceeded"})
		case errors.Is(err, usecase.ErrConversationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found"})
		case errors.Is(err, usecase.ErrGenerationFailed):
			slog.Error("generation failed", "error", err, "user_id", id)
			c.JSON(http.StatusBadGateway, gin.H{"error": "reply generation failed"})
		default:
			slog.Error("chat message failed", "error", err, "user_id", id)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	slog.Info("reply generated", "user_id", id, "conversation_id", out.ConversationID, "tokens_used", out.TokensUsed)
	c.JSON(http.StatusOK, out)
}

// History handles the conversation-history endpoint.
// An unknown id and another user's conversation both return 404.
func (h *ChatHandler) History(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	}

	count := 0
	if raw := c.Query("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid count"})
			return
		}
		count = n
	}

	conv, messages, err := h.chat.History(c.Request.Context(), id, c.Param("id"), count)
	if err != nil {
		if errors.Is(err, usecase.ErrConversationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found"})
			return
		}
		slog.Error("history lookup failed", "error", err, "user_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"conversation_id": conv.ID,
		"messages":        messages,
		"created_at":      conv.CreatedAt,
		"updated_at":      conv.UpdatedAt,
	})
}

// ListConversations handles the conversation-listing endpoint.
func (h *ChatHandler) ListConversations(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	}

	summaries, err := h.chat.Conversations(c.Request.Context(), id)
	if err != nil {
		slog.Error("conversation listing failed", "error", err, "user_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"conversations": summaries})
}

// Usage handles the daily-usage endpoint.
func (h *ChatHandler) Usage(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	}

	stats, err := h.chat.Usage(c.Request.Context(), id)
	if err != nil {
		slog.Error("usage lookup failed", "error", err, "user_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
