// Package aiservice provides a client for the external CaboAi AI service.
package aiservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"caboai_backend/internal/feature/chat/adapters/aiservice/dto"
	"caboai_backend/internal/feature/chat/domain/entity"
	"caboai_backend/internal/feature/chat/usecase"
	"caboai_backend/internal/shared/ratelimiter"
)

// Client is a ReplyGenerator backed by the CaboAi AI service's
// /generate-email endpoint.
type Client struct {
	baseURL string
	client  *http.Client
	limiter ratelimiter.RateLimiterInterface
}

// Compile-time check that Client implements ReplyGenerator.
var _ usecase.ReplyGenerator = (*Client)(nil)

// NewClient creates a new Client for the AI service at baseURL.
// The limiter paces outbound calls; pass nil to disable pacing.
func NewClient(baseURL string, client *http.Client, limiter ratelimiter.RateLimiterInterface) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		limiter: limiter,
	}
}

// Generate sends the message and its context to the AI service and
// returns the generated reply.
func (c *Client) Generate(ctx context.Context, req usecase.GenerateRequest) (*usecase.GenerateResult, error) {
	if c.limiter != nil {
		c.limiter.WaitIfNeeded()
	}

	body := dto.GenerateEmailRequest{
		EmailContent: buildEmailContent(req),
		Tone:         req.Tone,
		Industry:     req.Industry,
		Language:     req.Language,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate-email", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("ai service http %d", res.StatusCode)
	}

	var out dto.GenerateEmailResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, err
	}
	if !out.Success && out.Error != "" {
		return nil, fmt.Errorf("ai service: %s", out.Error)
	}

	return &usecase.GenerateResult{
		Response:   out.Response,
		TokensUsed: out.TokensUsed,
		Model:      out.Model,
		Language:   out.Language,
	}, nil
}

// buildEmailContent flattens the recent conversation history in front
// of the new message so the service sees the thread context.
func buildEmailContent(req usecase.GenerateRequest) string {
	if len(req.History) == 0 {
		return req.Message
	}

	var b strings.Builder
	for _, m := range req.History {
		if m.Role == entity.RoleAssistant {
			b.WriteString("Previous reply: ")
		} else {
			b.WriteString("Previous message: ")
		}
		b.WriteString(m.Content)
		b.WriteString("\n")
	}
	b.WriteString("New message: ")
	b.WriteString(req.Message)
	return b.String()
}
