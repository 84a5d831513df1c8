// Package gemini provides a reply generator backed by the Google Gemini API.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"caboai_backend/internal/feature/chat/domain/entity"
	"caboai_backend/internal/feature/chat/usecase"
)

const (
	// DefaultModel is the Gemini model used when none is configured.
	DefaultModel = "gemini-2.5-flash"
)

// Generator produces replies directly via Gemini. It is used when no
// external AI service URL is configured.
type Generator struct {
	client *genai.Client
	model  string
}

// Compile-time check that Generator implements ReplyGenerator.
var _ usecase.ReplyGenerator = (*Generator)(nil)

// NewGenerator creates a Generator using application default
// credentials. Requires GOOGLE_GENAI_USE_VERTEXAI, GOOGLE_CLOUD_PROJECT
// and GOOGLE_CLOUD_LOCATION, or GEMINI_API_KEY.
func NewGenerator(ctx context.Context, model string) (*Generator, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	return &Generator{client: client, model: model}, nil
}

// Generate builds the prompt from the request and returns Gemini's reply.
func (g *Generator) Generate(ctx context.Context, req usecase.GenerateRequest) (*usecase.GenerateResult, error) {
	prompt := buildPrompt(req)

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return nil, fmt.Errorf("gemini API request failed: %w", err)
	}

	tokens := 0
	if resp.UsageMetadata != nil {
		tokens = int(resp.UsageMetadata.TotalTokenCount)
	}

	return &usecase.GenerateResult{
		Response:   resp.Text(),
		TokensUsed: tokens,
		Model:      g.model,
		Language:   req.Language,
	}, nil
}

// buildPrompt assembles the system instructions, conversation history,
// and incoming message into a single prompt.
func buildPrompt(req usecase.GenerateRequest) string {
	var b strings.Builder

	b.WriteString("You are an assistant for a Los Cabos ")
	b.WriteString(strings.ReplaceAll(req.Industry, "_", " "))
	b.WriteString(" business. Write a ")
	b.WriteString(req.Tone)
	b.WriteString(" reply to the customer's message below.\n")

	switch req.Language {
	case "es":
		b.WriteString("Reply in Spanish.\n")
	case "en":
		b.WriteString("Reply in English.\n")
	default:
		b.WriteString("Reply in the same language as the customer's message.\n")
	}

	if len(req.History) > 0 {
		b.WriteString("\nConversation so far:\n")
		for _, m := range req.History {
			if m.Role == entity.RoleAssistant {
				b.WriteString("Business: ")
			} else {
				b.WriteString("Customer: ")
			}
			b.WriteString(m.Content)
			b.WriteString("\n")
		}
	}

	b.WriteString("\nCustomer: ")
	b.WriteString(req.Message)
	return b.String()
}
