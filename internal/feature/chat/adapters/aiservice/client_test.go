package aiservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caboai_backend/internal/feature/chat/adapters/aiservice/dto"
	"caboai_backend/internal/feature/chat/domain/entity"
	"caboai_backend/internal/feature/chat/usecase"
)

func TestClient_Generate(t *testing.T) {
	t.Run("successful generation", func(t *testing.T) {
		var gotReq dto.GenerateEmailRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/generate-email", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

			_ = json.NewEncoder(w).Encode(dto.GenerateEmailResponse{
				Response:   "Gracias por su mensaje, tenemos disponibilidad.",
				Tone:       "professional",
				Industry:   "hospitality",
				Language:   "es",
				TokensUsed: 120,
				Model:      "gpt-4",
				Success:    true,
			})
		}))
		defer server.Close()

		client := NewClient(server.URL, &http.Client{Timeout: 5 * time.Second}, nil)
		result, err := client.Generate(context.Background(), usecase.GenerateRequest{
			Message:  "Hay habitaciones disponibles?",
			Tone:     "professional",
			Industry: "hospitality",
			Language: "auto",
		})

		require.NoError(t, err)
		assert.Equal(t, "Gracias por su mensaje, tenemos disponibilidad.", result.Response)
		assert.Equal(t, 120, result.TokensUsed)
		assert.Equal(t, "gpt-4", result.Model)
		assert.Equal(t, "es", result.Language)

		assert.Equal(t, "Hay habitaciones disponibles?", gotReq.EmailContent)
		assert.Equal(t, "professional", gotReq.Tone)
	})

	t.Run("history is flattened into the email content", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req dto.GenerateEmailRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Contains(t, req.EmailContent, "Previous message: first question")
			assert.Contains(t, req.EmailContent, "Previous reply: first answer")
			assert.Contains(t, req.EmailContent, "New message: second question")

			_ = json.NewEncoder(w).Encode(dto.GenerateEmailResponse{Response: "ok", Success: true})
		}))
		defer server.Close()

		client := NewClient(server.URL, &http.Client{Timeout: 5 * time.Second}, nil)
		_, err := client.Generate(context.Background(), usecase.GenerateRequest{
			Message: "second question",
			History: []entity.Message{
				{Role: entity.RoleUser, Content: "first question"},
				{Role: entity.RoleAssistant, Content: "first answer"},
			},
		})

		require.NoError(t, err)
	})

	t.Run("http error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := NewClient(server.URL, &http.Client{Timeout: 5 * time.Second}, nil)
		_, err := client.Generate(context.Background(), usecase.GenerateRequest{Message: "hi"})

		assert.Error(t, err)
	})

	t.Run("service-level failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(dto.GenerateEmailResponse{
				Success: false,
				Error:   "rate limit exceeded",
			})
		}))
		defer server.Close()

		client := NewClient(server.URL, &http.Client{Timeout: 5 * time.Second}, nil)
		_, err := client.Generate(context.Background(), usecase.GenerateRequest{Message: "hi"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "rate limit exceeded")
	})

	t.Run("context cancellation", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(time.Second)
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		client := NewClient(server.URL, &http.Client{Timeout: 5 * time.Second}, nil)
		_, err := client.Generate(ctx, usecase.GenerateRequest{Message: "hi"})

		assert.Error(t, err)
	})
}
