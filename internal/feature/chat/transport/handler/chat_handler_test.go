package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caboai_backend/internal/feature/chat/domain/entity"
	"caboai_backend/internal/feature/chat/usecase"
	jwtmw "caboai_backend/internal/platform/jwt"
)

// TestMain puts Gin into test mode before running the tests.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// mockChatUsecase is a mock implementation of the ChatUsecase interface.
type mockChatUsecase struct {
	SendMessageFunc   func(ctx context.Context, userID uint, in usecase.SendMessageInput) (*usecase.SendMessageOutput, error)
	HistoryFunc       func(ctx context.Context, userID uint, conversationID string, count int) (*entity.Conversation, []entity.Message, error)
	ConversationsFunc func(ctx context.Context, userID uint) ([]usecase.ConversationSummary, error)
	UsageFunc         func(ctx context.Context, userID uint) (*usecase.UsageStats, error)
}

func (m *mockChatUsecase) SendMessage(ctx context.Context, userID uint, in usecase.SendMessageInput) (*usecase.SendMessageOutput, error) {
	if m.SendMessageFunc != nil {
		return m.SendMessageFunc(ctx, userID, in)
	}
	return &usecase.SendMessageOutput{Response: "mock reply", ConversationID: "conv-1"}, nil
}

func (m *mockChatUsecase) History(ctx context.Context, userID uint, conversationID string, count int) (*entity.Conversation, []entity.Message, error) {
	if m.HistoryFunc != nil {
		return m.HistoryFunc(ctx, userID, conversationID, count)
	}
	return nil, nil, usecase.ErrConversationNotFound
}

func (m *mockChatUsecase) Conversations(ctx context.Context, userID uint) ([]usecase.ConversationSummary, error) {
	if m.ConversationsFunc != nil {
		return m.ConversationsFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockChatUsecase) Usage(ctx context.Context, userID uint) (*usecase.UsageStats, error) {
	if m.UsageFunc != nil {
		return m.UsageFunc(ctx, userID)
	}
	return &usecase.UsageStats{}, nil
}

// testContext builds a Gin test context carrying the authenticated user id.
func testContext(t *testing.T, method, path string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	c.Request = httptest.NewRequest(method, path, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(jwtmw.ContextUserID, uint(1))
	return c, w
}

func TestChatHandler_SendMessage(t *testing.T) {
	t.Run("successful generation", func(t *testing.T) {
		h := NewChatHandler(&mockChatUsecase{
			SendMessageFunc: func(ctx context.Context, userID uint, in usecase.SendMessageInput) (*usecase.SendMessageOutput, error) {
				assert.Equal(t, uint(1), userID)
				assert.Equal(t, "Do you have availability?", in.Message)
				return &usecase.SendMessageOutput{
					Response:       "We do, best regards.",
					ConversationID: "conv-1",
					TokensUsed:     33,
					Model:          "gpt-4",
				}, nil
			},
		})

		c, w := testContext(t, http.MethodPost, "/chat/message", gin.H{"message": "Do you have availability?"})
		h.SendMessage(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "We do, best regards.", body["response"])
		assert.Equal(t, "conv-1", body["conversation_id"])
	})

	t.Run("missing message returns 400", func(t *testing.T) {
		h := NewChatHandler(&mockChatUsecase{})

		c, w := testContext(t, http.MethodPost, "/chat/message", gin.H{})
		h.SendMessage(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid tone returns 400", func(t *testing.T) {
		h := NewChatHandler(&mockChatUsecase{})

		c, w := testContext(t, http.MethodPost, "/chat/message", gin.H{"message": "hi", "tone": "shouty"})
		h.SendMessage(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("quota exhausted returns 429", func(t *testing.T) {
		h := NewChatHandler(&mockChatUsecase{
			SendMessageFunc: func(ctx context.Context, userID uint, in usecase.SendMessageInput) (*usecase.SendMessageOutput, error) {
				return nil, usecase.ErrUsageLimitExceeded
			},
		})

		c, w := testContext(t, http.MethodPost, "/chat/message", gin.H{"message": "hi"})
		h.SendMessage(c)

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
	})

	t.Run("generator failure returns 502", func(t *testing.T) {
		h := NewChatHandler(&mockChatUsecase{
			SendMessageFunc: func(ctx context.Context, userID uint, in usecase.SendMessageInput) (*usecase.SendMessageOutput, error) {
				return nil, usecase.ErrGenerationFailed
			},
		})

		c, w := testContext(t, http.MethodPost, "/chat/message", gin.H{"message": "hi"})
		h.SendMessage(c)

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("no user on context returns 401", func(t *testing.T) {
		h := NewChatHandler(&mockChatUsecase{})

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/chat/message", bytes.NewReader(nil))
		h.SendMessage(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestChatHandler_History(t *testing.T) {
	t.Run("successful lookup", func(t *testing.T) {
		conv := entity.NewConversation(1, "")
		conv.AddMessage(entity.RoleUser, "hello")

		h := NewChatHandler(&mockChatUsecase{
			HistoryFunc: func(ctx context.Context, userID uint, conversationID string, count int) (*entity.Conversation, []entity.Message, error) {
				assert.Equal(t, conv.ID, conversationID)
				return conv, conv.Messages, nil
			},
		})

		c, w := testContext(t, http.MethodGet, "/chat/conversations/"+conv.ID, nil)
		c.Params = gin.Params{{Key: "id", Value: conv.ID}}
		h.History(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, conv.ID, body["conversation_id"])
	})

	t.Run("unknown conversation returns 404", func(t *testing.T) {
		h := NewChatHandler(&mockChatUsecase{})

		c, w := testContext(t, http.MethodGet, "/chat/conversations/missing", nil)
		c.Params = gin.Params{{Key: "id", Value: "missing"}}
		h.History(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid count returns 400", func(t *testing.T) {
		h := NewChatHandler(&mockChatUsecase{})

		c, w := testContext(t, http.MethodGet, "/chat/conversations/x?count=zero", nil)
		c.Params = gin.Params{{Key: "id", Value: "x"}}
		h.History(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestChatHandler_ListConversations(t *testing.T) {
	t.Run("returns the user's summaries", func(t *testing.T) {
		h := NewChatHandler(&mockChatUsecase{
			ConversationsFunc: func(ctx context.Context, userID uint) ([]usecase.ConversationSummary, error) {
				assert.Equal(t, uint(1), userID)
				return []usecase.ConversationSummary{
					{ID: "conv-2", MessageCount: 1, LastMessage: "anyone?"},
					{ID: "conv-1", MessageCount: 4, LastMessage: "see you then"},
				}, nil
			},
		})

		c, w := testContext(t, http.MethodGet, "/chat/conversations", nil)
		h.ListConversations(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Conversations []usecase.ConversationSummary `json:"conversations"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Conversations, 2)
		assert.Equal(t, "conv-2", body.Conversations[0].ID)
		assert.Equal(t, "see you then", body.Conversations[1].LastMessage)
	})

	t.Run("listing failure returns 500", func(t *testing.T) {
		h := NewChatHandler(&mockChatUsecase{
			ConversationsFunc: func(ctx context.Context, userID uint) ([]usecase.ConversationSummary, error) {
				return nil, assert.AnError
			},
		})

		c, w := testContext(t, http.MethodGet, "/chat/conversations", nil)
		h.ListConversations(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestChatHandler_Usage(t *testing.T) {
	h := NewChatHandler(&mockChatUsecase{
		UsageFunc: func(ctx context.Context, userID uint) (*usecase.UsageStats, error) {
			return &usecase.UsageStats{Requests: 5, Tokens: 900, Limit: 100, Remaining: 95, Day: "2026-09-01"}, nil
		},
	})

	c, w := testContext(t, http.MethodGet, "/chat/usage", nil)
	h.Usage(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var stats usecase.UsageStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, int64(5), stats.Requests)
	assert.Equal(t, int64(95), stats.Remaining)
}
