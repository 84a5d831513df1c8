package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"caboai_backend/internal/feature/chat/domain/entity"
)

const (
	// contextWindow is the number of prior messages passed to the
	// generator as conversation context.
	contextWindow = 5

	// defaultHistoryCount is the number of messages returned by History
	// when the caller does not specify one.
	defaultHistoryCount = 10
)

// Defaults applied when a request leaves tone, industry, or language unset.
const (
	DefaultTone     = "professional"
	DefaultIndustry = "hospitality"
	DefaultLanguage = "auto"
)

// ConversationRepository abstracts the persistence layer for
// conversations. Following Go convention: interfaces are defined by the
// consumer (usecase), not the provider (adapters).
type ConversationRepository interface {
	// Save persists the conversation, overwriting any prior state.
	Save(ctx context.Context, conv *entity.Conversation) error

	// FindByID retrieves a conversation by its ID. Returns
	// ErrConversationNotFound when no conversation matches.
	FindByID(ctx context.Context, id string) (*entity.Conversation, error)

	// FindByUserID retrieves all retained conversations owned by the user.
	FindByUserID(ctx context.Context, userID uint) ([]*entity.Conversation, error)
}

// UsageRepository tracks per-user request and token consumption.
type UsageRepository interface {
	// Allow records one request for the user and returns
	// ErrUsageLimitExceeded when the daily quota is exhausted.
	Allow(ctx context.Context, userID uint) error

	// RecordTokens adds generated-token usage for the user's current day.
	RecordTokens(ctx context.Context, userID uint, tokens int) error

	// Stats returns the user's usage for the current day.
	Stats(ctx context.Context, userID uint) (*UsageStats, error)
}

// UsageStats is a user's consumption for one UTC day.
type UsageStats struct {
	Requests  int64  `json:"requests"`
	Tokens    int64  `json:"tokens"`
	Limit     int64  `json:"limit"`
	Remaining int64  `json:"remaining"`
	Day       string `json:"day"`
}

// GenerateRequest is the input to a reply generator.
type GenerateRequest struct {
	Message  string
	History  []entity.Message
	Tone     string
	Industry string
	Language string
}

// GenerateResult is the generator's output plus usage metadata.
type GenerateResult struct {
	Response   string
	TokensUsed int
	Model      string
	Language   string
}

// ReplyGenerator produces an email/chat reply from a message and its
// conversation context. Implementations call an external AI service.
type ReplyGenerator interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error)
}

// SendMessageInput carries one incoming message through the usecase.
type SendMessageInput struct {
	ConversationID string
	BusinessID     string
	Message        string
	Tone           string
	Industry       string
	Language       string
}

// SendMessageOutput is the generated reply with its metadata.
type SendMessageOutput struct {
	Response       string `json:"response"`
	ConversationID string `json:"conversation_id"`
	Tone           string `json:"tone"`
	Industry       string `json:"industry"`
	Language       string `json:"language"`
	TokensUsed     int    `json:"tokens_used"`
	Model          string `json:"model"`
}

// chatUsecase implements the chat/email-generation business logic.
type chatUsecase struct {
	conversations ConversationRepository
	usage         UsageRepository
	generator     ReplyGenerator
}

// NewChatUsecase creates a new chatUsecase instance.
func NewChatUsecase(conversations ConversationRepository, usage UsageRepository, generator ReplyGenerator) *chatUsecase {
	return &chatUsecase{
		conversations: conversations,
		usage:         usage,
		generator:     generator,
	}
}

// SendMessage runs one generation round trip: usage gate, conversation
// load or create, generation with recent context, persistence, and
// token accounting.
func (u *chatUsecase) SendMessage(ctx context.Context, userID uint, in SendMessageInput) (*SendMessageOutput, error) {
	if err := u.usage.Allow(ctx, userID); err != nil {
		return nil, err
	}

	conv, err := u.loadOrCreate(ctx, userID, in)
	if err != nil {
		return nil, err
	}

	tone := orDefault(in.Tone, DefaultTone)
	industry := orDefault(in.Industry, DefaultIndustry)
	language := orDefault(in.Language, DefaultLanguage)

	// Context is taken before the new message is appended.
	history := conv.RecentMessages(contextWindow)
	conv.AddMessage(entity.RoleUser, in.Message)

	result, err := u.generator.Generate(ctx, GenerateRequest{
		Message:  in.Message,
		History:  history,
		Tone:     tone,
		Industry: industry,
		Language: language,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	conv.AddMessage(entity.RoleAssistant, result.Response)
	if err := u.conversations.Save(ctx, conv); err != nil {
		return nil, err
	}

	if err := u.usage.RecordTokens(ctx, userID, result.TokensUsed); err != nil {
		return nil, err
	}

	return &SendMessageOutput{
		Response:       result.Response,
		ConversationID: conv.ID,
		Tone:           tone,
		Industry:       industry,
		Language:       orDefault(result.Language, language),
		TokensUsed:     result.TokensUsed,
		Model:          result.Model,
	}, nil
}

// History returns the last count messages of the user's conversation.
// A conversation owned by another user is reported as not found.
func (u *chatUsecase) History(ctx context.Context, userID uint, conversationID string, count int) (*entity.Conversation, []entity.Message, error) {
	conv, err := u.conversations.FindByID(ctx, conversationID)
	if err != nil {
		return nil, nil, err
	}
	if conv.UserID != userID {
		return nil, nil, ErrConversationNotFound
	}
	if count <= 0 {
		count = defaultHistoryCount
	}
	return conv, conv.RecentMessages(count), nil
}

// Usage returns the user's consumption for the current day.
func (u *chatUsecase) Usage(ctx context.Context, userID uint) (*UsageStats, error) {
	return u.usage.Stats(ctx, userID)
}

// ConversationSummary is one row of a user's conversation listing.
type ConversationSummary struct {
	ID           string    `json:"id"`
	BusinessID   string    `json:"business_id,omitempty"`
	MessageCount int       `json:"message_count"`
	LastMessage  string    `json:"last_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Conversations lists the user's retained conversations, most recently
// updated first.
func (u *chatUsecase) Conversations(ctx context.Context, userID uint) ([]ConversationSummary, error) {
	convs, err := u.conversations.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]ConversationSummary, 0, len(convs))
	for _, conv := range convs {
		s := ConversationSummary{
			ID:           conv.ID,
			BusinessID:   conv.BusinessID,
			MessageCount: len(conv.Messages),
			CreatedAt:    conv.CreatedAt,
			UpdatedAt:    conv.UpdatedAt,
		}
		if n := len(conv.Messages); n > 0 {
			s.LastMessage = conv.Messages[n-1].Content
		}
		summaries = append(summaries, s)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].UpdatedAt.After(summaries[j].UpdatedAt)
	})
	return summaries, nil
}

// loadOrCreate fetches the referenced conversation, verifying
// ownership, or starts a new one when no ID was supplied.
func (u *chatUsecase) loadOrCreate(ctx context.Context, userID uint, in SendMessageInput) (*entity.Conversation, error) {
	if in.ConversationID == "" {
		return entity.NewConversation(userID, in.BusinessID), nil
	}
	conv, err := u.conversations.FindByID(ctx, in.ConversationID)
	if err != nil {
		return nil, err
	}
	if conv.UserID != userID {
		return nil, ErrConversationNotFound
	}
	return conv, nil
}

// orDefault returns s, or def when s is empty.
func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
