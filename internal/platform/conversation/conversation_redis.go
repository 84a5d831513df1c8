// Package conversation provides the Redis-backed conversation store.
package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"caboai_backend/internal/feature/chat/domain/entity"
	"caboai_backend/internal/feature/chat/usecase"
)

// defaultTTL is how long idle conversations are retained. Each Save
// resets the clock.
const defaultTTL = 30 * 24 * time.Hour

// ConversationRedis implements usecase.ConversationRepository using Redis.
type ConversationRedis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// Compile-time check that ConversationRedis implements ConversationRepository.
var _ usecase.ConversationRepository = (*ConversationRedis)(nil)

// NewConversationRedis creates a new ConversationRedis instance.
// If ttl is 0 the default retention of 30 days is used. If prefix is
// empty it uses "conversation".
func NewConversationRedis(client *redis.Client, prefix string, ttl time.Duration) *ConversationRedis {
	if prefix == "" {
		prefix = "conversation"
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &ConversationRedis{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// conversationKey returns the Redis key for a conversation.
func (r *ConversationRedis) conversationKey(id string) string {
	return fmt.Sprintf("%s:%s", r.prefix, id)
}

// userConversationsKey returns the Redis key for a user's conversation set.
func (r *ConversationRedis) userConversationsKey(userID uint) string {
	return fmt.Sprintf("%s:user:%d", r.prefix, userID)
}

// Save persists the conversation and registers it in the owner's set.
func (r *ConversationRedis) Save(ctx context.Context, conv *entity.Conversation) error {
	data, err := json.Marshal(conv)
	if err != nil {
		return fmt.Errorf("failed to marshal conversation: %w", err)
	}

	if err := r.client.Set(ctx, r.conversationKey(conv.ID), data, r.ttl).Err(); err != nil {
		return err
	}

	return r.client.SAdd(ctx, r.userConversationsKey(conv.UserID), conv.ID).Err()
}

// FindByID retrieves a conversation by its ID.
func (r *ConversationRedis) FindByID(ctx context.Context, id string) (*entity.Conversation, error) {
	data, err := r.client.Get(ctx, r.conversationKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, usecase.ErrConversationNotFound
		}
		return nil, err
	}

	var conv entity.Conversation
	if err := json.Unmarshal(data, &conv); err != nil {
		return nil, fmt.Errorf("failed to unmarshal conversation: %w", err)
	}

	return &conv, nil
}

// FindByUserID retrieves all retained conversations for a user,
// pruning ids whose conversations have expired.
func (r *ConversationRedis) FindByUserID(ctx context.Context, userID uint) ([]*entity.Conversation, error) {
	ids, err := r.client.SMembers(ctx, r.userConversationsKey(userID)).Result()
	if err != nil {
		return nil, err
	}

	var conversations []*entity.Conversation
	for _, id := range ids {
		conv, err := r.FindByID(ctx, id)
		if err != nil {
			if err == usecase.ErrConversationNotFound {
				// Conversation expired, remove from set
				r.client.SRem(ctx, r.userConversationsKey(userID), id)
				continue
			}
			return nil, err
		}
		conversations = append(conversations, conv)
	}

	return conversations, nil
}
