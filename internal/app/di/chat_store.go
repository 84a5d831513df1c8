package di

import (
	"github.com/redis/go-redis/v9"

	"caboai_backend/internal/feature/chat/adapters/memory"
	"caboai_backend/internal/feature/chat/usecase"
	"caboai_backend/internal/platform/conversation"
	"caboai_backend/internal/platform/usage"
)

// NewConversationRepository creates a ConversationRepository
// implementation. If Redis is available, it returns a Redis-backed
// implementation. Otherwise, it falls back to in-process memory.
func NewConversationRepository(rdb *redis.Client) usecase.ConversationRepository {
	if rdb != nil {
		return conversation.NewConversationRedis(rdb, "conversation", 0)
	}
	return memory.NewConversationMemory()
}

// NewUsageRepository creates a UsageRepository implementation with the
// given daily request limit, preferring Redis when available.
func NewUsageRepository(rdb *redis.Client, limit int64) usecase.UsageRepository {
	if rdb != nil {
		return usage.NewUsageRedis(rdb, "usage", limit)
	}
	return memory.NewUsageMemory(limit)
}
