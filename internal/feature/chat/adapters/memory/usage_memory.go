package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"caboai_backend/internal/feature/chat/usecase"
)

// UsageMemory is an in-process UsageRepository tracking per-user daily
// request and token counts.
type UsageMemory struct {
	mu       sync.Mutex
	limit    int64
	requests map[string]int64 // "<day>:<userID>" -> count
	tokens   map[string]int64
}

// Compile-time check that UsageMemory implements UsageRepository.
var _ usecase.UsageRepository = (*UsageMemory)(nil)

// NewUsageMemory creates an in-memory usage tracker with the given
// daily request limit.
func NewUsageMemory(limit int64) *UsageMemory {
	return &UsageMemory{
		limit:    limit,
		requests: make(map[string]int64),
		tokens:   make(map[string]int64),
	}
}

func usageKey(userID uint, day string) string {
	return fmt.Sprintf("%s:%d", day, userID)
}

func today() string {
	return time.Now().UTC().Format("2006-01-02")
}

// Allow records one request, failing once the daily limit is reached.
func (m *UsageMemory) Allow(_ context.Context, userID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := usageKey(userID, today())
	if m.requests[key] >= m.limit {
		return usecase.ErrUsageLimitExceeded
	}
	m.requests[key]++
	return nil
}

// RecordTokens adds token usage for the user's current day.
func (m *UsageMemory) RecordTokens(_ context.Context, userID uint, tokens int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tokens[usageKey(userID, today())] += int64(tokens)
	return nil
}

// Stats returns the user's usage for the current day.
func (m *UsageMemory) Stats(_ context.Context, userID uint) (*usecase.UsageStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	day := today()
	key := usageKey(userID, day)
	requests := m.requests[key]
	remaining := m.limit - requests
	if remaining < 0 {
		remaining = 0
	}
	return &usecase.UsageStats{
		Requests:  requests,
		Tokens:    m.tokens[key],
		Limit:     m.limit,
		Remaining: remaining,
		Day:       day,
	}, nil
}
