// Package memory provides in-process fallbacks used when Redis is unavailable.
package memory

import (
	"context"
	"sync"

	"caboai_backend/internal/feature/chat/domain/entity"
	"caboai_backend/internal/feature/chat/usecase"
)

// ConversationMemory is an in-process ConversationRepository. State is
// lost on restart; it exists so the service degrades instead of failing
// when Redis is down.
type ConversationMemory struct {
	mu            sync.RWMutex
	conversations map[string]*entity.Conversation
}

// Compile-time check that ConversationMemory implements ConversationRepository.
var _ usecase.ConversationRepository = (*ConversationMemory)(nil)

// NewConversationMemory creates an empty in-memory conversation store.
func NewConversationMemory() *ConversationMemory {
	return &ConversationMemory{
		conversations: make(map[string]*entity.Conversation),
	}
}

// Save stores a copy of the conversation.
func (m *ConversationMemory) Save(_ context.Context, conv *entity.Conversation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *conv
	cp.Messages = append([]entity.Message(nil), conv.Messages...)
	m.conversations[conv.ID] = &cp
	return nil
}

// FindByID returns a copy of the stored conversation.
func (m *ConversationMemory) FindByID(_ context.Context, id string) (*entity.Conversation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	conv, ok := m.conversations[id]
	if !ok {
		return nil, usecase.ErrConversationNotFound
	}
	cp := *conv
	cp.Messages = append([]entity.Message(nil), conv.Messages...)
	return &cp, nil
}

// FindByUserID returns copies of all conversations owned by the user.
func (m *ConversationMemory) FindByUserID(_ context.Context, userID uint) ([]*entity.Conversation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var conversations []*entity.Conversation
	for _, conv := range m.conversations {
		if conv.UserID != userID {
			continue
		}
		cp := *conv
		cp.Messages = append([]entity.Message(nil), conv.Messages...)
		conversations = append(conversations, &cp)
	}
	return conversations, nil
}
