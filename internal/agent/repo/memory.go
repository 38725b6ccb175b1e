package repo

import (
	"context"
	"sync"

	"github.com/smart-support-core/server/internal/agent/model"
)

// MemoryConversationStore is an in-process ConversationStore used by tests and
// redis-less demo runs. Messages are held newest first, matching the Redis
// implementation.
type MemoryConversationStore struct {
	mu            sync.RWMutex
	conversations map[string][]*model.Message
}

func NewMemoryConversationStore() *MemoryConversationStore {
	return &MemoryConversationStore{
		conversations: make(map[string][]*model.Message),
	}
}

func (m *MemoryConversationStore) AddMessage(_ context.Context, conversationID string, message *model.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conversations[conversationID] = append([]*model.Message{message}, m.conversations[conversationID]...)
	return nil
}

func (m *MemoryConversationStore) RecentMessages(_ context.Context, conversationID string, limit int) ([]*model.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	msgs := m.conversations[conversationID]
	if limit <= 0 || limit > len(msgs) {
		limit = len(msgs)
	}
	out := make([]*model.Message, limit)
	copy(out, msgs[:limit])
	return out, nil
}

func (m *MemoryConversationStore) ClearHistory(_ context.Context, conversationID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.conversations, conversationID)
	return nil
}

func (m *MemoryConversationStore) MessageCount(_ context.Context, conversationID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.conversations[conversationID]), nil
}

var _ model.ConversationStore = (*MemoryConversationStore)(nil)
