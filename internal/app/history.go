package app

import (
	"context"
	"sync"

	"hotel_qa/internal/adapters/observability"
	"hotel_qa/internal/domain"
)

// MemoryHistory keeps transcripts in process memory. It is the default store
// for the chat CLI; sessions live until the process exits.
type MemoryHistory struct {
	mu       sync.RWMutex
	sessions map[string][]domain.Message
}

func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{sessions: make(map[string][]domain.Message)}
}

func (m *MemoryHistory) Load(ctx context.Context, sessionID string) ([]domain.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	msgs, ok := m.sessions[sessionID]
	if !ok {
		observability.ObserveHistory("memory", "miss")
		return nil, nil
	}
	observability.ObserveHistory("memory", "hit")
	// copy so callers cannot mutate the stored transcript
	out := make([]domain.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

func (m *MemoryHistory) Save(ctx context.Context, sessionID string, messages []domain.Message) error {
	cp := make([]domain.Message, len(messages))
	copy(cp, messages)
	m.mu.Lock()
	m.sessions[sessionID] = cp
	m.mu.Unlock()
	observability.ObserveHistory("memory", "save")
	return nil
}
