package repository

import (
	"context"
	"sync"

	"insurance-agent/internal/domain"
)

// MemoryStore is an in-memory Store used by the local server, where
// conversation state only needs to live for the process lifetime.
// It is safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	convs map[string]*memoryConversation
}

type memoryConversation struct {
	exchanges []domain.Exchange
	turns     int
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory conversation store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{convs: make(map[string]*memoryConversation)}
}

// TurnCount returns the recorded turn count, zero for unknown conversations.
func (m *MemoryStore) TurnCount(_ context.Context, conversationID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	conv, ok := m.convs[conversationID]
	if !ok {
		return 0, nil
	}
	return conv.turns, nil
}

// History returns up to limit of the most recent exchanges in
// chronological order, mirroring the DynamoDB client.
func (m *MemoryStore) History(_ context.Context, conversationID string, limit int) ([]domain.Exchange, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	conv, ok := m.convs[conversationID]
	if !ok {
		return nil, nil
	}
	exchanges := conv.exchanges
	if limit > 0 && len(exchanges) > limit {
		exchanges = exchanges[len(exchanges)-limit:]
	}
	out := make([]domain.Exchange, len(exchanges))
	copy(out, exchanges)
	return out, nil
}

// SaveExchange appends the exchange and records the new turn count.
func (m *MemoryStore) SaveExchange(_ context.Context, conversationID, question, answer, category string, turns int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	conv, ok := m.convs[conversationID]
	if !ok {
		conv = &memoryConversation{}
		m.convs[conversationID] = conv
	}
	conv.exchanges = append(conv.exchanges, newExchange(conversationID, question, answer, category))
	conv.turns = turns
	return nil
}
