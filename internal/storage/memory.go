package storage

import (
	"context"
	"slices"
	"sync"

	"github.com/easeaico/virtual-companion/internal/types"
)

// Memory keeps collections in process memory. Used when no backend is configured.
type Memory struct {
	mu       sync.RWMutex
	messages []types.Message
	moods    []types.MoodEntry
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) LoadMessages(ctx context.Context) ([]types.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.messages), nil
}

func (m *Memory) SaveMessages(ctx context.Context, messages []types.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = slices.Clone(messages)
	return nil
}

func (m *Memory) LoadMoods(ctx context.Context) ([]types.MoodEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.moods), nil
}

func (m *Memory) SaveMoods(ctx context.Context, moods []types.MoodEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.moods = slices.Clone(moods)
	return nil
}

func (m *Memory) Close() error {
	return nil
}
