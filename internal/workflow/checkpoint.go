package workflow

import (
	"context"
	"sync"
)

// CheckpointStore persists serialized session state keyed by session id.
// The Mongo store implements it; MemoryCheckpoints backs tests and local
// runs without a database.
type CheckpointStore interface {
	SaveCheckpoint(ctx context.Context, sessionID string, state []byte) error
	LoadCheckpoint(ctx context.Context, sessionID string) ([]byte, error)
	DeleteCheckpoint(ctx context.Context, sessionID string) error
}

// MemoryCheckpoints is an in-process CheckpointStore.
type MemoryCheckpoints struct {
	mu    sync.Mutex
	saved map[string][]byte
}

func NewMemoryCheckpoints() *MemoryCheckpoints {
	return &MemoryCheckpoints{saved: make(map[string][]byte)}
}

func (m *MemoryCheckpoints) SaveCheckpoint(_ context.Context, sessionID string, state []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(state))
	copy(cp, state)
	m.saved[sessionID] = cp
	return nil
}

func (m *MemoryCheckpoints) LoadCheckpoint(_ context.Context, sessionID string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saved[sessionID], nil
}

func (m *MemoryCheckpoints) DeleteCheckpoint(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.saved, sessionID)
	return nil
}
