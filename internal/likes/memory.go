// Package likes stores per-session liked sets for callouts.LikeTracker.
package likes

import (
	"context"
	"sync"

	"callouts/internal/callouts"
)

// MemorySessions keeps liked sets in process memory. They are lost on restart.
type MemorySessions struct {
	mu       sync.Mutex
	sessions map[string][]string
}

func NewMemorySessions() *MemorySessions {
	return &MemorySessions{sessions: make(map[string][]string)}
}

func (m *MemorySessions) Load(ctx context.Context, session string) (*callouts.LikeTracker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return callouts.NewLikeTracker(m.sessions[session]), nil
}

func (m *MemorySessions) Save(ctx context.Context, session string, t *callouts.LikeTracker) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := t.IDs()
	if len(ids) == 0 {
		delete(m.sessions, session)
		return nil
	}
	m.sessions[session] = ids
	return nil
}
