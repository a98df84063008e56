package history

import (
	"context"
	"sync"

	"github.com/pathfinder-core/server/internal/counselor/model"
)

// MemoryRepository keeps turn history in process memory. It is the default
// driver and the one exercised by tests; the mutex lets independent sessions
// share a single repository instance.
type MemoryRepository struct {
	mu       sync.Mutex
	turns    map[string][]model.Turn
	maxTurns int
}

func NewMemoryRepository(maxTurns int) *MemoryRepository {
	return &MemoryRepository{
		turns:    make(map[string][]model.Turn),
		maxTurns: maxTurns,
	}
}

func (m *MemoryRepository) Append(_ context.Context, sessionID string, turn model.Turn) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := append(m.turns[sessionID], turn)
	if m.maxTurns > 0 && len(list) > m.maxTurns {
		list = list[len(list)-m.maxTurns:]
	}
	m.turns[sessionID] = list
	return nil
}

func (m *MemoryRepository) Load(_ context.Context, sessionID string) ([]model.Turn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	src := m.turns[sessionID]
	out := make([]model.Turn, len(src))
	copy(out, src)
	return out, nil
}

func (m *MemoryRepository) Clear(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.turns, sessionID)
	return nil
}

func (m *MemoryRepository) Count(_ context.Context, sessionID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.turns[sessionID]), nil
}

var _ model.HistoryRepository = (*MemoryRepository)(nil)
