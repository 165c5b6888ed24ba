// internal/store/memory.go
//
// In-memory Store, used in development and tests or when durability is not
// required.
//
// Characteristics:
//   - Keeps encoded records keyed by ID, so callers never share a GameState.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/robalobadob/bullscows/internal/state"
)

type memory struct {
	mu    sync.RWMutex
	games map[string]record
	opts  options
}

// NewMemory constructs an empty in-memory Store.
func NewMemory(opts ...Option) Store {
	return &memory{games: make(map[string]record), opts: buildOptions(opts)}
}

func (m *memory) Save(_ context.Context, id string, s *state.GameState) error {
	rec, err := encode(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[id] = rec
	return nil
}

func (m *memory) Get(_ context.Context, id string) (*state.GameState, error) {
	m.mu.RLock()
	rec, ok := m.games[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return m.opts.decode(rec)
}

func (m *memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(m.games, id)
	return nil
}

func (m *memory) Close() error { return nil }
