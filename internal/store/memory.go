// internal/store/memory.go
//
// In-memory implementation of the day-state Store interface.
// Lightweight persistence used in tests and when durability is not
// required; state is lost when the process restarts.
//
// Characteristics:
//   - DayStates keyed by "ownerID|date" in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Load of an unknown key returns a fresh default state, never an error.
//   - Values are deep-copied on both Load and Save so callers never alias
//     stored state.

package store

import (
	"context"
	"sync"

	"github.com/cozygrove/skill-issue/internal/game"
)

// Store is the persistence interface for per-day play records.
// Keys are (ownerID, date) where date is YYYY-MM-DD; within one owner this
// is exactly the per-date record of the puzzle. Implementations perform no
// game logic, only keyed read/write.
type Store interface {
	// Load retrieves the state for a date, returning a fresh default state
	// when nothing (or nothing readable) is persisted.
	Load(ctx context.Context, ownerID, date string) (*game.DayState, error)

	// Save persists the state for a date, overwriting any previous record.
	Save(ctx context.Context, ownerID, date string, st *game.DayState) error
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu     sync.RWMutex              // guards states map
	states map[string]*game.DayState // keyed by ownerID|date
}

// NewMemory constructs a new in-memory Store.
func NewMemory() Store {
	return &memory{states: make(map[string]*game.DayState)}
}

func stateKey(ownerID, date string) string { return ownerID + "|" + date }

// Load returns a copy of the stored state, or a fresh default.
func (m *memory) Load(ctx context.Context, ownerID, date string) (*game.DayState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if st, ok := m.states[stateKey(ownerID, date)]; ok {
		return st.Clone(), nil
	}
	return game.NewDayState(), nil
}

// Save stores a copy of st under the (owner, date) key.
func (m *memory) Save(ctx context.Context, ownerID, date string, st *game.DayState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[stateKey(ownerID, date)] = st.Clone()
	return nil
}
