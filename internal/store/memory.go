// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Rounds are never persisted. A round lives until Delete or until a Sweep
// finds it idle.
//
// Characteristics:
//   - Stores *game.Round objects keyed by session ID in a map.
//   - The map is guarded by an RWMutex; each round has its own mutex so
//     operations on one round run to completion one at a time.
//   - Every access stamps the entry's last-seen time from the store clock.
//   - Errors are returned for missing session IDs.

package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robalobadob/guessgame/internal/game"
)

// ErrNotFound is returned for unknown session IDs.
var ErrNotFound = errors.New("store: round not found")

// Store defines how rounds are owned per session.
type Store interface {
	// Create stores r under id, replacing any existing round.
	Create(ctx context.Context, id string, r *game.Round) error

	// Ensure stores newRound() under id unless a round exists; it reports whether one was created.
	Ensure(ctx context.Context, id string, newRound func() *game.Round) (bool, error)

	// Update runs fn with exclusive access to the round. fn's error is returned as is.
	Update(ctx context.Context, id string, fn func(r *game.Round) error) error

	// View runs fn with the round locked against concurrent updates.
	View(ctx context.Context, id string, fn func(r *game.Round) error) error

	// Delete drops the round. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error

	// Len reports the number of stored rounds.
	Len() int

	// Sweep drops rounds not accessed since cutoff and returns their ids.
	Sweep(ctx context.Context, cutoff time.Time) []string
}

type entry struct {
	mu    sync.Mutex
	round *game.Round
	seen  atomic.Int64 // unix nanos of the last access
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu     sync.RWMutex      // guards rounds map
	rounds map[string]*entry // keyed by session ID
	now    func() time.Time
}

// Option configures the memory store.
type Option func(*memory)

// WithClock replaces time.Now for last-seen stamps.
func WithClock(now func() time.Time) Option {
	return func(m *memory) { m.now = now }
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore(opts ...Option) Store {
	m := &memory{rounds: make(map[string]*entry), now: time.Now}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *memory) newEntry(r *game.Round) *entry {
	e := &entry{round: r}
	m.touch(e)
	return e
}

func (m *memory) touch(e *entry) { e.seen.Store(m.now().UnixNano()) }

func (m *memory) Create(ctx context.Context, id string, r *game.Round) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rounds[id] = m.newEntry(r)
	return nil
}

func (m *memory) Ensure(ctx context.Context, id string, newRound func() *game.Round) (bool, error) {
	if e, err := m.get(id); err == nil {
		m.touch(e)
		return false, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.rounds[id]; ok {
		m.touch(e)
		return false, nil
	}
	m.rounds[id] = m.newEntry(newRound())
	return true, nil
}

func (m *memory) get(id string) (*entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.rounds[id]; ok {
		return e, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Update(ctx context.Context, id string, fn func(r *game.Round) error) error {
	e, err := m.get(id)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m.touch(e)
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.round)
}

func (m *memory) View(ctx context.Context, id string, fn func(r *game.Round) error) error {
	return m.Update(ctx, id, fn)
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rounds, id)
	return nil
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rounds)
}

func (m *memory) Sweep(ctx context.Context, cutoff time.Time) []string {
	limit := cutoff.UnixNano()
	m.mu.Lock()
	defer m.mu.Unlock()
	var evicted []string
	for id, e := range m.rounds {
		if e.seen.Load() < limit {
			delete(m.rounds, id)
			evicted = append(evicted, id)
		}
	}
	return evicted
}
