package store

import (
	"sync"
	"time"

	"github.com/preston-bernstein/saturday-stats/internal/domain/games"
)

// MemoryStore keeps the current ordered game list in memory, plus the version
// of each game that the latest replacement superseded.
type MemoryStore struct {
	mu        sync.RWMutex
	games     []games.Game
	byID      map[games.GameID]int
	previous  map[games.GameID]games.Game
	updatedAt time.Time
	now       func() time.Time
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:     make(map[games.GameID]int),
		previous: make(map[games.GameID]games.Game),
		now:      time.Now,
	}
}

// ListGames returns a copy of the current list in feed order.
func (s *MemoryStore) ListGames() []games.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]games.Game, len(s.games))
	copy(result, s.games)
	return result
}

// GetGame retrieves a game by ID.
func (s *MemoryStore) GetGame(id games.GameID) (games.Game, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.byID[id]
	if !ok {
		return games.Game{}, false
	}
	return s.games[idx], true
}

// PreviousGame returns the version of id that was replaced by the latest
// SetGames call, if it existed.
func (s *MemoryStore) PreviousGame(id games.GameID) (games.Game, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.previous[id]
	return g, ok
}

// UpdatedAt is when the list was last replaced.
func (s *MemoryStore) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}

// SetGames replaces the existing list with a new one. The swap is atomic:
// readers see either the old list or the new one.
func (s *MemoryStore) SetGames(list []games.Game) {
	next := make([]games.Game, len(list))
	copy(next, list)
	byID := make(map[games.GameID]int, len(next))
	for i, g := range next {
		if _, dup := byID[g.ID]; !dup {
			byID[g.ID] = i
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous := make(map[games.GameID]games.Game, len(next))
	for id := range byID {
		if idx, ok := s.byID[id]; ok {
			previous[id] = s.games[idx]
		}
	}
	s.games = next
	s.byID = byID
	s.previous = previous
	s.updatedAt = s.now()
}
