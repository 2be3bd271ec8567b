package store

import (
	"sync"
	"testing"
	"time"

	"github.com/preston-bernstein/saturday-stats/internal/domain/games"
)

func TestMemoryStoreSetAndGet(t *testing.T) {
	s := NewMemoryStore()

	s.SetGames([]games.Game{
		{ID: "2", AwayTeam: "Georgia Bulldogs"},
		{ID: "1", AwayTeam: "Texas Longhorns"},
	})

	list := s.ListGames()
	if len(list) != 2 || list[0].ID != "2" || list[1].ID != "1" {
		t.Fatalf("expected feed order preserved, got %+v", list)
	}

	game, ok := s.GetGame("1")
	if !ok {
		t.Fatalf("expected to find game with id 1")
	}
	if game.AwayTeam != "Texas Longhorns" {
		t.Fatalf("unexpected away team %s", game.AwayTeam)
	}
}

func TestMemoryStoreGetNotFound(t *testing.T) {
	s := NewMemoryStore()
	if _, ok := s.GetGame("missing"); ok {
		t.Fatalf("expected missing id to return false")
	}
	if _, ok := s.PreviousGame("missing"); ok {
		t.Fatalf("expected no previous version")
	}
}

func TestMemoryStoreSetReplacesSnapshot(t *testing.T) {
	s := NewMemoryStore()
	s.SetGames([]games.Game{{ID: "1"}, {ID: "2"}})
	s.SetGames([]games.Game{{ID: "3"}})

	if _, ok := s.GetGame("1"); ok {
		t.Fatalf("expected old games to be replaced")
	}
	if got := len(s.ListGames()); got != 1 {
		t.Fatalf("expected 1 game after replace, got %d", got)
	}
}

func TestMemoryStoreTracksPreviousVersion(t *testing.T) {
	s := NewMemoryStore()
	s.SetGames([]games.Game{{ID: "1", AwayPoints: 7}, {ID: "2"}})
	s.SetGames([]games.Game{{ID: "1", AwayPoints: 14}})

	prev, ok := s.PreviousGame("1")
	if !ok || prev.AwayPoints != 7 {
		t.Fatalf("expected previous version with 7 points, got %+v ok=%v", prev, ok)
	}
	if _, ok := s.PreviousGame("2"); ok {
		t.Fatalf("expected dropped game to have no previous version")
	}
}

func TestMemoryStoreListIsACopy(t *testing.T) {
	s := NewMemoryStore()
	s.SetGames([]games.Game{{ID: "1"}})
	list := s.ListGames()
	list[0].ID = "mutated"
	if _, ok := s.GetGame("1"); !ok {
		t.Fatalf("expected store unaffected by caller mutation")
	}
}

func TestMemoryStoreUpdatedAt(t *testing.T) {
	s := NewMemoryStore()
	fixed := time.Date(2024, 9, 28, 16, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	s.SetGames(nil)
	if !s.UpdatedAt().Equal(fixed) {
		t.Fatalf("expected updatedAt %v, got %v", fixed, s.UpdatedAt())
	}
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	s := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.SetGames([]games.Game{{ID: "1"}, {ID: "2"}})
		}()
		go func() {
			defer wg.Done()
			_ = s.ListGames()
			_, _ = s.GetGame("1")
		}()
	}
	wg.Wait()
	if got := len(s.ListGames()); got != 2 {
		t.Fatalf("expected 2 games, got %d", got)
	}
}
