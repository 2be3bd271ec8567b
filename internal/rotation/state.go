// Package rotation decides which page of games and which featured game are
// on screen. State transitions are pure (Reduce); Scheduler drives them from
// an injected clock and from ingested updates.
package rotation

import (
	"github.com/preston-bernstein/saturday-stats/internal/domain/games"
)

// DefaultPageSize is the number of scorebugs in one grid page.
const DefaultPageSize = 9

// EventKind enumerates scheduler inputs.
type EventKind int

const (
	// SetTick starts a grid fade when more than one page exists.
	SetTick EventKind = iota
	// SetAdvance moves the grid to the next page and ends the fade.
	SetAdvance
	// FeaturedTick starts a featured fade when more than one featured game is live.
	FeaturedTick
	// FeaturedAdvance moves the featured cursor and ends the fade.
	FeaturedAdvance
	// GamesUpdated replaces the backing list.
	GamesUpdated
	// FeaturedChanged replaces the featured id list.
	FeaturedChanged
)

func (k EventKind) String() string {
	switch k {
	case SetTick:
		return "set_tick"
	case SetAdvance:
		return "set_advance"
	case FeaturedTick:
		return "featured_tick"
	case FeaturedAdvance:
		return "featured_advance"
	case GamesUpdated:
		return "games_updated"
	case FeaturedChanged:
		return "featured_changed"
	default:
		return "unknown"
	}
}

// Event is one input to Reduce. Games and FeaturedIDs are only read for the
// kinds that carry them.
type Event struct {
	Kind        EventKind
	Games       []games.Game
	FeaturedIDs []games.GameID
}

// State is the full rotation state. Games is treated as immutable; updates
// swap the slice rather than editing it.
type State struct {
	Games         []games.Game
	FeaturedIDs   []games.GameID
	PageSize      int
	SetIndex      int
	FeaturedIndex int
	FadeSet       bool
	FadeFeatured  bool
}

// NewState returns an empty state with the given page size.
func NewState(pageSize int) State {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return State{PageSize: pageSize}
}

// PageCount is the number of grid pages needed for the current list.
func (s State) PageCount() int {
	size := s.pageSize()
	return (len(s.Games) + size - 1) / size
}

// FeaturedLive returns the featured games that are currently in progress,
// in list order.
func (s State) FeaturedLive() []games.Game {
	if len(s.FeaturedIDs) == 0 {
		return nil
	}
	wanted := make(map[games.GameID]struct{}, len(s.FeaturedIDs))
	for _, id := range s.FeaturedIDs {
		wanted[id] = struct{}{}
	}
	var out []games.Game
	for _, g := range s.Games {
		if _, ok := wanted[g.ID]; ok && g.Status == games.StatusInProgress {
			out = append(out, g)
		}
	}
	return out
}

func (s State) pageSize() int {
	if s.PageSize <= 0 {
		return DefaultPageSize
	}
	return s.PageSize
}

// Reduce applies e to s and returns the next state. It never mutates s.
func Reduce(s State, e Event) State {
	switch e.Kind {
	case SetTick:
		if s.PageCount() > 1 && !s.FadeSet {
			s.FadeSet = true
		}
	case SetAdvance:
		if !s.FadeSet {
			return s
		}
		if pages := s.PageCount(); pages > 0 {
			s.SetIndex = (s.SetIndex + 1) % pages
		}
		s.FadeSet = false
	case FeaturedTick:
		if len(s.FeaturedLive()) > 1 && !s.FadeFeatured {
			s.FadeFeatured = true
		}
	case FeaturedAdvance:
		if !s.FadeFeatured {
			return s
		}
		// The live subset is recomputed here, not when the fade began.
		if live := len(s.FeaturedLive()); live > 0 {
			s.FeaturedIndex = (s.FeaturedIndex + 1) % live
		}
		s.FadeFeatured = false
	case GamesUpdated:
		s.Games = e.Games
	case FeaturedChanged:
		s.FeaturedIDs = e.FeaturedIDs
	}
	return s
}
