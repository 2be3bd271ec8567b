package games

import (
	"time"

	domaingames "github.com/preston-bernstein/saturday-stats/internal/domain/games"
	"github.com/preston-bernstein/saturday-stats/internal/gamecast"
	"github.com/preston-bernstein/saturday-stats/internal/timeutil"
)

// Store defines the contract for holding the current game list.
type Store interface {
	ListGames() []domaingames.Game
	GetGame(id domaingames.GameID) (domaingames.Game, bool)
	PreviousGame(id domaingames.GameID) (domaingames.Game, bool)
	SetGames(games []domaingames.Game)
}

// Service coordinates game reads and derived views using a Store.
type Service struct {
	store   Store
	matcher gamecast.TeamMatcher
	now     func() time.Time
}

// NewService constructs a Service. matcher may be nil, in which case team
// sides fall back to raw display names.
func NewService(store Store, matcher gamecast.TeamMatcher) *Service {
	return &Service{store: store, matcher: matcher, now: time.Now}
}

// Games returns the current list in kickoff order.
func (s *Service) Games() []domaingames.Game {
	return s.store.ListGames()
}

// GamesOn returns games whose kickoff falls on date (YYYY-MM-DD, Eastern).
func (s *Service) GamesOn(date string) []domaingames.Game {
	all := s.store.ListGames()
	out := make([]domaingames.Game, 0, len(all))
	for _, g := range all {
		if timeutil.SlateDate(g.StartDate) == date {
			out = append(out, g)
		}
	}
	return out
}

// GameByID returns a single game if present.
func (s *Service) GameByID(id domaingames.GameID) (domaingames.Game, bool) {
	return s.store.GetGame(id)
}

// ReplaceGames swaps the in-memory list with a new one.
func (s *Service) ReplaceGames(games []domaingames.Game) {
	s.store.SetGames(games)
}

// Scorebug renders the compact view of one game, with the score delta from
// its previous version.
func (s *Service) Scorebug(id domaingames.GameID) (gamecast.Scorebug, bool) {
	g, ok := s.store.GetGame(id)
	if !ok {
		return gamecast.Scorebug{}, false
	}
	return s.scorebug(g), true
}

// Scorebugs renders list in order.
func (s *Service) Scorebugs(list []domaingames.Game) []gamecast.Scorebug {
	out := make([]gamecast.Scorebug, 0, len(list))
	for _, g := range list {
		out = append(out, s.scorebug(g))
	}
	return out
}

// Gamecast interprets one game for the field renderer.
func (s *Service) Gamecast(id domaingames.GameID) (gamecast.View, bool) {
	g, ok := s.store.GetGame(id)
	if !ok {
		return gamecast.View{}, false
	}
	return gamecast.BuildView(g, s.matcher), true
}

// GamecastFor interprets g directly; used for the featured game of a frame.
func (s *Service) GamecastFor(g domaingames.Game) gamecast.View {
	return gamecast.BuildView(g, s.matcher)
}

// Marquee renders every game as a ticker entry.
func (s *Service) Marquee() []gamecast.MarqueeEntry {
	return gamecast.BuildMarquee(s.store.ListGames(), s.now())
}

func (s *Service) scorebug(g domaingames.Game) gamecast.Scorebug {
	var prev *domaingames.Game
	if p, ok := s.store.PreviousGame(g.ID); ok {
		prev = &p
	}
	return gamecast.BuildScorebug(g, prev, s.matcher, s.now())
}
