package testutil

import (
	appgames "github.com/preston-bernstein/saturday-stats/internal/app/games"
	appteams "github.com/preston-bernstein/saturday-stats/internal/app/teams"
	"github.com/preston-bernstein/saturday-stats/internal/domain/games"
	"github.com/preston-bernstein/saturday-stats/internal/roster"
	"github.com/preston-bernstein/saturday-stats/internal/store"
)

// NewServiceWithGames builds a games service backed by an in-memory store
// preloaded with g and matched against the embedded roster.
func NewServiceWithGames(g []games.Game) *appgames.Service {
	ms := store.NewMemoryStore()
	if len(g) > 0 {
		ms.SetGames(g)
	}
	return appgames.NewService(ms, NewTeamService())
}

// NewTeamService returns a matcher over the embedded roster. It panics if the
// embedded roster cannot be parsed.
func NewTeamService() *appteams.Service {
	items, err := roster.Default()
	if err != nil {
		panic(err)
	}
	return appteams.NewService(items)
}
