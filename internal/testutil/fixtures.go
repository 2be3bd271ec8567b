package testutil

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/preston-bernstein/saturday-stats/internal/domain/games"
)

// SampleGame returns a scheduled FBS game fixture with the provided id.
func SampleGame(id string) games.Game {
	return games.Game{
		ID:                 games.GameID(id),
		AwayTeam:           "Georgia Bulldogs",
		HomeTeam:           "Alabama Crimson Tide",
		Status:             games.StatusScheduled,
		CurrentPossession:  games.PossessionNone,
		StartDate:          time.Date(2024, 9, 28, 23, 30, 0, 0, time.UTC),
		AwayClassification: "fbs",
		HomeClassification: "fbs",
	}
}

// LiveGame returns an in-progress fixture with a parseable situation.
func LiveGame(id string) games.Game {
	g := SampleGame(id)
	g.Status = games.StatusInProgress
	g.AwayPoints = 17
	g.HomePoints = 24
	g.CurrentClock = "00:08:47"
	g.CurrentPeriod = 3
	g.CurrentPossession = games.PossessionHome
	g.CurrentSituation = "2nd & 7 at BAMA 35"
	g.LastPlay = "Milroe run for 3 yds"
	return g
}

// Games builds n scheduled fixtures with ids "1".."n" and increasing kickoffs.
func Games(n int) []games.Game {
	out := make([]games.Game, 0, n)
	for i := 0; i < n; i++ {
		g := SampleGame(strconv.Itoa(i + 1))
		g.StartDate = g.StartDate.Add(time.Duration(i) * time.Minute)
		out = append(out, g)
	}
	return out
}

// ScoreboardPayload wraps records in the inbound envelope.
func ScoreboardPayload(records ...any) []byte {
	if records == nil {
		records = []any{}
	}
	body := map[string]any{"data": map[string]any{"scoreboard": records}}
	raw, err := json.Marshal(body)
	if err != nil {
		panic(err)
	}
	return raw
}
