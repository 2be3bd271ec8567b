package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/preston-bernstein/saturday-stats/internal/domain/games"
	"github.com/preston-bernstein/saturday-stats/internal/domain/teams"
)

// FeaturedFixtureID is the id of the hard-wired Georgia at Alabama game.
const FeaturedFixtureID games.GameID = "401628374"

const defaultFixtureInterval = 30 * time.Second

type fixtureState struct {
	status games.GameStatus
	period int
	clock  string
}

var fixtureStates = []fixtureState{
	{games.StatusInProgress, 1, "00:12:34"},
	{games.StatusInProgress, 2, games.HalftimeClock},
	{games.StatusInProgress, 3, "00:08:47"},
	{games.StatusInProgress, 4, "00:01:12"},
	{games.StatusCompleted, 4, "00:00:00"},
}

// Fixture replays a deterministic scoreboard built from the roster, for local
// runs without an upstream.
type Fixture struct {
	roster   []teams.Team
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time
	tracker  *tracker
}

// NewFixture builds a fixture source that re-sends its batch every interval.
func NewFixture(roster []teams.Team, interval time.Duration, logger *slog.Logger) *Fixture {
	if interval <= 0 {
		interval = defaultFixtureInterval
	}
	return &Fixture{
		roster:   roster,
		interval: interval,
		logger:   logger,
		now:      time.Now,
		tracker:  newTracker("fixture"),
	}
}

func (f *Fixture) Name() string { return "fixture" }

func (f *Fixture) Status() Status { return f.tracker.snapshot() }

// Run sends the batch immediately and then on every interval.
func (f *Fixture) Run(ctx context.Context, handle Handler) error {
	f.tracker.connected()
	defer f.tracker.disconnected(nil)

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()
	for {
		payload, err := f.Payload()
		if err != nil {
			return err
		}
		deliver(ctx, f.Name(), handle, payload, f.tracker, f.logger)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Payload encodes Games in the inbound envelope.
func (f *Fixture) Payload() ([]byte, error) {
	body := map[string]any{
		"data": map[string]any{"scoreboard": f.Games()},
	}
	return json.Marshal(body)
}

// Games returns the featured game followed by one game per roster pair.
func (f *Fixture) Games() []games.Game {
	start := f.now().UTC().Truncate(time.Hour)
	out := []games.Game{f.featured(start)}

	for i := 0; i+1 < len(f.roster); i += 2 {
		away, home := f.roster[i], f.roster[i+1]
		state := fixtureStates[(i/2)%len(fixtureStates)]
		n := i / 2
		out = append(out, games.Game{
			ID:                 games.GameID(fmt.Sprintf("%d", 3000+n)),
			AwayTeam:           displayName(away),
			HomeTeam:           displayName(home),
			AwayPoints:         (n*7 + 3) % 40,
			HomePoints:         (n*10 + 7) % 40,
			Status:             state.status,
			CurrentClock:       state.clock,
			CurrentPeriod:      state.period,
			CurrentPossession:  games.PossessionAway,
			CurrentSituation:   fmt.Sprintf("1st & 10 at %s %d", home.Abbreviation, 10+(n*7)%40),
			LastPlay:           fmt.Sprintf("%s pass complete to %d-yard line", away.School, 10+(n*7)%40),
			StartDate:          start.Add(time.Duration(n) * 30 * time.Minute),
			AwayClassification: "FBS",
			HomeClassification: "FBS",
			AwayConference:     away.Conference,
			HomeConference:     home.Conference,
			AwayLineScores:     []int{7, 3, 10, 0},
			HomeLineScores:     []int{0, 14, 7, 3},
			TV:                 "ESPN",
			Venue:              "Generic Stadium",
			City:               "Atlanta",
			State:              "GA",
			Spread:             -3.5,
			OverUnder:          52.5,
			ConferenceGame:     away.Conference != "" && away.Conference == home.Conference,
		})
	}
	return out
}

func (f *Fixture) featured(start time.Time) games.Game {
	state := fixtureStates[0]
	return games.Game{
		ID:                 FeaturedFixtureID,
		AwayTeam:           "Georgia Bulldogs",
		HomeTeam:           "Alabama Crimson Tide",
		AwayPoints:         17,
		HomePoints:         24,
		Status:             state.status,
		CurrentClock:       state.clock,
		CurrentPeriod:      state.period,
		CurrentPossession:  games.PossessionAway,
		CurrentSituation:   "2nd & 7 at BAMA 35",
		LastPlay:           "Bennett pass complete to McConkey for 5 yards",
		StartDate:          start.Add(-time.Hour),
		AwayClassification: "FBS",
		HomeClassification: "FBS",
		AwayConference:     "SEC",
		HomeConference:     "SEC",
		AwayLineScores:     []int{7, 3, 7, 0},
		HomeLineScores:     []int{10, 7, 7, 0},
		ConferenceGame:     true,
		TV:                 "ESPN",
		Venue:              "Bryant-Denny Stadium",
		City:               "Tuscaloosa",
		State:              "AL",
		Spread:             -3.5,
		OverUnder:          52.5,
	}
}

func displayName(t teams.Team) string {
	if t.Mascot == "" {
		return t.School
	}
	return t.School + " " + t.Mascot
}
