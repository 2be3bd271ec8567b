package gamecast

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/saturday-stats/internal/domain/games"
	"github.com/preston-bernstein/saturday-stats/internal/domain/teams"
	"github.com/preston-bernstein/saturday-stats/internal/timeutil"
)

// FormatClock turns the feed's "HH:MM:SS" into "M:SS" using total minutes.
// "MM:SS" is accepted too. Anything else is returned unchanged.
func FormatClock(clock string) string {
	parts := strings.Split(strings.TrimSpace(clock), ":")
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return clock
		}
		nums[i] = n
	}
	switch len(nums) {
	case 3:
		return fmt.Sprintf("%d:%02d", nums[0]*60+nums[1], nums[2])
	case 2:
		return fmt.Sprintf("%d:%02d", nums[0], nums[1])
	default:
		return clock
	}
}

// PeriodLabel renders 1-4 as ordinals and anything else as its number.
func PeriodLabel(period int) string {
	switch period {
	case 1:
		return "1st"
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	case 4:
		return "4th"
	default:
		return strconv.Itoa(period)
	}
}

// StatusLabel is the middle block of the scorebug: kickoff time, Half, Final,
// or period and clock.
func StatusLabel(g games.Game, now time.Time) string {
	switch {
	case g.Status == games.StatusScheduled:
		return KickoffLabel(g.StartDate, now)
	case g.IsHalftime():
		return "Half"
	case g.Status == games.StatusCompleted:
		return "Final"
	default:
		return PeriodLabel(g.CurrentPeriod) + " | " + FormatClock(g.CurrentClock)
	}
}

// KickoffLabel formats a start time in Eastern time, adding the weekday when
// the game is not today.
func KickoffLabel(start, now time.Time) string {
	loc := timeutil.Eastern()
	local := start.In(loc)
	today := now.In(loc)
	if local.Year() == today.Year() && local.YearDay() == today.YearDay() {
		return local.Format("3:04 PM")
	}
	return local.Format("Mon 3:04 PM")
}

// TeamSide is one side of a scorebug or gamecast.
type TeamSide struct {
	Display      string `json:"display"`
	School       string `json:"school"`
	Mascot       string `json:"mascot"`
	Abbreviation string `json:"abbreviation"`
	Color        string `json:"color"`
	Logo         string `json:"logo"`
	Matched      bool   `json:"matched"`
}

// TeamMatcher resolves feed display names to roster entries.
type TeamMatcher interface {
	Match(display string) (teams.Team, bool)
}

func resolveSide(matcher TeamMatcher, display string) TeamSide {
	side := TeamSide{Display: display, School: display}
	if matcher == nil {
		return side
	}
	t, ok := matcher.Match(display)
	if !ok {
		return side
	}
	side.School = t.School
	side.Mascot = t.Mascot
	side.Abbreviation = t.Abbreviation
	side.Color = t.Color
	side.Logo = t.Logo()
	side.Matched = true
	return side
}

// Scorebug is the compact per-game view used by the rotating grid.
type Scorebug struct {
	ID              games.GameID     `json:"id"`
	Away            TeamSide         `json:"away"`
	Home            TeamSide         `json:"home"`
	AwayPoints      int              `json:"awayPoints"`
	HomePoints      int              `json:"homePoints"`
	Delta           games.ScoreDelta `json:"delta"`
	Status          games.GameStatus `json:"status"`
	StatusLabel     string           `json:"statusLabel"`
	Down            string           `json:"down,omitempty"`
	Possession      games.Possession `json:"possession"`
	PossessionColor string           `json:"possessionColor,omitempty"`
}

// BuildScorebug renders g. prev, when present, is the previous version of the
// same game and drives the score delta.
func BuildScorebug(g games.Game, prev *games.Game, matcher TeamMatcher, now time.Time) Scorebug {
	bug := Scorebug{
		ID:          g.ID,
		Away:        resolveSide(matcher, g.AwayTeam),
		Home:        resolveSide(matcher, g.HomeTeam),
		AwayPoints:  g.AwayPoints,
		HomePoints:  g.HomePoints,
		Status:      g.Status,
		StatusLabel: StatusLabel(g, now),
		Possession:  games.PossessionNone,
	}
	if prev != nil {
		bug.Delta = g.DeltaFrom(*prev)
	}
	live := g.Status == games.StatusInProgress && !g.IsHalftime()
	if live {
		bug.Down = DownText(g.CurrentSituation)
	}
	if g.Status != games.StatusCompleted {
		bug.Possession = g.CurrentPossession.Normalize()
		switch bug.Possession {
		case games.PossessionHome:
			bug.PossessionColor = bug.Home.Color
		case games.PossessionAway:
			bug.PossessionColor = bug.Away.Color
		}
	}
	return bug
}

// MarqueeEntry is one item in the scrolling ticker.
type MarqueeEntry struct {
	ID          games.GameID     `json:"id"`
	AwayTeam    string           `json:"awayTeam"`
	HomeTeam    string           `json:"homeTeam"`
	AwayPoints  int              `json:"awayPoints"`
	HomePoints  int              `json:"homePoints"`
	Winner      games.Possession `json:"winner"`
	StatusLabel string           `json:"statusLabel"`
	TV          string           `json:"tv,omitempty"`
}

// BuildMarquee renders every game, in order, as a ticker entry.
func BuildMarquee(list []games.Game, now time.Time) []MarqueeEntry {
	out := make([]MarqueeEntry, 0, len(list))
	for _, g := range list {
		entry := MarqueeEntry{
			ID:          g.ID,
			AwayTeam:    g.AwayTeam,
			HomeTeam:    g.HomeTeam,
			AwayPoints:  g.AwayPoints,
			HomePoints:  g.HomePoints,
			Winner:      g.Winner(),
			StatusLabel: StatusLabel(g, now),
		}
		if g.Status == games.StatusScheduled {
			entry.TV = g.TV
		}
		out = append(out, entry)
	}
	return out
}
