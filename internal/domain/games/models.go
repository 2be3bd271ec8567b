package games

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// GameStatus mirrors the feed's lifecycle states.
type GameStatus string

const (
	StatusScheduled  GameStatus = "scheduled"
	StatusInProgress GameStatus = "in_progress"
	StatusCompleted  GameStatus = "completed"
)

// Possession identifies which side currently has the ball.
type Possession string

const (
	PossessionHome Possession = "home"
	PossessionAway Possession = "away"
	PossessionNone Possession = "none"
)

// Normalize maps blank or unknown values to PossessionNone.
func (p Possession) Normalize() Possession {
	switch Possession(strings.ToLower(strings.TrimSpace(string(p)))) {
	case PossessionHome:
		return PossessionHome
	case PossessionAway:
		return PossessionAway
	default:
		return PossessionNone
	}
}

// Opposite returns the other side; PossessionNone has no opposite.
func (p Possession) Opposite() Possession {
	switch p.Normalize() {
	case PossessionHome:
		return PossessionAway
	case PossessionAway:
		return PossessionHome
	default:
		return PossessionNone
	}
}

// GameID accepts either a JSON string or a JSON number and stores it as text.
type GameID string

func (id *GameID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = GameID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = GameID(n.String())
	return nil
}

// HalftimeClock is the clock value the feed reports at the end of the second period.
const HalftimeClock = "00:00:00"

// Game is one scoreboard record as delivered by the inbound feed.
// Records are replaced wholesale by id; nothing mutates one in place.
type Game struct {
	ID                 GameID     `json:"id"`
	AwayTeam           string     `json:"awayTeam"`
	HomeTeam           string     `json:"homeTeam"`
	AwayPoints         int        `json:"awayPoints"`
	HomePoints         int        `json:"homePoints"`
	Status             GameStatus `json:"status"`
	CurrentClock       string     `json:"currentClock"`
	CurrentPeriod      int        `json:"currentPeriod"`
	CurrentPossession  Possession `json:"currentPossession"`
	CurrentSituation   string     `json:"currentSituation"`
	LastPlay           string     `json:"lastPlay"`
	StartDate          time.Time  `json:"startDate"`
	AwayClassification string     `json:"awayClassification"`
	HomeClassification string     `json:"homeClassification"`
	AwayConference     string     `json:"awayConference,omitempty"`
	HomeConference     string     `json:"homeConference,omitempty"`
	AwayLineScores     []int      `json:"awayLineScores,omitempty"`
	HomeLineScores     []int      `json:"homeLineScores,omitempty"`
	ConferenceGame     bool       `json:"conferenceGame"`
	NeutralSite        bool       `json:"neutralSite"`
	TV                 string     `json:"tv,omitempty"`
	Venue              string     `json:"venue,omitempty"`
	City               string     `json:"city,omitempty"`
	State              string     `json:"state,omitempty"`
	Spread             float64    `json:"spread,omitempty"`
	OverUnder          float64    `json:"overUnder,omitempty"`
}

// IsHalftime reports the canonical halftime signal.
func (g Game) IsHalftime() bool {
	return g.CurrentPeriod == 2 && g.CurrentClock == HalftimeClock
}

// InClassification reports whether either side belongs to the given tier (case-insensitive).
func (g Game) InClassification(tier string) bool {
	return strings.EqualFold(g.AwayClassification, tier) || strings.EqualFold(g.HomeClassification, tier)
}

// Winner returns the leading side of a completed game, or PossessionNone for ties and unfinished games.
func (g Game) Winner() Possession {
	if g.Status != StatusCompleted {
		return PossessionNone
	}
	switch {
	case g.AwayPoints > g.HomePoints:
		return PossessionAway
	case g.HomePoints > g.AwayPoints:
		return PossessionHome
	default:
		return PossessionNone
	}
}

// Scoreboard is the inbound envelope: {"data":{"scoreboard":[...]}}.
type Scoreboard struct {
	Data struct {
		Scoreboard []json.RawMessage `json:"scoreboard"`
	} `json:"data"`
}

// ScoreDelta is the per-side point change between two versions of the same game.
type ScoreDelta struct {
	Away int `json:"away"`
	Home int `json:"home"`
}

// DeltaFrom computes the point change from prev to g. Different ids yield a zero delta.
func (g Game) DeltaFrom(prev Game) ScoreDelta {
	if prev.ID != g.ID {
		return ScoreDelta{}
	}
	return ScoreDelta{Away: g.AwayPoints - prev.AwayPoints, Home: g.HomePoints - prev.HomePoints}
}
