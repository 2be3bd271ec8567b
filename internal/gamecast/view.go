package gamecast

import (
	"strings"

	"github.com/preston-bernstein/saturday-stats/internal/domain/games"
)

// View is everything the featured-game panel draws.
type View struct {
	ID          games.GameID     `json:"id"`
	Down        string           `json:"down"`
	BallOn      string           `json:"ballOn"`
	Play        Classification   `json:"play"`
	LastPlay    string           `json:"lastPlay,omitempty"`
	Away        TeamSide         `json:"away"`
	Home        TeamSide         `json:"home"`
	Possession  games.Possession `json:"possession"`
	Situation   *Situation       `json:"situation,omitempty"`
	Ball        *FieldPosition   `json:"ball,omitempty"`
	FirstDown   *FieldPosition   `json:"firstDown,omitempty"`
	Halftime    bool             `json:"halftime"`
	Overlay     Overlay          `json:"overlay,omitempty"`
	OverlayTeam *TeamSide        `json:"overlayTeam,omitempty"`
	ShowMarkers bool             `json:"showMarkers"`
}

// BuildView interprets g for the field renderer. Markers are only populated
// when they are drawable: the situation parsed, both positions resolved, and
// neither halftime nor a scoring overlay is active.
func BuildView(g games.Game, matcher TeamMatcher) View {
	v := View{
		ID:         g.ID,
		Down:       "---",
		BallOn:     "---",
		Play:       ClassifyPlay(g.LastPlay),
		LastPlay:   g.LastPlay,
		Away:       resolveSide(matcher, g.AwayTeam),
		Home:       resolveSide(matcher, g.HomeTeam),
		Possession: EffectivePossession(g.CurrentPossession, g.LastPlay),
		Halftime:   g.IsHalftime(),
		Overlay:    DetectOverlay(g.CurrentSituation, g.LastPlay),
	}
	if g.CurrentSituation != "" {
		v.Down = strings.TrimSpace(strings.SplitN(g.CurrentSituation, " at ", 2)[0])
		v.BallOn = BallOn(g.CurrentSituation)
	}

	possessing := v.possessingSide()
	if v.Overlay != OverlayNone && possessing != nil {
		v.OverlayTeam = possessing
	}

	sit, ok := ParseSituation(g.CurrentSituation, v.Possession, v.Home.Abbreviation, v.Away.Abbreviation)
	if ok {
		v.Situation = &sit
	}

	v.ShowMarkers = ok &&
		!v.Halftime &&
		strings.TrimSpace(g.CurrentSituation) != "" &&
		v.Overlay == OverlayNone
	if !v.ShowMarkers {
		return v
	}

	ball := PositionFor(sit.TeamAbbr, sit.YardLine, v.Home.Abbreviation, v.Away.Abbreviation, v.Possession)
	first := PositionFor(sit.TeamAbbr, sit.FirstDownLine, v.Home.Abbreviation, v.Away.Abbreviation, v.Possession)
	if !ball.Known {
		// The spot names neither team; nothing is drawable.
		v.ShowMarkers = false
		return v
	}
	v.Ball = &ball
	v.FirstDown = &first
	return v
}

func (v View) possessingSide() *TeamSide {
	switch v.Possession {
	case games.PossessionHome:
		side := v.Home
		return &side
	case games.PossessionAway:
		side := v.Away
		return &side
	default:
		return nil
	}
}
