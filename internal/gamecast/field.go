package gamecast

import (
	"strings"

	"github.com/preston-bernstein/saturday-stats/internal/domain/games"
)

// The field is drawn as 12 equal columns: an end zone on each side and ten
// 10-yard columns between them.
const (
	fieldColumns = 12
	// EndZonePercent is the width of one end zone band.
	EndZonePercent = 100.0 / fieldColumns
	// yardPercent is the width of a single yard of playing field.
	yardPercent = (100.0 * 10 / fieldColumns) / 100
	// markerOffsetYards shifts the marker so its visual center lands on the yard line.
	markerOffsetYards = 1.5
	// NeutralPercent is returned when the position cannot be resolved.
	NeutralPercent = 50.0
)

// FieldPosition is a horizontal coordinate on the drawn field.
// 0 is the away end, 100 the home end. Known is false for the neutral fallback.
type FieldPosition struct {
	HorizontalPercent float64          `json:"horizontalPercent"`
	MarkerTeam        games.Possession `json:"markerTeam"`
	Known             bool             `json:"known"`
}

// HorizontalPercent maps a yard line measured from abbr's own goal line to a
// percentage across the field. The away side drives rightward and the home side
// is mirrored. ok is false, and the neutral midpoint returned, when abbr names
// neither team.
func HorizontalPercent(abbr string, yardLine int, homeAbbr, awayAbbr string) (float64, bool) {
	abbr = strings.ToUpper(strings.TrimSpace(abbr))
	switch {
	case abbr != "" && abbr == strings.ToUpper(awayAbbr):
		return EndZonePercent + (float64(yardLine)+markerOffsetYards)*yardPercent, true
	case abbr != "" && abbr == strings.ToUpper(homeAbbr):
		return EndZonePercent + (100-float64(yardLine)-markerOffsetYards)*yardPercent, true
	default:
		return NeutralPercent, false
	}
}

// PositionFor wraps HorizontalPercent into a FieldPosition for the marker team.
func PositionFor(abbr string, yardLine int, homeAbbr, awayAbbr string, marker games.Possession) FieldPosition {
	pct, ok := HorizontalPercent(abbr, yardLine, homeAbbr, awayAbbr)
	return FieldPosition{HorizontalPercent: pct, MarkerTeam: marker.Normalize(), Known: ok}
}
