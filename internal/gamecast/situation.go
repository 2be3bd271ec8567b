// Package gamecast interprets a game's free-text situation and last play into
// field positions, play labels and scorebug text for the renderer.
package gamecast

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/preston-bernstein/saturday-stats/internal/domain/games"
)

// Situation is the structured form of a down/distance/yard-line description.
// YardLine and FirstDownLine are measured from TeamAbbr's own goal line.
type Situation struct {
	TeamAbbr      string `json:"possessingTeamAbbr"`
	YardLine      int    `json:"yardLine"`
	ToGo          int    `json:"toGo"`
	FirstDownLine int    `json:"firstDownLine"`
	IsGoalToGo    bool   `json:"isGoalToGo"`
}

var (
	goalPattern     = regexp.MustCompile(`(?i)(\d)(?:st|nd|rd|th)\s&\sGoal\s(?:at|on)\s([A-Z-]{2,5})\s(\d{1,2})`)
	standardPattern = regexp.MustCompile(`(?i)(\d)(?:st|nd|rd|th)\s&\s(\d+)\s(?:at|on)\s([A-Z-]{2,5})\s(\d{1,2})`)
)

// ParseSituation reads text such as "2nd & 7 at BAMA 35" or "3rd & Goal at UGA 5".
// possession is the effective possession side. ok is false when the text
// matches neither grammar; callers then draw no markers.
func ParseSituation(text string, possession games.Possession, homeAbbr, awayAbbr string) (Situation, bool) {
	possession = possession.Normalize()
	if strings.TrimSpace(text) == "" {
		return Situation{}, false
	}

	if m := goalPattern.FindStringSubmatch(text); m != nil {
		yard, err := strconv.Atoi(m[3])
		if err != nil {
			return Situation{}, false
		}
		return Situation{
			TeamAbbr:      strings.ToUpper(m[2]),
			YardLine:      yard,
			ToGo:          yard,
			FirstDownLine: 0,
			IsGoalToGo:    true,
		}, true
	}

	if m := standardPattern.FindStringSubmatch(text); m != nil {
		toGo, err := strconv.Atoi(m[2])
		if err != nil {
			return Situation{}, false
		}
		yard, err := strconv.Atoi(m[4])
		if err != nil {
			return Situation{}, false
		}
		abbr := strings.ToUpper(m[3])
		return Situation{
			TeamAbbr:      abbr,
			YardLine:      yard,
			ToGo:          toGo,
			FirstDownLine: firstDownLine(yard, toGo, possessesBall(abbr, possession, homeAbbr, awayAbbr)),
		}, true
	}

	return Situation{}, false
}

// firstDownLine flips direction with perspective: a spot on the offense's own
// side is driven away from its goal, a spot on the defense's side toward it.
func firstDownLine(yard, toGo int, possessing bool) int {
	line := yard - toGo
	if possessing {
		line = yard + toGo
	}
	return clampYard(line)
}

func possessesBall(abbr string, possession games.Possession, homeAbbr, awayAbbr string) bool {
	switch possession {
	case games.PossessionHome:
		return homeAbbr != "" && strings.EqualFold(abbr, homeAbbr)
	case games.PossessionAway:
		return awayAbbr != "" && strings.EqualFold(abbr, awayAbbr)
	default:
		return false
	}
}

func clampYard(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// DownText returns the down/distance part of a situation ("2nd & 7"), or
// "1st & 10" when the text carries no " at " spot.
func DownText(situation string) string {
	if idx := strings.Index(situation, " at "); idx >= 0 {
		return strings.TrimSpace(situation[:idx])
	}
	return "1st & 10"
}

// BallOn returns the spot after " at " ("BAMA 35"), or "---" when absent.
func BallOn(situation string) string {
	parts := strings.SplitN(situation, " at ", 2)
	if len(parts) != 2 {
		return "---"
	}
	return strings.TrimSpace(parts[1])
}
