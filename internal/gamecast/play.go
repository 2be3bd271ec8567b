package gamecast

import (
	"strings"

	"github.com/preston-bernstein/saturday-stats/internal/domain/games"
)

// PlayType is the label assigned to a last-play description.
type PlayType string

const (
	PlayTouchdown      PlayType = "touchdown"
	PlayPunt           PlayType = "punt"
	PlayKickoff        PlayType = "kickoff"
	PlayFieldGoal      PlayType = "field_goal"
	PlayIncompletePass PlayType = "incomplete_pass"
	PlayPassComplete   PlayType = "pass_complete"
	PlayRun            PlayType = "run"
	PlaySack           PlayType = "sack"
	PlayInterception   PlayType = "interception"
	PlayFumble         PlayType = "fumble"
	PlayUnknown        PlayType = "unknown"
)

// Classification is the result of ClassifyPlay. Label is the display heading.
type Classification struct {
	Type  PlayType `json:"type"`
	Label string   `json:"label"`
}

type playRule struct {
	keywords []string
	result   Classification
}

// playRules is evaluated top to bottom; the first rule with a matching keyword wins.
var playRules = []playRule{
	{[]string{"touchdown", "td"}, Classification{PlayTouchdown, "Touchdown"}},
	{[]string{"punt"}, Classification{PlayPunt, "Punt"}},
	{[]string{"kickoff"}, Classification{PlayKickoff, "Kickoff"}},
	{[]string{"field goal"}, Classification{PlayFieldGoal, "Field Goal"}},
	{[]string{"pass incomplete"}, Classification{PlayIncompletePass, "Incomplete Pass"}},
	{[]string{"pass to", "pass complete"}, Classification{PlayPassComplete, "Pass Complete"}},
	{[]string{"run for", "rush"}, Classification{PlayRun, "Run"}},
	{[]string{"sack"}, Classification{PlaySack, "Sack"}},
	{[]string{"interception"}, Classification{PlayInterception, "Interception"}},
	{[]string{"fumble"}, Classification{PlayFumble, "Fumble"}},
}

// ClassifyPlay labels a last-play description. Empty text is "Unknown Play";
// unrecognized text is "Last Play". Both carry PlayUnknown.
func ClassifyPlay(lastPlay string) Classification {
	if strings.TrimSpace(lastPlay) == "" {
		return Classification{Type: PlayUnknown, Label: "Unknown Play"}
	}
	play := strings.ToLower(lastPlay)
	for _, rule := range playRules {
		if containsAny(play, rule.keywords) {
			return rule.result
		}
	}
	return Classification{Type: PlayUnknown, Label: "Last Play"}
}

// EffectivePossession returns the side to draw the marker for. After a punt or
// kickoff the ball has changed hands before the feed updates possession, so the
// stated side is flipped.
func EffectivePossession(current games.Possession, lastPlay string) games.Possession {
	current = current.Normalize()
	if lastPlay == "" {
		return current
	}
	if containsAny(strings.ToLower(lastPlay), possessionFlipKeywords) {
		return current.Opposite()
	}
	return current
}

var (
	possessionFlipKeywords = []string{"punt", "kickoff"}
	touchdownKeywords      = []string{"touchdown", "td", "extra point", "kick)"}
	fieldGoalKeywords      = []string{"fg good", "field goal good"}
)

// Overlay is a celebratory banner shown instead of positional markers.
type Overlay string

const (
	OverlayNone      Overlay = ""
	OverlayTouchdown Overlay = "touchdown"
	OverlayFieldGoal Overlay = "field_goal"
)

// IsTouchdown checks the situation and last play for scoring keywords.
func IsTouchdown(situation, lastPlay string) bool {
	return anyTextContains(touchdownKeywords, situation, lastPlay)
}

// IsFieldGoal checks the situation and last play for a made field goal.
func IsFieldGoal(situation, lastPlay string) bool {
	return anyTextContains(fieldGoalKeywords, situation, lastPlay)
}

// DetectOverlay returns the special event to celebrate, touchdown first.
func DetectOverlay(situation, lastPlay string) Overlay {
	switch {
	case IsTouchdown(situation, lastPlay):
		return OverlayTouchdown
	case IsFieldGoal(situation, lastPlay):
		return OverlayFieldGoal
	default:
		return OverlayNone
	}
}

func anyTextContains(keywords []string, texts ...string) bool {
	for _, text := range texts {
		if text != "" && containsAny(strings.ToLower(text), keywords) {
			return true
		}
	}
	return false
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
