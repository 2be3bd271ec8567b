package gamecast

import (
	"fmt"
	"testing"

	"github.com/preston-bernstein/saturday-stats/internal/domain/games"
)

func TestParseSituation(t *testing.T) {
	cases := []struct {
		name       string
		text       string
		possession games.Possession
		want       Situation
	}{
		{
			name:       "possessing team on own side",
			text:       "3rd & 7 at UGA 35",
			possession: games.PossessionAway,
			want:       Situation{TeamAbbr: "UGA", YardLine: 35, ToGo: 7, FirstDownLine: 42},
		},
		{
			name:       "spot on defense side",
			text:       "2nd & 7 at BAMA 35",
			possession: games.PossessionAway,
			want:       Situation{TeamAbbr: "BAMA", YardLine: 35, ToGo: 7, FirstDownLine: 28},
		},
		{
			name:       "goal to go",
			text:       "1st & Goal at BAMA 3",
			possession: games.PossessionHome,
			want:       Situation{TeamAbbr: "BAMA", YardLine: 3, ToGo: 3, FirstDownLine: 0, IsGoalToGo: true},
		},
		{
			name:       "on instead of at, lower case",
			text:       "2nd & 10 on uga 20",
			possession: games.PossessionAway,
			want:       Situation{TeamAbbr: "UGA", YardLine: 20, ToGo: 10, FirstDownLine: 30},
		},
		{
			name:       "clamped at goal line",
			text:       "4th & 15 at BAMA 10",
			possession: games.PossessionAway,
			want:       Situation{TeamAbbr: "BAMA", YardLine: 10, ToGo: 15, FirstDownLine: 0},
		},
		{
			name:       "no possession treats spot as defensive",
			text:       "1st & 10 at UGA 25",
			possession: games.PossessionNone,
			want:       Situation{TeamAbbr: "UGA", YardLine: 25, ToGo: 10, FirstDownLine: 15},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseSituation(tc.text, tc.possession, "BAMA", "UGA")
			if !ok {
				t.Fatalf("expected %q to parse", tc.text)
			}
			if got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestParseSituationRejectsOtherText(t *testing.T) {
	for _, text := range []string{"", "   ", "Halftime", "Timeout Georgia, 2:31", "Final", "17-24", "Kickoff"} {
		if got, ok := ParseSituation(text, games.PossessionHome, "BAMA", "UGA"); ok {
			t.Fatalf("expected %q to be unparseable, got %+v", text, got)
		}
	}
}

func TestFirstDownLineDirectionFollowsPerspective(t *testing.T) {
	for yard := 1; yard <= 50; yard++ {
		for toGo := 1; toGo <= 20; toGo++ {
			own, ok := ParseSituation(formatSituation(toGo, "UGA", yard), games.PossessionAway, "BAMA", "UGA")
			if !ok {
				t.Fatalf("expected parse for yard=%d toGo=%d", yard, toGo)
			}
			if own.FirstDownLine < own.YardLine {
				t.Fatalf("possessing side must drive forward: %+v", own)
			}
			opp, _ := ParseSituation(formatSituation(toGo, "BAMA", yard), games.PossessionAway, "BAMA", "UGA")
			if opp.FirstDownLine > opp.YardLine {
				t.Fatalf("defensive spot must count toward the goal: %+v", opp)
			}
		}
	}
}

func TestGoalToGoAlwaysTargetsGoalLine(t *testing.T) {
	for _, possession := range []games.Possession{games.PossessionHome, games.PossessionAway, games.PossessionNone} {
		for yard := 1; yard <= 9; yard++ {
			got, ok := ParseSituation(formatGoal(yard), possession, "BAMA", "UGA")
			if !ok || !got.IsGoalToGo {
				t.Fatalf("expected goal-to-go parse for yard %d", yard)
			}
			if got.YardLine-got.ToGo != 0 || got.FirstDownLine != 0 {
				t.Fatalf("expected goal line target, got %+v", got)
			}
		}
	}
}

func TestDownTextAndBallOn(t *testing.T) {
	if got := DownText("2nd & 7 at BAMA 35"); got != "2nd & 7" {
		t.Fatalf("unexpected down %q", got)
	}
	if got := DownText("Timeout"); got != "1st & 10" {
		t.Fatalf("expected default down, got %q", got)
	}
	if got := BallOn("2nd & 7 at BAMA 35"); got != "BAMA 35" {
		t.Fatalf("unexpected ball on %q", got)
	}
	if got := BallOn(""); got != "---" {
		t.Fatalf("expected placeholder, got %q", got)
	}
}

func formatSituation(toGo int, abbr string, yard int) string {
	return fmt.Sprintf("1st & %d at %s %d", toGo, abbr, yard)
}

func formatGoal(yard int) string {
	return fmt.Sprintf("3rd & Goal at UGA %d", yard)
}
