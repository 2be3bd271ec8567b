package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/preston-bernstein/saturday-stats/internal/domain/games"
)

// DefaultClassification is the top-tier division shown on the dashboard.
const DefaultClassification = "fbs"

var (
	// ErrMalformedPayload wraps envelope-level parse failures.
	ErrMalformedPayload = errors.New("malformed scoreboard payload")
	// ErrMissingScoreboard means the envelope parsed but carried no data.scoreboard array.
	ErrMissingScoreboard = errors.New("payload has no data.scoreboard")
)

// RecordError describes one record that could not be decoded.
type RecordError struct {
	Index int
	Err   error
}

func (e RecordError) Error() string {
	return fmt.Sprintf("record %d: %v", e.Index, e.Err)
}

// Decode parses the {"data":{"scoreboard":[...]}} envelope. Records that fail
// to decode, or that carry no id, are returned as RecordErrors and left out
// of the result; an unreadable envelope fails the whole payload.
func Decode(payload []byte) ([]games.Game, []RecordError, error) {
	var env games.Scoreboard
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if env.Data.Scoreboard == nil {
		return nil, nil, ErrMissingScoreboard
	}

	out := make([]games.Game, 0, len(env.Data.Scoreboard))
	var skipped []RecordError
	for i, raw := range env.Data.Scoreboard {
		var g games.Game
		if err := json.Unmarshal(raw, &g); err != nil {
			skipped = append(skipped, RecordError{Index: i, Err: err})
			continue
		}
		if strings.TrimSpace(string(g.ID)) == "" {
			skipped = append(skipped, RecordError{Index: i, Err: errors.New("missing id")})
			continue
		}
		out = append(out, g)
	}
	return out, skipped, nil
}

// FilterClassification keeps games where either side is in tier. An empty
// tier keeps everything.
func FilterClassification(list []games.Game, tier string) []games.Game {
	tier = strings.TrimSpace(tier)
	out := make([]games.Game, 0, len(list))
	for _, g := range list {
		if tier == "" || g.InClassification(tier) {
			out = append(out, g)
		}
	}
	return out
}

// Dedupe keeps the first record seen for each id.
func Dedupe(list []games.Game) []games.Game {
	seen := make(map[games.GameID]struct{}, len(list))
	out := make([]games.Game, 0, len(list))
	for _, g := range list {
		if _, ok := seen[g.ID]; ok {
			continue
		}
		seen[g.ID] = struct{}{}
		out = append(out, g)
	}
	return out
}

// SortByStart orders games by kickoff, keeping feed order for ties.
func SortByStart(list []games.Game) []games.Game {
	out := append([]games.Game(nil), list...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartDate.Before(out[j].StartDate)
	})
	return out
}

// Prepare runs filter, dedupe and sort in that order.
func Prepare(list []games.Game, tier string) []games.Game {
	return SortByStart(Dedupe(FilterClassification(list, tier)))
}
