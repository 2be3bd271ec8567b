package ingest

import (
	"errors"
	"testing"
	"time"

	"github.com/preston-bernstein/saturday-stats/internal/domain/games"
	"github.com/preston-bernstein/saturday-stats/internal/testutil"
)

func record(id any, start string, away, home string) map[string]any {
	return map[string]any{
		"id":                 id,
		"awayTeam":           "Away " + start,
		"homeTeam":           "Home " + start,
		"status":             "scheduled",
		"startDate":          start,
		"awayClassification": away,
		"homeClassification": home,
	}
}

func TestDecodeAcceptsNumericAndStringIDs(t *testing.T) {
	payload := testutil.ScoreboardPayload(
		record(401628374, "2024-09-28T23:30:00Z", "fbs", "fbs"),
		record("abc", "2024-09-28T16:00:00Z", "fbs", "fbs"),
	)
	list, skipped, err := Decode(payload)
	if err != nil || len(skipped) != 0 {
		t.Fatalf("expected clean decode, got err=%v skipped=%v", err, skipped)
	}
	if len(list) != 2 || list[0].ID != "401628374" || list[1].ID != "abc" {
		t.Fatalf("unexpected ids %+v", list)
	}
}

func TestDecodeSkipsMalformedRecords(t *testing.T) {
	payload := testutil.ScoreboardPayload(
		record("1", "2024-09-28T16:00:00Z", "fbs", "fbs"),
		map[string]any{"id": "2", "awayPoints": "seven"},
		map[string]any{"awayTeam": "No Id"},
	)
	list, skipped, err := Decode(payload)
	if err != nil {
		t.Fatalf("expected payload accepted, got %v", err)
	}
	if len(list) != 1 || len(skipped) != 2 {
		t.Fatalf("expected 1 kept and 2 skipped, got %d and %d", len(list), len(skipped))
	}
	if skipped[0].Index != 1 || skipped[1].Index != 2 {
		t.Fatalf("unexpected skipped indexes %+v", skipped)
	}
}

func TestDecodeRejectsBadEnvelope(t *testing.T) {
	if _, _, err := Decode([]byte("{not json")); !errors.Is(err, ErrMalformedPayload) {
		t.Fatalf("expected malformed payload error, got %v", err)
	}
	if _, _, err := Decode([]byte(`{"data":{}}`)); !errors.Is(err, ErrMissingScoreboard) {
		t.Fatalf("expected missing scoreboard error, got %v", err)
	}
	list, _, err := Decode([]byte(`{"data":{"scoreboard":[]}}`))
	if err != nil || len(list) != 0 {
		t.Fatalf("expected empty list accepted, got %v %v", list, err)
	}
}

func TestFilterClassification(t *testing.T) {
	list := []games.Game{
		{ID: "1", AwayClassification: "fbs", HomeClassification: "fcs"},
		{ID: "2", AwayClassification: "fcs", HomeClassification: "fcs"},
		{ID: "3", AwayClassification: "fcs", HomeClassification: "FBS"},
	}
	got := FilterClassification(list, "fbs")
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Fatalf("unexpected filter result %+v", got)
	}
	if all := FilterClassification(list, ""); len(all) != 3 {
		t.Fatalf("expected empty tier to keep all, got %d", len(all))
	}
}

func TestDedupeKeepsFirstSeen(t *testing.T) {
	list := []games.Game{
		{ID: "1", AwayPoints: 7},
		{ID: "2"},
		{ID: "1", AwayPoints: 14},
	}
	got := Dedupe(list)
	if len(got) != 2 {
		t.Fatalf("expected 2 games, got %d", len(got))
	}
	if got[0].AwayPoints != 7 {
		t.Fatalf("expected first occurrence kept, got %d points", got[0].AwayPoints)
	}
	if again := Dedupe(got); len(again) != 2 {
		t.Fatal("expected dedupe to be idempotent")
	}
}

func TestSortByStartIsStable(t *testing.T) {
	early := time.Date(2024, 9, 28, 16, 0, 0, 0, time.UTC)
	late := early.Add(3 * time.Hour)
	list := []games.Game{
		{ID: "a", StartDate: late},
		{ID: "b", StartDate: early},
		{ID: "c", StartDate: late},
		{ID: "d", StartDate: early},
	}
	got := SortByStart(list)
	want := []games.GameID{"b", "d", "a", "c"}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
	if list[0].ID != "a" {
		t.Fatal("expected input left untouched")
	}
}

func TestPrepareFiltersBeforeDedupe(t *testing.T) {
	// The fcs copy of id 1 is filtered first, so the later fbs copy survives.
	list := []games.Game{
		{ID: "1", AwayClassification: "fcs", HomeClassification: "fcs", AwayPoints: 3},
		{ID: "1", AwayClassification: "fbs", AwayPoints: 10},
	}
	got := Prepare(list, "fbs")
	if len(got) != 1 || got[0].AwayPoints != 10 {
		t.Fatalf("unexpected prepare result %+v", got)
	}
}
