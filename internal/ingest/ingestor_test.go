package ingest

import (
	"context"
	"testing"

	"github.com/preston-bernstein/saturday-stats/internal/domain/games"
	"github.com/preston-bernstein/saturday-stats/internal/metrics"
	"github.com/preston-bernstein/saturday-stats/internal/testutil"
)

type captureConsumer struct {
	calls [][]games.Game
}

func (c *captureConsumer) ReplaceGames(list []games.Game) {
	c.calls = append(c.calls, list)
}

func TestHandleReplacesListAtomically(t *testing.T) {
	logger, _ := testutil.NewBufferLogger()
	rec := metrics.NewRecorder()
	consumer := &captureConsumer{}
	ing := New("fbs", logger, rec, consumer)

	payload := testutil.ScoreboardPayload(
		record("2", "2024-09-28T23:30:00Z", "fbs", "fbs"),
		record("1", "2024-09-28T16:00:00Z", "fbs", "fcs"),
		record("2", "2024-09-28T12:00:00Z", "fbs", "fbs"),
		record("3", "2024-09-28T12:00:00Z", "fcs", "fcs"),
	)
	if err := ing.Handle(context.Background(), payload); err != nil {
		t.Fatalf("expected payload accepted, got %v", err)
	}
	if len(consumer.calls) != 1 {
		t.Fatalf("expected one replacement, got %d", len(consumer.calls))
	}
	got := consumer.calls[0]
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "2" {
		t.Fatalf("unexpected list %+v", got)
	}
	if !got[1].StartDate.Equal(testutil.MustParseRFC3339("2024-09-28T23:30:00Z")) {
		t.Fatalf("expected first-seen record for id 2, got start %v", got[1].StartDate)
	}

	st := ing.Status()
	if !st.IsReady() || st.Games != 2 {
		t.Fatalf("unexpected status %+v", st)
	}
	if rec.Ingest().LastCount != 2 {
		t.Fatalf("expected metrics to record 2 games, got %+v", rec.Ingest())
	}
}

func TestHandleKeepsPreviousListOnBadPayload(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	consumer := &captureConsumer{}
	ing := New("fbs", logger, nil, consumer)

	good := testutil.ScoreboardPayload(record("1", "2024-09-28T16:00:00Z", "fbs", "fbs"))
	if err := ing.Handle(context.Background(), good); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if err := ing.Handle(context.Background(), []byte("garbage")); err == nil {
		t.Fatal("expected error for garbage payload")
	}
	if len(consumer.calls) != 1 {
		t.Fatalf("expected consumers untouched by bad payload, got %d calls", len(consumer.calls))
	}
	testutil.AssertLogged(t, buf, "ingest rejected payload", "bytes=7")
	st := ing.Status()
	if st.ConsecutiveFailures != 1 || st.LastError == "" || !st.IsReady() {
		t.Fatalf("unexpected status %+v", st)
	}
}

func TestStatusNotReadyAfterRepeatedFailures(t *testing.T) {
	ing := New("fbs", nil, nil)
	if ing.Status().IsReady() {
		t.Fatal("expected not ready before any payload")
	}
	_ = ing.Handle(context.Background(), testutil.ScoreboardPayload())
	for i := 0; i < 3; i++ {
		_ = ing.Handle(context.Background(), []byte("{"))
	}
	if ing.Status().IsReady() {
		t.Fatalf("expected not ready after 3 failures, got %+v", ing.Status())
	}
}

func TestHandleLogsSkippedRecords(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	consumer := &captureConsumer{}
	ing := New("", logger, nil, consumer)

	payload := testutil.ScoreboardPayload(
		record("1", "2024-09-28T16:00:00Z", "fcs", "fcs"),
		map[string]any{"id": "2", "startDate": "yesterday"},
	)
	if err := ing.Handle(context.Background(), payload); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(consumer.calls[0]) != 1 {
		t.Fatalf("expected the good record only, got %+v", consumer.calls[0])
	}
	testutil.AssertLogged(t, buf, "ingest skipped record", "index=1")
	if ing.Status().Dropped != 1 {
		t.Fatalf("expected one dropped record, got %d", ing.Status().Dropped)
	}
}

func TestConsumerFunc(t *testing.T) {
	var got []games.Game
	var c Consumer = ConsumerFunc(func(list []games.Game) { got = list })
	c.ReplaceGames([]games.Game{{ID: "x"}})
	if len(got) != 1 {
		t.Fatal("expected func consumer invoked")
	}
}
