package rotation_test

import (
	"testing"
	"time"

	"github.com/preston-bernstein/saturday-stats/internal/domain/games"
	"github.com/preston-bernstein/saturday-stats/internal/metrics"
	"github.com/preston-bernstein/saturday-stats/internal/rotation"
	"github.com/preston-bernstein/saturday-stats/internal/testutil"
)

func newTestScheduler(t *testing.T, cfg rotation.Config) (*rotation.Scheduler, *testutil.FakeClock, *metrics.Recorder) {
	t.Helper()
	clock := testutil.NewFakeClock(time.Date(2024, 9, 28, 16, 0, 0, 0, time.UTC))
	logger, _ := testutil.NewBufferLogger()
	rec := metrics.NewRecorder()
	s := rotation.New(cfg, clock, logger, rec)
	t.Cleanup(s.Stop)
	return s, clock, rec
}

func TestSchedulerSinglePageNeverAdvances(t *testing.T) {
	s, clock, rec := newTestScheduler(t, rotation.Config{})
	s.UpdateGames(makeGames(9))
	s.Start()

	clock.Advance(5 * time.Minute)
	st := s.State()
	if st.SetIndex != 0 || st.FadeSet {
		t.Fatalf("expected no rotation, got index=%d fade=%v", st.SetIndex, st.FadeSet)
	}
	if rec.Rotations("set") != 0 {
		t.Fatalf("expected no recorded rotations, got %d", rec.Rotations("set"))
	}
}

func TestSchedulerFadeThenAdvance(t *testing.T) {
	s, clock, rec := newTestScheduler(t, rotation.Config{})
	s.UpdateGames(makeGames(20))
	s.Start()

	clock.Advance(rotation.DefaultSetInterval - time.Millisecond)
	if s.State().FadeSet {
		t.Fatal("expected no fade before the interval")
	}
	clock.Advance(time.Millisecond)
	if !s.Frame().FadeSet {
		t.Fatal("expected fade at the interval")
	}
	if s.State().SetIndex != 0 {
		t.Fatal("expected index unchanged during fade")
	}
	clock.Advance(rotation.DefaultFadeDelay)
	st := s.State()
	if st.FadeSet || st.SetIndex != 1 {
		t.Fatalf("expected advance to page 1, got index=%d fade=%v", st.SetIndex, st.FadeSet)
	}
	if rec.Rotations("set") != 1 {
		t.Fatalf("expected one recorded rotation, got %d", rec.Rotations("set"))
	}
}

func TestSchedulerOneCyclePerPeriod(t *testing.T) {
	s, clock, _ := newTestScheduler(t, rotation.Config{})
	s.UpdateGames(makeGames(20))
	s.Start()

	period := rotation.DefaultSetInterval + rotation.DefaultFadeDelay
	clock.Advance(period)
	if got := s.State().SetIndex; got != 1 {
		t.Fatalf("expected index 1 after one period, got %d", got)
	}
	clock.Advance(rotation.DefaultSetInterval)
	if got := s.State().SetIndex; got != 2 {
		t.Fatalf("expected index 2 after two periods, got %d", got)
	}
	clock.Advance(rotation.DefaultSetInterval)
	if got := s.State().SetIndex; got != 0 {
		t.Fatalf("expected wrap to 0, got %d", got)
	}
}

func TestSchedulerUpdateMidFadeDoesNotCancel(t *testing.T) {
	s, clock, _ := newTestScheduler(t, rotation.Config{})
	s.UpdateGames(makeGames(20))
	s.Start()

	clock.Advance(rotation.DefaultSetInterval)
	s.UpdateGames(makeGames(27))
	if !s.State().FadeSet {
		t.Fatal("expected fade to survive update")
	}
	clock.Advance(rotation.DefaultFadeDelay)
	f := s.Frame()
	if f.SetIndex != 1 || f.SetCount != 3 {
		t.Fatalf("expected page 1 of 3, got %d of %d", f.SetIndex, f.SetCount)
	}
	if f.VisibleGames[0].ID != "10" {
		t.Fatalf("expected new data on the new page, got %s", f.VisibleGames[0].ID)
	}
}

func TestSchedulerFeaturedRotation(t *testing.T) {
	s, clock, rec := newTestScheduler(t, rotation.Config{FeaturedIDs: []games.GameID{"1", "2", "3"}})
	s.UpdateGames(live(makeGames(5), "1", "3"))
	s.Start()

	if f := s.Frame(); f.FeaturedGame == nil || f.FeaturedGame.ID != "1" {
		t.Fatalf("expected game 1 featured, got %+v", f.FeaturedGame)
	}
	clock.Advance(rotation.DefaultFeaturedInterval)
	if !s.Frame().FadeFeatured {
		t.Fatal("expected featured fade at the interval")
	}
	clock.Advance(rotation.DefaultFadeDelay)
	if f := s.Frame(); f.FeaturedGame == nil || f.FeaturedGame.ID != "3" || f.FadeFeatured {
		t.Fatalf("expected game 3 featured, got %+v", f)
	}
	if rec.Rotations("featured") != 1 {
		t.Fatalf("expected one featured rotation, got %d", rec.Rotations("featured"))
	}
}

func TestSchedulerStopCancelsTimers(t *testing.T) {
	s, clock, _ := newTestScheduler(t, rotation.Config{})
	s.UpdateGames(makeGames(20))
	s.Start()

	clock.Advance(rotation.DefaultSetInterval)
	if clock.Pending() == 0 {
		t.Fatal("expected pending timers while running")
	}
	s.Stop()
	if clock.Pending() != 0 {
		t.Fatalf("expected no pending timers after stop, got %d", clock.Pending())
	}

	before := s.State()
	clock.Advance(10 * time.Minute)
	after := s.State()
	if after.SetIndex != before.SetIndex || after.FadeSet != before.FadeSet {
		t.Fatalf("expected frozen state after stop, before=%+v after=%+v", before, after)
	}

	s.UpdateGames(makeGames(1))
	if len(s.State().Games) != 20 {
		t.Fatal("expected updates ignored after stop")
	}
	s.Start()
	if clock.Pending() != 0 {
		t.Fatal("expected restart after stop to be a no-op")
	}
}

func TestSchedulerNotifiesListeners(t *testing.T) {
	s, clock, _ := newTestScheduler(t, rotation.Config{PageSize: 2})
	var frames []rotation.Frame
	s.OnChange(func(f rotation.Frame) { frames = append(frames, f) })
	s.UpdateGames(makeGames(3))
	s.Start()
	clock.Advance(rotation.DefaultSetInterval + rotation.DefaultFadeDelay)

	// update, fade, advance
	if len(frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(frames))
	}
	if !frames[1].FadeSet || frames[2].FadeSet || frames[2].SetIndex != 1 {
		t.Fatalf("unexpected frame sequence %+v", frames)
	}
	if len(frames[2].VisibleGames) != 1 || frames[2].VisibleGames[0].ID != "3" {
		t.Fatalf("expected second page with game 3, got %+v", frames[2].VisibleGames)
	}
}

func TestSchedulerSetFeatured(t *testing.T) {
	s, _, _ := newTestScheduler(t, rotation.Config{})
	s.UpdateGames(live(makeGames(3), "2"))
	s.SetFeatured([]games.GameID{"2"})
	if ids := s.FeaturedIDs(); len(ids) != 1 || ids[0] != "2" {
		t.Fatalf("unexpected featured ids %v", ids)
	}
	if f := s.Frame(); f.FeaturedGame == nil || f.FeaturedGame.ID != "2" {
		t.Fatalf("expected game 2 featured, got %+v", f.FeaturedGame)
	}
}

func TestSchedulerSkipsUnchangedFrames(t *testing.T) {
	s, clock, _ := newTestScheduler(t, rotation.Config{FeaturedIDs: []games.GameID{"1"}})
	var frames int
	s.OnChange(func(rotation.Frame) { frames++ })
	s.UpdateGames(live(makeGames(9), "1"))
	s.Start()

	clock.Advance(5 * time.Minute)
	if frames != 1 {
		t.Fatalf("expected only the update frame, got %d", frames)
	}
	s.UpdateGames(live(makeGames(9), "1"))
	if frames != 2 {
		t.Fatalf("expected updates to always notify, got %d", frames)
	}
}
