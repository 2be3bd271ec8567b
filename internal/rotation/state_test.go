package rotation_test

import (
	"strconv"
	"testing"

	"github.com/preston-bernstein/saturday-stats/internal/domain/games"
	"github.com/preston-bernstein/saturday-stats/internal/rotation"
)

func makeGames(n int) []games.Game {
	out := make([]games.Game, n)
	for i := range out {
		out[i] = games.Game{ID: games.GameID(strconv.Itoa(i + 1)), Status: games.StatusScheduled}
	}
	return out
}

func live(list []games.Game, ids ...string) []games.Game {
	out := append([]games.Game(nil), list...)
	for i := range out {
		for _, id := range ids {
			if string(out[i].ID) == id {
				out[i].Status = games.StatusInProgress
			}
		}
	}
	return out
}

func TestPageCount(t *testing.T) {
	cases := map[int]int{0: 0, 1: 1, 9: 1, 10: 2, 18: 2, 19: 3}
	for n, want := range cases {
		s := rotation.NewState(9)
		s.Games = makeGames(n)
		if got := s.PageCount(); got != want {
			t.Fatalf("%d games: expected %d pages, got %d", n, want, got)
		}
	}
}

func TestSetTickIgnoredForSinglePage(t *testing.T) {
	s := rotation.NewState(9)
	s.Games = makeGames(9)
	s = rotation.Reduce(s, rotation.Event{Kind: rotation.SetTick})
	if s.FadeSet {
		t.Fatal("expected no fade with a single page")
	}
	s = rotation.Reduce(s, rotation.Event{Kind: rotation.SetAdvance})
	if s.SetIndex != 0 {
		t.Fatalf("expected index to stay 0, got %d", s.SetIndex)
	}
}

func TestSetFadeThenAdvanceWraps(t *testing.T) {
	s := rotation.NewState(9)
	s.Games = makeGames(19)
	for want := 1; want <= 3; want++ {
		s = rotation.Reduce(s, rotation.Event{Kind: rotation.SetTick})
		if !s.FadeSet {
			t.Fatalf("expected fade before advance %d", want)
		}
		s = rotation.Reduce(s, rotation.Event{Kind: rotation.SetAdvance})
		if s.FadeSet {
			t.Fatal("expected fade cleared after advance")
		}
		if s.SetIndex != want%3 {
			t.Fatalf("expected index %d, got %d", want%3, s.SetIndex)
		}
	}
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	s := rotation.NewState(9)
	s.Games = makeGames(10)
	_ = rotation.Reduce(s, rotation.Event{Kind: rotation.SetTick})
	if s.FadeSet {
		t.Fatal("expected input state untouched")
	}
}

func TestGamesUpdatedKeepsCursorsAndFade(t *testing.T) {
	s := rotation.NewState(9)
	s.Games = makeGames(30)
	s.SetIndex = 3
	s.FadeSet = true

	s = rotation.Reduce(s, rotation.Event{Kind: rotation.GamesUpdated, Games: makeGames(10)})
	if s.SetIndex != 3 || !s.FadeSet {
		t.Fatalf("expected cursor and fade preserved, got index=%d fade=%v", s.SetIndex, s.FadeSet)
	}
	f := s.Frame()
	if f.SetIndex != 1 {
		t.Fatalf("expected clamped index 1, got %d", f.SetIndex)
	}
	if len(f.VisibleGames) != 1 || f.VisibleGames[0].ID != "10" {
		t.Fatalf("expected last page with game 10, got %+v", f.VisibleGames)
	}
}

func TestFrameHidesFadeWhenGridFits(t *testing.T) {
	s := rotation.NewState(9)
	s.Games = makeGames(20)
	s = rotation.Reduce(s, rotation.Event{Kind: rotation.SetTick})
	s = rotation.Reduce(s, rotation.Event{Kind: rotation.GamesUpdated, Games: makeGames(4)})
	if f := s.Frame(); f.FadeSet {
		t.Fatal("expected fade suppressed once the list fits one page")
	}
}

func TestFeaturedRotation(t *testing.T) {
	s := rotation.NewState(9)
	s.Games = live(makeGames(5), "2", "4")
	s.FeaturedIDs = []games.GameID{"2", "3", "4"}

	f := s.Frame()
	if f.FeaturedGame == nil || f.FeaturedGame.ID != "2" || f.FeaturedCount != 2 {
		t.Fatalf("expected featured game 2 of 2, got %+v", f)
	}

	s = rotation.Reduce(s, rotation.Event{Kind: rotation.FeaturedTick})
	if !s.FadeFeatured || !s.Frame().FadeFeatured {
		t.Fatal("expected featured fade")
	}
	s = rotation.Reduce(s, rotation.Event{Kind: rotation.FeaturedAdvance})
	if got := s.Frame().FeaturedGame; got == nil || got.ID != "4" {
		t.Fatalf("expected featured game 4, got %+v", got)
	}
}

func TestFeaturedSingleLiveGameNeverFades(t *testing.T) {
	s := rotation.NewState(9)
	s.Games = live(makeGames(5), "2")
	s.FeaturedIDs = []games.GameID{"2", "3"}
	s = rotation.Reduce(s, rotation.Event{Kind: rotation.FeaturedTick})
	if s.FadeFeatured {
		t.Fatal("expected no featured fade with one live game")
	}
	if f := s.Frame(); f.FeaturedGame == nil || f.FeaturedGame.ID != "2" {
		t.Fatalf("expected game 2 featured, got %+v", f.FeaturedGame)
	}
}

func TestFeaturedAdvanceRecomputesSubset(t *testing.T) {
	s := rotation.NewState(9)
	s.Games = live(makeGames(5), "1", "2", "3")
	s.FeaturedIDs = []games.GameID{"1", "2", "3"}
	s.FeaturedIndex = 1

	s = rotation.Reduce(s, rotation.Event{Kind: rotation.FeaturedTick})
	// Game 3 finishes during the fade; only 1 and 2 remain live.
	s = rotation.Reduce(s, rotation.Event{Kind: rotation.GamesUpdated, Games: live(makeGames(5), "1", "2")})
	s = rotation.Reduce(s, rotation.Event{Kind: rotation.FeaturedAdvance})

	if s.FeaturedIndex != 0 {
		t.Fatalf("expected (1+1)%%2 = 0, got %d", s.FeaturedIndex)
	}
	if f := s.Frame(); f.FeaturedGame == nil || f.FeaturedGame.ID != "1" {
		t.Fatalf("expected game 1 featured, got %+v", f.FeaturedGame)
	}
}

func TestFeaturedAdvanceWithEmptySubsetKeepsIndex(t *testing.T) {
	s := rotation.NewState(9)
	s.Games = live(makeGames(3), "1", "2")
	s.FeaturedIDs = []games.GameID{"1", "2"}
	s.FeaturedIndex = 1
	s = rotation.Reduce(s, rotation.Event{Kind: rotation.FeaturedTick})
	s = rotation.Reduce(s, rotation.Event{Kind: rotation.GamesUpdated, Games: makeGames(3)})
	s = rotation.Reduce(s, rotation.Event{Kind: rotation.FeaturedAdvance})
	if s.FeaturedIndex != 1 || s.FadeFeatured {
		t.Fatalf("expected index kept and fade cleared, got %+v", s)
	}
	if s.Frame().FeaturedGame != nil {
		t.Fatal("expected no featured game")
	}
}

func TestEmptyFrame(t *testing.T) {
	f := rotation.NewState(0).Frame()
	if f.VisibleGames == nil || len(f.VisibleGames) != 0 || f.FeaturedGame != nil || f.SetCount != 0 {
		t.Fatalf("unexpected empty frame %+v", f)
	}
}
