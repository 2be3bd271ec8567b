package rotation

import "github.com/preston-bernstein/saturday-stats/internal/domain/games"

// Frame is the read model handed to renderers. It is rebuilt from State on
// every change and never edited in place.
type Frame struct {
	VisibleGames  []games.Game `json:"visibleGames"`
	FeaturedGame  *games.Game  `json:"featuredGame"`
	FadeSet       bool         `json:"fadeSet"`
	FadeFeatured  bool         `json:"fadeFeatured"`
	SetIndex      int          `json:"setIndex"`
	SetCount      int          `json:"setCount"`
	FeaturedCount int          `json:"featuredCount"`
	TotalGames    int          `json:"totalGames"`
}

// Frame derives the visible page and featured game. Cursors are clamped
// against the current list so a shrinking update never indexes past the end.
func (s State) Frame() Frame {
	size := s.pageSize()
	pages := s.PageCount()
	f := Frame{
		VisibleGames: []games.Game{},
		SetCount:     pages,
		TotalGames:   len(s.Games),
		FadeSet:      s.FadeSet && len(s.Games) > size,
	}
	if pages > 0 {
		f.SetIndex = s.SetIndex % pages
		start := f.SetIndex * size
		end := start + size
		if end > len(s.Games) {
			end = len(s.Games)
		}
		f.VisibleGames = append(f.VisibleGames, s.Games[start:end]...)
	}

	live := s.FeaturedLive()
	f.FeaturedCount = len(live)
	f.FadeFeatured = s.FadeFeatured && len(live) > 1
	if len(live) > 0 {
		featured := live[s.FeaturedIndex%len(live)]
		f.FeaturedGame = &featured
	}
	return f
}
