package games

import (
	"github.com/preston-bernstein/saturday-stats/internal/gamecast"
	"github.com/preston-bernstein/saturday-stats/internal/rotation"
)

// Display is everything a renderer needs to draw one rotation frame.
type Display struct {
	rotation.Frame
	Scorebugs []gamecast.Scorebug `json:"scorebugs"`
	Featured  *gamecast.View      `json:"featured"`
}

// Display decorates f with scorebugs for the visible page and the gamecast
// of the featured game, if any.
func (s *Service) Display(f rotation.Frame) Display {
	d := Display{
		Frame:     f,
		Scorebugs: s.Scorebugs(f.VisibleGames),
	}
	if f.FeaturedGame != nil {
		view := s.GamecastFor(*f.FeaturedGame)
		d.Featured = &view
	}
	return d
}
