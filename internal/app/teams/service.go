package teams

import (
	"strings"

	"github.com/preston-bernstein/saturday-stats/internal/domain/teams"
)

// Service resolves feed display names ("School Mascot") against the static roster.
// The roster is copied at construction and never changes afterwards.
type Service struct {
	items []teams.Team
}

// NewService constructs a Service over the given roster, preserving table order.
func NewService(items []teams.Team) *Service {
	cp := make([]teams.Team, len(items))
	copy(cp, items)
	return &Service{items: cp}
}

// Teams returns a copy of the roster.
func (s *Service) Teams() []teams.Team {
	if s == nil {
		return nil
	}
	out := make([]teams.Team, len(s.items))
	copy(out, s.items)
	return out
}

// Match returns the first team whose school and mascot both appear in display.
// First match in table order wins, so generic mascots may resolve to the wrong school.
func (s *Service) Match(display string) (teams.Team, bool) {
	if s == nil || display == "" {
		return teams.Team{}, false
	}
	for _, t := range s.items {
		if strings.Contains(display, t.School) && strings.Contains(display, t.Mascot) {
			return t, true
		}
	}
	return teams.Team{}, false
}

// Info splits a display name into school and mascot, falling back to the raw
// display string when no roster entry matches.
func (s *Service) Info(display string) (school, mascot string) {
	if t, ok := s.Match(display); ok {
		return t.School, t.Mascot
	}
	return display, ""
}

// ByAbbreviation looks a team up by its abbreviation.
func (s *Service) ByAbbreviation(abbr string) (teams.Team, bool) {
	if s == nil {
		return teams.Team{}, false
	}
	abbr = strings.ToUpper(strings.TrimSpace(abbr))
	for _, t := range s.items {
		if t.Abbreviation != "" && t.Abbreviation == abbr {
			return t, true
		}
	}
	return teams.Team{}, false
}
