// Package roster loads the static team table the dashboard matches feed names against.
package roster

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/preston-bernstein/saturday-stats/internal/domain/teams"
)

//go:embed teams.yaml
var embedded []byte

// ErrEmptyRoster is returned when a roster source decodes to zero teams.
var ErrEmptyRoster = errors.New("roster: no teams")

// Default returns the embedded roster.
func Default() ([]teams.Team, error) {
	return Parse(embedded)
}

// Load reads the roster from path, or the embedded roster when path is empty.
func Load(path string) ([]teams.Team, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("roster: read %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes a YAML list of teams. Entries without a school are dropped;
// table order is preserved because matching is first-wins.
func Parse(raw []byte) ([]teams.Team, error) {
	var items []teams.Team
	if err := yaml.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("roster: decode: %w", err)
	}
	out := make([]teams.Team, 0, len(items))
	for _, t := range items {
		t.School = strings.TrimSpace(t.School)
		if t.School == "" {
			continue
		}
		t.Mascot = strings.TrimSpace(t.Mascot)
		t.Abbreviation = strings.ToUpper(strings.TrimSpace(t.Abbreviation))
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil, ErrEmptyRoster
	}
	return out, nil
}
