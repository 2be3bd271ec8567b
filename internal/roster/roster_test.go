package roster

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultRosterLoads(t *testing.T) {
	items, err := Default()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) == 0 {
		t.Fatal("expected embedded teams")
	}
	if items[0].School != "Alabama" || items[0].Abbreviation != "BAMA" {
		t.Fatalf("expected Alabama first, got %+v", items[0])
	}
}

func TestParseNormalizesAndDropsBlankSchools(t *testing.T) {
	raw := []byte(`
- school: " Army "
  mascot: Black Knights
  abbreviation: army
  color: "#d3bc8d"
- school: ""
  mascot: Nobody
- school: Independent
  color: "#000000"
`)
	items, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(items))
	}
	if items[0].School != "Army" || items[0].Abbreviation != "ARMY" {
		t.Fatalf("unexpected normalization: %+v", items[0])
	}
	if items[1].Mascot != "" || items[1].Logo() != "" {
		t.Fatalf("expected optional fields empty, got %+v", items[1])
	}
}

func TestParseRejectsEmptyAndInvalid(t *testing.T) {
	if _, err := Parse([]byte(`[]`)); !errors.Is(err, ErrEmptyRoster) {
		t.Fatalf("expected ErrEmptyRoster, got %v", err)
	}
	if _, err := Parse([]byte(`school: [unterminated`)); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "teams.yaml")
	if err := os.WriteFile(path, []byte("- school: Navy\n  mascot: Midshipmen\n  abbreviation: NAVY\n  color: \"#00205b\"\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	items, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].School != "Navy" {
		t.Fatalf("unexpected teams: %+v", items)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
