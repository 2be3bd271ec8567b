package config

import "testing"

func TestBoolEnvOrDefault(t *testing.T) {
	t.Setenv("BOOL_TEST", "")
	if got := boolEnvOrDefault("BOOL_TEST", true); !got {
		t.Fatalf("expected default true when unset")
	}

	cases := []struct {
		val      string
		expected bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"false", false},
		{"FALSE", false},
		{"0", false},
		{"no", false},
		{" off ", false},
		{"On", true},
		{"maybe", true}, // falls back to default on unknown
	}

	for _, tc := range cases {
		t.Setenv("BOOL_TEST", tc.val)
		if got := boolEnvOrDefault("BOOL_TEST", true); got != tc.expected {
			t.Fatalf("expected %v for %s, got %v", tc.expected, tc.val, got)
		}
	}
}

func TestIntEnvOrDefault(t *testing.T) {
	cases := map[string]int{"": 9, "12": 12, "-3": 9, "x": 9}
	for raw, want := range cases {
		t.Setenv("INT_TEST", raw)
		if got := intEnvOrDefault("INT_TEST", 9); got != want {
			t.Fatalf("expected %d for %q, got %d", want, raw, got)
		}
	}
}

func TestListEnvOrDefault(t *testing.T) {
	t.Setenv("LIST_TEST", " , ,")
	if got := listEnvOrDefault("LIST_TEST", []string{"*"}); len(got) != 1 || got[0] != "*" {
		t.Fatalf("expected default for blank list, got %v", got)
	}

	t.Setenv("LIST_TEST", "a, b ,c")
	got := listEnvOrDefault("LIST_TEST", nil)
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("expected [a b c], got %v", got)
	}
}

func TestEnvOrDefaultTrims(t *testing.T) {
	t.Setenv("STR_TEST", "  redis  ")
	if got := envOrDefault("STR_TEST", "fixture"); got != "redis" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
	t.Setenv("STR_TEST", "   ")
	if got := envOrDefault("STR_TEST", "fixture"); got != "fixture" {
		t.Fatalf("expected default for blank value, got %q", got)
	}
}
