package match

import "testing"

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		max  int
		want int
	}{
		{"", "", 2, 0},
		{"abc", "abc", 2, 0},
		{"abc", "abd", 2, 1},
		{"abc", "ab", 2, 1},
		{"abc", "abcd", 2, 1},
		{"kitten", "sitting", 3, 3},
		{"abc", "xyz", 1, -1},
		{"short", "muchlongerstring", 2, -1},
	}

	for _, tt := range tests {
		if got := Distance(tt.a, tt.b, tt.max); got != tt.want {
			t.Errorf("Distance(%q, %q, %d) = %d, want %d", tt.a, tt.b, tt.max, got, tt.want)
		}
	}
}

func TestClosest(t *testing.T) {
	targets := []string{"DEV APP NO", "LODGED", "PROPERTY DETAILS"}

	tests := []struct {
		name      string
		candidate string
		max       int
		want      string
		wantDist  int
		wantOK    bool
	}{
		{"exact", "LODGED", 2, "LODGED", 0, true},
		{"case insensitive", "lodged", 2, "LODGED", 0, true},
		{"trimmed", "  LODGED ", 2, "LODGED", 0, true},
		{"one edit", "LODGD", 2, "LODGED", 1, true},
		{"two edits", "LOGD", 2, "LODGED", 2, true},
		{"too far", "CONDITIONS", 2, "", 0, false},
		{"zero tolerance rejects typo", "LODGD", 0, "", 0, false},
	}

	m := Levenshtein{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, dist, ok := m.Closest(tt.candidate, targets, tt.max)
			if ok != tt.wantOK {
				t.Fatalf("Closest(%q) ok = %v, want %v", tt.candidate, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got != tt.want || dist != tt.wantDist {
				t.Errorf("Closest(%q) = %q distance %d, want %q distance %d",
					tt.candidate, got, dist, tt.want, tt.wantDist)
			}
		})
	}
}

func TestClosestPrefersExactOverFuzzy(t *testing.T) {
	// "LODGED" is 0 edits from LODGED and 2 from LODGE DT; the exact tier wins.
	got, dist, ok := Levenshtein{}.Closest("LODGED", []string{"LODGE DT", "LODGED"}, 2)
	if !ok || got != "LODGED" || dist != 0 {
		t.Errorf("Closest() = %q distance %d ok=%v, want LODGED distance 0", got, dist, ok)
	}
}

func TestClosestTieBrokenByLength(t *testing.T) {
	// Both targets are 1 edit away; prefer the one whose length matches.
	got, _, ok := Levenshtein{}.Closest("ABCD", []string{"ABCDE", "ABCX"}, 2)
	if !ok || got != "ABCX" {
		t.Errorf("Closest() = %q ok=%v, want ABCX", got, ok)
	}
}
