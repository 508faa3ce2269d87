package fields

import (
	"testing"
	"time"

	"github.com/planport/daextract/geom"
	"github.com/planport/daextract/layout"
	"github.com/planport/daextract/match"
)

func frag(text string, x, y, w, h float64) geom.Fragment {
	return geom.Fragment{Text: text, X: x, Y: y, Width: w, Height: h}
}

func sectionFor(t *testing.T, frags []geom.Fragment) layout.Section {
	t.Helper()
	anchors := layout.FindAnchors(frags, "DEV APP NO", match.Levenshtein{})
	sections := layout.Sections(frags, anchors)
	if len(sections) != 1 {
		t.Fatalf("built %d sections, want 1", len(sections))
	}
	return sections[0]
}

func TestExtractWithoutColumnHeadings(t *testing.T) {
	frags := []geom.Fragment{
		frag("DEV APP NO", 0, 0, 80, 10),
		frag("123/2019", 80, 0, 60, 10),
		frag("1 MAIN STREET MENINGIE 5264", 0, 20, 200, 10),
	}

	got, err := Extract(sectionFor(t, frags), match.Levenshtein{})
	if err != nil {
		t.Fatalf("Extract() failed: %v", err)
	}
	if got.Identifier != "123/2019" {
		t.Errorf("Identifier = %q, want 123/2019", got.Identifier)
	}
	if got.Address != "1 MAIN STREET MENINGIE 5264" {
		t.Errorf("Address = %q, want raw street line", got.Address)
	}
	if got.Legal != "" {
		t.Errorf("Legal = %q, want empty", got.Legal)
	}
	if !got.Received.IsZero() {
		t.Errorf("Received = %v, want zero", got.Received)
	}
	if got.Description != DescriptionPlaceholder {
		t.Errorf("Description = %q, want placeholder", got.Description)
	}
}

func TestExtractColumnar(t *testing.T) {
	frags := []geom.Fragment{
		// Header row
		frag("DEV APP NO", 0, 0, 80, 10),
		frag("LODGED", 150, 0, 55, 10),
		frag("PROPERTY DETAILS", 250, 0, 120, 10),
		frag("DESCRIPTION OF DEVELOPMENT", 450, 0, 200, 10),
		// Values
		frag("456/2019", 0, 20, 60, 10),
		frag("5/03/2019", 150, 20, 60, 10),
		frag("12 RAILWAY TCE TAILEM BEND 5260", 250, 20, 180, 10),
		frag("SEC: 123 HD: SEYMOUR", 250, 40, 150, 10),
		frag("VERANDAH AND CARPORT", 450, 20, 170, 10),
	}

	got, err := Extract(sectionFor(t, frags), match.Levenshtein{})
	if err != nil {
		t.Fatalf("Extract() failed: %v", err)
	}
	if got.Identifier != "456/2019" {
		t.Errorf("Identifier = %q, want 456/2019", got.Identifier)
	}
	want := time.Date(2019, time.March, 5, 0, 0, 0, 0, time.UTC)
	if !got.Received.Equal(want) {
		t.Errorf("Received = %v, want %v", got.Received, want)
	}
	if got.Address != "12 RAILWAY TCE TAILEM BEND 5260" {
		t.Errorf("Address = %q, want street row", got.Address)
	}
	if got.Legal != "SEC: 123 HD: SEYMOUR" {
		t.Errorf("Legal = %q, want SEC: 123 HD: SEYMOUR", got.Legal)
	}
	if got.Description != "VERANDAH AND CARPORT" {
		t.Errorf("Description = %q, want VERANDAH AND CARPORT", got.Description)
	}
}

func TestExtractSwapsLegalFirstRows(t *testing.T) {
	frags := []geom.Fragment{
		frag("DEV APP NO", 0, 0, 80, 10),
		frag("789/2019", 80, 0, 60, 10),
		frag("LOT: 4 SEC: 99", 0, 20, 150, 10),
		frag("7 NORTH TERRACE MENINGIE 5264", 0, 40, 200, 10),
	}

	got, err := Extract(sectionFor(t, frags), match.Levenshtein{})
	if err != nil {
		t.Fatalf("Extract() failed: %v", err)
	}
	if got.Address != "7 NORTH TERRACE MENINGIE 5264" {
		t.Errorf("Address = %q, want swapped street row", got.Address)
	}
	if got.Legal != "LOT: 4 SEC: 99" {
		t.Errorf("Legal = %q, want LOT: 4 SEC: 99", got.Legal)
	}
}

func TestExtractMissingIdentifier(t *testing.T) {
	frags := []geom.Fragment{
		frag("DEV APP NO", 0, 0, 80, 10),
		frag("1 MAIN STREET MENINGIE 5264", 0, 20, 200, 10),
	}

	_, err := Extract(sectionFor(t, frags), match.Levenshtein{})
	if err == nil {
		t.Fatal("Extract() succeeded, want error for missing identifier")
	}
}

func TestCleanIdentifier(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"123/2019", "123/2019"},
		{" 123 / 2019 ", "123/2019"},
		{"123I2019", "123/2019"},
		{"123l2019", "123/2019"},
		{"123|2019", "123/2019"},
	}

	for _, tt := range tests {
		if got := cleanIdentifier(tt.in); got != tt.want {
			t.Errorf("cleanIdentifier(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseReceived(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"5/03/2019", time.Date(2019, time.March, 5, 0, 0, 0, 0, time.UTC)},
		{"15/03/2019", time.Date(2019, time.March, 15, 0, 0, 0, 0, time.UTC)},
		{"lodged 15/03/2019 here", time.Date(2019, time.March, 15, 0, 0, 0, 0, time.UTC)},
		{"31/02/2019", time.Time{}}, // impossible date
		{"not a date", time.Time{}},
		{"", time.Time{}},
	}

	for _, tt := range tests {
		if got := parseReceived(tt.in); !got.Equal(tt.want) {
			t.Errorf("parseReceived(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
