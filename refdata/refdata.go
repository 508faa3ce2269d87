// Package refdata loads the reference dictionaries the engine matches
// against: valid street names with their suburbs, street-suffix
// abbreviation expansions, suburb names with their canonical
// "SUBURB STATE POSTCODE" form, and hundred names. Tables are read-only
// once constructed and are passed explicitly to every component that needs
// lookups; there is no package-level state.
package refdata

import (
	"bufio"
	"bytes"
	"embed"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

//go:embed data/*.txt
var defaults embed.FS

// Tables holds the loaded reference dictionaries.
type Tables struct {
	streets    map[string][]string // street name -> suburbs it runs through
	suffixes   map[string]string   // abbreviation -> expansion
	expansions map[string]bool     // full suffix forms
	suburbs    map[string]string   // suburb -> canonical "SUBURB STATE POSTCODE"
	hundreds   []string

	streetNames []string // sorted, for deterministic matching
	suburbNames []string
}

// Default loads the dictionaries embedded in the binary.
func Default() (*Tables, error) {
	var readers [4]io.Reader
	for i, name := range [4]string{"streetnames.txt", "streetsuffixes.txt", "suburbnames.txt", "hundreds.txt"} {
		b, err := defaults.ReadFile("data/" + name)
		if err != nil {
			return nil, fmt.Errorf("reading embedded %s: %w", name, err)
		}
		readers[i] = bytes.NewReader(b)
	}
	return Load(readers[0], readers[1], readers[2], readers[3])
}

// Load builds Tables from four line-oriented sources: street-name,suburb
// pairs; suffix-abbreviation,expansion pairs; suburb,canonical pairs; and
// hundred names (one per line). All text is upper-cased and diacritic-folded
// on load. Blank lines and lines starting with '#' are skipped.
func Load(streetNames, streetSuffixes, suburbNames, hundreds io.Reader) (*Tables, error) {
	t := &Tables{
		streets:    make(map[string][]string),
		suffixes:   make(map[string]string),
		expansions: make(map[string]bool),
		suburbs:    make(map[string]string),
	}

	err := eachPair(streetNames, func(street, suburb string) {
		t.streets[street] = append(t.streets[street], suburb)
	})
	if err != nil {
		return nil, fmt.Errorf("loading street names: %w", err)
	}

	err = eachPair(streetSuffixes, func(abbrev, full string) {
		t.suffixes[abbrev] = full
		t.expansions[full] = true
	})
	if err != nil {
		return nil, fmt.Errorf("loading street suffixes: %w", err)
	}

	err = eachPair(suburbNames, func(suburb, canonical string) {
		t.suburbs[suburb] = canonical
	})
	if err != nil {
		return nil, fmt.Errorf("loading suburb names: %w", err)
	}

	err = eachLine(hundreds, func(line string) {
		name, _, _ := strings.Cut(line, ",")
		t.hundreds = append(t.hundreds, strings.TrimSpace(name))
	})
	if err != nil {
		return nil, fmt.Errorf("loading hundreds: %w", err)
	}

	for name := range t.streets {
		t.streetNames = append(t.streetNames, name)
	}
	sort.Strings(t.streetNames)
	for name := range t.suburbs {
		t.suburbNames = append(t.suburbNames, name)
	}
	sort.Strings(t.suburbNames)

	return t, nil
}

// StreetNames returns all known street names, sorted.
func (t *Tables) StreetNames() []string {
	return t.streetNames
}

// SuburbsFor returns the suburbs a street name runs through.
func (t *Tables) SuburbsFor(street string) []string {
	return t.streets[street]
}

// SuburbNames returns all known suburb names, sorted.
func (t *Tables) SuburbNames() []string {
	return t.suburbNames
}

// Canonical returns the canonical "SUBURB STATE POSTCODE" form of a suburb.
func (t *Tables) Canonical(suburb string) (string, bool) {
	c, ok := t.suburbs[Fold(suburb)]
	return c, ok
}

// ExpandSuffix returns the full form of a street-suffix abbreviation
// ("HWY" -> "HIGHWAY").
func (t *Tables) ExpandSuffix(token string) (string, bool) {
	full, ok := t.suffixes[Fold(token)]
	return full, ok
}

// IsSuffix reports whether token is already a full street-suffix form.
func (t *Tables) IsSuffix(token string) bool {
	return t.expansions[Fold(token)]
}

// Hundreds returns the loaded hundred names.
func (t *Tables) Hundreds() []string {
	return t.hundreds
}

var folder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold upper-cases a string and strips diacritics, the form all dictionary
// keys are stored in.
func Fold(s string) string {
	folded, _, err := transform.String(folder, s)
	if err != nil {
		folded = s
	}
	return strings.ToUpper(strings.TrimSpace(folded))
}

func eachLine(r io.Reader, fn func(line string)) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fn(Fold(line))
	}
	return scanner.Err()
}

func eachPair(r io.Reader, fn func(first, second string)) error {
	return eachLine(r, func(line string) {
		first, second, found := strings.Cut(line, ",")
		if !found {
			return
		}
		fn(strings.TrimSpace(first), strings.TrimSpace(second))
	})
}
