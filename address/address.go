// Package address reconstructs a canonical "street address, SUBURB STATE
// POSTCODE" string from the raw, spelling-noisy fragment concatenation the
// field extractor produces.
//
// Tokens are popped from the right in order of decreasing reliability:
// postcode and state codes are fixed-format and nearly unambiguous, so they
// are resolved first, shrinking the search space before the fuzzier suburb
// and street dictionary lookups run.
package address

import (
	"regexp"
	"strings"

	"github.com/planport/daextract/match"
	"github.com/planport/daextract/refdata"
)

// stateCodes are the Australian state and territory abbreviations.
var stateCodes = map[string]bool{
	"SA": true, "NT": true, "WA": true, "NSW": true,
	"VIC": true, "QLD": true, "TAS": true, "ACT": true,
}

// noAddressMarkers begin strings that carry no usable address.
var noAddressMarkers = []string{"NIL", "N/A", "UNKNOWN", "NO ADDRESS", "NOT APPLICABLE"}

var (
	reLeadingDate = regexp.MustCompile(`^\d{1,2}/\d{2}/\d{4}\s*`)
	rePostcode    = regexp.MustCompile(`^\d{4}$`)

	// House numbers in the thousands sometimes arrive with a thousands
	// comma ("4,665 Princes Hwy"); both the 4- and 5-digit forms occur.
	reCommaNumber4 = regexp.MustCompile(`^(\d),(\d{3})\b`)
	reCommaNumber5 = regexp.MustCompile(`^(\d{2}),(\d{3})\b`)
)

const (
	maxSuburbTokens = 4
	maxStreetTokens = 5
	dictDistance    = 1
)

// Normalize canonicalizes a raw address string against the reference
// dictionaries. It returns an empty string when the input carries no
// address, and a best-effort fallback when the suburb cannot be resolved.
// Normalize is idempotent on already-canonical input.
func Normalize(raw string, tables *refdata.Tables, m match.Matcher) string {
	s := refdata.Fold(raw)
	s = reLeadingDate.ReplaceAllString(s, "")
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}

	for _, marker := range noAddressMarkers {
		if strings.HasPrefix(s, marker) {
			return ""
		}
	}

	s = reCommaNumber5.ReplaceAllString(s, "$1$2")
	s = reCommaNumber4.ReplaceAllString(s, "$1$2")

	tokens := tokenize(s)

	postcode := ""
	if n := len(tokens); n > 0 && rePostcode.MatchString(tokens[n-1]) {
		postcode = tokens[n-1]
		tokens = tokens[:n-1]
	}

	state := ""
	if n := len(tokens); n > 0 && stateCodes[tokens[n-1]] {
		state = tokens[n-1]
		tokens = tokens[:n-1]
	}

	// If suburb resolution fails, fall back to what we have rather than
	// dropping the record's address entirely.
	fallback := s
	if postcode != "" {
		fallback = strings.Join(strings.Fields(strings.Join(tokens, " ")+" "+state+" "+postcode), " ")
	}

	suburb := ""
	for n := 1; n <= maxSuburbTokens && n <= len(tokens); n++ {
		cand := strings.Join(tokens[len(tokens)-n:], " ")
		name, _, ok := m.Closest(cand, tables.SuburbNames(), dictDistance)
		if !ok {
			continue
		}
		if canonical, known := tables.Canonical(name); known {
			suburb = canonical
			tokens = tokens[:len(tokens)-n]
			break
		}
	}

	// Expand a trailing street-suffix abbreviation; an already-full form
	// or an unrecognized token goes back unchanged.
	if n := len(tokens); n > 0 {
		if full, ok := tables.ExpandSuffix(tokens[n-1]); ok {
			tokens[n-1] = full
		}
	}

	street := ""
	for n := 1; n <= maxStreetTokens && n <= len(tokens); n++ {
		cand := strings.Join(tokens[len(tokens)-n:], " ")
		name, _, ok := m.Closest(cand, tables.StreetNames(), dictDistance)
		if !ok {
			continue
		}
		street = name
		tokens = tokens[:len(tokens)-n]
		if suburb == "" {
			if suburbs := tables.SuburbsFor(name); len(suburbs) == 1 {
				suburb, _ = tables.Canonical(suburbs[0])
			}
		}
		break
	}

	// The document's own postcode is trusted over the dictionary's.
	if postcode != "" && suburb != "" {
		parts := strings.Fields(suburb)
		parts[len(parts)-1] = postcode
		suburb = strings.Join(parts, " ")
	}

	if suburb == "" {
		return fallback
	}

	streetPart := strings.Join(strings.Fields(strings.Join(tokens, " ")+" "+street), " ")
	if streetPart == "" {
		return suburb
	}
	return streetPart + ", " + suburb
}

// tokenize splits on whitespace, trimming stray punctuation left over from
// canonical input so that re-normalizing is a no-op.
func tokenize(s string) []string {
	fields := strings.Fields(s)
	tokens := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, ",")
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
