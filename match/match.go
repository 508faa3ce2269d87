// Package match provides fuzzy matching of short strings against a fixed
// set of known labels, tolerating the spelling noise that positional text
// extraction introduces (e.g. "Aproval:" for "Approval:").
package match

import "strings"

// Matcher decides whether a candidate string is close enough to one of a
// set of target labels. Implementations must be safe for concurrent use.
type Matcher interface {
	// Closest returns the best-matching target and its edit distance, or
	// ok=false when no target is within maxDistance edits.
	Closest(candidate string, targets []string, maxDistance int) (target string, distance int, ok bool)
}

// Levenshtein is the default Matcher. Comparison is case-insensitive on
// whitespace-trimmed strings, escalating tolerance in fixed tiers: an exact
// match always wins over a 1-edit match, which wins over a 2-edit match.
// Ties within a tier are broken by the target whose length is closest to
// the candidate's trimmed length.
type Levenshtein struct{}

// Closest implements Matcher.
func (Levenshtein) Closest(candidate string, targets []string, maxDistance int) (string, int, bool) {
	cand := strings.ToUpper(strings.TrimSpace(candidate))

	best := ""
	bestDist := -1
	bestLenDiff := 0

	for _, target := range targets {
		tgt := strings.ToUpper(strings.TrimSpace(target))
		dist := Distance(cand, tgt, maxDistance)
		if dist < 0 {
			continue
		}
		lenDiff := abs(len(cand) - len(tgt))
		if bestDist < 0 || dist < bestDist || (dist == bestDist && lenDiff < bestLenDiff) {
			best = target
			bestDist = dist
			bestLenDiff = lenDiff
		}
	}

	if bestDist < 0 {
		return "", 0, false
	}
	return best, bestDist, true
}

// Distance calculates the Levenshtein distance between two strings.
// Returns -1 if the distance exceeds maxDistance (early exit).
func Distance(a, b string, maxDistance int) int {
	lenA, lenB := len(a), len(b)

	if abs(lenA-lenB) > maxDistance {
		return -1
	}
	if lenA == 0 {
		return lenB
	}
	if lenB == 0 {
		return lenA
	}

	// Ensure a is the shorter string
	if lenA > lenB {
		a, b = b, a
		lenA, lenB = lenB, lenA
	}

	// Two-row matrix
	prev := make([]int, lenA+1)
	curr := make([]int, lenA+1)
	for i := 0; i <= lenA; i++ {
		prev[i] = i
	}

	for j := 1; j <= lenB; j++ {
		curr[0] = j
		minDist := j

		for i := 1; i <= lenA; i++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}

			curr[i] = prev[i] + 1 // deletion
			if curr[i-1]+1 < curr[i] {
				curr[i] = curr[i-1] + 1 // insertion
			}
			if prev[i-1]+cost < curr[i] {
				curr[i] = prev[i-1] + cost // substitution
			}

			if curr[i] < minDist {
				minDist = curr[i]
			}
		}

		if minDist > maxDistance {
			return -1
		}
		prev, curr = curr, prev
	}

	if prev[lenA] > maxDistance {
		return -1
	}
	return prev[lenA]
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
