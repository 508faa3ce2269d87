// Package layout groups page fragments into visual rows and clusters them
// into per-record sections, using anchor fragments (a known label marking
// the start of a record) as section delimiters.
package layout

import (
	"math"
	"sort"
	"strings"

	"github.com/planport/daextract/geom"
	"github.com/planport/daextract/match"
)

const (
	// rowOverlapPercent is the vertical-overlap threshold for two fragments
	// to count as the same row. Measured against the candidate's own height
	// so one abnormally tall fragment cannot join every row.
	rowOverlapPercent = 50

	// maxLabelParts is how many fragments to the right may be concatenated
	// when assembling a label split across adjacent text runs.
	maxLabelParts = 3

	// maxLabelDistance is the edit-distance cap when recognizing labels.
	maxLabelDistance = 2

	// maxRightGap is the horizontal gap tolerance for NearestRight.
	maxRightGap = 30
)

// Anchor is a fragment (possibly assembled from several adjacent fragments)
// recognized as a known label. Anchors are transient, recomputed per page.
type Anchor struct {
	// Fragment is the starting fragment of the label.
	Fragment geom.Fragment

	// Parts are all fragments making up the label, starting fragment first.
	Parts []geom.Fragment

	// Distance is the edit distance at which the label matched.
	Distance int
}

// Section is the ordered set of fragments believed to belong to one record,
// bounded vertically between its anchor's row top and the next anchor's.
type Section struct {
	Anchor    Anchor
	Top       float64
	Bottom    float64
	Fragments []geom.Fragment
}

// RowTop returns the minimum Y among fragments in the same visual row as
// start, i.e. the top of the row containing start.
func RowTop(fragments []geom.Fragment, start geom.Fragment) float64 {
	top := start.Y
	for _, f := range fragments {
		if !sameRow(start, f) {
			continue
		}
		if f.Y < top {
			top = f.Y
		}
	}
	return top
}

// RowBottom returns the maximum bottom edge among fragments in the same
// visual row as start.
func RowBottom(fragments []geom.Fragment, start geom.Fragment) float64 {
	bottom := start.Bottom()
	for _, f := range fragments {
		if !sameRow(start, f) {
			continue
		}
		if f.Bottom() > bottom {
			bottom = f.Bottom()
		}
	}
	return bottom
}

// NearestRight returns the fragment in the same row as from, strictly to
// its right and within the horizontal gap tolerance, minimizing a
// horizontally-biased squared distance. Fragments overlapping from by more
// than 20% of its width are excluded so the walk cannot wrap back onto
// overlapping text.
func NearestRight(fragments []geom.Fragment, from geom.Fragment) (geom.Fragment, bool) {
	var best geom.Fragment
	bestScore := math.MaxFloat64
	found := false

	for _, g := range fragments {
		if g == from {
			continue
		}
		if !sameRow(from, g) {
			continue
		}
		if g.X <= from.X {
			continue
		}
		gap := g.X - from.Right()
		if gap > maxRightGap {
			continue
		}
		overlapX := math.Min(from.Right(), g.Right()) - math.Max(from.X, g.X)
		if overlapX > 0.2*from.Width {
			continue
		}

		dx := math.Max(gap, 0)
		dy := g.Y - from.Y
		score := dx*dx + 4*dy*dy
		if score < bestScore {
			best = g
			bestScore = score
			found = true
		}
	}

	return best, found
}

// FindAnchors locates every occurrence of label among the fragments,
// tolerating spelling noise and labels split across up to maxLabelParts
// adjacent fragments. Anchors are returned sorted top to bottom.
func FindAnchors(fragments []geom.Fragment, label string, m match.Matcher) []Anchor {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil
	}
	first := foldByte(label[0])
	targets := []string{label}

	var anchors []Anchor
	for _, f := range fragments {
		text := strings.TrimSpace(f.Text)
		if text == "" || foldByte(text[0]) != first {
			continue
		}

		parts := []geom.Fragment{f}
		concat := text
		bestDist := -1
		var bestParts []geom.Fragment

		if _, d, ok := m.Closest(concat, targets, maxLabelDistance); ok {
			bestDist = d
			bestParts = append([]geom.Fragment(nil), parts...)
		}

		cur := f
		for i := 0; i < maxLabelParts; i++ {
			if len(concat) > len(label) {
				break
			}
			next, ok := NearestRight(fragments, cur)
			if !ok {
				break
			}
			parts = append(parts, next)
			concat += " " + strings.TrimSpace(next.Text)
			cur = next

			if _, d, ok := m.Closest(concat, targets, maxLabelDistance); ok {
				if bestDist < 0 || d < bestDist {
					bestDist = d
					bestParts = append([]geom.Fragment(nil), parts...)
				}
			}
		}

		if bestDist >= 0 {
			anchors = append(anchors, Anchor{Fragment: f, Parts: bestParts, Distance: bestDist})
		}
	}

	sort.SliceStable(anchors, func(i, j int) bool {
		return anchors[i].Fragment.Y < anchors[j].Fragment.Y
	})
	return anchors
}

// Sections splits the page's fragments into one section per anchor. Section
// i spans from anchor i's row top to anchor i+1's row top; the last section
// extends past the bottommost fragment. The first anchor's boundary is
// raised by half its row height to tolerate a heading positioned slightly
// below an associated field.
func Sections(fragments []geom.Fragment, anchors []Anchor) []Section {
	if len(anchors) == 0 {
		return nil
	}

	tops := make([]float64, len(anchors))
	for i, a := range anchors {
		tops[i] = RowTop(fragments, a.Fragment)
	}

	pageBottom := 0.0
	for _, f := range fragments {
		if f.Bottom() > pageBottom {
			pageBottom = f.Bottom()
		}
	}

	sections := make([]Section, 0, len(anchors))
	for i, a := range anchors {
		top := tops[i]
		if i == 0 {
			top -= a.Fragment.Height / 2
		}
		bottom := pageBottom + 1
		if i+1 < len(anchors) {
			bottom = tops[i+1]
		}

		var members []geom.Fragment
		for _, f := range fragments {
			if f.Y >= top && f.Y < bottom {
				members = append(members, f)
			}
		}
		SortReadingOrder(members)

		sections = append(sections, Section{
			Anchor:    a,
			Top:       top,
			Bottom:    bottom,
			Fragments: members,
		})
	}

	return sections
}

// Rows clusters fragments into visual rows, sorted top to bottom with each
// row's fragments sorted left to right.
func Rows(fragments []geom.Fragment) [][]geom.Fragment {
	ordered := append([]geom.Fragment(nil), fragments...)
	SortReadingOrder(ordered)

	assigned := make([]bool, len(ordered))
	var rows [][]geom.Fragment

	for i, seed := range ordered {
		if assigned[i] {
			continue
		}
		var row []geom.Fragment
		for j := i; j < len(ordered); j++ {
			if assigned[j] {
				continue
			}
			g := ordered[j]
			if sameRow(seed, g) && sameRow(g, seed) {
				row = append(row, g)
				assigned[j] = true
			}
		}
		sort.SliceStable(row, func(a, b int) bool { return row[a].X < row[b].X })
		rows = append(rows, row)
	}

	return rows
}

// SortReadingOrder sorts fragments top to bottom, then left to right.
func SortReadingOrder(fragments []geom.Fragment) {
	sort.SliceStable(fragments, func(i, j int) bool {
		if fragments[i].Y != fragments[j].Y {
			return fragments[i].Y < fragments[j].Y
		}
		return fragments[i].X < fragments[j].X
	})
}

// sameRow reports whether candidate shares a row with start. The overlap is
// measured against candidate's height, so a page-spanning fragment fails
// the test against a normal-height start fragment.
func sameRow(start, candidate geom.Fragment) bool {
	return geom.VerticalOverlapPercentage(start.Bounds(), candidate.Bounds()) > rowOverlapPercent
}

func foldByte(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}
