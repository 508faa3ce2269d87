// Package fields carves a section's fragments into named record fields.
// Column headings located inside the section define sub-rectangles per
// field; every fragment with at least 10% of its area inside a field's
// rectangle contributes to that field's text.
package fields

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/planport/daextract/geom"
	"github.com/planport/daextract/layout"
	"github.com/planport/daextract/match"
)

// DescriptionPlaceholder is used when description extraction yields only
// whitespace.
const DescriptionPlaceholder = "No description provided"

// sentinelWidth bounds a field on the right when no further heading exists.
const sentinelWidth = 10000

// Heading labels, with the layout variants observed across documents.
var (
	lodgedLabels      = []string{"LODGED", "DATE LODGED"}
	propertyLabels    = []string{"PROPERTY DETAILS", "SUBJECT LAND"}
	descriptionLabels = []string{"DESCRIPTION OF DEVELOPMENT", "PROPOSAL", "NATURE OF DEVELOPMENT"}
	estimatedLabels   = []string{"ESTIMATED COST"}
	conditionsLabels  = []string{"CONDITIONS"}
)

// legalFirstMarker flags a property row that lists the legal description
// before the address.
const legalFirstMarker = "LOT:"

var reDate = regexp.MustCompile(`\b\d{1,2}/\d{2}/\d{4}\b`)

// Fields holds the text carved out of one section. Address is the raw
// concatenation; canonicalization is the address package's job.
type Fields struct {
	Identifier  string
	Received    time.Time // zero when absent or unparseable
	Address     string
	Legal       string
	Description string
}

// Extract carves the fields out of a section. It returns an error, listing
// every fragment text in the section, when no identifier can be found; such
// sections are skipped by the caller, never fatal.
func Extract(section layout.Section, m match.Matcher) (Fields, error) {
	frags := section.Fragments
	anchor := section.Anchor

	exclude := make(map[geom.Fragment]bool)
	for _, p := range anchor.Parts {
		exclude[p] = true
	}

	headings := locateHeadings(frags, m, exclude)

	var out Fields

	// Identifier: the column under and beside the anchor, across to the
	// next heading (or the sentinel right bound). Without column headings
	// the identifier sits beside its label, so the region is the anchor's
	// row alone.
	anchorTop := layout.RowTop(frags, anchor.Fragment)
	idRect := geom.Rect{
		X:      anchor.Fragment.X,
		Y:      anchorTop,
		Width:  sentinelWidth,
		Height: layout.RowBottom(frags, anchor.Fragment) - anchorTop,
	}
	if len(headings) > 0 {
		idRect.Height = section.Bottom - anchorTop
	}
	if h, ok := headings.rightOf(anchor.Fragment); ok {
		idRect.Width = h.Fragment.X - idRect.X
	}
	out.Identifier = cleanIdentifier(collectText(frags, idRect, exclude))
	if out.Identifier == "" {
		return Fields{}, fmt.Errorf("no identifier in section: fragments %q", fragmentTexts(frags))
	}

	if h, ok := headings[headingLodged]; ok {
		out.Received = parseReceived(collectText(frags, headings.valueRect(h, section, frags), exclude))
	} else {
		// Variant without column headings: a date, if any, sits on the
		// identifier row.
		out.Received = parseReceived(collectText(frags, idRect, exclude))
	}

	var propertyRows []string
	if h, ok := headings[headingProperty]; ok {
		propertyRows = collectRows(frags, headings.valueRect(h, section, frags), exclude)
	} else {
		// Variant without column headings: the rows below the identifier
		// row, starting at the section's leftmost fragment.
		rect := geom.Rect{
			X:      leftmostX(frags),
			Y:      idRect.Bottom(),
			Width:  sentinelWidth,
			Height: section.Bottom - idRect.Bottom(),
		}
		propertyRows = collectRows(frags, rect, exclude)
	}
	out.Address, out.Legal = splitPropertyRows(propertyRows)

	if h, ok := headings[headingDescription]; ok {
		out.Description = collectText(frags, headings.valueRect(h, section, frags), exclude)
	}
	if strings.TrimSpace(out.Description) == "" {
		out.Description = DescriptionPlaceholder
	}

	return out, nil
}

type headingKind int

const (
	headingLodged headingKind = iota
	headingProperty
	headingDescription
	headingEstimated
	headingConditions
)

type headingSet map[headingKind]layout.Anchor

// locateHeadings finds the known column headings inside the section and
// marks their fragments excluded from field collection.
func locateHeadings(frags []geom.Fragment, m match.Matcher, exclude map[geom.Fragment]bool) headingSet {
	labels := map[headingKind][]string{
		headingLodged:      lodgedLabels,
		headingProperty:    propertyLabels,
		headingDescription: descriptionLabels,
		headingEstimated:   estimatedLabels,
		headingConditions:  conditionsLabels,
	}

	set := make(headingSet)
	for kind, variants := range labels {
		best, ok := findHeading(frags, variants, m)
		if !ok {
			continue
		}
		set[kind] = best
		for _, p := range best.Parts {
			exclude[p] = true
		}
	}
	return set
}

// findHeading locates the best anchor for any of the label variants,
// preferring closer matches, then the topmost occurrence.
func findHeading(frags []geom.Fragment, variants []string, m match.Matcher) (layout.Anchor, bool) {
	var best layout.Anchor
	found := false
	for _, label := range variants {
		for _, a := range layout.FindAnchors(frags, label, m) {
			if !found || a.Distance < best.Distance ||
				(a.Distance == best.Distance && a.Fragment.Y < best.Fragment.Y) {
				best = a
				found = true
			}
		}
	}
	return best, found
}

// rightOf returns the nearest located heading strictly right of f on f's row.
func (hs headingSet) rightOf(f geom.Fragment) (layout.Anchor, bool) {
	var best layout.Anchor
	found := false
	for _, h := range hs {
		if h.Fragment.X <= f.X {
			continue
		}
		if geom.VerticalOverlapPercentage(f.Bounds(), h.Fragment.Bounds()) <= 50 {
			continue
		}
		if !found || h.Fragment.X < best.Fragment.X {
			best = h
			found = true
		}
	}
	return best, found
}

// valueRect derives the rectangle holding a heading's field value: from the
// heading's left edge across to the next heading (or the sentinel width),
// and from the heading's row down to the next heading below (or the
// section's bottom). The heading row itself is included so that inline
// "Label: value" variants are captured; the label fragments are excluded.
func (hs headingSet) valueRect(h layout.Anchor, section layout.Section, frags []geom.Fragment) geom.Rect {
	rowTop := layout.RowTop(frags, h.Fragment)
	rowBottom := layout.RowBottom(frags, h.Fragment)

	rect := geom.Rect{
		X:      h.Fragment.X,
		Y:      rowTop,
		Width:  sentinelWidth,
		Height: section.Bottom - rowTop,
	}
	if next, ok := hs.rightOf(h.Fragment); ok {
		rect.Width = next.Fragment.X - rect.X
	}
	for _, other := range hs {
		top := layout.RowTop(frags, other.Fragment)
		if top > rowBottom && top < rect.Y+rect.Height {
			rect.Height = top - rect.Y
		}
	}
	return rect
}

// splitPropertyRows assigns the rows below the property heading: first row
// is the address, the rest are the legal description. Documents that list
// the legal description first (a LOT: row, then the address) are swapped.
func splitPropertyRows(rows []string) (address, legal string) {
	if len(rows) == 0 {
		return "", ""
	}
	if strings.HasPrefix(strings.ToUpper(rows[0]), legalFirstMarker) && len(rows) > 1 {
		rows[0], rows[1] = rows[1], rows[0]
	}
	return rows[0], strings.TrimSpace(strings.Join(rows[1:], " "))
}

// identifierGlyphs maps glyphs the extraction layer confuses with the
// identifier separator.
var identifierGlyphs = strings.NewReplacer("I", "/", "l", "/", "|", "/")

// cleanIdentifier strips embedded whitespace and corrects separator glyph
// confusion ("123I2019" -> "123/2019").
func cleanIdentifier(s string) string {
	s = strings.Join(strings.Fields(s), "")
	return identifierGlyphs.Replace(s)
}

// parseReceived parses the first day/month/year token in the text,
// tolerating an omitted leading zero on the day. Anything else yields the
// zero time, never a fabricated date.
func parseReceived(text string) time.Time {
	m := reDate.FindString(text)
	if m == "" {
		return time.Time{}
	}
	t, err := time.Parse("2/01/2006", m)
	if err != nil {
		return time.Time{}
	}
	return t
}

// collectText gathers the fragments at least 10% inside rect, left to
// right, top to bottom, whitespace-collapsed.
func collectText(frags []geom.Fragment, rect geom.Rect, exclude map[geom.Fragment]bool) string {
	members := collectFragments(frags, rect, exclude)
	parts := make([]string, 0, len(members))
	for _, f := range members {
		parts = append(parts, f.Text)
	}
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// collectRows gathers the fragments inside rect grouped into visual rows,
// one whitespace-collapsed string per row.
func collectRows(frags []geom.Fragment, rect geom.Rect, exclude map[geom.Fragment]bool) []string {
	members := collectFragments(frags, rect, exclude)
	var rows []string
	for _, row := range layout.Rows(members) {
		parts := make([]string, 0, len(row))
		for _, f := range row {
			parts = append(parts, f.Text)
		}
		text := strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
		if text != "" {
			rows = append(rows, text)
		}
	}
	return rows
}

func collectFragments(frags []geom.Fragment, rect geom.Rect, exclude map[geom.Fragment]bool) []geom.Fragment {
	var members []geom.Fragment
	for _, f := range frags {
		if exclude[f] {
			continue
		}
		if geom.PercentageInside(f.Bounds(), rect) >= 10 {
			members = append(members, f)
		}
	}
	layout.SortReadingOrder(members)
	return members
}

func leftmostX(frags []geom.Fragment) float64 {
	if len(frags) == 0 {
		return 0
	}
	x := frags[0].X
	for _, f := range frags {
		if f.X < x {
			x = f.X
		}
	}
	return x
}

func fragmentTexts(frags []geom.Fragment) []string {
	texts := make([]string, len(frags))
	for i, f := range frags {
		texts[i] = f.Text
	}
	return texts
}
