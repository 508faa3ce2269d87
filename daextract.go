// Package daextract reconstructs structured development-application records
// from pages of positionally-laid-out text fragments extracted from council
// notice documents. The input is an unordered bag of text fragments with
// page-space bounding boxes; the output is a sequence of discrete records
// with named fields, recovered despite inconsistent layouts, missing
// headings, multi-fragment labels and spelling noise.
//
// Basic usage:
//
//	tables, err := refdata.Default()
//	if err != nil {
//	    // handle error
//	}
//	records, warnings, err := daextract.New(tables).Records(src, sourceURL)
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", daextract.FormatWarnings(warnings))
//	}
package daextract

import (
	"fmt"
	"time"

	"github.com/planport/daextract/address"
	"github.com/planport/daextract/fields"
	"github.com/planport/daextract/geom"
	"github.com/planport/daextract/layout"
	"github.com/planport/daextract/match"
	"github.com/planport/daextract/refdata"
)

// anchorLabel marks the start of a record on the page.
const anchorLabel = "DEV APP NO"

// maxPageCeiling bounds the page loop against a document with a misreported
// page count.
const maxPageCeiling = 10000

// DefaultCommentURL is the fixed contact attached to every record.
const DefaultCommentURL = "mailto:council@coorong.sa.gov.au"

// Record is the output unit. CouncilReference is the natural key;
// uniqueness is enforced within a single document's output.
type Record struct {
	CouncilReference string
	Address          string
	Description      string
	InfoURL          string
	CommentURL       string
	DateScraped      time.Time
	DateReceived     time.Time // zero when the document carried no parseable date
	LegalDescription string
}

// Page is one acquired page of a document. Close releases the underlying
// decoded page; retaining every page's decoded form at once is the dominant
// memory cost for large documents, so the engine closes each page before
// acquiring the next.
type Page interface {
	Fragments() ([]geom.Fragment, error)
	Close() error
}

// PageSource supplies decoded pages. Implementations are provided by the
// document-decoding collaborator; Document is the in-memory form.
type PageSource interface {
	PageCount() (int, error)
	AcquirePage(index int) (Page, error)
}

// Engine reconstructs records from a PageSource. Each configuration method
// returns a new Engine, so a configured Engine is safe to share.
type Engine struct {
	tables      *refdata.Tables
	matcher     match.Matcher
	anchor      string
	maxPages    int
	commentURL  string
	captureTime time.Time // zero means time.Now at Records
}

// New creates an Engine using the given reference tables and default
// configuration.
func New(tables *refdata.Tables) *Engine {
	return &Engine{
		tables:     tables,
		matcher:    match.Levenshtein{},
		anchor:     anchorLabel,
		maxPages:   maxPageCeiling,
		commentURL: DefaultCommentURL,
	}
}

func (e *Engine) clone() *Engine {
	copied := *e
	return &copied
}

// WithMatcher substitutes the fuzzy matcher. Any implementation of
// match.Matcher is accepted, which also makes the engine testable with a
// deterministic stub.
func (e *Engine) WithMatcher(m match.Matcher) *Engine {
	c := e.clone()
	c.matcher = m
	return c
}

// WithMaxPages lowers the hard ceiling on pages processed per document.
func (e *Engine) WithMaxPages(n int) *Engine {
	c := e.clone()
	c.maxPages = n
	return c
}

// WithCommentURL replaces the fixed contact attached to records.
func (e *Engine) WithCommentURL(url string) *Engine {
	c := e.clone()
	c.commentURL = url
	return c
}

// WithCaptureTime fixes the capture timestamp, primarily for tests.
func (e *Engine) WithCaptureTime(t time.Time) *Engine {
	c := e.clone()
	c.captureTime = t
	return c
}

// WithAnchorLabel replaces the label that marks the start of a record.
func (e *Engine) WithAnchorLabel(label string) *Engine {
	c := e.clone()
	c.anchor = label
	return c
}

// Records processes every page of src and returns the reconstructed
// records. Unrecoverable sections and duplicate identifiers are dropped,
// each with a warning; only failures of the source itself are returned as
// errors.
func (e *Engine) Records(src PageSource, sourceURL string) ([]Record, []Warning, error) {
	count, err := src.PageCount()
	if err != nil {
		return nil, nil, fmt.Errorf("page count: %w", err)
	}
	if count > e.maxPages {
		count = e.maxPages
	}

	captured := e.captureTime
	if captured.IsZero() {
		captured = time.Now()
	}

	seen := make(map[string]bool)
	var records []Record
	var warnings []Warning

	for i := 0; i < count; i++ {
		fragments, err := acquireFragments(src, i)
		if err != nil {
			return records, warnings, fmt.Errorf("page %d: %w", i, err)
		}

		recs, warns := e.processPage(i, fragments, sourceURL, captured, seen)
		records = append(records, recs...)
		warnings = append(warnings, warns...)
	}

	return records, warnings, nil
}

// acquireFragments scopes a page's lifetime: the page is released before
// the caller moves on, on every exit path.
func acquireFragments(src PageSource, index int) ([]geom.Fragment, error) {
	page, err := src.AcquirePage(index)
	if err != nil {
		return nil, err
	}
	defer page.Close()
	return page.Fragments()
}

func (e *Engine) processPage(pageIndex int, fragments []geom.Fragment, sourceURL string, captured time.Time, seen map[string]bool) ([]Record, []Warning) {
	ordered := append([]geom.Fragment(nil), fragments...)
	layout.SortReadingOrder(ordered)

	var records []Record
	var warnings []Warning

	anchors := layout.FindAnchors(ordered, e.anchor, e.matcher)
	if len(anchors) == 0 {
		if len(ordered) > 0 {
			warnings = append(warnings, Warning{
				Page:   pageIndex,
				Reason: "no record anchors found",
				Detail: fmt.Sprintf("fragments %q", fragmentTexts(ordered)),
			})
		}
		return nil, warnings
	}

	for _, section := range layout.Sections(ordered, anchors) {
		f, err := fields.Extract(section, e.matcher)
		if err != nil {
			warnings = append(warnings, Warning{
				Page:   pageIndex,
				Reason: "section skipped",
				Detail: err.Error(),
			})
			continue
		}

		addr := address.Normalize(f.Address, e.tables, e.matcher)
		if addr == "" {
			warnings = append(warnings, Warning{
				Page:   pageIndex,
				Reason: "record skipped: no usable address",
				Detail: fmt.Sprintf("identifier %s, raw address %q", f.Identifier, f.Address),
			})
			continue
		}

		if seen[f.Identifier] {
			warnings = append(warnings, Warning{
				Page:   pageIndex,
				Reason: "duplicate identifier dropped",
				Detail: f.Identifier,
			})
			continue
		}
		seen[f.Identifier] = true

		records = append(records, Record{
			CouncilReference: f.Identifier,
			Address:          addr,
			Description:      f.Description,
			InfoURL:          sourceURL,
			CommentURL:       e.commentURL,
			DateScraped:      captured,
			DateReceived:     f.Received,
			LegalDescription: f.Legal,
		})
	}

	return records, warnings
}

func fragmentTexts(fragments []geom.Fragment) []string {
	texts := make([]string, len(fragments))
	for i, f := range fragments {
		texts[i] = f.Text
	}
	return texts
}
