package daextract

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/planport/daextract/geom"
)

// Document is an in-memory PageSource: the decoded form of one notice
// document, as produced by the document-decoding collaborator.
type Document struct {
	// SourceURL is the locator of the original document.
	SourceURL string

	pages [][]geom.Fragment
}

// NewDocument builds a Document from per-page fragment lists.
func NewDocument(sourceURL string, pages ...[]geom.Fragment) *Document {
	return &Document{SourceURL: sourceURL, pages: pages}
}

// PageCount implements PageSource.
func (d *Document) PageCount() (int, error) {
	return len(d.pages), nil
}

// AcquirePage implements PageSource.
func (d *Document) AcquirePage(index int) (Page, error) {
	if index < 0 || index >= len(d.pages) {
		return nil, fmt.Errorf("page %d out of range (document has %d pages)", index, len(d.pages))
	}
	return memoryPage(d.pages[index]), nil
}

type memoryPage []geom.Fragment

func (p memoryPage) Fragments() ([]geom.Fragment, error) { return p, nil }
func (p memoryPage) Close() error                        { return nil }

// Interchange format written by decoding collaborators: one object per
// document, fragments grouped per page.
type documentJSON struct {
	SourceURL string           `json:"sourceUrl"`
	Pages     [][]fragmentJSON `json:"pages"`
}

type fragmentJSON struct {
	Text   string  `json:"text"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ReadDocument parses a decoded document from its JSON interchange form.
func ReadDocument(r io.Reader) (*Document, error) {
	var dj documentJSON
	if err := json.NewDecoder(r).Decode(&dj); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}

	pages := make([][]geom.Fragment, len(dj.Pages))
	for i, pj := range dj.Pages {
		fragments := make([]geom.Fragment, len(pj))
		for j, fj := range pj {
			fragments[j] = geom.Fragment{
				Text:   fj.Text,
				X:      fj.X,
				Y:      fj.Y,
				Width:  fj.Width,
				Height: fj.Height,
			}
		}
		pages[i] = fragments
	}

	return &Document{SourceURL: dj.SourceURL, pages: pages}, nil
}

// OpenDocument reads a decoded document from a JSON file.
func OpenDocument(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening document: %w", err)
	}
	defer f.Close()
	return ReadDocument(f)
}
