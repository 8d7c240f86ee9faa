package browser

import (
	"context"

	"github.com/rotisserie/eris"
)

// Fake is an in-memory Client for tests. Documents are served by exact
// URL match; unknown URLs return an error like an unreachable page.
type Fake struct {
	Docs    map[string]*Document
	Err     error
	Fetched []string
}

// NewFake creates an empty Fake.
func NewFake() *Fake {
	return &Fake{Docs: make(map[string]*Document)}
}

// Add registers a document for a URL.
func (f *Fake) Add(url string, doc *Document) *Fake {
	if doc.FinalURL == "" {
		doc.FinalURL = url
	}
	if doc.Status == 0 {
		doc.Status = 200
	}
	f.Docs[url] = doc
	return f
}

// Fetch implements Client.
func (f *Fake) Fetch(_ context.Context, targetURL string) (*Document, error) {
	f.Fetched = append(f.Fetched, targetURL)
	if f.Err != nil {
		return nil, f.Err
	}
	doc, ok := f.Docs[targetURL]
	if !ok {
		return nil, eris.Errorf("browser: fake has no document for %s", targetURL)
	}
	return doc, nil
}
