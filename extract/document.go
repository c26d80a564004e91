// Package extract implements the product-page field extraction engine:
// per-field selector fallback chains, normalization of raw page text into
// typed values, and assembly of one ProductRecord per rendered document.
//
// The engine is pure computation over an already-rendered snapshot — no I/O,
// no shared state. It is safe to run concurrently for independent documents.
package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/imadama/Bol-scrapper/models"
)

// Document is a queryable snapshot of a rendered page plus its resolved
// base URL. It is read-only after construction.
type Document struct {
	doc       *goquery.Document
	base      *url.URL
	sourceURL string
}

// NewDocument parses rendered HTML into a Document. baseURL is the resolved
// page URL after redirects (relative image URLs resolve against it);
// sourceURL is the original URL the caller asked for and is what ends up on
// the record. Passing the same value for both is fine.
//
// An empty or unparsable snapshot is the one fatal condition in the engine:
// partial extraction over nothing is meaningless, so this fails fast with
// ErrCodeEmptyDocument instead of returning a record of empty fields.
func NewDocument(rawHTML, baseURL, sourceURL string) (*Document, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, models.NewScrapeError(
			models.ErrCodeEmptyDocument,
			"rendered document is empty",
			nil,
		)
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, models.NewScrapeError(
			models.ErrCodeInvalidInput,
			"base URL does not parse",
			err,
		)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, models.NewScrapeError(
			models.ErrCodeEmptyDocument,
			"rendered document does not parse",
			err,
		)
	}

	return &Document{doc: doc, base: base, sourceURL: sourceURL}, nil
}

// Find runs a CSS selector over the whole document.
func (d *Document) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// SourceURL returns the original page URL the snapshot was taken from.
func (d *Document) SourceURL() string {
	return d.sourceURL
}

// Resolve makes ref absolute against the document's base URL.
// Returns "" when ref does not parse.
func (d *Document) Resolve(ref string) string {
	if ref == "" {
		return ""
	}
	resolved, err := d.base.Parse(ref)
	if err != nil {
		return ""
	}
	return resolved.String()
}
