// Package document parses fetched pages into queryable goquery documents.
package document

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"sailboat-scraper/utils"
)

// PageSource supplies raw page content by URL.
type PageSource interface {
	Get(ctx context.Context, url string) string
	Post(ctx context.Context, url, contentType, body string) string
}

// Accessor fetches pages through a PageSource and parses them. Parsed
// documents are kept for the life of the Accessor, so each URL is parsed
// at most once. With memoization disabled every call re-parses.
type Accessor struct {
	pages   PageSource
	memoize bool
	logger  *utils.Logger

	mu   sync.Mutex
	docs map[string]*goquery.Document
}

// NewAccessor creates an Accessor. Pass memoize=false in debug sessions.
func NewAccessor(pages PageSource, memoize bool, logger *utils.Logger) *Accessor {
	return &Accessor{
		pages:   pages,
		memoize: memoize,
		logger:  logger,
		docs:    make(map[string]*goquery.Document),
	}
}

// Document returns the parsed page at rawURL. It never returns nil: a page
// that could not be fetched or parsed becomes an empty document, on which
// every query simply finds nothing.
func (a *Accessor) Document(ctx context.Context, rawURL string) *goquery.Document {
	if a.memoize {
		a.mu.Lock()
		doc, ok := a.docs[rawURL]
		a.mu.Unlock()
		if ok {
			return doc
		}
	}

	doc := Parse(rawURL, a.pages.Get(ctx, rawURL))
	if a.memoize {
		a.mu.Lock()
		a.docs[rawURL] = doc
		a.mu.Unlock()
	}
	return doc
}

// Page returns the raw content of rawURL.
func (a *Accessor) Page(ctx context.Context, rawURL string) string {
	return a.pages.Get(ctx, rawURL)
}

// Post sends body to rawURL and returns the raw response. Responses are not cached.
func (a *Accessor) Post(ctx context.Context, rawURL, contentType, body string) string {
	return a.pages.Post(ctx, rawURL, contentType, body)
}

// Parse builds a document from html, recording rawURL as its location so
// relative links can be resolved.
func Parse(rawURL, html string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		doc, _ = goquery.NewDocumentFromReader(strings.NewReader(""))
	}
	if u, err := url.Parse(rawURL); err == nil {
		doc.Url = u
	}
	return doc
}

// Resolve turns href into an absolute URL relative to doc's location.
// Absolute hrefs are returned unchanged.
func Resolve(doc *goquery.Document, href string) string {
	href = strings.TrimSpace(href)
	if doc.Url == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return doc.Url.ResolveReference(ref).String()
}
