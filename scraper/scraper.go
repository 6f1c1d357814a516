// Package scraper defines the contract every brokerage adapter implements
// and the pagination loop that drives them.
package scraper

import (
	"context"

	"github.com/PuerkitoBio/goquery"

	"sailboat-scraper/models"
	"sailboat-scraper/observability"
	"sailboat-scraper/utils"
)

// Adapter scrapes one brokerage site.
type Adapter interface {
	// Name identifies the source in logs, metrics and listings.
	Name() string
	// SeedURL is the first result page for a make.
	SeedURL(brand string) string
	// Extract returns the listings on one result page. Fields that cannot
	// be read are absent; listings without a URL are omitted.
	Extract(ctx context.Context, brand string, doc *goquery.Document) []models.Listing
	// NextURL returns the following result page, or false on the last page.
	NextURL(doc *goquery.Document) (string, bool)
}

// DocumentSource supplies parsed pages.
type DocumentSource interface {
	Document(ctx context.Context, url string) *goquery.Document
}

// PageFunc is notified before each result page is fetched.
type PageFunc func(source, url string, page int)

// Collect follows an adapter's result pages until it reports no next page
// and returns every listing in page order. A next URL already visited in
// this run ends the loop.
func Collect(ctx context.Context, a Adapter, docs DocumentSource, brand string, logger *utils.Logger, onPage PageFunc) []models.Listing {
	visited := utils.NewURLSet()
	var listings []models.Listing

	next, page := a.SeedURL(brand), 1
	for next != "" {
		if ctx.Err() != nil {
			logger.Warn("[%s] Stopping at page %d: %v", a.Name(), page, ctx.Err())
			break
		}
		if !visited.Add(next) {
			logger.Warn("[%s] Page %s already visited, stopping", a.Name(), next)
			break
		}
		if onPage != nil {
			onPage(a.Name(), next, page)
		}
		logger.Debug("[%s] Scraping page %d: %s", a.Name(), page, next)

		doc := docs.Document(ctx, next)
		found := a.Extract(ctx, brand, doc)
		listings = append(listings, found...)
		observability.ListingsScraped.WithLabelValues(a.Name()).Add(float64(len(found)))

		url, ok := a.NextURL(doc)
		if !ok {
			break
		}
		next = url
		page++
	}

	logger.Info("[%s] %d listings from %d pages", a.Name(), len(listings), page)
	return listings
}
