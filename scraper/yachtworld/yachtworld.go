// Package yachtworld scrapes yachtworld.com, whose result pages carry their
// data as a JSON state object embedded in a script tag.
package yachtworld

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/biter777/countries"

	"sailboat-scraper/models"
	"sailboat-scraper/scraper"
	"sailboat-scraper/utils"
)

const (
	source      = "yachtworld"
	urlTemplate = "https://www.yachtworld.com/boats-for-sale/condition-used/type-sail/make-%s/?currency=EUR&price=0-%d"
	stateMarker = "__REDUX_STATE__"
	currency    = "EUR"
)

// Scraper implements scraper.Adapter for yachtworld.com.
type Scraper struct {
	maxPrice int
	logger   *utils.Logger
}

// New creates a Scraper that asks the site for boats up to maxPrice euros.
func New(maxPrice int, logger *utils.Logger) *Scraper {
	return &Scraper{maxPrice: maxPrice, logger: logger}
}

func (s *Scraper) Name() string { return source }

// SeedURL puts the make into the path as a lower-case, hyphenated slug
// ("Hallberg Rassy" becomes "make-hallberg-rassy") rather than as typed.
func (s *Scraper) SeedURL(brand string) string {
	slug := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(brand), " ", "-"))
	return fmt.Sprintf(urlTemplate, slug, s.maxPrice)
}

func (s *Scraper) Extract(_ context.Context, _ string, doc *goquery.Document) []models.Listing {
	search, err := searchState(doc)
	if err != nil {
		s.logger.Debug("[yachtworld] No search state on %v: %v", doc.Url, err)
		return nil
	}
	raw, err := scraper.Dig(search, "records")
	if err != nil {
		return nil
	}
	records, ok := raw.([]any)
	if !ok {
		return nil
	}

	listings := make([]models.Listing, 0, len(records))
	for _, r := range records {
		url, err := scraper.Dig(r, "mappedURL")
		if err != nil {
			continue
		}
		u, err := scraper.String(url)
		if err != nil || strings.TrimSpace(u) == "" {
			continue
		}
		listings = append(listings, s.listing(u, r))
	}
	return listings
}

func (s *Scraper) listing(url string, r any) models.Listing {
	return models.Listing{
		Source: source,
		URL:    url,
		Model: scraper.Field(s.logger, "yachtworld.model", func() (string, error) {
			v, err := scraper.Dig(r, "model")
			if err != nil {
				return "", err
			}
			return scraper.String(v)
		}),
		Year: scraper.Field(s.logger, "yachtworld.year", func() (int, error) {
			v, err := scraper.Dig(r, "year")
			if err != nil {
				return 0, err
			}
			return scraper.Int(v)
		}),
		LOA: scraper.Field(s.logger, "yachtworld.loa", func() (float64, error) {
			v, err := scraper.Dig(r, "boat", "specifications", "dimensions", "lengths", "nominal", "m")
			if err != nil {
				return 0, err
			}
			return scraper.Float(v)
		}),
		Location: scraper.Field(s.logger, "yachtworld.location", func() (string, error) {
			v, err := scraper.Dig(r, "location", "countryCode")
			if err != nil {
				return "", err
			}
			code, err := scraper.String(v)
			if err != nil {
				return "", err
			}
			return CountryName(code), nil
		}),
		Price: scraper.Field(s.logger, "yachtworld.price", func() (float64, error) {
			v, err := scraper.Dig(r, "price", "type", "amount", currency)
			if err != nil {
				return 0, err
			}
			return scraper.Float(v)
		}),
	}
}

// NextURL continues while the state's current page is before its last
// page, requesting the next page number explicitly.
func (s *Scraper) NextURL(doc *goquery.Document) (string, bool) {
	search, err := searchState(doc)
	if err != nil || doc.Url == nil {
		return "", false
	}
	current, err := pageNumber(search, "currentPage")
	if err != nil {
		return "", false
	}
	last, err := pageNumber(search, "lastPage")
	if err != nil || current >= last {
		return "", false
	}

	next := *doc.Url
	q := next.Query()
	q.Set("page", strconv.Itoa(current+1))
	next.RawQuery = q.Encode()
	return next.String(), true
}

func pageNumber(search any, key string) (int, error) {
	v, err := scraper.Dig(search, key)
	if err != nil {
		return 0, err
	}
	return scraper.Int(v)
}

func searchState(doc *goquery.Document) (any, error) {
	state, err := State(doc)
	if err != nil {
		return nil, err
	}
	return scraper.Dig(state, "search", "searchResults", "search")
}

// State decodes the JSON object embedded after the state marker: from the
// first "{" after the marker to the last "}" in the same script tag.
func State(doc *goquery.Document) (any, error) {
	var script string
	doc.Find("script").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if t := sel.Text(); strings.Contains(t, stateMarker) {
			script = t
			return false
		}
		return true
	})
	if script == "" {
		return nil, fmt.Errorf("state script: %w", scraper.ErrMissing)
	}

	at := strings.Index(script, stateMarker)
	open := strings.IndexByte(script[at:], '{')
	end := strings.LastIndexByte(script, '}')
	if open < 0 || end < at+open {
		return nil, fmt.Errorf("state object: %w", scraper.ErrMissing)
	}
	return scraper.DecodeJSON(script[at+open : end+1])
}

// CountryName resolves an ISO country code to its English name, or returns
// the code itself when it is not recognised.
func CountryName(code string) string {
	c := countries.ByName(strings.TrimSpace(code))
	if c == countries.Unknown {
		return code
	}
	return c.String()
}
