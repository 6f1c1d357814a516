// Package yachtmarket scrapes sailboat listings from theyachtmarket.com.
package yachtmarket

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"sailboat-scraper/models"
	"sailboat-scraper/scraper"
	"sailboat-scraper/utils"
)

const (
	source     = "yachtmarket"
	siteRoot   = "https://www.theyachtmarket.com/"
	searchRoot = "https://www.theyachtmarket.com/en/boats-for-sale/search/"
	seedQuery  = "?manufacturermodel=%s&currency=eur&lengthunit=metres&showsail=1"
)

// Scraper implements scraper.Adapter for theyachtmarket.com. The site has
// no server-side price filter, so every price is returned.
type Scraper struct {
	logger *utils.Logger
}

func New(logger *utils.Logger) *Scraper {
	return &Scraper{logger: logger}
}

func (s *Scraper) Name() string { return source }

func (s *Scraper) SeedURL(brand string) string {
	return searchRoot + fmt.Sprintf(seedQuery, strings.ToLower(strings.ReplaceAll(brand, " ", "+")))
}

func (s *Scraper) Extract(_ context.Context, brand string, doc *goquery.Document) []models.Listing {
	overviews := doc.Find("div.overview").Map(func(_ int, d *goquery.Selection) string { return d.Text() })
	locations := doc.Find("div.location").Map(func(_ int, d *goquery.Selection) string { return d.Text() })
	prices := doc.Find("div.pricing").Map(func(_ int, d *goquery.Selection) string {
		return d.Find("span").First().Text()
	})

	stripMake := scraper.FoldStripper(brand)

	var listings []models.Listing
	doc.Find("a.boat-name").Each(func(i int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if strings.TrimSpace(href) == "" {
			return
		}
		listings = append(listings, models.Listing{
			Source: source,
			URL:    ListingURL(href),
			Model: scraper.Field(s.logger, "yachtmarket.model", func() (string, error) {
				return stripMake(a.Text()), nil
			}),
			Year: scraper.Field(s.logger, "yachtmarket.year", func() (int, error) {
				o, err := scraper.At(overviews, i)
				if err != nil {
					return 0, err
				}
				year, _, err := SplitOverview(o)
				if err != nil {
					return 0, err
				}
				return strconv.Atoi(year)
			}),
			LOA: scraper.Field(s.logger, "yachtmarket.loa", func() (float64, error) {
				o, err := scraper.At(overviews, i)
				if err != nil {
					return 0, err
				}
				_, loa, err := SplitOverview(o)
				if err != nil {
					return 0, err
				}
				return ParseLOA(loa)
			}),
			Location: scraper.Field(s.logger, "yachtmarket.location", func() (string, error) {
				l, err := scraper.At(locations, i)
				if err != nil {
					return "", err
				}
				parts := strings.Split(l, ",")
				return strings.TrimSpace(parts[len(parts)-1]), nil
			}),
			Price: scraper.Field(s.logger, "yachtmarket.price", func() (float64, error) {
				p, err := scraper.At(prices, i)
				if err != nil {
					return 0, err
				}
				return ParsePrice(p)
			}),
		})
	})
	return listings
}

func (s *Scraper) NextURL(doc *goquery.Document) (string, bool) {
	href, ok := doc.Find("a[rel=next]").First().Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return "", false
	}
	return resolve(searchRoot, href), true
}

// ListingURL makes a listing href absolute and drops its query string.
func ListingURL(href string) string {
	href = strings.SplitN(strings.TrimSpace(href), "?", 2)[0]
	return resolve(siteRoot, href)
}

// SplitOverview splits a "year | length" overview into its two parts.
func SplitOverview(o string) (year, loa string, err error) {
	parts := strings.Split(o, "|")
	if len(parts) < 2 {
		return "", "", fmt.Errorf("overview %q: %w", o, scraper.ErrMissing)
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), nil
}

// ParseLOA reads a length such as "10.2m".
func ParseLOA(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(s, "m", "")), 64)
}

// ParsePrice reads a price such as "€125,000" or "125,000 EUR".
func ParsePrice(s string) (float64, error) {
	s = strings.NewReplacer("€", "", "EUR", "", ",", "").Replace(s)
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	return float64(n), nil
}

func resolve(base, href string) string {
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}
	return b.ResolveReference(ref).String()
}
