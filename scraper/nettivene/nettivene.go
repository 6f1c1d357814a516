// Package nettivene scrapes sailboat listings from nettivene.com. Boat
// length is only shown on each listing's detail page, so every listing
// costs one extra page fetch.
package nettivene

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"

	"sailboat-scraper/document"
	"sailboat-scraper/models"
	"sailboat-scraper/scraper"
	"sailboat-scraper/utils"
)

const (
	source      = "nettivene"
	baseURL     = "https://www.nettivene.com/en/purjevene/"
	homeCountry = "Finland"
)

// Listings outside Finland name their country first in the location text;
// anything else is a Finnish town.
var foreignCountries = map[string]struct{}{
	"Estonia":   {},
	"Sweden":    {},
	"Lithuania": {},
	"Spain":     {},
	"Italy":     {},
	"France":    {},
	"Portugal":  {},
	"Greece":    {},
	"Croatia":   {},
	"Germany":   {},
}

var (
	loaRegexp  = regexp.MustCompile(`^(\D*)([\d.,]+)(\D*)`)
	yearRegexp = regexp.MustCompile(`(\d{4})`)
)

// Scraper implements scraper.Adapter for nettivene.com.
type Scraper struct {
	docs   scraper.DocumentSource
	logger *utils.Logger
}

// New creates a Scraper fetching detail pages through docs.
func New(docs scraper.DocumentSource, logger *utils.Logger) *Scraper {
	return &Scraper{docs: docs, logger: logger}
}

func (s *Scraper) Name() string { return source }

func (s *Scraper) SeedURL(brand string) string {
	return baseURL + strings.ToLower(strings.ReplaceAll(brand, " ", "-"))
}

func (s *Scraper) Extract(ctx context.Context, brand string, doc *goquery.Document) []models.Listing {
	var urls []string
	doc.Find("a.childVifUrl").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if strings.TrimSpace(href) != "" {
			href = document.Resolve(doc, href)
		}
		urls = append(urls, href)
	})
	modelTexts := doc.Find("div.make_model_link").Map(text)
	yearTexts := doc.Find("div.vehicle_other_info.clearfix_nett").Map(text)
	locationTexts := doc.Find("div.location_info").Map(func(_ int, div *goquery.Selection) string {
		return div.Find("b").First().Text()
	})
	priceTexts := doc.Find("div.main_price").Map(text)

	listings := make([]models.Listing, 0, len(urls))
	for i, url := range urls {
		if url == "" {
			continue
		}
		listings = append(listings, models.Listing{
			Source: source,
			URL:    url,
			Model: scraper.Field(s.logger, "nettivene.model", func() (string, error) {
				m, err := scraper.At(modelTexts, i)
				return scraper.StripMake(m, brand), err
			}),
			Year: scraper.Field(s.logger, "nettivene.year", func() (int, error) {
				t, err := scraper.At(yearTexts, i)
				if err != nil {
					return 0, err
				}
				return ParseYear(t)
			}),
			LOA: scraper.Field(s.logger, "nettivene.loa", func() (float64, error) {
				return DetailLOA(s.docs.Document(ctx, url))
			}),
			Location: scraper.Field(s.logger, "nettivene.location", func() (string, error) {
				t, err := scraper.At(locationTexts, i)
				if err != nil {
					return "", err
				}
				return Country(t)
			}),
			Price: scraper.Field(s.logger, "nettivene.price", func() (float64, error) {
				t, err := scraper.At(priceTexts, i)
				if err != nil {
					return 0, err
				}
				return ParsePrice(t)
			}),
		})
	}
	return listings
}

func (s *Scraper) NextURL(doc *goquery.Document) (string, bool) {
	href, ok := doc.Find("a.pageNavigation.next_link").First().Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return "", false
	}
	return document.Resolve(doc, href), true
}

// DetailLOA reads the "Length" row of a listing detail page. The value is
// the leading number of the cell, with any unit or note after it ignored.
func DetailLOA(detail *goquery.Document) (float64, error) {
	cell := detail.Find("td").FilterFunction(func(_ int, td *goquery.Selection) bool {
		return strings.TrimSpace(td.Text()) == "Length"
	}).First()
	if cell.Length() == 0 {
		return 0, scraper.ErrMissing
	}
	value := cell.Next()
	if value.Length() == 0 {
		return 0, scraper.ErrMissing
	}
	return ParseLOA(value.Text())
}

// ParseLOA parses the leading numeric token of s, accepting a decimal comma.
func ParseLOA(s string) (float64, error) {
	m := loaRegexp.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, scraper.ErrMissing
	}
	return strconv.ParseFloat(strings.ReplaceAll(m[2], ",", "."), 64)
}

// ParseYear finds the first four-digit number in s.
func ParseYear(s string) (int, error) {
	m := yearRegexp.FindStringSubmatch(s)
	if m == nil {
		return 0, scraper.ErrMissing
	}
	return strconv.Atoi(m[1])
}

// ParsePrice parses a euro price such as "125 000 €".
func ParsePrice(s string) (float64, error) {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '€' {
			return -1
		}
		return r
	}, s)
	return strconv.ParseFloat(cleaned, 64)
}

// Country maps a location to a country: the first word when it names a
// listed foreign country, Finland otherwise.
func Country(location string) (string, error) {
	first, err := scraper.FirstToken(location)
	if err != nil {
		return "", err
	}
	if _, ok := foreignCountries[first]; ok {
		return first, nil
	}
	return homeCountry, nil
}

func text(_ int, s *goquery.Selection) string { return s.Text() }
