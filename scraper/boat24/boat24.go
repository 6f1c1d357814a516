// Package boat24 scrapes sailboat listings from boat24.com.
package boat24

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"sailboat-scraper/document"
	"sailboat-scraper/models"
	"sailboat-scraper/scraper"
	"sailboat-scraper/utils"
)

const (
	source      = "boat24"
	urlTemplate = "https://www.boat24.com/en/sailboats/?src=%s&mode=AND&whr=EUR&prs_min=&prs_max=%d"
)

var (
	digitsRegexp = regexp.MustCompile(`\d+`)
	loaRegexp    = regexp.MustCompile(`([\d.]+) x .*`)
)

// Scraper implements scraper.Adapter for boat24.com.
type Scraper struct {
	maxPrice int
	logger   *utils.Logger
}

// New creates a Scraper filtering the site's results to maxPrice euros.
func New(maxPrice int, logger *utils.Logger) *Scraper {
	return &Scraper{maxPrice: maxPrice, logger: logger}
}

func (s *Scraper) Name() string { return source }

func (s *Scraper) SeedURL(brand string) string {
	return fmt.Sprintf(urlTemplate, strings.ReplaceAll(brand, " ", "+"), s.maxPrice)
}

func (s *Scraper) Extract(_ context.Context, brand string, doc *goquery.Document) []models.Listing {
	cards := doc.Find("div.bd")
	yearTexts := doc.Find("label").FilterFunction(func(_ int, l *goquery.Selection) bool {
		return strings.TrimSpace(l.Text()) == "Year Built"
	}).Map(followingText)
	detailTexts := doc.Find("div.details").Map(text)
	locationTexts := doc.Find("div.location").Map(text)
	priceTexts := doc.Find("p.price").Map(func(_ int, p *goquery.Selection) string {
		return p.Contents().First().Text()
	})

	var listings []models.Listing
	cards.Each(func(i int, card *goquery.Selection) {
		anchor := card.Find("h5").First().Find("a").First()
		href, _ := anchor.Attr("href")
		if strings.TrimSpace(href) == "" {
			return
		}
		listings = append(listings, models.Listing{
			Source: source,
			URL:    document.Resolve(doc, href),
			Model: scraper.Field(s.logger, "boat24.model", func() (string, error) {
				title, ok := anchor.Attr("title")
				if !ok {
					return "", scraper.ErrMissing
				}
				return scraper.StripMake(title, brand), nil
			}),
			Year: scraper.Field(s.logger, "boat24.year", func() (int, error) {
				t, err := scraper.At(yearTexts, i)
				if err != nil {
					return 0, err
				}
				return strconv.Atoi(strings.TrimSpace(t))
			}),
			LOA: scraper.Field(s.logger, "boat24.loa", func() (float64, error) {
				t, err := scraper.At(detailTexts, i)
				if err != nil {
					return 0, err
				}
				return ParseLOA(t)
			}),
			Location: scraper.Field(s.logger, "boat24.location", func() (string, error) {
				t, err := scraper.At(locationTexts, i)
				if err != nil {
					return "", err
				}
				return scraper.FirstToken(t)
			}),
			Price: scraper.Field(s.logger, "boat24.price", func() (float64, error) {
				t, err := scraper.At(priceTexts, i)
				if err != nil {
					return 0, err
				}
				return ParsePrice(t)
			}),
		})
	})
	return listings
}

func (s *Scraper) NextURL(doc *goquery.Document) (string, bool) {
	href, ok := doc.Find("a.next").First().Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return "", false
	}
	return document.Resolve(doc, href), true
}

// ParsePrice keeps only the digits of s, so "€ 125,000" is 125000.
func ParsePrice(s string) (float64, error) {
	digits := strings.Join(digitsRegexp.FindAllString(s, -1), "")
	if digits == "" {
		return 0, fmt.Errorf("no digits in %q: %w", s, scraper.ErrMissing)
	}
	return strconv.ParseFloat(digits, 64)
}

// ParseLOA reads the length from a "<loa> x <beam>" dimensions string.
func ParseLOA(details string) (float64, error) {
	m := loaRegexp.FindStringSubmatch(details)
	if m == nil {
		return 0, scraper.ErrMissing
	}
	return strconv.ParseFloat(m[1], 64)
}

// followingText is the text of the node right after the selection, which
// holds the value for a "<label>Name</label> value" pair.
func followingText(_ int, label *goquery.Selection) string {
	if len(label.Nodes) == 0 || label.Nodes[0].NextSibling == nil {
		return ""
	}
	return goquery.NewDocumentFromNode(label.Nodes[0].NextSibling).Text()
}

func text(_ int, s *goquery.Selection) string { return s.Text() }
