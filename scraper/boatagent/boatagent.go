// Package boatagent reads the sold-boats archive of boatagent.com.
package boatagent

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"sailboat-scraper/models"
	"sailboat-scraper/scraper"
	"sailboat-scraper/utils"
)

const (
	siteRoot  = "http://www.boatagent.com"
	searchURL = siteRoot + "/?sajt=kopbat_sokmotor&sokord="
)

var (
	yearRegexp  = regexp.MustCompile(`Year of production: (\d{4})`)
	soldRegexp  = regexp.MustCompile(`Sold: (\d{4}-\d{2}-\d{2})`)
	priceRegexp = regexp.MustCompile(`(\d[\d\s\x{00a0}]+)[\s\x{00a0}]EUR`)
)

// Client reads sold listings through a DocumentSource.
type Client struct {
	docs   scraper.DocumentSource
	logger *utils.Logger
}

func New(docs scraper.DocumentSource, logger *utils.Logger) *Client {
	return &Client{docs: docs, logger: logger}
}

// SearchURL is the archive search page for a make.
func SearchURL(brand string) string {
	return searchURL + strings.ToLower(strings.ReplaceAll(brand, " ", "+"))
}

// Sold returns the sold boats of a make listed on the archive's first page.
func (c *Client) Sold(ctx context.Context, brand string) []models.SoldListing {
	doc := c.docs.Document(ctx, SearchURL(brand))

	var sold []models.SoldListing
	doc.Find("td.batkatalog").Each(func(_ int, td *goquery.Selection) {
		href, ok := td.Find("a").First().Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		p := td.Find("p").First()
		sold = append(sold, models.SoldListing{
			URL: siteRoot + strings.TrimSpace(href),
			Model: scraper.Field(c.logger, "boatagent.model", func() (string, error) {
				h2 := td.Find("h2").First()
				if h2.Length() == 0 {
					return "", scraper.ErrMissing
				}
				return scraper.StripMake(h2.Text(), brand), nil
			}),
			Year: scraper.Field(c.logger, "boatagent.year", func() (int, error) {
				return ParseYear(p.Text())
			}),
			DateSold: scraper.Field(c.logger, "boatagent.date_sold", func() (time.Time, error) {
				return ParseDateSold(td.Find("font").First().Text())
			}),
			Price: scraper.Field(c.logger, "boatagent.price", func() (float64, error) {
				return ParsePrice(p.Text())
			}),
		})
	})
	c.logger.Info("[boatagent] %d sold %s boats", len(sold), brand)
	return sold
}

// ParseYear reads "Year of production: 1987".
func ParseYear(s string) (int, error) {
	m := yearRegexp.FindStringSubmatch(s)
	if m == nil {
		return 0, scraper.ErrMissing
	}
	return strconv.Atoi(m[1])
}

// ParseDateSold reads "Sold: 2019-05-31".
func ParseDateSold(s string) (time.Time, error) {
	m := soldRegexp.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, scraper.ErrMissing
	}
	return time.Parse(time.DateOnly, m[1])
}

// ParsePrice reads a "125 000 EUR" price, whose digit groups may be
// separated by non-breaking spaces.
func ParsePrice(s string) (float64, error) {
	m := priceRegexp.FindStringSubmatch(s)
	if m == nil {
		return 0, scraper.ErrMissing
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, m[1])
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, err
	}
	return float64(n), nil
}
