// Package sokbat reads historical sale prices for a boat model from sokbat.se.
package sokbat

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"sailboat-scraper/models"
	"sailboat-scraper/scraper"
	"sailboat-scraper/utils"
)

const (
	modelURL  = "https://www.sokbat.se/Modell/%s/%s"
	pricesURL = "https://www.sokbat.se/DataBase/GetPrices?itemId=%s"
)

var itemIDRegexp = regexp.MustCompile(`CurentItemId = (\d+);`)

// ErrNoModel is returned when the model page does not identify a model.
var ErrNoModel = errors.New("sokbat: model not found")

// Pages fetches raw page content.
type Pages interface {
	Page(ctx context.Context, url string) string
	Post(ctx context.Context, url, contentType, body string) string
}

// RateSource supplies the SEK to EUR exchange rate.
type RateSource interface {
	SEKToEUR(ctx context.Context) (float64, error)
}

// FixedRate is a RateSource with a configured rate.
type FixedRate float64

func (r FixedRate) SEKToEUR(context.Context) (float64, error) {
	if r <= 0 {
		return 0, fmt.Errorf("invalid SEK to EUR rate %v", float64(r))
	}
	return float64(r), nil
}

// Client reads sale history through Pages.
type Client struct {
	pages  Pages
	rates  RateSource
	logger *utils.Logger
}

func New(pages Pages, rates RateSource, logger *utils.Logger) *Client {
	return &Client{pages: pages, rates: rates, logger: logger}
}

// ModelURL is the sokbat.se page for a make and model.
func ModelURL(brand, model string) string {
	return fmt.Sprintf(modelURL, slug(brand), slug(model))
}

// History returns every recorded sale of the model with a known build year.
func (c *Client) History(ctx context.Context, brand, model string) ([]models.PricePoint, error) {
	page := c.pages.Page(ctx, ModelURL(brand, model))
	m := itemIDRegexp.FindStringSubmatch(page)
	if m == nil {
		return nil, fmt.Errorf("%s %s: %w", brand, model, ErrNoModel)
	}

	rate, err := c.rates.SEKToEUR(ctx)
	if err != nil {
		return nil, fmt.Errorf("exchange rate: %w", err)
	}

	body := c.pages.Post(ctx, fmt.Sprintf(pricesURL, m[1]), "application/json", "")
	records, err := DecodePrices(body)
	if err != nil {
		return nil, fmt.Errorf("prices for item %s: %w", m[1], err)
	}

	points := make([]models.PricePoint, 0, len(records))
	for i, r := range records {
		p, err := pricePoint(r, rate)
		if err != nil {
			c.logger.Debug("[sokbat] Skipping record %d: %v", i, err)
			continue
		}
		if p.ItemYear > 0 {
			points = append(points, p)
		}
	}
	c.logger.Info("[sokbat] %d sales of %s %s", len(points), brand, model)
	return points, nil
}

// DecodePrices extracts the record array wrapped in the GetPrices response.
func DecodePrices(body string) ([]any, error) {
	start, end := strings.Index(body, "["), strings.LastIndex(body, "]")
	if start < 0 || end < start {
		return nil, fmt.Errorf("no record array: %w", scraper.ErrMissing)
	}
	v, err := scraper.DecodeJSON(body[start : end+1])
	if err != nil {
		return nil, err
	}
	records, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%T is not an array", v)
	}
	return records, nil
}

func pricePoint(record any, rate float64) (models.PricePoint, error) {
	var p models.PricePoint
	itemYear, err := intField(record, "ItemYear")
	if err != nil {
		return p, err
	}
	salesYear, err := intField(record, "SalesYear")
	if err != nil {
		return p, err
	}
	raw, err := scraper.Dig(record, "SalesPrice")
	if err != nil {
		return p, err
	}
	sek, err := scraper.Float(stripSpace(fmt.Sprint(raw)))
	if err != nil {
		return p, err
	}
	return models.PricePoint{
		ItemYear:  itemYear,
		SalesYear: salesYear,
		Age:       salesYear - itemYear,
		PriceSEK:  sek,
		PriceEUR:  sek * rate,
	}, nil
}

func intField(record any, key string) (int, error) {
	v, err := scraper.Dig(record, key)
	if err != nil {
		return 0, err
	}
	return scraper.Int(v)
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func slug(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "-"))
}
