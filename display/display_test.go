package display

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"sailboat-scraper/models"
)

func TestFormatting(t *testing.T) {
	assert.Equal(t, "10.46 m", Length(models.Some(10.456)))
	assert.Equal(t, "", Length(models.None[float64]()))
	assert.Equal(t, "125000 €", Price(models.Some(125000.0)))
	assert.Equal(t, "0 €", Price(models.Some(0.0)))
	assert.Equal(t, "", Price(models.None[float64]()))
}

func TestRanked(t *testing.T) {
	got := Ranked(map[string]int{"Sweden": 2, "Finland": 5, "Greece": 2})
	assert.Equal(t, []Count{{"Finland", 5}, {"Greece", 2}, {"Sweden", 2}}, got)
}

func TestListingsRendersRows(t *testing.T) {
	var buf bytes.Buffer
	Listings(&buf, []models.Listing{
		{Source: "boat24", URL: "https://example.com/1", Model: models.Some("Rasmus 35"), Year: models.Some(1972),
			LOA: models.Some(10.5), Location: models.Some("Sweden"), Price: models.Some(42000.0)},
		{Source: "yachtmarket", URL: "https://example.com/2"},
	})
	out := buf.String()
	for _, want := range []string{"Rasmus 35", "1972", "10.50 m", "42000 €", "https://example.com/2"} {
		assert.Contains(t, out, want)
	}
}

func TestSummaryWithoutPrices(t *testing.T) {
	var buf bytes.Buffer
	Summary(&buf, &models.InsightReport{TotalListings: 1, ListingsBySource: map[string]int{"boat24": 1}})
	assert.Contains(t, buf.String(), "no price data available")
	assert.Contains(t, buf.String(), "boat24")
}

func TestSold(t *testing.T) {
	var buf bytes.Buffer
	Sold(&buf, []models.SoldListing{{
		URL: "http://www.boatagent.com/boat/1", Model: models.Some("355"),
		DateSold: models.Some(time.Date(2019, 5, 31, 0, 0, 0, 0, time.UTC)), Price: models.Some(62500.0),
	}})
	assert.Contains(t, buf.String(), "2019-05-31")
	assert.Contains(t, buf.String(), "62500 €")
}
