package yachtmarket

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sailboat-scraper/document"
	"sailboat-scraper/utils"
)

const listPage = `<html><body>
<div class="result">
  <a class="boat-name" href="/en/boats-for-sale/sail/hallberg-rassy-37/123/?ref=search">HALLBERG-RASSY 37</a>
  <div class="overview">2015 | 10.2m</div>
  <div class="location">Stockholm, Sweden</div>
  <div class="pricing"><span>€125,000</span> <span>VAT paid</span></div>
</div>
<div class="result">
  <a class="boat-name" href="https://www.theyachtmarket.com/en/boats-for-sale/sail/hallberg-rassy-42/456/">Hallberg-Rassy 42 F</a>
  <div class="overview">1990</div>
  <div class="location">Greece</div>
  <div class="pricing"><span>POA</span></div>
</div>
<a rel="next" href="?manufacturermodel=hallberg-rassy&amp;page=2">Next</a>
</body></html>`

const pageURL = "https://www.theyachtmarket.com/en/boats-for-sale/search/?manufacturermodel=hallberg-rassy&currency=eur&lengthunit=metres&showsail=1"

func newScraper() *Scraper { return New(utils.NewLoggerTo(io.Discard)) }

func TestSeedURL(t *testing.T) {
	assert.Equal(t,
		"https://www.theyachtmarket.com/en/boats-for-sale/search/?manufacturermodel=hallberg+rassy&currency=eur&lengthunit=metres&showsail=1",
		newScraper().SeedURL("Hallberg Rassy"))
}

func TestExtract(t *testing.T) {
	got := newScraper().Extract(context.Background(), "Hallberg-Rassy", document.Parse(pageURL, listPage))
	require.Len(t, got, 2)

	first := got[0]
	assert.Equal(t, "https://www.theyachtmarket.com/en/boats-for-sale/sail/hallberg-rassy-37/123/", first.URL)
	assert.Equal(t, "37", first.Model.Or(""))
	assert.Equal(t, 2015, first.Year.Or(0))
	assert.Equal(t, 10.2, first.LOA.Or(0))
	assert.Equal(t, "Sweden", first.Location.Or(""))
	assert.Equal(t, 125000.0, first.Price.Or(0))

	second := got[1]
	assert.Equal(t, "https://www.theyachtmarket.com/en/boats-for-sale/sail/hallberg-rassy-42/456/", second.URL)
	assert.Equal(t, "42 F", second.Model.Or(""))
	assert.False(t, second.Year.IsSome(), "overview without a pipe has no year")
	assert.False(t, second.LOA.IsSome())
	assert.Equal(t, "Greece", second.Location.Or(""))
	assert.False(t, second.Price.IsSome())
}

func TestSplitOverview(t *testing.T) {
	year, loa, err := SplitOverview("2015 | 10.2")
	require.NoError(t, err)
	assert.Equal(t, "2015", year)
	assert.Equal(t, "10.2", loa)

	l, err := ParseLOA(loa)
	require.NoError(t, err)
	assert.Equal(t, 10.2, l)
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"€125,000", 125000},
		{" 89,500 EUR ", 89500},
		{"€ 1,250,000", 1250000},
	}
	for _, tc := range cases {
		got, err := ParsePrice(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, err := ParsePrice("POA")
	assert.Error(t, err)
}

func TestNextURL(t *testing.T) {
	next, ok := newScraper().NextURL(document.Parse(pageURL, listPage))
	require.True(t, ok)
	assert.Equal(t, "https://www.theyachtmarket.com/en/boats-for-sale/search/?manufacturermodel=hallberg-rassy&page=2", next)

	_, ok = newScraper().NextURL(document.Parse(pageURL, "<html></html>"))
	assert.False(t, ok)
}
