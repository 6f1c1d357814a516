package services

import (
	"io"
	"testing"

	"sailboat-scraper/models"
	"sailboat-scraper/utils"
)

func sampleListings() []models.Listing {
	return []models.Listing{
		{Source: "boat24", URL: "https://boat24.example/1", Model: models.Some("31"), Location: models.Some("Sweden"), Price: models.Some(200.0)},
		{Source: "boat24", URL: "https://boat24.example/2", Model: models.Some("31"), Location: models.Some("Sweden"), Price: models.Some(50.0)},
		{Source: "nettivene", URL: "https://nettivene.example/3", Model: models.Some("352"), Location: models.Some("Finland"), Price: models.Some(120.0)},
		{Source: "yachtworld", URL: "https://yachtworld.example/4", Model: models.Some("42"), Location: models.Some("Greece"), Price: models.Some(300.0)},
		{Source: "yachtmarket", URL: "https://yachtmarket.example/5", Location: models.Some("Finland")},
	}
}

func newInsights() *InsightService { return NewInsightService(utils.NewLoggerTo(io.Discard)) }

func TestInsightCounts(t *testing.T) {
	r := newInsights().Generate(sampleListings())
	if r.TotalListings != 5 {
		t.Errorf("TotalListings: got %d, want 5", r.TotalListings)
	}
	if r.PricedListings != 4 {
		t.Errorf("PricedListings: got %d, want 4", r.PricedListings)
	}
	if r.ListingsBySource["boat24"] != 2 {
		t.Errorf("boat24 count: got %d, want 2", r.ListingsBySource["boat24"])
	}
	if r.ListingsByModel["31"] != 2 || len(r.ListingsByModel) != 3 {
		t.Errorf("ListingsByModel: got %v", r.ListingsByModel)
	}
}

func TestInsightPrices(t *testing.T) {
	r := newInsights().Generate(sampleListings())
	wantAvg := 167.50
	if r.AveragePrice != wantAvg {
		t.Errorf("AveragePrice: got %.2f, want %.2f", r.AveragePrice, wantAvg)
	}
	if r.MinPrice != 50 {
		t.Errorf("MinPrice: got %.2f, want 50", r.MinPrice)
	}
	if r.MaxPrice != 300 {
		t.Errorf("MaxPrice: got %.2f, want 300", r.MaxPrice)
	}
}

func TestInsightExtremes(t *testing.T) {
	r := newInsights().Generate(sampleListings())
	if r.Cheapest == nil || r.Cheapest.URL != "https://boat24.example/2" {
		t.Errorf("Cheapest: got %+v", r.Cheapest)
	}
	if r.MostExpensive == nil || r.MostExpensive.URL != "https://yachtworld.example/4" {
		t.Errorf("MostExpensive: got %+v", r.MostExpensive)
	}
}

func TestInsightZeroPriceIsCheapest(t *testing.T) {
	listings := append(sampleListings(), models.Listing{Source: "boat24", URL: "free", Price: models.Some(0.0)})
	r := newInsights().Generate(listings)
	if r.Cheapest == nil || r.Cheapest.URL != "free" || r.MinPrice != 0 {
		t.Errorf("a zero price is a real price: got %+v min %.2f", r.Cheapest, r.MinPrice)
	}
}

func TestInsightLocationGrouping(t *testing.T) {
	r := newInsights().Generate(sampleListings())
	if r.ListingsByLocation["Sweden"] != 2 {
		t.Errorf("Sweden count: got %d, want 2", r.ListingsByLocation["Sweden"])
	}
	if r.ListingsByLocation["Finland"] != 2 {
		t.Errorf("Finland count: got %d, want 2", r.ListingsByLocation["Finland"])
	}
}

func TestInsightEmptyInput(t *testing.T) {
	r := newInsights().Generate(nil)
	if r.TotalListings != 0 || r.Cheapest != nil {
		t.Errorf("expected empty report for empty input")
	}
}
