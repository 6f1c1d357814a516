package models

import (
	"math"
	"time"
)

// Listing is one normalised for-sale sailboat. Only URL is guaranteed;
// every other field is absent when its extraction failed.
type Listing struct {
	Source   string
	URL      string
	Model    Opt[string]
	Year     Opt[int]
	LOA      Opt[float64] // metres
	Location Opt[string]  // country name where resolvable
	Price    Opt[float64] // EUR
}

// Table is the aggregated listings for one make, in adapter order and
// then page order.
type Table struct {
	Make     string
	RunID    string
	Listings []Listing
	BuiltAt  time.Time
}

// Rounded returns a copy of the table with LOA rounded to two decimals and
// price to whole euros. It is a display step; persisted exports keep the
// raw values.
func (t *Table) Rounded() *Table {
	out := &Table{Make: t.Make, RunID: t.RunID, BuiltAt: t.BuiltAt, Listings: make([]Listing, len(t.Listings))}
	for i, l := range t.Listings {
		if v, ok := l.LOA.Get(); ok {
			l.LOA = Some(math.Round(v*100) / 100)
		}
		if v, ok := l.Price.Get(); ok {
			l.Price = Some(math.Round(v))
		}
		out.Listings[i] = l
	}
	return out
}

// SoldListing is a boat reported as sold by a brokerage archive.
type SoldListing struct {
	URL      string
	Model    Opt[string]
	Year     Opt[int]
	DateSold Opt[time.Time]
	Price    Opt[float64] // EUR
}

// PricePoint is one historical sale of a given model.
type PricePoint struct {
	ItemYear  int
	SalesYear int
	Age       int
	PriceSEK  float64
	PriceEUR  float64
}

// InsightReport holds the computed summary over a set of listings.
type InsightReport struct {
	TotalListings      int
	PricedListings     int
	AveragePrice       float64
	MinPrice           float64
	MaxPrice           float64
	Cheapest           *Listing
	MostExpensive      *Listing
	ListingsBySource   map[string]int
	ListingsByModel    map[string]int
	ListingsByLocation map[string]int
}
