// Package display renders listings and reports as terminal tables.
package display

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"sailboat-scraper/models"
)

// NewTable returns a rounded-style table writing to w.
func NewTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

var rightAligned = []table.ColumnConfig{
	{Name: "Year", Align: text.AlignRight},
	{Name: "LOA", Align: text.AlignRight},
	{Name: "Price", Align: text.AlignRight},
}

// Listings renders one row per listing in the given order.
func Listings(w io.Writer, listings []models.Listing) {
	t := NewTable(w)
	t.AppendHeader(table.Row{"#", "Source", "Model", "Year", "LOA", "Location", "Price", "URL"})
	t.SetColumnConfigs(rightAligned)
	for i, l := range listings {
		t.AppendRow(table.Row{
			i + 1, l.Source, l.Model.Or(""), l.Year.Format("%d"),
			Length(l.LOA), l.Location.Or(""), Price(l.Price), l.URL,
		})
	}
	t.AppendFooter(table.Row{"", "", "", "", "", "", "", fmt.Sprintf("%d listings", len(listings))})
	t.Render()
}

// Summary renders an insight report.
func Summary(w io.Writer, r *models.InsightReport) {
	t := NewTable(w)
	t.SetTitle("Overview")
	t.AppendRow(table.Row{"Total listings", r.TotalListings})
	t.AppendRow(table.Row{"Priced listings", r.PricedListings})
	if r.PricedListings > 0 {
		t.AppendRow(table.Row{"Average price", euros(r.AveragePrice)})
		t.AppendRow(table.Row{"Minimum price", euros(r.MinPrice)})
		t.AppendRow(table.Row{"Maximum price", euros(r.MaxPrice)})
	} else {
		t.AppendRow(table.Row{"Prices", "no price data available"})
	}
	if r.Cheapest != nil {
		t.AppendRow(table.Row{"Cheapest", r.Cheapest.Model.Or("?") + " " + r.Cheapest.URL})
	}
	t.Render()

	counts(w, "By source", r.ListingsBySource)
	counts(w, "By model", r.ListingsByModel)
	counts(w, "By location", r.ListingsByLocation)
}

// History renders a model's recorded sales.
func History(w io.Writer, points []models.PricePoint) {
	t := NewTable(w)
	t.AppendHeader(table.Row{"Built", "Sold", "Age", "Price SEK", "Price EUR"})
	for _, p := range points {
		t.AppendRow(table.Row{p.ItemYear, p.SalesYear, p.Age, fmt.Sprintf("%.0f kr", p.PriceSEK), euros(p.PriceEUR)})
	}
	t.Render()
}

// Sold renders sold listings.
func Sold(w io.Writer, sold []models.SoldListing) {
	t := NewTable(w)
	t.AppendHeader(table.Row{"Model", "Year", "Sold", "Price", "URL"})
	for _, s := range sold {
		date := ""
		if d, ok := s.DateSold.Get(); ok {
			date = d.Format("2006-01-02")
		}
		t.AppendRow(table.Row{s.Model.Or(""), s.Year.Format("%d"), date, Price(s.Price), s.URL})
	}
	t.Render()
}

// Length formats a length in metres, or "" when absent.
func Length(o models.Opt[float64]) string {
	return o.Format("%.2f m")
}

// Price formats a euro price, or "" when absent.
func Price(o models.Opt[float64]) string {
	return o.Format("%.0f €")
}

func euros(v float64) string {
	return fmt.Sprintf("%.0f €", v)
}

// Count is one entry of a ranked tally.
type Count struct {
	Key   string
	Count int
}

// Ranked orders a tally by descending count, then key.
func Ranked(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for k, n := range m {
		out = append(out, Count{k, n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}

func counts(w io.Writer, title string, m map[string]int) {
	if len(m) == 0 {
		return
	}
	t := NewTable(w)
	t.SetTitle(title)
	for _, c := range Ranked(m) {
		t.AppendRow(table.Row{c.Key, c.Count})
	}
	t.Render()
}
