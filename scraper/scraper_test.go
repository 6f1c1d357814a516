package scraper

import (
	"context"
	"strconv"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"sailboat-scraper/document"
	"sailboat-scraper/models"
)

// pagedAdapter serves pages "p1".."pN"; each page yields one listing.
type pagedAdapter struct {
	last  int
	cycle bool
}

func (p *pagedAdapter) Name() string { return "paged" }
func (p *pagedAdapter) SeedURL(string) string { return "https://paged.example/?p=1" }
func (p *pagedAdapter) page(doc *goquery.Document) int {
	n, _ := strconv.Atoi(doc.Url.Query().Get("p"))
	return n
}

func (p *pagedAdapter) Extract(_ context.Context, _ string, doc *goquery.Document) []models.Listing {
	return []models.Listing{{Source: "paged", URL: doc.Url.String()}}
}

func (p *pagedAdapter) NextURL(doc *goquery.Document) (string, bool) {
	n := p.page(doc)
	if p.cycle && n == p.last {
		return "https://paged.example/?p=1", true
	}
	if n >= p.last {
		return "", false
	}
	return "https://paged.example/?p=" + strconv.Itoa(n+1), true
}

type docSource struct{ fetched []string }

func (d *docSource) Document(_ context.Context, url string) *goquery.Document {
	d.fetched = append(d.fetched, url)
	return document.Parse(url, "<html></html>")
}

func TestCollectFollowsPagination(t *testing.T) {
	src := &docSource{}
	var pages []int
	got := Collect(context.Background(), &pagedAdapter{last: 3}, src, "Swan", quietLogger(),
		func(_, _ string, page int) { pages = append(pages, page) })

	require.Len(t, got, 3)
	require.Equal(t, []int{1, 2, 3}, pages)
	require.Equal(t, "https://paged.example/?p=3", got[2].URL)
}

func TestCollectStopsOnCycle(t *testing.T) {
	src := &docSource{}
	got := Collect(context.Background(), &pagedAdapter{last: 2, cycle: true}, src, "Swan", quietLogger(), nil)
	require.Len(t, got, 2)
	require.Len(t, src.fetched, 2)
}

func TestCollectHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	src := &docSource{}
	got := Collect(ctx, &pagedAdapter{last: 5}, src, "Swan", quietLogger(), nil)
	require.Empty(t, got)
	require.Empty(t, src.fetched)
}
