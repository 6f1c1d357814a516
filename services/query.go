package services

import (
	"context"
	"slices"
	"strings"

	"sailboat-scraper/models"
)

// Query selects listings of one make. Every bound is inclusive and only
// applies when present; a listing missing the bounded field never matches.
type Query struct {
	Model   string
	MinYear models.Opt[int]
	MaxYear models.Opt[int]
	MinLOA  models.Opt[float64]
	MaxLOA  models.Opt[float64]
}

// QueryService answers queries over aggregated tables.
type QueryService struct {
	agg *Aggregator
}

func NewQueryService(agg *Aggregator) *QueryService {
	return &QueryService{agg: agg}
}

// Query aggregates brand if needed and returns the matching listings,
// cheapest first.
func (s *QueryService) Query(ctx context.Context, brand string, q Query) []models.Listing {
	table := s.agg.Aggregate(ctx, brand)
	return SortByPrice(Filter(table.Listings, q))
}

// Filter returns the listings matching q, keeping their order.
func Filter(listings []models.Listing, q Query) []models.Listing {
	model := strings.ToLower(q.Model)
	out := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		if model != "" {
			m, ok := l.Model.Get()
			if !ok || !strings.Contains(strings.ToLower(m), model) {
				continue
			}
		}
		if !within(l.Year, q.MinYear, q.MaxYear) || !within(l.LOA, q.MinLOA, q.MaxLOA) {
			continue
		}
		out = append(out, l)
	}
	return out
}

// SortByPrice orders listings by ascending price. Listings without a price
// sort last; ties keep their order.
func SortByPrice(listings []models.Listing) []models.Listing {
	slices.SortStableFunc(listings, func(a, b models.Listing) int {
		pa, okA := a.Price.Get()
		pb, okB := b.Price.Get()
		switch {
		case !okA && !okB:
			return 0
		case !okA:
			return 1
		case !okB:
			return -1
		case pa < pb:
			return -1
		case pa > pb:
			return 1
		}
		return 0
	})
	return listings
}

func within[T int | float64](v, lo, hi models.Opt[T]) bool {
	if !lo.IsSome() && !hi.IsSome() {
		return true
	}
	x, ok := v.Get()
	if !ok {
		return false
	}
	if bound, ok := lo.Get(); ok && x < bound {
		return false
	}
	if bound, ok := hi.Get(); ok && x > bound {
		return false
	}
	return true
}
