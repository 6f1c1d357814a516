package services

import (
	"math"

	"sailboat-scraper/models"
	"sailboat-scraper/utils"
)

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Generate summarises listings. Price statistics cover priced listings
// only; a listing without a model or location is not counted under one.
func (s *InsightService) Generate(listings []models.Listing) *models.InsightReport {
	report := &models.InsightReport{
		ListingsBySource:   make(map[string]int),
		ListingsByModel:    make(map[string]int),
		ListingsByLocation: make(map[string]int),
	}

	if len(listings) == 0 {
		return report
	}

	report.TotalListings = len(listings)

	var total float64
	for i := range listings {
		l := &listings[i]
		report.ListingsBySource[l.Source]++
		if m, ok := l.Model.Get(); ok {
			report.ListingsByModel[m]++
		}
		if loc, ok := l.Location.Get(); ok {
			report.ListingsByLocation[loc]++
		}

		price, ok := l.Price.Get()
		if !ok {
			continue
		}
		report.PricedListings++
		total += price
		if report.Cheapest == nil || price < report.MinPrice {
			report.MinPrice = price
			report.Cheapest = l
		}
		if report.MostExpensive == nil || price > report.MaxPrice {
			report.MaxPrice = price
			report.MostExpensive = l
		}
	}

	if report.PricedListings > 0 {
		report.AveragePrice = round2(total / float64(report.PricedListings))
		report.MinPrice = round2(report.MinPrice)
		report.MaxPrice = round2(report.MaxPrice)
	}

	s.logger.Debug("[insights] %d listings, %d priced", report.TotalListings, report.PricedListings)
	return report
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
