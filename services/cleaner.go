package services

import (
	"strings"
	"unicode"

	"sailboat-scraper/models"
	"sailboat-scraper/utils"
)

// Cleaner normalises the text fields of extracted listings. It never
// drops or merges listings from different sites.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean trims URLs, collapses whitespace in model and location, turns
// blank text into absent values and drops listings without a URL.
func (c *Cleaner) Clean(raw []models.Listing) []models.Listing {
	result := make([]models.Listing, 0, len(raw))

	for _, l := range raw {
		l.URL = strings.TrimSpace(l.URL)
		if l.URL == "" {
			c.logger.Warn("[cleaner] Dropping %s listing with empty URL", l.Source)
			continue
		}
		l.Source = strings.ToLower(strings.TrimSpace(l.Source))
		l.Model = normaliseOpt(l.Model)
		l.Location = normaliseOpt(l.Location)
		result = append(result, l)
	}

	if dropped := len(raw) - len(result); dropped > 0 {
		c.logger.Info("[cleaner] Cleaned %d → %d listings (dropped %d)", len(raw), len(result), dropped)
	}
	return result
}

func normaliseOpt(o models.Opt[string]) models.Opt[string] {
	s, ok := o.Get()
	if !ok {
		return o
	}
	s = normaliseText(s)
	if s == "" {
		return models.None[string]()
	}
	return models.Some(s)
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}
