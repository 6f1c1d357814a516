package services

import (
	"io"
	"testing"

	"sailboat-scraper/models"
	"sailboat-scraper/utils"
)

func TestCleanerNormalisesText(t *testing.T) {
	c := NewCleaner(utils.NewLoggerTo(io.Discard))
	out := c.Clean([]models.Listing{
		{Source: " Boat24 ", URL: " https://example.com/1 ", Model: models.Some("  Rasmus \n 35 "), Location: models.Some("\t")},
	})
	if len(out) != 1 {
		t.Fatalf("got %d listings, want 1", len(out))
	}
	l := out[0]
	if l.URL != "https://example.com/1" {
		t.Errorf("URL: got %q", l.URL)
	}
	if l.Source != "boat24" {
		t.Errorf("Source: got %q", l.Source)
	}
	if l.Model.Or("") != "Rasmus 35" {
		t.Errorf("Model: got %q", l.Model.Or(""))
	}
	if l.Location.IsSome() {
		t.Errorf("blank location should be absent, got %q", l.Location.Or(""))
	}
}

func TestCleanerDropsMissingURL(t *testing.T) {
	c := NewCleaner(utils.NewLoggerTo(io.Discard))
	out := c.Clean([]models.Listing{
		{Source: "boat24", URL: "   "},
		{Source: "boat24", URL: "https://example.com/a"},
		{Source: "yachtworld", URL: "https://example.com/a"},
	})
	if len(out) != 2 {
		t.Fatalf("got %d listings, want 2: same URL on two sites is kept", len(out))
	}
}

func TestCleanerKeepsZeroValues(t *testing.T) {
	c := NewCleaner(utils.NewLoggerTo(io.Discard))
	out := c.Clean([]models.Listing{{URL: "u", Price: models.Some(0.0), Year: models.Some(0)}})
	if !out[0].Price.IsSome() || !out[0].Year.IsSome() {
		t.Error("zero price and year must stay present")
	}
}
