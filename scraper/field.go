package scraper

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"sailboat-scraper/models"
	"sailboat-scraper/observability"
	"sailboat-scraper/utils"
)

// ErrMissing reports an element or value that is not on the page.
var ErrMissing = errors.New("missing")

// Field runs extract and turns any error or panic into an absent value, so
// one malformed field never costs the rest of its record or page. Failures
// are logged at debug level.
func Field[T any](logger *utils.Logger, name string, extract func() (T, error)) (out models.Opt[T]) {
	defer func() {
		if r := recover(); r != nil {
			fail(logger, name, fmt.Errorf("panic: %v", r))
			out = models.None[T]()
		}
	}()

	v, err := extract()
	if err != nil {
		fail(logger, name, err)
		return models.None[T]()
	}
	return models.Some(v)
}

func fail(logger *utils.Logger, name string, err error) {
	observability.FieldFailures.WithLabelValues(name).Inc()
	if logger != nil {
		logger.Debug("[extract] %s FAILED with %v", name, err)
	}
}

// At returns values[i], or ErrMissing when the page had fewer elements.
func At[T any](values []T, i int) (T, error) {
	var zero T
	if i < 0 || i >= len(values) {
		return zero, fmt.Errorf("index %d of %d: %w", i, len(values), ErrMissing)
	}
	return values[i], nil
}

// StripMake removes every occurrence of make from model text.
func StripMake(model, brand string) string {
	if brand == "" {
		return strings.TrimSpace(model)
	}
	return strings.TrimSpace(strings.ReplaceAll(model, brand, ""))
}

// FoldStripper returns a function removing brand from model text ignoring
// case. Build it once per page; the pattern is compiled here.
func FoldStripper(brand string) func(model string) string {
	if brand == "" {
		return strings.TrimSpace
	}
	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(brand))
	return func(model string) string {
		return strings.TrimSpace(re.ReplaceAllString(model, ""))
	}
}

// FirstToken returns the first whitespace-delimited token of s.
func FirstToken(s string) (string, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return "", ErrMissing
	}
	return fields[0], nil
}

// NonEmpty rejects blank strings.
func NonEmpty(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrMissing
	}
	return s, nil
}
