package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"sailboat-scraper/models"
	"sailboat-scraper/scraper"
	"sailboat-scraper/storage"
	"sailboat-scraper/utils"
)

// Aggregator runs every adapter for a make and combines their listings
// into one table.
type Aggregator struct {
	adapters []scraper.Adapter
	docs     scraper.DocumentSource
	cleaner  *Cleaner
	sinks    []storage.TableWriter
	memoize  bool
	logger   *utils.Logger
	onPage   scraper.PageFunc

	mu     sync.Mutex
	tables map[string]*models.Table
}

// AggregatorOptions configures an Aggregator.
type AggregatorOptions struct {
	// Sinks receive each freshly built table with raw values, in order.
	Sinks []storage.TableWriter
	// Memoize keeps built tables for the life of the Aggregator.
	Memoize bool
	// OnPage reports pagination progress.
	OnPage scraper.PageFunc
}

// NewAggregator creates an Aggregator over adapters, run in the given order.
func NewAggregator(adapters []scraper.Adapter, docs scraper.DocumentSource, logger *utils.Logger, opts AggregatorOptions) *Aggregator {
	return &Aggregator{
		adapters: adapters,
		docs:     docs,
		cleaner:  NewCleaner(logger),
		sinks:    opts.Sinks,
		memoize:  opts.Memoize,
		logger:   logger,
		onPage:   opts.OnPage,
		tables:   make(map[string]*models.Table),
	}
}

// Aggregate returns the listing table for brand with LOA rounded to two
// decimals and price to whole euros. The raw table is handed to every sink
// first; sink failures are logged and do not fail the aggregation. A run
// cut short by ctx is returned as far as it got but neither stored nor
// memoized.
func (a *Aggregator) Aggregate(ctx context.Context, brand string) *models.Table {
	if a.memoize {
		a.mu.Lock()
		t, ok := a.tables[brand]
		a.mu.Unlock()
		if ok {
			a.logger.Debug("[aggregate] Reusing table for %s", brand)
			return t
		}
	}

	raw := &models.Table{Make: brand, RunID: uuid.NewString()}
	a.logger.Info("[aggregate] Run %s for %s across %d sources", raw.RunID, brand, len(a.adapters))

	for _, adapter := range a.adapters {
		found := scraper.Collect(ctx, adapter, a.docs, brand, a.logger, a.onPage)
		raw.Listings = append(raw.Listings, a.cleaner.Clean(found)...)
	}
	raw.BuiltAt = time.Now()
	a.logger.Info("[aggregate] %d listings for %s", len(raw.Listings), brand)

	if err := ctx.Err(); err != nil {
		a.logger.Warn("[aggregate] Run %s interrupted (%v), not storing or keeping its %d listings", raw.RunID, err, len(raw.Listings))
		return raw.Rounded()
	}

	for _, sink := range a.sinks {
		if err := sink.Write(ctx, raw); err != nil {
			a.logger.Error("[aggregate] Storing run %s failed: %v", raw.RunID, err)
		}
	}

	table := raw.Rounded()
	if a.memoize {
		a.mu.Lock()
		a.tables[brand] = table
		a.mu.Unlock()
	}
	return table
}
