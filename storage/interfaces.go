package storage

import (
	"context"

	"sailboat-scraper/models"
)

// TableWriter is the interface any storage backend for aggregated
// listings must satisfy. Writers receive raw, unrounded values.
type TableWriter interface {
	Write(ctx context.Context, table *models.Table) error
	Close() error
}
