package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"

	"sailboat-scraper/models"
	"sailboat-scraper/utils"
)

const insertColumns = 9

// PostgresWriter keeps every aggregation run's listings in PostgreSQL,
// keyed by run id.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, retrying until the
// server answers, runs schema migrations and returns a ready writer.
func NewPostgresWriter(ctx context.Context, dsn string, retry *utils.RetryConfig) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := retry.Do(ctx, "postgres ping", func() error { return db.PingContext(ctx) }); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}
	return pw, nil
}

func (pw *PostgresWriter) migrate(ctx context.Context) error {
	_, err := pw.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS boat_listings (
			id         SERIAL PRIMARY KEY,
			run_id     UUID          NOT NULL,
			make       TEXT          NOT NULL,
			source     VARCHAR(50)   NOT NULL,
			url        TEXT          NOT NULL,
			model      TEXT,
			year       INTEGER,
			loa        NUMERIC(6,2),
			location   TEXT,
			price      NUMERIC(12,2),
			scraped_at TIMESTAMPTZ   NOT NULL DEFAULT NOW(),
			UNIQUE (run_id, url)
		);

		CREATE INDEX IF NOT EXISTS idx_boat_listings_make   ON boat_listings(make);
		CREATE INDEX IF NOT EXISTS idx_boat_listings_price  ON boat_listings(price);
		CREATE INDEX IF NOT EXISTS idx_boat_listings_source ON boat_listings(source);
	`)
	return err
}

// Write batch-inserts the table's listings under its run id.
func (pw *PostgresWriter) Write(ctx context.Context, table *models.Table) error {
	const batchSize = 50
	for i := 0; i < len(table.Listings); i += batchSize {
		end := min(i+batchSize, len(table.Listings))
		if err := pw.insertBatch(ctx, table, table.Listings[i:end]); err != nil {
			return fmt.Errorf("postgres: insert: %w", err)
		}
	}
	return nil
}

func (pw *PostgresWriter) insertBatch(ctx context.Context, table *models.Table, batch []models.Listing) error {
	query, args := insertStatement(table, batch)
	_, err := pw.db.ExecContext(ctx, query, args...)
	return err
}

func insertStatement(table *models.Table, batch []models.Listing) (string, []any) {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]any, 0, len(batch)*insertColumns)

	for idx, l := range batch {
		base := idx * insertColumns
		holders := make([]string, insertColumns)
		for j := range holders {
			holders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(holders, ",")+")")
		valueArgs = append(valueArgs,
			table.RunID, table.Make, l.Source, l.URL,
			nullable(l.Model), nullable(l.Year), nullable(l.LOA), nullable(l.Location), nullable(l.Price))
	}

	query := fmt.Sprintf(`
		INSERT INTO boat_listings (run_id, make, source, url, model, year, loa, location, price)
		VALUES %s
		ON CONFLICT (run_id, url) DO NOTHING
	`, strings.Join(valueStrings, ","))
	return query, valueArgs
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

// nullable maps an absent value to SQL NULL.
func nullable[T any](o models.Opt[T]) any {
	v, ok := o.Get()
	if !ok {
		return nil
	}
	return v
}
