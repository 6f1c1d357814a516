package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"sailboat-scraper/models"
)

var csvHeader = []string{"", "url", "model", "year", "loa", "location", "price"}

// CSVWriter exports each aggregated table to its own file in a directory,
// named after the make. It is safe for concurrent use.
type CSVWriter struct {
	mu  sync.Mutex
	dir string
}

// NewCSVWriter creates the output directory if needed.
func NewCSVWriter(dir string) (*CSVWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}
	return &CSVWriter{dir: dir}, nil
}

// ExportName is the file name for a make's listings, e.g.
// "listings-hallberg_rassy.csv".
func ExportName(brand string) string {
	return "listings-" + strings.ToLower(strings.ReplaceAll(brand, " ", "_")) + ".csv"
}

// Path is where the export for brand is written.
func (c *CSVWriter) Path(brand string) string {
	return filepath.Join(c.dir, ExportName(brand))
}

// Write replaces the make's export with the table. Rows carry a leading
// index column; absent values are empty cells.
func (c *CSVWriter) Write(_ context.Context, table *models.Table) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	path := c.Path(table.Make)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv: create file %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}
	for i, l := range table.Listings {
		row := []string{
			strconv.Itoa(i),
			l.URL,
			l.Model.Or(""),
			l.Year.Format("%d"),
			formatFloat(l.LOA),
			l.Location.Or(""),
			formatFloat(l.Price),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

func (c *CSVWriter) Close() error { return nil }

func formatFloat(o models.Opt[float64]) string {
	v, ok := o.Get()
	if !ok {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
