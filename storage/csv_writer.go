package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"immo-dashboard/models"
)

// CSVWriter writes listings in the dataset's own column layout.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	closer io.Closer
	writer *csv.Writer
}

// NewCSVWriter wraps w and writes the header row.
func NewCSVWriter(w io.Writer) (*CSVWriter, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, fmt.Errorf("csv: write header: %w", err)
	}

	c := &CSVWriter{writer: cw}
	if closer, ok := w.(io.Closer); ok {
		c.closer = closer
	}
	return c, nil
}

// NewCSVFileWriter creates (or truncates) the file at path. Intermediate
// directories are created automatically.
func NewCSVFileWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	c, err := NewCSVWriter(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return c, nil
}

// Write appends one row per listing.
func (c *CSVWriter) Write(ctx context.Context, listings []*models.Listing) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, l := range listings {
		if err := ctx.Err(); err != nil {
			return err
		}
		row := []string{
			l.SearchCity,
			l.City,
			l.Type,
			formatFloat(l.Price),
			formatFloat(l.SurfaceM2),
			strconv.Itoa(l.Rooms),
			formatFloat(l.Latitude),
			formatFloat(l.Longitude),
			formatFloat(l.PriceM2),
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying writer when it is closable.
func (c *CSVWriter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.writer.Flush()
	if c.closer != nil {
		return c.closer.Close()
	}
	return c.writer.Error()
}

// formatFloat writes a missing value as an empty cell.
func formatFloat(f float64) string {
	if models.Missing(f) {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
