package storage

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"immo-dashboard/models"
	"immo-dashboard/utils"
)

const insertBatchSize = 50

// PostgresStore persists listings to PostgreSQL and can serve them back as
// a ListingSource.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection to PostgreSQL, waits for it to answer,
// runs schema migrations and returns a ready-to-use store.
func NewPostgresStore(ctx context.Context, dsn string, maxRetries int, logger *utils.Logger) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	retry := &utils.RetryConfig{MaxAttempts: maxRetries, BaseDelay: time.Second, Logger: logger}
	if err := retry.Do(ctx, "postgres-ping", func() error { return db.PingContext(ctx) }); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	ps := NewPostgresStoreWithDB(db)
	if err := ps.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}
	return ps, nil
}

// NewPostgresStoreWithDB wraps an already opened handle.
func NewPostgresStoreWithDB(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Name identifies the source in diagnostics.
func (ps *PostgresStore) Name() string {
	return "postgres:listings"
}

// Migrate creates the listings table and its indexes when missing.
func (ps *PostgresStore) Migrate(ctx context.Context) error {
	_, err := ps.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS listings (
			id          SERIAL PRIMARY KEY,
			search_city TEXT           NOT NULL DEFAULT '',
			city        TEXT           NOT NULL DEFAULT '',
			region      TEXT           NOT NULL DEFAULT '',
			type        TEXT           NOT NULL DEFAULT '',
			price       NUMERIC(14,2),
			surface_m2  NUMERIC(10,2),
			rooms       INTEGER        NOT NULL DEFAULT 0,
			latitude    DOUBLE PRECISION,
			longitude   DOUBLE PRECISION,
			price_m2    NUMERIC(12,2)
		);

		CREATE INDEX IF NOT EXISTS idx_listings_search_city ON listings(search_city);
		CREATE INDEX IF NOT EXISTS idx_listings_region      ON listings(region);
		CREATE INDEX IF NOT EXISTS idx_listings_price       ON listings(price);
	`)
	return err
}

// Clear deletes all existing listings from the table.
func (ps *PostgresStore) Clear(ctx context.Context) error {
	if _, err := ps.db.ExecContext(ctx, "DELETE FROM listings"); err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}
	return nil
}

// Write replaces the table contents with listings, inserted in batches
// inside one transaction so row order is kept through the serial id.
func (ps *PostgresStore) Write(ctx context.Context, listings []*models.Listing) error {
	if len(listings) == 0 {
		return nil
	}

	tx, err := ps.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM listings"); err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}

	for i := 0; i < len(listings); i += insertBatchSize {
		end := i + insertBatchSize
		if end > len(listings) {
			end = len(listings)
		}
		if err := insertBatch(ctx, tx, listings[i:end]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

const listingColumns = 10

func insertBatch(ctx context.Context, tx *sql.Tx, batch []*models.Listing) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*listingColumns)

	for idx, l := range batch {
		base := idx * listingColumns
		ph := make([]string, listingColumns)
		for j := range ph {
			ph[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(ph, ",")+")")
		valueArgs = append(valueArgs,
			l.SearchCity, l.City, l.Region, l.Type, nullFloat(l.Price),
			nullFloat(l.SurfaceM2), l.Rooms, nullFloat(l.Latitude), nullFloat(l.Longitude), nullFloat(l.PriceM2))
	}

	query := fmt.Sprintf(`
		INSERT INTO listings (search_city, city, region, type, price, surface_m2, rooms, latitude, longitude, price_m2)
		VALUES %s
	`, strings.Join(valueStrings, ","))

	if _, err := tx.ExecContext(ctx, query, valueArgs...); err != nil {
		return fmt.Errorf("postgres: insert batch: %w", err)
	}
	return nil
}

// Load retrieves every stored listing in insertion order. Any failure is
// reported as ErrDataUnavailable.
func (ps *PostgresStore) Load(ctx context.Context) ([]*models.Listing, error) {
	rows, err := ps.db.QueryContext(ctx, `
		SELECT id, search_city, city, type, price, surface_m2, rooms, latitude, longitude, price_m2
		FROM listings
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w: %w", ErrDataUnavailable, err)
	}
	defer rows.Close()

	var listings []*models.Listing
	for rows.Next() {
		l := &models.Listing{}
		var price, surface, lat, lon, priceM2 sql.NullFloat64
		if err := rows.Scan(
			&l.ID, &l.SearchCity, &l.City, &l.Type, &price,
			&surface, &l.Rooms, &lat, &lon, &priceM2,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w: %w", ErrDataUnavailable, err)
		}
		l.Price, l.SurfaceM2 = floatOrMissing(price), floatOrMissing(surface)
		l.Latitude, l.Longitude = floatOrMissing(lat), floatOrMissing(lon)
		l.PriceM2 = floatOrMissing(priceM2)
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterate rows: %w: %w", ErrDataUnavailable, err)
	}
	return listings, nil
}

// nullFloat stores a missing value as NULL.
func nullFloat(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: !models.Missing(v)}
}

func floatOrMissing(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}

// Close closes the database handle.
func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
