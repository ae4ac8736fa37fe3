package config

import (
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATASET_PATH", "")
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("HISTOGRAM_BINS", "")

	cfg := Load()
	if filepath.Base(cfg.DatasetPath) != DefaultDatasetFile {
		t.Errorf("DatasetPath: got %q, want basename %q", cfg.DatasetPath, DefaultDatasetFile)
	}
	if cfg.DataSource != "csv" {
		t.Errorf("DataSource: got %q, want csv", cfg.DataSource)
	}
	if cfg.HistogramBins != 20 {
		t.Errorf("HistogramBins: got %d, want 20", cfg.HistogramBins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATASET_PATH", "/data/listings.csv")
	t.Setenv("HISTOGRAM_BINS", "8")
	t.Setenv("GEOHASH_PRECISION", "not-a-number")

	cfg := Load()
	if cfg.DatasetPath != "/data/listings.csv" {
		t.Errorf("DatasetPath: got %q", cfg.DatasetPath)
	}
	if cfg.HistogramBins != 8 {
		t.Errorf("HistogramBins: got %d, want 8", cfg.HistogramBins)
	}
	if cfg.GeohashPrecision != 5 {
		t.Errorf("GeohashPrecision: got %d, want fallback 5", cfg.GeohashPrecision)
	}
}

func TestDSN(t *testing.T) {
	c := &Config{
		PostgresHost: "db", PostgresPort: "5432", PostgresUser: "u",
		PostgresPassword: "p", PostgresDB: "immo", PostgresSSLMode: "disable",
	}
	want := "host=db port=5432 user=u password=p dbname=immo sslmode=disable"
	if got := c.DSN(); got != want {
		t.Errorf("DSN: got %q, want %q", got, want)
	}
}
