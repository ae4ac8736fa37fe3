package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// DefaultDatasetFile is looked up next to the executable when DATASET_PATH
// is not set.
const DefaultDatasetFile = "dataset_final.csv"

// Config holds all application configuration loaded from environment variables.
type Config struct {
	DatasetPath string
	DataSource  string // csv | postgres

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	HTTPAddr  string
	LogLevel  string
	LogFormat string

	HistogramBins    int
	GeohashPrecision int
	MaxRetries       int

	ChromeBin           string
	SnapshotDir         string
	SnapshotBaseURL     string
	SnapshotConcurrency int
	SnapshotRateLimitMs int
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		DatasetPath: getEnv("DATASET_PATH", defaultDatasetPath()),
		DataSource:  getEnv("DATA_SOURCE", "csv"),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "immo"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "immo123"),
		PostgresDB:       getEnv("POSTGRES_DB", "immo_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		HTTPAddr:  getEnv("HTTP_ADDR", ":8501"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),

		HistogramBins:    getEnvInt("HISTOGRAM_BINS", 20),
		GeohashPrecision: getEnvInt("GEOHASH_PRECISION", 5),
		MaxRetries:       getEnvInt("MAX_RETRIES", 3),

		ChromeBin:           getEnv("CHROME_BIN", ""),
		SnapshotDir:         getEnv("SNAPSHOT_DIR", "./output/snapshots"),
		SnapshotBaseURL:     getEnv("SNAPSHOT_BASE_URL", "http://localhost:8501/"),
		SnapshotConcurrency: getEnvInt("SNAPSHOT_CONCURRENCY", 2),
		SnapshotRateLimitMs: getEnvInt("SNAPSHOT_RATE_LIMIT_MS", 500),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

// defaultDatasetPath resolves the dataset relative to the program's own
// location, falling back to the working directory.
func defaultDatasetPath() string {
	exe, err := os.Executable()
	if err != nil {
		return DefaultDatasetFile
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), DefaultDatasetFile)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
