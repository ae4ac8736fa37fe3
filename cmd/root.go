package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"immo-dashboard/config"
	"immo-dashboard/models"
	"immo-dashboard/storage"
	"immo-dashboard/utils"
)

var (
	flagDataset   string
	flagSource    string
	flagLogLevel  string
	flagLogFormat string

	cfg    *config.Config
	logger *utils.Logger
)

var rootCmd = &cobra.Command{
	Use:   "immo-dashboard",
	Short: "Explore scraped French real-estate listings",
	Long: `immo-dashboard loads a dataset of real-estate listings, lets you narrow it
by region, city, price, surface and room count, and reports counts, price
statistics, the surface/price correlation, distributions and a price map.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		loadConfig(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute is the entry point called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&flagDataset, "dataset", "", "path to the listings CSV (overrides DATASET_PATH)")
	f.StringVar(&flagSource, "source", "", "listing source: csv or postgres (overrides DATA_SOURCE)")
	f.StringVar(&flagLogLevel, "log-level", "", "debug, info, warn or error (overrides LOG_LEVEL)")
	f.StringVar(&flagLogFormat, "log-format", "", "console or json (overrides LOG_FORMAT)")
}

func loadConfig(cmd *cobra.Command) {
	cfg = config.Load()

	f := cmd.Root().PersistentFlags()
	if f.Changed("dataset") {
		cfg.DatasetPath = flagDataset
	}
	if f.Changed("source") {
		cfg.DataSource = flagSource
	}
	if f.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	if f.Changed("log-format") {
		cfg.LogFormat = flagLogFormat
	}

	logger = utils.NewLoggerWithConfig(cfg.LogLevel, cfg.LogFormat)
}

// unavailableSource stands in for a source that could not be opened, so the
// loader reports it through the usual degraded path.
type unavailableSource struct {
	name string
	err  error
}

func (s unavailableSource) Load(ctx context.Context) ([]*models.Listing, error) {
	return nil, fmt.Errorf("%w: %w", storage.ErrDataUnavailable, s.err)
}

func (s unavailableSource) Name() string { return s.name }

// openSource returns the configured listing source and a function releasing
// it. An unreachable database yields a source whose Load fails with
// ErrDataUnavailable.
func openSource(ctx context.Context) (storage.ListingSource, func(), error) {
	switch cfg.DataSource {
	case "", "csv":
		return storage.NewCSVReader(cfg.DatasetPath), func() {}, nil
	case "postgres":
		store, err := storage.NewPostgresStore(ctx, cfg.DSN(), cfg.MaxRetries, logger)
		if err != nil {
			logger.Warn("[source] postgres unreachable: %v", err)
			return unavailableSource{name: "postgres:listings", err: err}, func() {}, nil
		}
		return store, func() { _ = store.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown data source %q (want csv or postgres)", cfg.DataSource)
	}
}

// writeAll writes listings to w and always closes it.
func writeAll(ctx context.Context, w storage.ListingWriter, listings []*models.Listing) error {
	err := w.Write(ctx, listings)
	return errors.Join(err, w.Close())
}
