package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"immo-dashboard/services"
	"immo-dashboard/storage"
)

var importFrom string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load the CSV dataset into PostgreSQL",
	Long: `import reads the listings CSV, cleans it the same way the dashboard does and
replaces the contents of the PostgreSQL listings table with it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		path := cfg.DatasetPath
		if importFrom != "" {
			path = importFrom
		}

		ds := services.NewLoader(storage.NewCSVReader(path), logger).Load(ctx)
		if !ds.Available() {
			return fmt.Errorf("import: %s", ds.Diagnostic)
		}

		store, err := storage.NewPostgresStore(ctx, cfg.DSN(), cfg.MaxRetries, logger)
		if err != nil {
			logger.Error("[import] Make sure PostgreSQL is running: docker compose up -d")
			return err
		}
		if err := writeAll(ctx, store, ds.Listings); err != nil {
			return err
		}
		logger.Info("[import] %d listings stored in PostgreSQL (table: listings)", ds.Len())
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importFrom, "from", "", "CSV file to import (default: the configured dataset)")
	rootCmd.AddCommand(importCmd)
}
