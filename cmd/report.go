package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"immo-dashboard/models"
	"immo-dashboard/services"
	"immo-dashboard/storage"
)

var (
	reportRegions    []string
	reportCities     []string
	reportRooms      []int
	reportPriceMin   float64
	reportPriceMax   float64
	reportSurfaceMin float64
	reportSurfaceMax float64
	reportExport     string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the market analysis for a selection to the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		src, release, err := openSource(ctx)
		if err != nil {
			return err
		}
		defer release()

		ds := services.NewLoader(src, logger).Load(ctx)
		if !ds.Available() {
			fmt.Fprintf(cmd.ErrOrStderr(), "⚠ %s\n", ds.Diagnostic)
		}

		sel := selectionFromFlags(cmd.Flags(), ds)
		view := services.NewFilterService(logger).Apply(ds, sel)

		insights := services.NewInsightService(logger, cfg.HistogramBins, cfg.GeohashPrecision)
		insights.Print(cmd.OutOrStdout(), insights.Generate(view))

		if reportExport != "" {
			w, err := storage.NewCSVFileWriter(reportExport)
			if err != nil {
				return err
			}
			if err := writeAll(ctx, w, view.Listings); err != nil {
				return err
			}
			logger.Info("[report] %d listings exported to %s", view.Len(), reportExport)
		}
		return nil
	},
}

// selectionFromFlags starts from the default selection and applies only the
// flags the user set.
func selectionFromFlags(flags *pflag.FlagSet, ds *models.Dataset) models.FilterSelection {
	sel := services.DefaultSelection(ds)
	sel.Regions = reportRegions
	sel.Cities = reportCities
	if flags.Changed("rooms") {
		sel.Rooms = reportRooms
	}
	if flags.Changed("price-min") {
		sel.Price.Min = reportPriceMin
	}
	if flags.Changed("price-max") {
		sel.Price.Max = reportPriceMax
	}
	if flags.Changed("surface-min") {
		sel.Surface.Min = reportSurfaceMin
	}
	if flags.Changed("surface-max") {
		sel.Surface.Max = reportSurfaceMax
	}
	return sel
}

func init() {
	f := reportCmd.Flags()
	f.StringSliceVar(&reportRegions, "region", nil, "regions to keep (repeatable)")
	f.StringSliceVar(&reportCities, "city", nil, "search cities to keep (repeatable)")
	f.IntSliceVar(&reportRooms, "rooms", nil, "room counts to keep (repeatable)")
	f.Float64Var(&reportPriceMin, "price-min", 0, "minimum price in euros")
	f.Float64Var(&reportPriceMax, "price-max", 0, "maximum price in euros (default: dataset maximum)")
	f.Float64Var(&reportSurfaceMin, "surface-min", 0, "minimum surface in m²")
	f.Float64Var(&reportSurfaceMax, "surface-max", 0, "maximum surface in m² (default: dataset maximum)")
	f.StringVar(&reportExport, "export", "", "also write the filtered listings to this CSV file")
	rootCmd.AddCommand(reportCmd)
}
