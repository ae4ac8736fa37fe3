package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"immo-dashboard/server"
	"immo-dashboard/services"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard API and summary page",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("addr") {
			cfg.HTTPAddr = flagAddr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		src, release, err := openSource(ctx)
		if err != nil {
			return err
		}
		defer release()

		loader := services.NewLoader(src, logger)
		if ds := loader.Load(ctx); !ds.Available() {
			logger.Warn("[serve] Serving without data: %s", ds.Diagnostic)
		}

		return server.New(cfg, loader, logger).Run(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "listen address (overrides HTTP_ADDR)")
	rootCmd.AddCommand(serveCmd)
}
