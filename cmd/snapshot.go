package cmd

import (
	"errors"
	"net"
	"net/http"

	"github.com/spf13/cobra"

	"immo-dashboard/server"
	"immo-dashboard/services"
	"immo-dashboard/snapshot"
)

var (
	snapshotBaseURL string
	snapshotOut     string
	snapshotServe   bool
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Save PNG screenshots of the dashboard, overall and per region",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if snapshotOut != "" {
			cfg.SnapshotDir = snapshotOut
		}
		baseURL := cfg.SnapshotBaseURL
		if snapshotBaseURL != "" {
			baseURL = snapshotBaseURL
		}

		src, release, err := openSource(ctx)
		if err != nil {
			return err
		}
		defer release()

		loader := services.NewLoader(src, logger)
		ds := loader.Load(ctx)

		if snapshotServe {
			ln, err := net.Listen("tcp", "127.0.0.1:0")
			if err != nil {
				return err
			}
			srv := &http.Server{Handler: server.New(cfg, loader, logger).Handler()}
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("[snapshot] Embedded server: %v", err)
				}
			}()
			defer srv.Close()
			baseURL = "http://" + ln.Addr().String() + "/"
		}

		targets, err := snapshot.Targets(baseURL, ds.Regions())
		if err != nil {
			return err
		}

		results, err := snapshot.New(cfg, logger).Capture(ctx, targets)
		for _, r := range results {
			if r.Err == nil {
				cmd.Printf("✓ %-24s %s\n", r.Target.Name, r.Path)
			} else {
				cmd.Printf("✗ %-24s %v\n", r.Target.Name, r.Err)
			}
		}
		return err
	},
}

func init() {
	f := snapshotCmd.Flags()
	f.StringVar(&snapshotBaseURL, "base-url", "", "dashboard URL to capture (overrides SNAPSHOT_BASE_URL)")
	f.StringVar(&snapshotOut, "out", "", "output directory (overrides SNAPSHOT_DIR)")
	f.BoolVar(&snapshotServe, "serve", false, "start an embedded server instead of using --base-url")
	rootCmd.AddCommand(snapshotCmd)
}
