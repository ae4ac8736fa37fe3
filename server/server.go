// Package server exposes the filter engine and the aggregation layer over
// HTTP as plain JSON, plus a small HTML summary page used for snapshots.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"immo-dashboard/config"
	"immo-dashboard/models"
	"immo-dashboard/services"
	"immo-dashboard/utils"
)

// DatasetProvider hands out the loaded dataset. *services.Loader satisfies it.
type DatasetProvider interface {
	Load(ctx context.Context) *models.Dataset
}

// Server wires the HTTP routes to the services.
type Server struct {
	cfg      *config.Config
	data     DatasetProvider
	filters  *services.FilterService
	insights *services.InsightService
	logger   *utils.Logger
	router   *mux.Router
}

// New creates a Server and registers its routes.
func New(cfg *config.Config, data DatasetProvider, logger *utils.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		data:     data,
		filters:  services.NewFilterService(logger),
		insights: services.NewInsightService(logger, cfg.HistogramBins, cfg.GeohashPrecision),
		logger:   logger,
		router:   mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router
	r.Use(requestID, s.accessLog, instrument)

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet).Name("health")
	r.HandleFunc("/", s.handlePage).Methods(http.MethodGet).Name("page")
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet).Name("metrics")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/options", s.handleOptions).Methods(http.MethodGet)
	api.HandleFunc("/listings", s.handleListings).Methods(http.MethodGet)
	api.HandleFunc("/aggregates", s.handleAggregates).Methods(http.MethodGet)
	api.HandleFunc("/correlation", s.handleCorrelation).Methods(http.MethodGet)
	api.HandleFunc("/distribution", s.handleDistribution).Methods(http.MethodGet)
	api.HandleFunc("/map", s.handleMap).Methods(http.MethodGet)
	api.HandleFunc("/dashboard", s.handleDashboard).Methods(http.MethodGet)
	api.HandleFunc("/export.csv", s.handleExport).Methods(http.MethodGet)
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.HTTPAddr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("[server] Listening on %s", s.cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("[server] Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("[server] Stopped")
	return nil
}
