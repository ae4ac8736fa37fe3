package server

import (
	"net/http"

	"immo-dashboard/models"
	"immo-dashboard/services"
	"immo-dashboard/storage"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ds := s.data.Load(r.Context())
	resp := healthResponse{Status: "ok", Source: ds.Source, Rows: ds.Len()}
	if !ds.Available() {
		resp.Status = "degraded"
		resp.Diagnostic = ds.Diagnostic
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	ds := s.data.Load(r.Context())
	regions := multi(r.URL.Query(), "region")
	writeJSON(w, http.StatusOK, optionsResponse{
		FilterOptions: services.Options(ds, regions),
		Diagnostic:    ds.Diagnostic,
	})
}

// view loads the dataset and applies the request's selection. On a bad
// selection it writes a 400 and returns false.
func (s *Server) view(w http.ResponseWriter, r *http.Request) (*models.Dataset, *models.FilteredView, bool) {
	ds := s.data.Load(r.Context())
	sel, err := parseSelection(r.URL.Query(), ds)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return nil, nil, false
	}
	return ds, s.filters.Apply(ds, sel), true
}

func (s *Server) handleListings(w http.ResponseWriter, r *http.Request) {
	ds, view, ok := s.view(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, listingsResponse{viewMeta: metaOf(ds, view), Listings: view.Listings})
}

func (s *Server) handleAggregates(w http.ResponseWriter, r *http.Request) {
	ds, view, ok := s.view(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, aggregatesResponse{
		viewMeta:           metaOf(ds, view),
		Counts:             crossTabOf(services.CountsByCityAndType(view)),
		PriceM2ByCity:      cityStatsOf(services.PriceStatsByCity(view)),
		PriceByCityAndType: cityTypeStatsOf(services.PriceStatsByCityAndType(view)),
	})
}

func (s *Server) handleCorrelation(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	x, err := parseFieldParam(q, "x", models.FieldSurface)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	y, err := parseFieldParam(q, "y", models.FieldPrice)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ds, view, ok := s.view(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, correlationResponse{
		viewMeta:        metaOf(ds, view),
		correlationBody: correlationOf(services.Correlate(view, x, y)),
	})
}

func (s *Server) handleDistribution(w http.ResponseWriter, r *http.Request) {
	bins, err := parseIntParam(r.URL.Query(), "bins", s.cfg.HistogramBins)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ds, view, ok := s.view(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, distributionResponse{
		viewMeta:  metaOf(ds, view),
		Box:       services.PriceBoxByRegion(view),
		Histogram: services.PriceHistogramByRegion(view, bins),
	})
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	ds, view, ok := s.view(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, mapResponse{
		viewMeta: metaOf(ds, view),
		Map:      services.BuildMapView(view, s.cfg.GeohashPrecision),
	})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ds, view, ok := s.view(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.dashboardOf(ds, view))
}

func (s *Server) dashboardOf(ds *models.Dataset, view *models.FilteredView) dashboardResponse {
	d := s.insights.Generate(view)
	return dashboardResponse{
		viewMeta:           metaOf(ds, view),
		Counts:             crossTabOf(d.Counts),
		PriceM2ByCity:      cityStatsOf(d.PriceM2ByCity),
		PriceByCityAndType: cityTypeStatsOf(d.PriceByCityAndType),
		Correlation:        correlationOf(d.Correlation),
		Box:                d.PriceBoxByRegion,
		Histogram:          d.PriceHistogramByRegion,
		Map:                d.Map,
	}
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	_, view, ok := s.view(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="listings.csv"`)
	cw, err := storage.NewCSVWriter(w)
	if err != nil {
		s.logger.Error("[server] Export header failed: %v", err)
		return
	}
	if err := cw.Write(r.Context(), view.Listings); err != nil {
		s.logger.Error("[server] Export failed after headers were sent: %v", err)
	}
}
