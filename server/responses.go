package server

import (
	"encoding/json"
	"math"
	"net/http"
	"sort"

	"immo-dashboard/models"
)

// viewMeta accompanies every view-based response so clients can tell an
// empty result apart from an unavailable dataset.
type viewMeta struct {
	Rows       int    `json:"rows"`
	Total      int    `json:"total"`
	Filtered   bool   `json:"filtered"`
	Empty      bool   `json:"empty"`
	Diagnostic string `json:"diagnostic,omitempty"`
}

func metaOf(ds *models.Dataset, view *models.FilteredView) viewMeta {
	return viewMeta{
		Rows:       view.Len(),
		Total:      view.Total,
		Filtered:   view.Filtered,
		Empty:      view.IsEmpty(),
		Diagnostic: ds.Diagnostic,
	}
}

type healthResponse struct {
	Status     string `json:"status"`
	Source     string `json:"source"`
	Rows       int    `json:"rows"`
	Diagnostic string `json:"diagnostic,omitempty"`
}

type optionsResponse struct {
	models.FilterOptions
	Diagnostic string `json:"diagnostic,omitempty"`
}

type listingsResponse struct {
	viewMeta
	Listings []*models.Listing `json:"listings"`
}

type crossTabResponse struct {
	Cities []string `json:"cities"`
	Types  []string `json:"types"`
	Counts [][]int  `json:"counts"`
}

type cityStats struct {
	City string `json:"city"`
	models.PriceStats
}

type cityTypeStats struct {
	City string `json:"city"`
	Type string `json:"type"`
	models.PriceStats
}

type aggregatesResponse struct {
	viewMeta
	Counts             crossTabResponse `json:"counts"`
	PriceM2ByCity      []cityStats      `json:"price_m2_by_city"`
	PriceByCityAndType []cityTypeStats  `json:"price_by_city_and_type"`
}

type correlationBody struct {
	X        models.Field  `json:"x"`
	Y        models.Field  `json:"y"`
	R        *float64      `json:"r"`
	Defined  bool          `json:"defined"`
	Strength string        `json:"strength,omitempty"`
	Trend    *models.Trend `json:"trend,omitempty"`
}

type correlationResponse struct {
	viewMeta
	correlationBody
}

type distributionResponse struct {
	viewMeta
	Box       map[string]models.BoxStats  `json:"box"`
	Histogram map[string]models.Histogram `json:"histogram"`
}

type mapResponse struct {
	viewMeta
	Map *models.MapView `json:"map"`
}

type dashboardResponse struct {
	viewMeta
	Counts             crossTabResponse            `json:"counts"`
	PriceM2ByCity      []cityStats                 `json:"price_m2_by_city"`
	PriceByCityAndType []cityTypeStats             `json:"price_by_city_and_type"`
	Correlation        correlationBody             `json:"correlation"`
	Box                map[string]models.BoxStats  `json:"box"`
	Histogram          map[string]models.Histogram `json:"histogram"`
	Map                *models.MapView             `json:"map"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func crossTabOf(tab *models.CrossTab) crossTabResponse {
	return crossTabResponse{Cities: tab.Cities, Types: tab.Types, Counts: tab.Matrix()}
}

func cityStatsOf(m map[string]models.PriceStats) []cityStats {
	out := make([]cityStats, 0, len(m))
	for city, st := range m {
		out = append(out, cityStats{City: city, PriceStats: st})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].City < out[j].City })
	return out
}

func cityTypeStatsOf(m map[models.CityType]models.PriceStats) []cityTypeStats {
	out := make([]cityTypeStats, 0, len(m))
	for key, st := range m {
		out = append(out, cityTypeStats{City: key.City, Type: key.Type, PriceStats: st})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].City != out[j].City {
			return out[i].City < out[j].City
		}
		return out[i].Type < out[j].Type
	})
	return out
}

// correlationOf replaces an undefined coefficient with null; NaN has no
// JSON encoding.
func correlationOf(c models.Correlation) correlationBody {
	body := correlationBody{
		X:        c.X,
		Y:        c.Y,
		Defined:  c.Defined,
		Strength: c.Strength,
		Trend:    c.Trend,
	}
	if c.Defined && !math.IsNaN(c.R) {
		r := c.R
		body.R = &r
	}
	return body
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, RequestID: RequestID(r.Context())})
}
