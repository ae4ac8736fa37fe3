package services

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"immo-dashboard/models"
	"immo-dashboard/utils"
)

// InsightService turns a filtered view into every dashboard output.
type InsightService struct {
	logger           *utils.Logger
	histogramBins    int
	geohashPrecision int
}

// NewInsightService creates an InsightService. Non-positive bins or
// precision fall back to 20 and 5.
func NewInsightService(logger *utils.Logger, histogramBins, geohashPrecision int) *InsightService {
	if histogramBins < 1 {
		histogramBins = 20
	}
	if geohashPrecision < 1 {
		geohashPrecision = 5
	}
	return &InsightService{
		logger:           logger,
		histogramBins:    histogramBins,
		geohashPrecision: geohashPrecision,
	}
}

// Generate computes the dashboard for view. An empty view produces empty
// tables, an undefined correlation and no map.
func (s *InsightService) Generate(view *models.FilteredView) *models.Dashboard {
	d := &models.Dashboard{
		Rows:                   view.Len(),
		Total:                  view.Total,
		Empty:                  view.IsEmpty(),
		Counts:                 CountsByCityAndType(view),
		PriceM2ByCity:          PriceStatsByCity(view),
		PriceByCityAndType:     PriceStatsByCityAndType(view),
		Correlation:            Correlate(view, models.FieldSurface, models.FieldPrice),
		PriceBoxByRegion:       PriceBoxByRegion(view),
		PriceHistogramByRegion: PriceHistogramByRegion(view, s.histogramBins),
		Map:                    BuildMapView(view, s.geohashPrecision),
	}

	if d.Empty {
		s.logger.Debug("[insights] No data for the current selection")
	} else {
		s.logger.Debug("[insights] Dashboard built over %d/%d listings", d.Rows, d.Total)
	}
	return d
}

// Print renders the dashboard tables to w.
func (s *InsightService) Print(w io.Writer, d *models.Dashboard) {
	sep := strings.Repeat("═", 64)
	thin := strings.Repeat("─", 64)

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  REAL-ESTATE MARKET ANALYSIS\033[0m\n")
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	fmt.Fprintf(w, "  Listings in view : \033[1m%d\033[0m / %d\n\n", d.Rows, d.Total)
	if d.Empty {
		fmt.Fprintf(w, "  \033[1;33mNo data for the selected filters.\033[0m\n\n")
		return
	}

	fmt.Fprintf(w, "\033[1;33m  Listings by city and type\033[0m\n  %s\n", thin)
	fmt.Fprintf(w, "  %-14s", "")
	for _, typ := range d.Counts.Types {
		fmt.Fprintf(w, " %12s", truncate(typ, 12))
	}
	fmt.Fprintln(w)
	for i, row := range d.Counts.Matrix() {
		fmt.Fprintf(w, "  %-14s", truncate(d.Counts.Cities[i], 14))
		for _, n := range row {
			fmt.Fprintf(w, " %12d", n)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Price per m² by city\033[0m\n  %s\n", thin)
	fmt.Fprintf(w, "  %-14s %12s %12s\n", "", "Mean", "Median")
	for _, city := range sortedStatKeys(d.PriceM2ByCity) {
		st := d.PriceM2ByCity[city]
		fmt.Fprintf(w, "  %-14s %10.0f € %10.0f €\n", truncate(city, 14), st.Mean, st.Median)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Price by city and type\033[0m\n  %s\n", thin)
	for _, key := range sortedCityTypes(d.PriceByCityAndType) {
		st := d.PriceByCityAndType[key]
		fmt.Fprintf(w, "  %-14s %-14s %10.0f € %10.0f €\n",
			truncate(key.City, 14), truncate(key.Type, 14), st.Mean, st.Median)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Surface / price correlation\033[0m\n  %s\n", thin)
	if d.Correlation.Defined {
		fmt.Fprintf(w, "  Pearson r : \033[1;32m%.2f\033[0m (%s)\n", d.Correlation.R, d.Correlation.Strength)
		if t := d.Correlation.Trend; t != nil {
			fmt.Fprintf(w, "  Trend     : price = %.0f × m² %+.0f\n", t.Slope, t.Intercept)
		}
	} else {
		fmt.Fprintf(w, "  Not enough variation to compute a coefficient\n")
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Price dispersion by region\033[0m\n  %s\n", thin)
	regions := make([]string, 0, len(d.PriceBoxByRegion))
	for r := range d.PriceBoxByRegion {
		regions = append(regions, r)
	}
	sort.Strings(regions)
	for _, r := range regions {
		b := d.PriceBoxByRegion[r]
		fmt.Fprintf(w, "  %-22s median %10.0f €  IQR [%.0f, %.0f]  outliers %d\n",
			truncate(r, 22), b.Median, b.Q1, b.Q3, len(b.Outliers))
	}

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n\n", sep)
}

func sortedStatKeys(m map[string]models.PriceStats) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedCityTypes(m map[models.CityType]models.PriceStats) []models.CityType {
	out := make([]models.CityType, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].City != out[j].City {
			return out[i].City < out[j].City
		}
		return out[i].Type < out[j].Type
	})
	return out
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
