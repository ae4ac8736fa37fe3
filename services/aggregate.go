package services

import (
	"math"
	"sort"

	"github.com/go-gota/gota/series"

	"immo-dashboard/models"
)

// CountsByCityAndType builds the search city x property type frequency
// table of view. An empty view yields an empty table.
func CountsByCityAndType(view *models.FilteredView) *models.CrossTab {
	tab := &models.CrossTab{
		Cities: []string{},
		Types:  []string{},
		Counts: make(map[models.CityType]int),
	}
	if view.IsEmpty() {
		return tab
	}

	cities := make(map[string]struct{})
	types := make(map[string]struct{})
	for _, l := range view.Listings {
		cities[l.SearchCity] = struct{}{}
		types[l.Type] = struct{}{}
		tab.Counts[models.CityType{City: l.SearchCity, Type: l.Type}]++
	}
	tab.Cities = sortedSet(cities)
	tab.Types = sortedSet(types)
	return tab
}

// PriceStatsByCity returns the mean and median price per m² for each search
// city of view. Missing values are skipped and a city with none known is
// left out.
func PriceStatsByCity(view *models.FilteredView) map[string]models.PriceStats {
	if view.IsEmpty() {
		return map[string]models.PriceStats{}
	}
	groups := make(map[string][]float64)
	for _, l := range view.Listings {
		if !models.Missing(l.PriceM2) {
			groups[l.SearchCity] = append(groups[l.SearchCity], l.PriceM2)
		}
	}

	out := make(map[string]models.PriceStats, len(groups))
	for city, vals := range groups {
		out[city] = priceStats(vals)
	}
	return out
}

// PriceStatsByCityAndType returns the mean and median raw price for each
// (search city, type) group of view, skipping missing prices.
func PriceStatsByCityAndType(view *models.FilteredView) map[models.CityType]models.PriceStats {
	if view.IsEmpty() {
		return map[models.CityType]models.PriceStats{}
	}
	groups := make(map[models.CityType][]float64)
	for _, l := range view.Listings {
		if models.Missing(l.Price) {
			continue
		}
		key := models.CityType{City: l.SearchCity, Type: l.Type}
		groups[key] = append(groups[key], l.Price)
	}

	out := make(map[models.CityType]models.PriceStats, len(groups))
	for key, vals := range groups {
		out[key] = priceStats(vals)
	}
	return out
}

func priceStats(vals []float64) models.PriceStats {
	s := series.Floats(vals)
	return models.PriceStats{
		Count:  len(vals),
		Mean:   s.Mean(),
		Median: s.Median(),
	}
}

// PearsonCorrelation computes the product-moment correlation of fields x and
// y over the rows of view where both are present. It returns NaN and false
// when fewer than two such rows exist, either field has zero variance, or a
// field is unknown.
func PearsonCorrelation(view *models.FilteredView, x, y models.Field) (float64, bool) {
	xs, ys, ok := pairedValues(view, x, y)
	if !ok || len(xs) < 2 {
		return math.NaN(), false
	}

	mx, my := mean(xs), mean(ys)
	var sxy, sxx, syy float64
	for i := range xs {
		dx, dy := xs[i]-mx, ys[i]-my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return math.NaN(), false
	}

	r := sxy / math.Sqrt(sxx*syy)
	// rounding can push |r| a hair past 1
	return math.Max(-1, math.Min(1, r)), true
}

// TrendLine fits y on x by ordinary least squares.
func TrendLine(view *models.FilteredView, x, y models.Field) (models.Trend, bool) {
	xs, ys, ok := pairedValues(view, x, y)
	if !ok || len(xs) < 2 {
		return models.Trend{}, false
	}

	mx, my := mean(xs), mean(ys)
	var sxy, sxx float64
	for i := range xs {
		dx := xs[i] - mx
		sxy += dx * (ys[i] - my)
		sxx += dx * dx
	}
	if sxx == 0 {
		return models.Trend{}, false
	}

	slope := sxy / sxx
	return models.Trend{Slope: slope, Intercept: my - slope*mx}, true
}

// CorrelationStrength labels a coefficient the way the dashboard words it.
func CorrelationStrength(r float64) string {
	if math.IsNaN(r) {
		return ""
	}
	if r > 0.7 {
		return "strong"
	}
	return "moderate"
}

// Correlate bundles the coefficient, its label and the trend line.
func Correlate(view *models.FilteredView, x, y models.Field) models.Correlation {
	r, ok := PearsonCorrelation(view, x, y)
	c := models.Correlation{X: x, Y: y, R: r, Defined: ok}
	if !ok {
		return c
	}
	c.Strength = CorrelationStrength(r)
	if t, ok := TrendLine(view, x, y); ok {
		c.Trend = &t
	}
	return c
}

func pairedValues(view *models.FilteredView, x, y models.Field) ([]float64, []float64, bool) {
	if view.IsEmpty() {
		return nil, nil, true
	}
	xs := make([]float64, 0, view.Len())
	ys := make([]float64, 0, view.Len())
	for _, l := range view.Listings {
		xv, okx := l.Value(x)
		yv, oky := l.Value(y)
		if !okx || !oky {
			return nil, nil, false
		}
		if models.Missing(xv) || models.Missing(yv) {
			continue
		}
		xs = append(xs, xv)
		ys = append(ys, yv)
	}
	return xs, ys, true
}

func mean(vals []float64) float64 {
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func sortedSet(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
