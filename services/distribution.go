package services

import (
	"math"
	"sort"

	"immo-dashboard/models"
)

// PriceBoxByRegion summarises the price distribution of each region for a
// box plot. Rows without a region are left out.
func PriceBoxByRegion(view *models.FilteredView) map[string]models.BoxStats {
	out := make(map[string]models.BoxStats)
	for region, prices := range pricesByRegion(view) {
		out[region] = boxStats(prices)
	}
	return out
}

// PriceHistogramByRegion counts prices per region into bins sharing the same
// edges, spanning the price range of the whole view.
func PriceHistogramByRegion(view *models.FilteredView, bins int) map[string]models.Histogram {
	out := make(map[string]models.Histogram)
	groups := pricesByRegion(view)
	if len(groups) == 0 {
		return out
	}
	if bins < 1 {
		bins = 1
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, prices := range groups {
		for _, p := range prices {
			lo = math.Min(lo, p)
			hi = math.Max(hi, p)
		}
	}
	if lo == hi {
		bins = 1
	}

	edges := make([]float64, bins+1)
	width := (hi - lo) / float64(bins)
	for i := range edges {
		edges[i] = lo + float64(i)*width
	}
	edges[bins] = hi

	for region, prices := range groups {
		counts := make([]int, bins)
		for _, p := range prices {
			idx := bins - 1
			if width > 0 {
				idx = int((p - lo) / width)
				if idx >= bins {
					idx = bins - 1
				}
			}
			counts[idx]++
		}
		out[region] = models.Histogram{Edges: append([]float64(nil), edges...), Counts: counts}
	}
	return out
}

func pricesByRegion(view *models.FilteredView) map[string][]float64 {
	groups := make(map[string][]float64)
	if view.IsEmpty() {
		return groups
	}
	for _, l := range view.Listings {
		if l.HasRegion() && !models.Missing(l.Price) {
			groups[l.Region] = append(groups[l.Region], l.Price)
		}
	}
	return groups
}

func boxStats(vals []float64) models.BoxStats {
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	b := models.BoxStats{
		Count:  len(sorted),
		Min:    sorted[0],
		Q1:     quantile(sorted, 0.25),
		Median: quantile(sorted, 0.5),
		Q3:     quantile(sorted, 0.75),
		Max:    sorted[len(sorted)-1],
	}

	iqr := b.Q3 - b.Q1
	lowFence, highFence := b.Q1-1.5*iqr, b.Q3+1.5*iqr
	b.LowerWhisker, b.UpperWhisker = b.Max, b.Min
	for _, v := range sorted {
		if v < lowFence || v > highFence {
			b.Outliers = append(b.Outliers, v)
			continue
		}
		b.LowerWhisker = math.Min(b.LowerWhisker, v)
		b.UpperWhisker = math.Max(b.UpperWhisker, v)
	}
	return b
}

// quantile interpolates linearly between closest ranks of sorted.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
