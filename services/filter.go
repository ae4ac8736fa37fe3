package services

import (
	"math"
	"sort"

	"immo-dashboard/metrics"
	"immo-dashboard/models"
	"immo-dashboard/utils"
)

// ApplyFilters returns the rows of ds matching every active predicate of
// sel, in dataset order. Predicates are conjunctive: price range, surface
// range, region membership, city membership, room-count membership. An
// empty set selection does not restrict its dimension. ds is never mutated.
func ApplyFilters(ds *models.Dataset, sel models.FilterSelection) *models.FilteredView {
	total := ds.Len()
	view := &models.FilteredView{Listings: make([]*models.Listing, 0, total), Total: total}
	if total == 0 {
		return view
	}

	regions := toSet(sel.Regions)
	cities := toSet(sel.Cities)
	rooms := make(map[int]struct{}, len(sel.Rooms))
	for _, r := range sel.Rooms {
		rooms[r] = struct{}{}
	}

	for _, l := range ds.Listings {
		if sel.Price != nil && !sel.Price.Contains(l.Price) {
			continue
		}
		if sel.Surface != nil && !sel.Surface.Contains(l.SurfaceM2) {
			continue
		}
		if len(regions) > 0 {
			if !l.HasRegion() {
				continue
			}
			if _, ok := regions[l.Region]; !ok {
				continue
			}
		}
		if len(cities) > 0 {
			if _, ok := cities[l.SearchCity]; !ok {
				continue
			}
		}
		if len(rooms) > 0 {
			if _, ok := rooms[l.Rooms]; !ok {
				continue
			}
		}
		view.Listings = append(view.Listings, l)
	}

	view.Filtered = len(view.Listings) < total
	return view
}

// AvailableCities lists the search cities offered once regions are chosen:
// cities of the selected regions, or every city when none is selected.
func AvailableCities(ds *models.Dataset, selectedRegions []string) []string {
	if len(selectedRegions) == 0 {
		return ds.SearchCities()
	}

	regions := toSet(selectedRegions)
	seen := make(map[string]struct{})
	for _, l := range ds.Listings {
		if !l.HasRegion() {
			continue
		}
		if _, ok := regions[l.Region]; ok {
			seen[l.SearchCity] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Options returns the filter choices for ds given the current region choice.
func Options(ds *models.Dataset, selectedRegions []string) models.FilterOptions {
	return models.FilterOptions{
		Regions:    ds.Regions(),
		Cities:     AvailableCities(ds, selectedRegions),
		Rooms:      ds.Rooms(),
		MaxPrice:   math.Ceil(ds.MaxPrice()),
		MaxSurface: math.Ceil(ds.MaxSurface()),
	}
}

// DefaultSelection mirrors the initial widget state: full price and surface
// ranges starting at zero, every observed room count, no region or city.
func DefaultSelection(ds *models.Dataset) models.FilterSelection {
	return models.FilterSelection{
		Price:   &models.Range{Min: 0, Max: math.Ceil(ds.MaxPrice())},
		Surface: &models.Range{Min: 0, Max: math.Ceil(ds.MaxSurface())},
		Rooms:   ds.Rooms(),
	}
}

// FilterService applies selections and records their outcome.
type FilterService struct {
	logger *utils.Logger
}

// NewFilterService creates a FilterService with the given logger.
func NewFilterService(logger *utils.Logger) *FilterService {
	return &FilterService{logger: logger}
}

// Apply narrows ds by sel. See ApplyFilters.
func (s *FilterService) Apply(ds *models.Dataset, sel models.FilterSelection) *models.FilteredView {
	view := ApplyFilters(ds, sel)

	metrics.FilteredRows.Observe(float64(view.Len()))
	if view.IsEmpty() && view.Filtered {
		metrics.EmptyResults.Inc()
		s.logger.Debug("[filter] Selection matched no listing out of %d", view.Total)
	} else {
		s.logger.Debug("[filter] %d/%d listings match", view.Len(), view.Total)
	}
	return view
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
