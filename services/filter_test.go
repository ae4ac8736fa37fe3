package services

import (
	"reflect"
	"testing"

	"immo-dashboard/models"
)

func TestApplyFiltersRangesAreInclusive(t *testing.T) {
	ds := sampleDataset()
	sel := models.FilterSelection{
		Price:   &models.Range{Min: 250000, Max: 500000},
		Surface: &models.Range{Min: 50, Max: 95},
	}

	view := ApplyFilters(ds, sel)
	want := []string{"Paris 11e", "Lyon 3e", "Villeurbanne", "Rennes"}
	if got := cities(view); !reflect.DeepEqual(got, want) {
		t.Errorf("cities: got %v, want %v", got, want)
	}
	for _, l := range view.Listings {
		if !sel.Price.Contains(l.Price) || !sel.Surface.Contains(l.SurfaceM2) {
			t.Errorf("row %q outside the selected ranges", l.City)
		}
	}
	if view.Len() > ds.Len() {
		t.Errorf("view larger than dataset: %d > %d", view.Len(), ds.Len())
	}
	if !view.Filtered {
		t.Error("expected Filtered to be true when rows were excluded")
	}
}

func TestApplyFiltersEmptySetsAreIdentity(t *testing.T) {
	ds := sampleDataset()
	base := models.FilterSelection{Price: &models.Range{Min: 0, Max: 1e9}}

	all := ApplyFilters(ds, base)
	if all.Len() != ds.Len() {
		t.Fatalf("baseline: got %d rows, want %d", all.Len(), ds.Len())
	}

	withEmpty := base
	withEmpty.Regions = []string{}
	withEmpty.Cities = []string{}
	withEmpty.Rooms = []int{}
	got := ApplyFilters(ds, withEmpty)
	if !reflect.DeepEqual(cities(got), cities(all)) {
		t.Errorf("empty selections changed the result: %v vs %v", cities(got), cities(all))
	}
	if got.Filtered {
		t.Error("Filtered should be false when nothing was excluded")
	}
}

func TestApplyFiltersRegionExcludesUnmappedCity(t *testing.T) {
	ds := sampleDataset()

	view := ApplyFilters(ds, models.FilterSelection{Regions: []string{"Bretagne", "Île-de-France"}})
	want := []string{"Paris 11e", "Paris 16e", "Rennes"}
	if got := cities(view); !reflect.DeepEqual(got, want) {
		t.Errorf("cities: got %v, want %v", got, want)
	}

	unfiltered := ApplyFilters(ds, models.FilterSelection{})
	var brest bool
	for _, l := range unfiltered.Listings {
		if l.SearchCity == "Brest" {
			brest = true
		}
	}
	if !brest {
		t.Error("a city outside the region table must be kept when no region filter is active")
	}
}

func TestApplyFiltersCityAndRooms(t *testing.T) {
	ds := sampleDataset()

	view := ApplyFilters(ds, models.FilterSelection{
		Cities: []string{"Paris", "Lyon"},
		Rooms:  []int{3, 5},
	})
	want := []string{"Paris 16e", "Lyon 3e", "Villeurbanne"}
	if got := cities(view); !reflect.DeepEqual(got, want) {
		t.Errorf("cities: got %v, want %v", got, want)
	}
}

func TestApplyFiltersEmptyResult(t *testing.T) {
	ds := sampleDataset()

	view := ApplyFilters(ds, models.FilterSelection{Price: &models.Range{Min: 0, Max: 0}})
	if !view.IsEmpty() {
		t.Fatalf("expected an empty view, got %d rows", view.Len())
	}
	if !view.Filtered {
		t.Error("an empty result caused by filters must be marked Filtered")
	}
	if view.Total != ds.Len() {
		t.Errorf("Total: got %d, want %d", view.Total, ds.Len())
	}
}

func TestApplyFiltersEmptyDataset(t *testing.T) {
	view := ApplyFilters(&models.Dataset{}, models.FilterSelection{Regions: []string{"PACA"}})
	if !view.IsEmpty() || view.Filtered {
		t.Errorf("empty dataset: got len=%d filtered=%v", view.Len(), view.Filtered)
	}
}

func TestApplyFiltersDoesNotMutateDataset(t *testing.T) {
	ds := sampleDataset()
	before := make([]*models.Listing, len(ds.Listings))
	copy(before, ds.Listings)

	ApplyFilters(ds, models.FilterSelection{Cities: []string{"Rennes"}})
	if !reflect.DeepEqual(before, ds.Listings) {
		t.Error("dataset slice was modified")
	}
}

func TestAvailableCities(t *testing.T) {
	ds := sampleDataset()

	tests := []struct {
		regions []string
		want    []string
	}{
		{nil, []string{"Brest", "Lyon", "Paris", "Rennes"}},
		{[]string{"Auvergne-Rhône-Alpes"}, []string{"Lyon"}},
		{[]string{"Bretagne", "Île-de-France"}, []string{"Paris", "Rennes"}},
		{[]string{"PACA"}, []string{}},
	}
	for _, tt := range tests {
		if got := AvailableCities(ds, tt.regions); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("AvailableCities(%v) = %v; want %v", tt.regions, got, tt.want)
		}
	}
}

func TestDefaultSelectionKeepsEveryRow(t *testing.T) {
	ds := sampleDataset()
	sel := DefaultSelection(ds)

	if sel.Price.Max != 900000 || sel.Surface.Max != 120 {
		t.Errorf("ranges: got price %v surface %v", *sel.Price, *sel.Surface)
	}
	if want := []int{2, 3, 5}; !reflect.DeepEqual(sel.Rooms, want) {
		t.Errorf("rooms: got %v, want %v", sel.Rooms, want)
	}
	if view := ApplyFilters(ds, sel); view.Len() != ds.Len() {
		t.Errorf("default selection kept %d of %d rows", view.Len(), ds.Len())
	}
}

func TestOptions(t *testing.T) {
	ds := sampleDataset()
	opts := Options(ds, []string{"Île-de-France"})

	wantRegions := []string{"Auvergne-Rhône-Alpes", "Bretagne", "Île-de-France"}
	if !reflect.DeepEqual(opts.Regions, wantRegions) {
		t.Errorf("regions: got %v, want %v", opts.Regions, wantRegions)
	}
	if !reflect.DeepEqual(opts.Cities, []string{"Paris"}) {
		t.Errorf("cities: got %v", opts.Cities)
	}
	if opts.MaxPrice != 900000 {
		t.Errorf("max price: got %v", opts.MaxPrice)
	}
}

func TestFilterServiceApply(t *testing.T) {
	svc := NewFilterService(newTestLogger())
	view := svc.Apply(sampleDataset(), models.FilterSelection{Cities: []string{"Lyon"}})
	if view.Len() != 2 {
		t.Errorf("Lyon rows: got %d, want 2", view.Len())
	}
}
