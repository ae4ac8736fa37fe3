package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"immo-dashboard/models"
	"immo-dashboard/storage"
)

type stubSource struct {
	mu       sync.Mutex
	calls    int
	listings []*models.Listing
	err      error
}

func (s *stubSource) Load(context.Context) ([]*models.Listing, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return s.listings, s.err
}

func (s *stubSource) Name() string { return "stub" }

var _ storage.ListingSource = (*stubSource)(nil)

func TestLoaderMemoizes(t *testing.T) {
	src := &stubSource{listings: []*models.Listing{
		{SearchCity: "Rouen", City: "Rouen", Type: "Maison", Price: 200000, SurfaceM2: 80},
	}}
	l := NewLoader(src, newTestLogger())

	var wg sync.WaitGroup
	results := make([]*models.Dataset, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = l.Load(context.Background())
		}(i)
	}
	wg.Wait()

	if src.calls != 1 {
		t.Errorf("source read %d times, want 1", src.calls)
	}
	for i, ds := range results {
		if ds != results[0] {
			t.Errorf("call %d returned a different dataset", i)
		}
	}

	ds := results[0]
	if !ds.Available() || ds.Len() != 1 {
		t.Fatalf("got len=%d diagnostic=%q", ds.Len(), ds.Diagnostic)
	}
	if got := ds.Listings[0]; got.Region != "Normandie" || got.PriceM2 != 2500 {
		t.Errorf("listing not cleaned: %+v", got)
	}
}

func TestLoaderUnavailableSource(t *testing.T) {
	src := &stubSource{err: errors.New("connection refused")}
	l := NewLoader(src, newTestLogger())

	ds := l.Load(context.Background())
	if ds.Available() {
		t.Error("dataset should be flagged unavailable")
	}
	if ds.Len() != 0 || ds.Listings == nil {
		t.Errorf("expected an empty, non-nil listing slice, got %v", ds.Listings)
	}
	if !strings.Contains(ds.Diagnostic, "connection refused") || !strings.Contains(ds.Diagnostic, "stub") {
		t.Errorf("diagnostic: %q", ds.Diagnostic)
	}

	// the failure is memoized too
	l.Load(context.Background())
	if src.calls != 1 {
		t.Errorf("source read %d times, want 1", src.calls)
	}

	view := ApplyFilters(ds, DefaultSelection(ds))
	if !view.IsEmpty() || view.Filtered {
		t.Errorf("view over an unavailable dataset: len=%d filtered=%v", view.Len(), view.Filtered)
	}
}

func TestBlankPriceStaysOutOfDefaultView(t *testing.T) {
	const in = `Ville_Recherche,Ville_Reelle,Type,Prix,Surface_m2,Pieces,Latitude,Longitude,Prix_m2
Paris,Paris 11e,Appartement,400000,40,2,48.86,2.38,10000
Paris,Paris 12e,Appartement,,45,2,48.84,2.39,
`
	listings, err := storage.ReadListings(strings.NewReader(in))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	ds := NewLoader(&stubSource{listings: listings}, newTestLogger()).Load(context.Background())

	view := ApplyFilters(ds, DefaultSelection(ds))
	if view.Len() != 1 || view.Listings[0].City != "Paris 11e" {
		t.Fatalf("default view: got %v", cities(view))
	}
	st := PriceStatsByCityAndType(view)[models.CityType{City: "Paris", Type: "Appartement"}]
	if st.Count != 1 || st.Mean != 400000 || st.Median != 400000 {
		t.Errorf("stats: got %+v", st)
	}

	// without a price predicate the row stays, but stats still skip it
	all := ApplyFilters(ds, models.FilterSelection{})
	if all.Len() != 2 {
		t.Fatalf("unfiltered view: got %d rows", all.Len())
	}
	if got := PriceStatsByCityAndType(all)[models.CityType{City: "Paris", Type: "Appartement"}]; got.Mean != 400000 {
		t.Errorf("mean over unfiltered view: got %v", got.Mean)
	}
	if got := ds.Listings[1].PriceM2; !models.Missing(got) {
		t.Errorf("price per m² derived from a missing price: %v", got)
	}
}
