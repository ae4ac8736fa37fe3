package models

import "sort"

// Dataset is the full, immutable set of listings loaded once per process.
// Diagnostic is non-empty when the source could not be read and the
// dataset was replaced by an empty one.
type Dataset struct {
	Listings   []*Listing
	Source     string
	Diagnostic string
}

// Len returns the number of listings.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Listings)
}

// Available reports whether the dataset was loaded without a diagnostic.
func (d *Dataset) Available() bool {
	return d != nil && d.Diagnostic == ""
}

// Regions returns the distinct, sorted, defined regions.
func (d *Dataset) Regions() []string {
	seen := make(map[string]struct{})
	for _, l := range d.Listings {
		if l.HasRegion() {
			seen[l.Region] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// SearchCities returns the distinct, sorted search cities.
func (d *Dataset) SearchCities() []string {
	seen := make(map[string]struct{})
	for _, l := range d.Listings {
		seen[l.SearchCity] = struct{}{}
	}
	return sortedKeys(seen)
}

// Rooms returns the distinct room counts in ascending order.
func (d *Dataset) Rooms() []int {
	seen := make(map[int]struct{})
	for _, l := range d.Listings {
		seen[l.Rooms] = struct{}{}
	}
	out := make([]int, 0, len(seen))
	for r := range seen {
		out = append(out, r)
	}
	sort.Ints(out)
	return out
}

// MaxPrice returns the highest price, or 0 for an empty dataset.
func (d *Dataset) MaxPrice() float64 {
	var m float64
	for _, l := range d.Listings {
		if l.Price > m {
			m = l.Price
		}
	}
	return m
}

// MaxSurface returns the largest surface, or 0 for an empty dataset.
func (d *Dataset) MaxSurface() float64 {
	var m float64
	for _, l := range d.Listings {
		if l.SurfaceM2 > m {
			m = l.SurfaceM2
		}
	}
	return m
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
