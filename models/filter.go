package models

// Range is an inclusive numeric interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies in [Min, Max]. A missing value never does.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// FilterSelection is rebuilt from user input on every interaction.
// Empty Regions, Cities or Rooms mean "no restriction" on that dimension.
// A nil Price or Surface leaves that dimension unbounded.
type FilterSelection struct {
	Regions []string `json:"regions,omitempty"`
	Cities  []string `json:"cities,omitempty"`
	Price   *Range   `json:"price,omitempty"`
	Surface *Range   `json:"surface,omitempty"`
	Rooms   []int    `json:"rooms,omitempty"`
}

// FilteredView is the ordered subset of a Dataset matching a selection.
// Filtered is false when no predicate removed any candidate, which keeps an
// empty result distinguishable from "no filters applied".
type FilteredView struct {
	Listings []*Listing `json:"listings"`
	Total    int        `json:"total"`
	Filtered bool       `json:"filtered"`
}

// Len returns the number of rows in the view.
func (v *FilteredView) Len() int {
	if v == nil {
		return 0
	}
	return len(v.Listings)
}

// IsEmpty reports an EmptyResult.
func (v *FilteredView) IsEmpty() bool {
	return v.Len() == 0
}

// Values extracts field f for every row where it is present, in row order.
func (v *FilteredView) Values(f Field) []float64 {
	out := make([]float64, 0, v.Len())
	if v == nil {
		return out
	}
	for _, l := range v.Listings {
		if x, ok := l.Value(f); ok && !Missing(x) {
			out = append(out, x)
		}
	}
	return out
}

// FilterOptions are the choices offered to the user for a given dataset and
// region selection.
type FilterOptions struct {
	Regions    []string `json:"regions"`
	Cities     []string `json:"cities"`
	Rooms      []int    `json:"rooms"`
	MaxPrice   float64  `json:"max_price"`
	MaxSurface float64  `json:"max_surface"`
}
