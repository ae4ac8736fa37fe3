package models

import (
	"encoding/json"
	"math"
)

// Listing is one real-estate record from the scraped dataset.
// Region is derived from SearchCity at load time and is empty when the
// search city is not in the region table. A numeric attribute the source
// left blank holds NaN; see Missing.
type Listing struct {
	ID         int64   `json:"id,omitempty"`
	SearchCity string  `json:"search_city"`
	City       string  `json:"city"`
	Region     string  `json:"region,omitempty"`
	Type       string  `json:"type"`
	Price      float64 `json:"price"`
	SurfaceM2  float64 `json:"surface_m2"`
	Rooms      int     `json:"rooms"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	PriceM2    float64 `json:"price_m2"`
}

// Missing reports whether v marks an absent numeric value.
func Missing(v float64) bool {
	return math.IsNaN(v)
}

// nullable maps a missing value to nil so it encodes as JSON null.
func nullable(v float64) *float64 {
	if Missing(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// MarshalJSON encodes missing numeric attributes as null.
func (l Listing) MarshalJSON() ([]byte, error) {
	type plain Listing
	return json.Marshal(struct {
		plain
		Price     *float64 `json:"price"`
		SurfaceM2 *float64 `json:"surface_m2"`
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
		PriceM2   *float64 `json:"price_m2"`
	}{
		plain:     plain(l),
		Price:     nullable(l.Price),
		SurfaceM2: nullable(l.SurfaceM2),
		Latitude:  nullable(l.Latitude),
		Longitude: nullable(l.Longitude),
		PriceM2:   nullable(l.PriceM2),
	})
}

// HasRegion reports whether the listing's search city resolved to a region.
func (l *Listing) HasRegion() bool {
	return l.Region != ""
}

// Field names a numeric attribute of a Listing.
type Field string

const (
	FieldPrice     Field = "price"
	FieldSurface   Field = "surface_m2"
	FieldRooms     Field = "rooms"
	FieldPriceM2   Field = "price_m2"
	FieldLatitude  Field = "latitude"
	FieldLongitude Field = "longitude"
)

// NumericFields lists every field accepted by Value.
var NumericFields = []Field{FieldPrice, FieldSurface, FieldRooms, FieldPriceM2, FieldLatitude, FieldLongitude}

// Value returns the numeric value of field f, NaN when it is missing. The
// boolean is false for an unknown field.
func (l *Listing) Value(f Field) (float64, bool) {
	switch f {
	case FieldPrice:
		return l.Price, true
	case FieldSurface:
		return l.SurfaceM2, true
	case FieldRooms:
		return float64(l.Rooms), true
	case FieldPriceM2:
		return l.PriceM2, true
	case FieldLatitude:
		return l.Latitude, true
	case FieldLongitude:
		return l.Longitude, true
	}
	return 0, false
}

// ParseField converts a user supplied name into a Field.
func ParseField(name string) (Field, bool) {
	for _, f := range NumericFields {
		if string(f) == name {
			return f, true
		}
	}
	return "", false
}
