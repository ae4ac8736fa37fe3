package models

import "encoding/json"

// CityType keys the (search city, property type) group.
type CityType struct {
	City string `json:"city"`
	Type string `json:"type"`
}

// CrossTab is a city x type frequency table. Combinations absent from the
// view count as zero.
type CrossTab struct {
	Cities []string         `json:"cities"`
	Types  []string         `json:"types"`
	Counts map[CityType]int `json:"-"`
}

// Count returns the number of rows for (city, typ), zero when absent.
func (c *CrossTab) Count(city, typ string) int {
	if c == nil {
		return 0
	}
	return c.Counts[CityType{City: city, Type: typ}]
}

// Matrix returns the table in row-major order, one row per city.
func (c *CrossTab) Matrix() [][]int {
	if c == nil {
		return nil
	}
	out := make([][]int, len(c.Cities))
	for i, city := range c.Cities {
		row := make([]int, len(c.Types))
		for j, typ := range c.Types {
			row[j] = c.Count(city, typ)
		}
		out[i] = row
	}
	return out
}

// Total sums every cell.
func (c *CrossTab) Total() int {
	if c == nil {
		return 0
	}
	var n int
	for _, v := range c.Counts {
		n += v
	}
	return n
}

// PriceStats holds the mean and median of a price attribute for a group.
type PriceStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

// Trend is an ordinary-least-squares fit y = Slope*x + Intercept.
type Trend struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// Correlation is the Pearson coefficient between two fields. R is NaN and
// Defined false when fewer than two rows or zero variance.
type Correlation struct {
	X        Field   `json:"x"`
	Y        Field   `json:"y"`
	R        float64 `json:"-"`
	Defined  bool    `json:"defined"`
	Strength string  `json:"strength,omitempty"`
	Trend    *Trend  `json:"trend,omitempty"`
}

// BoxStats is the five-number summary behind a box plot.
// Whiskers reach the most extreme values within 1.5 IQR of the quartiles;
// values beyond them are outliers.
type BoxStats struct {
	Count        int       `json:"count"`
	Min          float64   `json:"min"`
	Q1           float64   `json:"q1"`
	Median       float64   `json:"median"`
	Q3           float64   `json:"q3"`
	Max          float64   `json:"max"`
	LowerWhisker float64   `json:"lower_whisker"`
	UpperWhisker float64   `json:"upper_whisker"`
	Outliers     []float64 `json:"outliers,omitempty"`
}

// Histogram counts values into bins sharing Edges; len(Edges) == len(Counts)+1.
type Histogram struct {
	Edges  []float64 `json:"edges"`
	Counts []int     `json:"counts"`
}

// MapMarker is one listing positioned on the map.
type MapMarker struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Color     string  `json:"color"`
	City      string  `json:"city"`
	Type      string  `json:"type"`
	Price     float64 `json:"price"`
	SurfaceM2 float64 `json:"surface_m2"`
	Rooms     int     `json:"rooms"`
	Geohash   string  `json:"geohash"`
}

// MarshalJSON encodes a missing price or surface as null.
func (m MapMarker) MarshalJSON() ([]byte, error) {
	type plain MapMarker
	return json.Marshal(struct {
		plain
		Price     *float64 `json:"price"`
		SurfaceM2 *float64 `json:"surface_m2"`
	}{plain(m), nullable(m.Price), nullable(m.SurfaceM2)})
}

// MapCell aggregates markers sharing a geohash prefix. MeanPrice covers the
// markers with a known price and is NaN when none has one.
type MapCell struct {
	Geohash   string  `json:"geohash"`
	Count     int     `json:"count"`
	MeanPrice float64 `json:"mean_price"`
}

// MarshalJSON encodes an undefined mean price as null.
func (c MapCell) MarshalJSON() ([]byte, error) {
	type plain MapCell
	return json.Marshal(struct {
		plain
		MeanPrice *float64 `json:"mean_price"`
	}{plain(c), nullable(c.MeanPrice)})
}

// MapView is the data behind the interactive price map.
type MapView struct {
	CenterLat float64     `json:"center_lat"`
	CenterLon float64     `json:"center_lon"`
	Markers   []MapMarker `json:"markers"`
	Cells     []MapCell   `json:"cells"`
}

// Dashboard bundles every output computed from one FilteredView.
type Dashboard struct {
	Rows                   int                     `json:"rows"`
	Total                  int                     `json:"total"`
	Empty                  bool                    `json:"empty"`
	Counts                 *CrossTab               `json:"counts"`
	PriceM2ByCity          map[string]PriceStats   `json:"price_m2_by_city"`
	PriceByCityAndType     map[CityType]PriceStats `json:"-"`
	Correlation            Correlation             `json:"correlation"`
	PriceBoxByRegion       map[string]BoxStats     `json:"price_box_by_region"`
	PriceHistogramByRegion map[string]Histogram    `json:"price_histogram_by_region"`
	Map                    *MapView                `json:"map,omitempty"`
}
