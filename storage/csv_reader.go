package storage

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"immo-dashboard/models"
)

var numericColumns = map[string]series.Type{
	ColPrice:     series.Float,
	ColSurface:   series.Float,
	ColRooms:     series.Float,
	ColLatitude:  series.Float,
	ColLongitude: series.Float,
	ColPriceM2:   series.Float,
}

// CSVReader loads listings from a delimited file.
type CSVReader struct {
	Path string
}

// NewCSVReader returns a reader for the file at path.
func NewCSVReader(path string) *CSVReader {
	return &CSVReader{Path: path}
}

// Name identifies the source in diagnostics.
func (r *CSVReader) Name() string {
	return "csv:" + r.Path
}

// Load reads every row of the file in order. A missing or unreadable file
// yields ErrDataUnavailable. Numeric cells that are blank or fail to parse
// are kept as missing (NaN).
func (r *CSVReader) Load(ctx context.Context) ([]*models.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(r.Path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w: %w", r.Path, ErrDataUnavailable, err)
	}
	defer f.Close()

	return ReadListings(f)
}

// ReadListings parses CSV content into listings using the fixed column names.
// Content holding only the header row yields an empty, non-nil slice.
func ReadListings(rd io.Reader) ([]*models.Listing, error) {
	raw, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("csv: read: %w: %w", ErrDataUnavailable, err)
	}
	if headerOnly(raw) {
		return []*models.Listing{}, nil
	}

	df := dataframe.ReadCSV(bytes.NewReader(raw),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.WithTypes(numericColumns),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("csv: parse: %w: %w", ErrDataUnavailable, df.Err)
	}

	present := make(map[string]bool, len(df.Names()))
	for _, name := range df.Names() {
		present[name] = true
	}

	n := df.Nrow()
	text := func(col string) []string {
		if !present[col] {
			return make([]string, n)
		}
		return df.Col(col).Records()
	}
	nums := func(col string) []float64 {
		if !present[col] {
			vals := make([]float64, n)
			for i := range vals {
				vals[i] = math.NaN()
			}
			return vals
		}
		vals := df.Col(col).Float()
		for i, v := range vals {
			if math.IsInf(v, 0) {
				vals[i] = math.NaN()
			}
		}
		return vals
	}

	searchCity, city, typ := text(ColSearchCity), text(ColCity), text(ColType)
	price, surface, rooms := nums(ColPrice), nums(ColSurface), nums(ColRooms)
	lat, lon, priceM2 := nums(ColLatitude), nums(ColLongitude), nums(ColPriceM2)

	listings := make([]*models.Listing, 0, n)
	for i := 0; i < n; i++ {
		listings = append(listings, &models.Listing{
			SearchCity: searchCity[i],
			City:       city[i],
			Type:       typ[i],
			Price:      price[i],
			SurfaceM2:  surface[i],
			Rooms:      roomCount(rooms[i]),
			Latitude:   lat[i],
			Longitude:  lon[i],
			PriceM2:    priceM2[i],
		})
	}
	return listings, nil
}

// roomCount rounds a parsed room count. A missing count becomes 0.
func roomCount(v float64) int {
	if models.Missing(v) {
		return 0
	}
	return int(math.Round(v))
}

// headerOnly reports whether raw holds a header row and no records.
func headerOnly(raw []byte) bool {
	records, err := csv.NewReader(bytes.NewReader(raw)).ReadAll()
	return err == nil && len(records) == 1
}
