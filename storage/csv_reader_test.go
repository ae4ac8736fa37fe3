package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"immo-dashboard/models"
)

const sampleCSV = `Ville_Recherche,Ville_Reelle,Type,Prix,Surface_m2,Pieces,Latitude,Longitude,Prix_m2
Paris,Paris 11e,Appartement,450000,42.5,2,48.859,2.379,10588
Rennes,Cesson-Sévigné,Maison,320000,95,5,48.121,-1.603,3368
Brest,Brest,Appartement,,30,abc,48.39,-4.49,
`

func TestReadListingsParsesRowsInOrder(t *testing.T) {
	listings, err := ReadListings(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, listings, 3)

	first := listings[0]
	assert.Equal(t, "Paris", first.SearchCity)
	assert.Equal(t, "Paris 11e", first.City)
	assert.Equal(t, "Appartement", first.Type)
	assert.Equal(t, 450000.0, first.Price)
	assert.Equal(t, 42.5, first.SurfaceM2)
	assert.Equal(t, 2, first.Rooms)
	assert.InDelta(t, 48.859, first.Latitude, 1e-9)
	assert.Equal(t, 10588.0, first.PriceM2)

	assert.Equal(t, "Rennes", listings[1].SearchCity)
	assert.Empty(t, listings[0].Region, "region is derived later, not read from the file")
}

func TestReadListingsBlankOrUnparseableNumbersAreMissing(t *testing.T) {
	listings, err := ReadListings(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	brest := listings[2]
	assert.True(t, models.Missing(brest.Price))
	assert.True(t, models.Missing(brest.PriceM2))
	assert.Equal(t, 0, brest.Rooms)
	assert.Equal(t, 30.0, brest.SurfaceM2)
}

func TestReadListingsMissingColumnIsMissing(t *testing.T) {
	in := "Ville_Recherche,Type,Prix\nLyon,Maison,250000\n"
	listings, err := ReadListings(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "Lyon", listings[0].SearchCity)
	assert.Equal(t, "", listings[0].City)
	assert.Equal(t, 250000.0, listings[0].Price)
	assert.True(t, models.Missing(listings[0].SurfaceM2))
}

func TestReadListingsHeaderOnlyIsEmpty(t *testing.T) {
	in := strings.Join(Columns, ",") + "\n"
	listings, err := ReadListings(strings.NewReader(in))
	require.NoError(t, err)
	require.NotNil(t, listings)
	assert.Empty(t, listings)
}

func TestReadListingsEmptyContentIsDataUnavailable(t *testing.T) {
	_, err := ReadListings(strings.NewReader(""))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDataUnavailable))
}

func TestCSVReaderLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset_final.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	r := NewCSVReader(path)
	listings, err := r.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, listings, 3)
	assert.Equal(t, "csv:"+path, r.Name())
}

func TestCSVReaderMissingFileIsDataUnavailable(t *testing.T) {
	r := NewCSVReader(filepath.Join(t.TempDir(), "nope.csv"))
	_, err := r.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDataUnavailable))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
