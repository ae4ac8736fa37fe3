package storage

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"immo-dashboard/models"
)

func setupMockDB(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresStoreWithDB(db), mock
}

func TestPostgresStoreWriteReplacesRows(t *testing.T) {
	store, mock := setupMockDB(t)

	listings := []*models.Listing{
		{SearchCity: "Paris", City: "Paris", Region: "Île-de-France", Type: "Appartement", Price: 500000, SurfaceM2: 50, Rooms: 2},
		{SearchCity: "Rouen", City: "Rouen", Region: "Normandie", Type: "Maison", Price: 200000, SurfaceM2: 100, Rooms: 5},
	}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM listings").WillReturnResult(sqlmock.NewResult(0, 7))
	mock.ExpectExec("INSERT INTO listings").
		WithArgs(
			"Paris", "Paris", "Île-de-France", "Appartement", 500000.0, 50.0, 2, 0.0, 0.0, 0.0,
			"Rouen", "Rouen", "Normandie", "Maison", 200000.0, 100.0, 5, 0.0, 0.0, 0.0,
		).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	require.NoError(t, store.Write(context.Background(), listings))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreWriteRollsBackOnInsertError(t *testing.T) {
	store, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM listings").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO listings").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := store.Write(context.Background(), []*models.Listing{{SearchCity: "Lyon"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert batch")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreWriteEmptyIsNoop(t *testing.T) {
	store, mock := setupMockDB(t)
	require.NoError(t, store.Write(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreLoad(t *testing.T) {
	store, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "search_city", "city", "type", "price", "surface_m2", "rooms", "latitude", "longitude", "price_m2"}).
		AddRow(1, "Bordeaux", "Mérignac", "Maison", 350000.0, 110.0, 5, 44.84, -0.65, 3181.8).
		AddRow(2, "Toulouse", "Toulouse", "Appartement", 210000.0, 48.0, 2, 43.6, 1.44, 4375.0)
	mock.ExpectQuery("SELECT id, search_city").WillReturnRows(rows)

	listings, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, int64(1), listings[0].ID)
	assert.Equal(t, "Mérignac", listings[0].City)
	assert.Equal(t, 5, listings[0].Rooms)
	assert.Equal(t, "Toulouse", listings[1].SearchCity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreMissingValuesRoundTripAsNull(t *testing.T) {
	store, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM listings").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO listings").
		WithArgs("Brest", "Brest", "Bretagne", "Appartement", nil, 30.0, 0, 48.39, -4.49, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	in := []*models.Listing{{
		SearchCity: "Brest", City: "Brest", Region: "Bretagne", Type: "Appartement",
		Price: math.NaN(), SurfaceM2: 30, Latitude: 48.39, Longitude: -4.49, PriceM2: math.NaN(),
	}}
	require.NoError(t, store.Write(context.Background(), in))

	rows := sqlmock.NewRows([]string{"id", "search_city", "city", "type", "price", "surface_m2", "rooms", "latitude", "longitude", "price_m2"}).
		AddRow(1, "Brest", "Brest", "Appartement", nil, 30.0, 0, 48.39, -4.49, nil)
	mock.ExpectQuery("SELECT id, search_city").WillReturnRows(rows)

	listings, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.True(t, math.IsNaN(listings[0].Price))
	assert.True(t, math.IsNaN(listings[0].PriceM2))
	assert.Equal(t, 30.0, listings[0].SurfaceM2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreLoadFailureIsDataUnavailable(t *testing.T) {
	store, mock := setupMockDB(t)
	mock.ExpectQuery("SELECT id, search_city").WillReturnError(errors.New("relation does not exist"))

	_, err := store.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDataUnavailable))
}

func TestPostgresStoreMigrate(t *testing.T) {
	store, mock := setupMockDB(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS listings").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
