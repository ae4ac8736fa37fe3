package services

import (
	"immo-dashboard/models"
	"immo-dashboard/utils"
)

func newTestLogger() *utils.Logger { return utils.NewNopLogger() }

// sampleDataset returns listings already passed through the cleaner, so
// regions are assigned. Brest is outside the region table.
func sampleDataset() *models.Dataset {
	listings := []*models.Listing{
		{SearchCity: "Paris", City: "Paris 11e", Type: "Appartement", Price: 500000, SurfaceM2: 50, Rooms: 2, Latitude: 48.86, Longitude: 2.38, PriceM2: 10000},
		{SearchCity: "Paris", City: "Paris 16e", Type: "Maison", Price: 900000, SurfaceM2: 120, Rooms: 5, Latitude: 48.86, Longitude: 2.27, PriceM2: 7500},
		{SearchCity: "Lyon", City: "Lyon 3e", Type: "Appartement", Price: 250000, SurfaceM2: 60, Rooms: 3, Latitude: 45.76, Longitude: 4.85, PriceM2: 4000},
		{SearchCity: "Lyon", City: "Villeurbanne", Type: "Appartement", Price: 300000, SurfaceM2: 70, Rooms: 3, Latitude: 45.77, Longitude: 4.88, PriceM2: 5000},
		{SearchCity: "Rennes", City: "Rennes", Type: "Maison", Price: 320000, SurfaceM2: 95, Rooms: 5, Latitude: 48.11, Longitude: -1.68, PriceM2: 3368},
		{SearchCity: "Brest", City: "Brest", Type: "Appartement", Price: 150000, SurfaceM2: 40, Rooms: 2, Latitude: 48.39, Longitude: -4.49, PriceM2: 3750},
	}
	NewCleaner(newTestLogger()).Clean(listings)
	return &models.Dataset{Listings: listings, Source: "test"}
}

func viewOf(listings ...*models.Listing) *models.FilteredView {
	return &models.FilteredView{Listings: listings, Total: len(listings)}
}

func cities(view *models.FilteredView) []string {
	out := make([]string, 0, view.Len())
	for _, l := range view.Listings {
		out = append(out, l.City)
	}
	return out
}
