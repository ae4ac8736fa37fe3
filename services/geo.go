package services

import (
	"math"
	"sort"

	geohash "github.com/TomiHiltunen/geohash-golang"

	"immo-dashboard/models"
)

const apartmentType = "Appartement"

// BuildMapView positions every located row of view on the map, centred on
// the mean coordinates, and buckets markers into geohash cells of the given
// precision. It returns nil when no row of view has coordinates.
func BuildMapView(view *models.FilteredView, precision int) *models.MapView {
	if view.IsEmpty() {
		return nil
	}

	m := &models.MapView{Markers: make([]models.MapMarker, 0, view.Len())}
	type cellAcc struct {
		count  int
		priced int
		sum    float64
	}
	cells := make(map[string]*cellAcc)

	var sumLat, sumLon float64
	for _, l := range view.Listings {
		if models.Missing(l.Latitude) || models.Missing(l.Longitude) {
			continue
		}
		sumLat += l.Latitude
		sumLon += l.Longitude

		gh := cellOf(l.Latitude, l.Longitude, precision)
		acc, ok := cells[gh]
		if !ok {
			acc = &cellAcc{}
			cells[gh] = acc
		}
		acc.count++
		if !models.Missing(l.Price) {
			acc.priced++
			acc.sum += l.Price
		}

		m.Markers = append(m.Markers, models.MapMarker{
			Latitude:  l.Latitude,
			Longitude: l.Longitude,
			Color:     markerColor(l.Type),
			City:      l.City,
			Type:      l.Type,
			Price:     l.Price,
			SurfaceM2: l.SurfaceM2,
			Rooms:     l.Rooms,
			Geohash:   gh,
		})
	}

	if len(m.Markers) == 0 {
		return nil
	}
	n := float64(len(m.Markers))
	m.CenterLat, m.CenterLon = sumLat/n, sumLon/n

	m.Cells = make([]models.MapCell, 0, len(cells))
	for gh, acc := range cells {
		cell := models.MapCell{Geohash: gh, Count: acc.count, MeanPrice: math.NaN()}
		if acc.priced > 0 {
			cell.MeanPrice = acc.sum / float64(acc.priced)
		}
		m.Cells = append(m.Cells, cell)
	}
	sort.Slice(m.Cells, func(i, j int) bool {
		if m.Cells[i].Count != m.Cells[j].Count {
			return m.Cells[i].Count > m.Cells[j].Count
		}
		return m.Cells[i].Geohash < m.Cells[j].Geohash
	})
	return m
}

func markerColor(typ string) string {
	if typ == apartmentType {
		return "blue"
	}
	return "red"
}

func cellOf(lat, lon float64, precision int) string {
	gh := geohash.Encode(lat, lon)
	if precision < 1 {
		precision = 1
	}
	if precision < len(gh) {
		return gh[:precision]
	}
	return gh
}
