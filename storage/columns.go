package storage

// Column names of the listings file, consumed verbatim.
const (
	ColSearchCity = "Ville_Recherche"
	ColCity       = "Ville_Reelle"
	ColType       = "Type"
	ColPrice      = "Prix"
	ColSurface    = "Surface_m2"
	ColRooms      = "Pieces"
	ColLatitude   = "Latitude"
	ColLongitude  = "Longitude"
	ColPriceM2    = "Prix_m2"
)

// Columns is the canonical column order used when writing CSV.
var Columns = []string{
	ColSearchCity, ColCity, ColType, ColPrice, ColSurface,
	ColRooms, ColLatitude, ColLongitude, ColPriceM2,
}
