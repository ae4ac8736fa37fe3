package services

import "sort"

// cityRegions maps a search city to its administrative region.
var cityRegions = map[string]string{
	"Paris":       "Île-de-France",
	"Marseille":   "PACA",
	"Nice":        "PACA",
	"Lyon":        "Auvergne-Rhône-Alpes",
	"Toulouse":    "Occitanie",
	"Montpellier": "Occitanie",
	"Bordeaux":    "Nouvelle-Aquitaine",
	"Lille":       "Hauts-de-France",
	"Rennes":      "Bretagne",
	"Rouen":       "Normandie",
}

// RegionOf returns the region of a search city. The boolean is false for a
// city outside the table.
func RegionOf(searchCity string) (string, bool) {
	r, ok := cityRegions[searchCity]
	return r, ok
}

// KnownRegions returns the distinct regions of the table, sorted.
func KnownRegions() []string {
	seen := make(map[string]struct{}, len(cityRegions))
	for _, r := range cityRegions {
		seen[r] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for r := range seen {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

// KnownCities returns the search cities of the table, sorted.
func KnownCities() []string {
	out := make([]string, 0, len(cityRegions))
	for c := range cityRegions {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
