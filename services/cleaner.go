package services

import (
	"strings"
	"unicode"

	"immo-dashboard/models"
	"immo-dashboard/utils"
)

// Cleaner tidies freshly read listings in place before they enter the
// dataset. It never drops rows.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean collapses whitespace in text attributes, derives a missing price per
// m² from price and surface, and assigns each listing its region.
func (c *Cleaner) Clean(listings []*models.Listing) []*models.Listing {
	var derived, unmapped int
	for _, l := range listings {
		l.SearchCity = normaliseText(l.SearchCity)
		l.City = normaliseText(l.City)
		l.Type = normaliseText(l.Type)

		if (models.Missing(l.PriceM2) || l.PriceM2 == 0) && l.SurfaceM2 > 0 && l.Price > 0 {
			l.PriceM2 = l.Price / l.SurfaceM2
			derived++
		}

		region, ok := RegionOf(l.SearchCity)
		if !ok {
			unmapped++
		}
		l.Region = region
	}

	if derived > 0 {
		c.logger.Debug("[cleaner] Derived price per m² for %d listings", derived)
	}
	if unmapped > 0 {
		c.logger.Warn("[cleaner] %d listings have a search city outside the region table", unmapped)
	}
	return listings
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}
