package server

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"immo-dashboard/models"
	"immo-dashboard/services"
)

// parseSelection builds a FilterSelection from query parameters. Missing
// bounds fall back to the dataset's default ranges. region, city and rooms
// may be repeated or comma separated.
func parseSelection(q url.Values, ds *models.Dataset) (models.FilterSelection, error) {
	sel := services.DefaultSelection(ds)
	sel.Regions = multi(q, "region")
	sel.Cities = multi(q, "city")

	sel.Rooms = nil
	for _, raw := range multi(q, "rooms") {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return sel, fmt.Errorf("invalid rooms value %q", raw)
		}
		sel.Rooms = append(sel.Rooms, n)
	}

	bounds := []struct {
		key string
		dst *float64
	}{
		{"price_min", &sel.Price.Min},
		{"price_max", &sel.Price.Max},
		{"surface_min", &sel.Surface.Min},
		{"surface_max", &sel.Surface.Max},
	}
	for _, b := range bounds {
		raw := strings.TrimSpace(q.Get(b.key))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return sel, fmt.Errorf("invalid %s value %q", b.key, raw)
		}
		*b.dst = v
	}
	return sel, nil
}

func multi(q url.Values, key string) []string {
	var out []string
	for _, v := range q[key] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func parseFieldParam(q url.Values, key string, fallback models.Field) (models.Field, error) {
	raw := q.Get(key)
	if raw == "" {
		return fallback, nil
	}
	f, ok := models.ParseField(raw)
	if !ok {
		return "", fmt.Errorf("unknown field %q for %s", raw, key)
	}
	return f, nil
}

func parseIntParam(q url.Values, key string, fallback int) (int, error) {
	raw := q.Get(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid %s value %q", key, raw)
	}
	return n, nil
}
