package geocode

import (
	"strings"

	"travelland/models"
)

// seedEntry pins a well-known city to a curated center and radius. Seed hits
// bypass remote geocoding entirely, which both saves free-tier quota and
// avoids ambiguous answers for the most common queries.
type seedEntry struct {
	center   models.Coordinate
	radiusKm float64
	country  string
}

// SeedIndex is an in-process lookup of popular cities.
type SeedIndex struct {
	entries map[string]seedEntry
}

// NormalizePlace lowercases, trims and collapses whitespace in a place name.
func NormalizePlace(place string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(place))), " ")
}

func (s *SeedIndex) Lookup(place, country string) (models.GeoArea, bool) {
	key := NormalizePlace(place)
	entry, ok := s.entries[key]
	if !ok {
		return models.GeoArea{}, false
	}
	if country != "" && entry.country != "" &&
		!strings.EqualFold(strings.TrimSpace(country), entry.country) {
		return models.GeoArea{}, false
	}
	return models.GeoArea{
		Center:   entry.center,
		BBox:     models.BBoxFromCircle(entry.center, entry.radiusKm),
		RadiusKm: entry.radiusKm,
	}, true
}

// DefaultSeedIndex covers the cities that dominate traffic. Radii are tuned
// per city: compact historic centers get small circles, sprawling metros
// larger ones. "new york" deliberately points at Manhattan so a state-level
// geocode never leaks in.
func DefaultSeedIndex() *SeedIndex {
	return &SeedIndex{entries: map[string]seedEntry{
		"london":         {models.Coordinate{Lat: 51.5074, Lon: -0.1278}, 15, "united kingdom"},
		"city of london": {models.Coordinate{Lat: 51.5155, Lon: -0.0922}, 3, "united kingdom"},
		"paris":          {models.Coordinate{Lat: 48.8566, Lon: 2.3522}, 12, "france"},
		"new york":       {models.Coordinate{Lat: 40.7580, Lon: -73.9855}, 15, "united states"},
		"tokyo":          {models.Coordinate{Lat: 35.6812, Lon: 139.7671}, 18, "japan"},
		"berlin":         {models.Coordinate{Lat: 52.5200, Lon: 13.4050}, 15, "germany"},
		"rome":           {models.Coordinate{Lat: 41.9028, Lon: 12.4964}, 10, "italy"},
		"barcelona":      {models.Coordinate{Lat: 41.3874, Lon: 2.1686}, 10, "spain"},
		"madrid":         {models.Coordinate{Lat: 40.4168, Lon: -3.7038}, 12, "spain"},
		"amsterdam":      {models.Coordinate{Lat: 52.3676, Lon: 4.9041}, 8, "netherlands"},
		"prague":         {models.Coordinate{Lat: 50.0755, Lon: 14.4378}, 8, "czechia"},
		"lisbon":         {models.Coordinate{Lat: 38.7223, Lon: -9.1393}, 8, "portugal"},
		"vienna":         {models.Coordinate{Lat: 48.2082, Lon: 16.3738}, 10, "austria"},
		"budapest":       {models.Coordinate{Lat: 47.4979, Lon: 19.0402}, 10, "hungary"},
		"dublin":         {models.Coordinate{Lat: 53.3498, Lon: -6.2603}, 8, "ireland"},
		"istanbul":       {models.Coordinate{Lat: 41.0082, Lon: 28.9784}, 18, "turkey"},
		"bangkok":        {models.Coordinate{Lat: 13.7563, Lon: 100.5018}, 15, "thailand"},
		"singapore":      {models.Coordinate{Lat: 1.3521, Lon: 103.8198}, 15, "singapore"},
		"sydney":         {models.Coordinate{Lat: -33.8688, Lon: 151.2093}, 15, "australia"},
		"san francisco":  {models.Coordinate{Lat: 37.7749, Lon: -122.4194}, 10, "united states"},
	}}
}
