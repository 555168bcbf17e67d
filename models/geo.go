package models

import "math"

const earthRadiusKm = 6371.0

// Coordinate is a WGS84 point.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// BoundingBox is a rectangular lat/lon extent.
type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLon float64 `json:"max_lon"`
}

// Contains reports whether c lies inside the box (borders included).
func (b BoundingBox) Contains(c Coordinate) bool {
	return c.Lat >= b.MinLat && c.Lat <= b.MaxLat &&
		c.Lon >= b.MinLon && c.Lon <= b.MaxLon
}

// Center returns the midpoint of the box.
func (b BoundingBox) Center() Coordinate {
	return Coordinate{
		Lat: (b.MinLat + b.MaxLat) / 2,
		Lon: (b.MinLon + b.MaxLon) / 2,
	}
}

// DiagonalKm returns the great-circle length of the box diagonal.
func (b BoundingBox) DiagonalKm() float64 {
	return HaversineKm(
		Coordinate{Lat: b.MinLat, Lon: b.MinLon},
		Coordinate{Lat: b.MaxLat, Lon: b.MaxLon},
	)
}

// BBoxFromCircle builds a box enclosing a circle of radiusKm around center.
func BBoxFromCircle(center Coordinate, radiusKm float64) BoundingBox {
	latDelta := radiusKm / 111.32
	lonDelta := latDelta
	if cos := math.Cos(center.Lat * math.Pi / 180); cos > 0.01 {
		lonDelta = radiusKm / (111.32 * cos)
	}
	return BoundingBox{
		MinLat: center.Lat - latDelta,
		MaxLat: center.Lat + latDelta,
		MinLon: center.Lon - lonDelta,
		MaxLon: center.Lon + lonDelta,
	}
}

// GeoArea is a resolved search area: a center with its bounding box and a
// radius of confidence. BBox always contains Center.
type GeoArea struct {
	Center   Coordinate  `json:"center"`
	BBox     BoundingBox `json:"bbox"`
	RadiusKm float64     `json:"radius_km"`
}

// HaversineKm returns the great-circle distance between two points.
func HaversineKm(a, b Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}
