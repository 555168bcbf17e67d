package search

import (
	"travelland/models"
	"travelland/services/geocode"
)

// curatedNeighborhoods answers the most common cities without an Overpass
// round trip. BBoxes are hand-drawn, roughly matching local understanding of
// the district rather than administrative borders.
var curatedNeighborhoods = map[string][]models.Neighborhood{
	"london": {
		{ID: "london/soho", Name: "Soho", BBox: models.BoundingBox{MinLat: 51.5101, MaxLat: 51.5166, MinLon: -0.1426, MaxLon: -0.1291}},
		{ID: "london/shoreditch", Name: "Shoreditch", BBox: models.BoundingBox{MinLat: 51.5215, MaxLat: 51.5301, MinLon: -0.0849, MaxLon: -0.0702}},
		{ID: "london/camden", Name: "Camden Town", BBox: models.BoundingBox{MinLat: 51.5340, MaxLat: 51.5460, MinLon: -0.1540, MaxLon: -0.1330}},
		{ID: "london/south-bank", Name: "South Bank", BBox: models.BoundingBox{MinLat: 51.5010, MaxLat: 51.5090, MinLon: -0.1210, MaxLon: -0.0990}},
	},
	"paris": {
		{ID: "paris/le-marais", Name: "Le Marais", BBox: models.BoundingBox{MinLat: 48.8530, MaxLat: 48.8640, MinLon: 2.3520, MaxLon: 2.3680}},
		{ID: "paris/montmartre", Name: "Montmartre", BBox: models.BoundingBox{MinLat: 48.8820, MaxLat: 48.8910, MinLon: 2.3300, MaxLon: 2.3480}},
		{ID: "paris/latin-quarter", Name: "Latin Quarter", BBox: models.BoundingBox{MinLat: 48.8440, MaxLat: 48.8540, MinLon: 2.3380, MaxLon: 2.3550}},
	},
	"new york": {
		{ID: "nyc/soho", Name: "SoHo", BBox: models.BoundingBox{MinLat: 40.7190, MaxLat: 40.7280, MinLon: -74.0050, MaxLon: -73.9950}},
		{ID: "nyc/east-village", Name: "East Village", BBox: models.BoundingBox{MinLat: 40.7220, MaxLat: 40.7330, MinLon: -73.9920, MaxLon: -73.9750}},
		{ID: "nyc/williamsburg", Name: "Williamsburg", BBox: models.BoundingBox{MinLat: 40.7040, MaxLat: 40.7230, MinLon: -73.9690, MaxLon: -73.9360}},
	},
}

func seedNeighborhoods(city string) ([]models.Neighborhood, bool) {
	hoods, ok := curatedNeighborhoods[geocode.NormalizePlace(city)]
	return hoods, ok
}
