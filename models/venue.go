package models

// Category is the internal venue taxonomy. Every adapter maps its source's
// native tagging scheme onto these values; anything that does not map is
// dropped at the adapter boundary.
type Category string

const (
	CategoryRestaurant Category = "restaurant"
	CategoryCafe       Category = "cafe"
	CategoryBar        Category = "bar"
	CategoryNightclub  Category = "nightclub"
	CategoryHistoric   Category = "historic"
	CategoryMarket     Category = "market"
	CategoryPark       Category = "park"
	CategoryMuseum     Category = "museum"
)

// FoodCategories are the categories a food-intent query may surface.
var FoodCategories = map[Category]bool{
	CategoryRestaurant: true,
	CategoryCafe:       true,
	CategoryBar:        true,
}

// KnownCategories indexes the taxonomy for validation.
var KnownCategories = map[Category]bool{
	CategoryRestaurant: true,
	CategoryCafe:       true,
	CategoryBar:        true,
	CategoryNightclub:  true,
	CategoryHistoric:   true,
	CategoryMarket:     true,
	CategoryPark:       true,
	CategoryMuseum:     true,
}

// RawVenue is a provider candidate before filtering, scoring and dedup.
// LocationApprox marks candidates pinned to the search-area center rather
// than their own coordinates; their distance carries no ranking signal.
type RawVenue struct {
	LocalID        string
	Name           string
	Category       Category
	Lat            float64
	Lon            float64
	Address        string
	Rating         float64
	Phone          string
	Website        string
	Source         string
	LocationApprox bool
}

// Venue is a finalized venue record as returned to the caller. ID is
// provider-qualified ("overpass:node/123"). Records live only for the
// duration of a request plus the cache TTL.
type Venue struct {
	ID         string   `json:"-"`
	Name       string   `json:"name"`
	Category   Category `json:"category"`
	Lat        float64  `json:"lat"`
	Lon        float64  `json:"lon"`
	Address    string   `json:"address"`
	Rating     float64  `json:"rating,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	Website    string   `json:"website,omitempty"`
	Source     string   `json:"source"`
	DistanceKm float64  `json:"distance_km"`
	Score      float64  `json:"-"`
}
