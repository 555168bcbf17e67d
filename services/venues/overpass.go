package venues

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"travelland/models"

	"golang.org/x/time/rate"
)

// overpassSelectors maps each internal category to the OSM tag filters that
// may represent it. The table is strict: a food query never matches generic
// leisure/building/commercial tagging even though Overpass could return it.
var overpassSelectors = map[models.Category][]string{
	models.CategoryRestaurant: {`node["amenity"~"restaurant|fast_food|food_court"]`, `way["amenity"~"restaurant|fast_food|food_court"]`},
	models.CategoryCafe:       {`node["amenity"="cafe"]`, `way["amenity"="cafe"]`},
	models.CategoryBar:        {`node["amenity"~"bar|pub|biergarten"]`, `way["amenity"~"bar|pub|biergarten"]`},
	models.CategoryNightclub:  {`node["amenity"="nightclub"]`, `way["amenity"="nightclub"]`},
	models.CategoryHistoric:   {`node["historic"~"castle|monument|memorial|ruins|fort|archaeological_site|city_gate"]`, `way["historic"~"castle|monument|memorial|ruins|fort|archaeological_site|city_gate"]`},
	models.CategoryMarket:     {`node["amenity"="marketplace"]`, `way["amenity"="marketplace"]`},
	models.CategoryPark:       {`way["leisure"~"park|garden"]`, `node["leisure"~"park|garden"]`},
	models.CategoryMuseum:     {`node["tourism"~"museum|gallery"]`, `way["tourism"~"museum|gallery"]`},
}

// OverpassAdapter queries the OSM Overpass API. It is the highest-priority
// source: coverage is broad and records usually carry proper addr:* tags.
type OverpassAdapter struct {
	URL        string
	Client     *http.Client
	Limiter    *rate.Limiter
	MaxResults int
}

func NewOverpassAdapter(apiURL string, timeout time.Duration) *OverpassAdapter {
	return &OverpassAdapter{
		URL:        apiURL,
		Client:     &http.Client{Timeout: timeout},
		Limiter:    rate.NewLimiter(rate.Every(time.Second), 1),
		MaxResults: 60,
	}
}

func (a *OverpassAdapter) Name() string { return "overpass" }

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    float64           `json:"lat"`
	Lon    float64           `json:"lon"`
	Center *struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"center"`
	Tags map[string]string `json:"tags"`
}

func (a *OverpassAdapter) Query(ctx context.Context, area models.GeoArea, category models.Category) ([]models.RawVenue, error) {
	selectors, ok := overpassSelectors[category]
	if !ok {
		return nil, nil
	}
	if err := a.Limiter.Wait(ctx); err != nil {
		return nil, &ProviderError{Provider: a.Name(), Err: err}
	}

	bbox := fmt.Sprintf("(%f,%f,%f,%f)", area.BBox.MinLat, area.BBox.MinLon, area.BBox.MaxLat, area.BBox.MaxLon)
	var b strings.Builder
	b.WriteString("[out:json][timeout:10];(")
	for _, sel := range selectors {
		b.WriteString(sel)
		b.WriteString(bbox)
		b.WriteString(";")
	}
	fmt.Fprintf(&b, ");out center tags %d;", a.MaxResults)

	form := url.Values{"data": {b.String()}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.URL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &ProviderError{Provider: a.Name(), Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, &ProviderError{Provider: a.Name(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{Provider: a.Name(), Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	var decoded overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, &ProviderError{Provider: a.Name(), Err: fmt.Errorf("malformed response: %w", err)}
	}

	var out []models.RawVenue
	for _, el := range decoded.Elements {
		v, ok := a.toVenue(el, category)
		if !ok {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (a *OverpassAdapter) toVenue(el overpassElement, category models.Category) (models.RawVenue, bool) {
	name := el.Tags["name"]
	if name == "" {
		return models.RawVenue{}, false
	}

	lat, lon := el.Lat, el.Lon
	if el.Center != nil {
		lat, lon = el.Center.Lat, el.Center.Lon
	}
	if lat == 0 && lon == 0 {
		return models.RawVenue{}, false
	}

	phone := el.Tags["phone"]
	if phone == "" {
		phone = el.Tags["contact:phone"]
	}
	website := el.Tags["website"]
	if website == "" {
		website = el.Tags["contact:website"]
	}

	return models.RawVenue{
		LocalID:  fmt.Sprintf("%s/%d", el.Type, el.ID),
		Name:     name,
		Category: category,
		Lat:      lat,
		Lon:      lon,
		Address:  buildOSMAddress(el.Tags),
		Phone:    phone,
		Website:  website,
		Source:   a.Name(),
	}, true
}

// buildOSMAddress assembles a human-readable address from addr:* tags.
// Returns "" when the record is coordinate-only; such venues are rejected
// downstream.
func buildOSMAddress(tags map[string]string) string {
	var parts []string
	street := tags["addr:street"]
	if street != "" {
		if num := tags["addr:housenumber"]; num != "" {
			street = street + " " + num
		}
		parts = append(parts, street)
	}
	if city := tags["addr:city"]; city != "" {
		parts = append(parts, city)
	}
	if pc := tags["addr:postcode"]; pc != "" {
		parts = append(parts, pc)
	}
	return strings.Join(parts, ", ")
}
