package venues

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"travelland/models"
)

// suburbRadiusKm bounds a neighborhood's bbox when OSM only gives us the
// labelled point of the suburb.
const suburbRadiusKm = 1.5

// Suburbs lists named sub-areas (suburb/neighbourhood/quarter places) inside
// the city area, for scoping a follow-up search to one neighborhood.
func (a *OverpassAdapter) Suburbs(ctx context.Context, area models.GeoArea) ([]models.Neighborhood, error) {
	if err := a.Limiter.Wait(ctx); err != nil {
		return nil, &ProviderError{Provider: a.Name(), Err: err}
	}

	query := fmt.Sprintf(
		`[out:json][timeout:10];node["place"~"suburb|neighbourhood|quarter"](%f,%f,%f,%f);out 40;`,
		area.BBox.MinLat, area.BBox.MinLon, area.BBox.MaxLat, area.BBox.MaxLon)

	form := url.Values{"data": {query}}
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

	var out []models.Neighborhood
	for _, el := range decoded.Elements {
		name := el.Tags["name"]
		if name == "" || (el.Lat == 0 && el.Lon == 0) {
			continue
		}
		center := models.Coordinate{Lat: el.Lat, Lon: el.Lon}
		out = append(out, models.Neighborhood{
			ID:   fmt.Sprintf("%s/%d", el.Type, el.ID),
			Name: name,
			BBox: models.BBoxFromCircle(center, suburbRadiusKm),
		})
	}
	return out, nil
}
