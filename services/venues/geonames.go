package venues

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"travelland/models"

	"golang.org/x/time/rate"
)

// geonamesCodes maps internal categories to GeoNames feature codes. GeoNames
// has no codes for cafes, bars or nightclubs; for those this adapter stays
// silent instead of stretching a looser code to fit.
var geonamesCodes = map[models.Category][]string{
	models.CategoryRestaurant: {"REST"},
	models.CategoryMuseum:     {"MUS"},
	models.CategoryPark:       {"PRK", "GDN"},
	models.CategoryMarket:     {"MKT"},
	models.CategoryHistoric:   {"HSTS", "MNMT", "CSTL", "RUIN"},
}

// GeoNamesAdapter searches the GeoNames gazetteer inside the area bbox. The
// free tier allows about 1000 requests/hour per username.
type GeoNamesAdapter struct {
	BaseURL  string
	Username string
	Client   *http.Client
	Limiter  *rate.Limiter
}

func NewGeoNamesAdapter(baseURL, username string, timeout time.Duration) *GeoNamesAdapter {
	return &GeoNamesAdapter{
		BaseURL:  baseURL,
		Username: username,
		Client:   &http.Client{Timeout: timeout},
		Limiter:  rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

func (a *GeoNamesAdapter) Name() string { return "geonames" }

type geonamesResponse struct {
	Geonames []struct {
		GeonameID  int    `json:"geonameId"`
		Name       string `json:"name"`
		Lat        string `json:"lat"`
		Lng        string `json:"lng"`
		Fcode      string `json:"fcode"`
		AdminName1 string `json:"adminName1"`
		Country    string `json:"countryName"`
	} `json:"geonames"`
}

func (a *GeoNamesAdapter) Query(ctx context.Context, area models.GeoArea, category models.Category) ([]models.RawVenue, error) {
	if a.Username == "" {
		return nil, &ProviderError{Provider: a.Name(), Err: fmt.Errorf("username not configured")}
	}
	codes, ok := geonamesCodes[category]
	if !ok {
		return nil, nil
	}
	if err := a.Limiter.Wait(ctx); err != nil {
		return nil, &ProviderError{Provider: a.Name(), Err: err}
	}

	params := url.Values{}
	params.Set("north", strconv.FormatFloat(area.BBox.MaxLat, 'f', 6, 64))
	params.Set("south", strconv.FormatFloat(area.BBox.MinLat, 'f', 6, 64))
	params.Set("east", strconv.FormatFloat(area.BBox.MaxLon, 'f', 6, 64))
	params.Set("west", strconv.FormatFloat(area.BBox.MinLon, 'f', 6, 64))
	params.Set("maxRows", "50")
	params.Set("username", a.Username)
	for _, code := range codes {
		params.Add("featureCode", code)
	}

	endpoint := a.BaseURL + "/searchJSON?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &ProviderError{Provider: a.Name(), Err: err}
	}

	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, &ProviderError{Provider: a.Name(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{Provider: a.Name(), Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	var decoded geonamesResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, &ProviderError{Provider: a.Name(), Err: fmt.Errorf("malformed response: %w", err)}
	}

	var out []models.RawVenue
	for _, g := range decoded.Geonames {
		if g.Name == "" {
			continue
		}
		lat, err1 := strconv.ParseFloat(g.Lat, 64)
		lon, err2 := strconv.ParseFloat(g.Lng, 64)
		if err1 != nil || err2 != nil {
			continue
		}
		out = append(out, models.RawVenue{
			LocalID:  strconv.Itoa(g.GeonameID),
			Name:     g.Name,
			Category: category,
			Lat:      lat,
			Lon:      lon,
			Address:  joinNonEmpty(", ", g.Name, g.AdminName1, g.Country),
			Source:   a.Name(),
		})
	}
	return out, nil
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
