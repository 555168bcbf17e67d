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

// otmKinds maps internal categories to OpenTripMap "kinds". Categories with
// no clean kind are absent on purpose; the adapter then contributes nothing
// rather than guessing.
var otmKinds = map[models.Category]string{
	models.CategoryRestaurant: "restaurants",
	models.CategoryCafe:       "cafes",
	models.CategoryBar:        "bars,pubs",
	models.CategoryNightclub:  "nightclubs",
	models.CategoryHistoric:   "historic",
	models.CategoryMarket:     "marketplaces",
	models.CategoryPark:       "gardens_and_parks",
	models.CategoryMuseum:     "museums",
}

// OpenTripMapAdapter lists POIs in a bbox, then enriches the top hits with a
// detail lookup because the list endpoint carries no address. The free tier
// allows 5 requests/second and 5000/day, so detail fetches are capped.
type OpenTripMapAdapter struct {
	BaseURL    string
	APIKey     string
	Client     *http.Client
	Limiter    *rate.Limiter
	MaxDetails int
}

func NewOpenTripMapAdapter(baseURL, apiKey string, timeout time.Duration) *OpenTripMapAdapter {
	return &OpenTripMapAdapter{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		Client:     &http.Client{Timeout: timeout},
		Limiter:    rate.NewLimiter(rate.Every(200*time.Millisecond), 1),
		MaxDetails: 20,
	}
}

func (a *OpenTripMapAdapter) Name() string { return "opentripmap" }

type otmListItem struct {
	XID   string  `json:"xid"`
	Name  string  `json:"name"`
	Kinds string  `json:"kinds"`
	Rate  float64 `json:"rate"`
	Point struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"point"`
}

type otmDetail struct {
	XID     string `json:"xid"`
	Name    string `json:"name"`
	Rate    string `json:"rate"`
	URL     string `json:"url"`
	Address struct {
		Road        string `json:"road"`
		HouseNumber string `json:"house_number"`
		City        string `json:"city"`
		Postcode    string `json:"postcode"`
		Suburb      string `json:"suburb"`
	} `json:"address"`
	Point struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"point"`
}

func (a *OpenTripMapAdapter) Query(ctx context.Context, area models.GeoArea, category models.Category) ([]models.RawVenue, error) {
	if a.APIKey == "" {
		return nil, &ProviderError{Provider: a.Name(), Err: fmt.Errorf("API key not configured")}
	}
	kinds, ok := otmKinds[category]
	if !ok {
		return nil, nil
	}

	items, err := a.listBBox(ctx, area, kinds)
	if err != nil {
		return nil, err
	}

	var out []models.RawVenue
	for i, item := range items {
		if i >= a.MaxDetails {
			break
		}
		if item.Name == "" || item.XID == "" {
			continue
		}
		detail, err := a.fetchDetail(ctx, item.XID)
		if err != nil {
			// One failed detail lookup is not worth losing the rest.
			continue
		}
		out = append(out, models.RawVenue{
			LocalID:  item.XID,
			Name:     item.Name,
			Category: category,
			Lat:      item.Point.Lat,
			Lon:      item.Point.Lon,
			Address:  buildOTMAddress(detail),
			Rating:   item.Rate,
			Website:  detail.URL,
			Source:   a.Name(),
		})
	}
	return out, nil
}

func (a *OpenTripMapAdapter) listBBox(ctx context.Context, area models.GeoArea, kinds string) ([]otmListItem, error) {
	if err := a.Limiter.Wait(ctx); err != nil {
		return nil, &ProviderError{Provider: a.Name(), Err: err}
	}
	endpoint := fmt.Sprintf(
		"%s/places/bbox?lon_min=%f&lon_max=%f&lat_min=%f&lat_max=%f&kinds=%s&format=json&limit=50&apikey=%s",
		a.BaseURL,
		area.BBox.MinLon, area.BBox.MaxLon, area.BBox.MinLat, area.BBox.MaxLat,
		url.QueryEscape(kinds), url.QueryEscape(a.APIKey))

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
		return nil, &ProviderError{Provider: a.Name(), Err: fmt.Errorf("bbox status %d", resp.StatusCode)}
	}

	var items []otmListItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, &ProviderError{Provider: a.Name(), Err: fmt.Errorf("malformed bbox response: %w", err)}
	}
	return items, nil
}

func (a *OpenTripMapAdapter) fetchDetail(ctx context.Context, xid string) (*otmDetail, error) {
	if err := a.Limiter.Wait(ctx); err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf("%s/places/xid/%s?apikey=%s", a.BaseURL, url.PathEscape(xid), url.QueryEscape(a.APIKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("detail status %d", resp.StatusCode)
	}
	var d otmDetail
	if err := json.NewDecoder(resp.Body).Decode(&d); err != nil {
		return nil, err
	}
	return &d, nil
}

func buildOTMAddress(d *otmDetail) string {
	var parts []string
	road := d.Address.Road
	if road != "" {
		if d.Address.HouseNumber != "" {
			road = road + " " + d.Address.HouseNumber
		}
		parts = append(parts, road)
	} else if d.Address.Suburb != "" {
		parts = append(parts, d.Address.Suburb)
	}
	if d.Address.City != "" {
		parts = append(parts, d.Address.City)
	}
	if d.Address.Postcode != "" {
		parts = append(parts, d.Address.Postcode)
	}
	return strings.Join(parts, ", ")
}
