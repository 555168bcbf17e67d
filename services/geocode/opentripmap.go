package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"travelland/models"

	"golang.org/x/time/rate"
)

// OpenTripMapSource is the secondary geocoder, backed by OpenTripMap's
// geoname endpoint. It returns a point without a bbox, so resolved areas
// always fall back to the configured circle.
type OpenTripMapSource struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
	Limiter *rate.Limiter
}

func NewOpenTripMapSource(baseURL, apiKey string) *OpenTripMapSource {
	return &OpenTripMapSource{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: 8 * time.Second},
		Limiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 1),
	}
}

func (s *OpenTripMapSource) Name() string { return "opentripmap" }

type geonameResult struct {
	Name       string  `json:"name"`
	Country    string  `json:"country"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Population int     `json:"population"`
	Status     string  `json:"status"`
}

func (s *OpenTripMapSource) Lookup(ctx context.Context, place, country string) (*Candidate, error) {
	if s.APIKey == "" {
		return nil, fmt.Errorf("opentripmap API key not configured")
	}
	if err := s.Limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/places/geoname?name=%s&apikey=%s",
		s.BaseURL, url.QueryEscape(place), url.QueryEscape(s.APIKey))
	if country != "" {
		endpoint += "&country=" + url.QueryEscape(country)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("opentripmap returned status %d", resp.StatusCode)
	}

	var r geonameResult
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("failed to decode opentripmap response: %w", err)
	}
	if r.Status == "NOT_FOUND" || (r.Lat == 0 && r.Lon == 0) {
		return nil, nil
	}

	return &Candidate{
		Center:     models.Coordinate{Lat: r.Lat, Lon: r.Lon},
		Confidence: 0.5,
	}, nil
}
