package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"travelland/models"

	"golang.org/x/time/rate"
)

// NominatimSource is the primary remote geocoder (OSM Nominatim). The public
// instance allows roughly one request per second, enforced here so a burst of
// cache misses cannot get the service banned.
type NominatimSource struct {
	BaseURL string
	Client  *http.Client
	Limiter *rate.Limiter
}

func NewNominatimSource(baseURL string) *NominatimSource {
	return &NominatimSource{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 8 * time.Second},
		Limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

func (s *NominatimSource) Name() string { return "nominatim" }

type nominatimResult struct {
	Lat         string    `json:"lat"`
	Lon         string    `json:"lon"`
	BoundingBox []string  `json:"boundingbox"`
	Importance  float64   `json:"importance"`
	DisplayName string    `json:"display_name"`
	AddressType string    `json:"addresstype"`
}

func (s *NominatimSource) Lookup(ctx context.Context, place, country string) (*Candidate, error) {
	if err := s.Limiter.Wait(ctx); err != nil {
		return nil, err
	}

	q := place
	if country != "" {
		q = place + ", " + country
	}
	endpoint := fmt.Sprintf("%s/search?q=%s&format=json&limit=1", s.BaseURL, url.QueryEscape(q))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	// Nominatim's usage policy requires an identifying agent.
	req.Header.Set("User-Agent", "travelland/1.0")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim returned status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode nominatim response: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	r := results[0]
	lat, err1 := strconv.ParseFloat(r.Lat, 64)
	lon, err2 := strconv.ParseFloat(r.Lon, 64)
	if err1 != nil || err2 != nil {
		return nil, fmt.Errorf("nominatim returned unparsable coordinates %q/%q", r.Lat, r.Lon)
	}

	cand := &Candidate{
		Center:     models.Coordinate{Lat: lat, Lon: lon},
		Confidence: r.Importance,
	}

	// boundingbox comes as [minlat, maxlat, minlon, maxlon] strings.
	if len(r.BoundingBox) == 4 {
		minLat, e1 := strconv.ParseFloat(r.BoundingBox[0], 64)
		maxLat, e2 := strconv.ParseFloat(r.BoundingBox[1], 64)
		minLon, e3 := strconv.ParseFloat(r.BoundingBox[2], 64)
		maxLon, e4 := strconv.ParseFloat(r.BoundingBox[3], 64)
		if e1 == nil && e2 == nil && e3 == nil && e4 == nil {
			cand.BBox = &models.BoundingBox{MinLat: minLat, MaxLat: maxLat, MinLon: minLon, MaxLon: maxLon}
		}
	}

	return cand, nil
}
