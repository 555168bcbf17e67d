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

// WebSearchAdapter is the last-resort fallback: it asks a SearXNG instance
// for the category near the area center and turns organic results into
// low-confidence candidates pinned to that center. Results without an
// address-looking snippet are dropped so coordinate-only junk never reaches
// the caller.
type WebSearchAdapter struct {
	URL     string
	Client  *http.Client
	Limiter *rate.Limiter
}

func NewWebSearchAdapter(searxURL string, timeout time.Duration) *WebSearchAdapter {
	return &WebSearchAdapter{
		URL:     searxURL,
		Client:  &http.Client{Timeout: timeout},
		Limiter: rate.NewLimiter(rate.Every(2*time.Second), 1),
	}
}

func (a *WebSearchAdapter) Name() string { return "websearch" }

type searxResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

func (a *WebSearchAdapter) Query(ctx context.Context, area models.GeoArea, category models.Category) ([]models.RawVenue, error) {
	if a.URL == "" {
		return nil, &ProviderError{Provider: a.Name(), Err: fmt.Errorf("SearXNG URL not configured")}
	}
	if err := a.Limiter.Wait(ctx); err != nil {
		return nil, &ProviderError{Provider: a.Name(), Err: err}
	}

	q := fmt.Sprintf("%s near %f,%f", category, area.Center.Lat, area.Center.Lon)
	endpoint := fmt.Sprintf("%s/search?q=%s&format=json", a.URL, url.QueryEscape(q))

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

	var decoded searxResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, &ProviderError{Provider: a.Name(), Err: fmt.Errorf("malformed response: %w", err)}
	}

	var out []models.RawVenue
	for i, r := range decoded.Results {
		if i >= 10 {
			break
		}
		name := cleanTitle(r.Title)
		addr := extractAddress(r.Content)
		if name == "" || addr == "" {
			continue
		}
		out = append(out, models.RawVenue{
			LocalID:        fmt.Sprintf("web-%d", i),
			Name:           name,
			Category:       category,
			Lat:            area.Center.Lat,
			Lon:            area.Center.Lon,
			Address:        addr,
			Website:        r.URL,
			Source:         a.Name(),
			LocationApprox: true,
		})
	}
	return out, nil
}

// cleanTitle strips common review-site suffixes ("... - Tripadvisor").
func cleanTitle(title string) string {
	for _, sep := range []string{" - ", " | ", " – "} {
		if idx := strings.Index(title, sep); idx > 0 {
			title = title[:idx]
		}
	}
	return strings.TrimSpace(title)
}

// extractAddress accepts a snippet sentence only when it looks like a street
// address: contains a digit and a comma.
func extractAddress(content string) string {
	for _, sentence := range strings.Split(content, ".") {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) < 10 || len(sentence) > 120 {
			continue
		}
		if strings.ContainsAny(sentence, "0123456789") && strings.Contains(sentence, ",") {
			return sentence
		}
	}
	return ""
}
