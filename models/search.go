package models

import (
	"fmt"
	"time"
)

// SearchRequest is the body of POST /search. Either Category or Q must carry
// the intent; if NeighborhoodBBox is supplied it overrides city-level
// geocoding entirely.
type SearchRequest struct {
	City             string       `json:"city" binding:"required"`
	Country          string       `json:"country"`
	Neighborhood     string       `json:"neighborhood"`
	NeighborhoodBBox *BoundingBox `json:"neighborhood_bbox"`
	Category         string       `json:"category"`
	Q                string       `json:"q"`
	Budget           string       `json:"budget"`
	Provider         string       `json:"provider"`
}

// Query returns the effective category/query text.
func (r SearchRequest) Query() string {
	if r.Category != "" {
		return r.Category
	}
	return r.Q
}

// SearchResponse is the external response shape consumed by the UI.
type SearchResponse struct {
	Venues     []Venue         `json:"venues"`
	Wikivoyage []string        `json:"wikivoyage,omitempty"`
	Costs      []CostEntry     `json:"costs,omitempty"`
	Transport  []TransportMode `json:"transport,omitempty"`
}

// CostEntry is a per-tier daily cost estimate for a city.
type CostEntry struct {
	Tier        string `json:"tier"`
	DailyUSD    int    `json:"daily_usd"`
	Description string `json:"description"`
}

// TransportMode describes one way of getting around a city.
type TransportMode struct {
	Mode  string `json:"mode"`
	Notes string `json:"notes"`
}

// Neighborhood is a named sub-area of a city with its own bbox.
type Neighborhood struct {
	ID   string      `json:"id"`
	Name string      `json:"name"`
	BBox BoundingBox `json:"bbox"`
}

// RequestBudget is the wall-clock budget for one search request. PartialAfter
// is the point at which a first response is cut from whatever providers have
// completed; Deadline is the hard stop for background enrichment.
type RequestBudget struct {
	Deadline        time.Duration
	PartialAfter    time.Duration
	ProviderTimeout time.Duration
}

// Validate enforces the budget ordering: a provider must be able to finish at
// least one round before the partial cut, and the partial cut must precede
// the deadline.
func (b RequestBudget) Validate() error {
	if b.Deadline <= 0 || b.PartialAfter <= 0 || b.ProviderTimeout <= 0 {
		return fmt.Errorf("budget durations must be positive")
	}
	if b.PartialAfter >= b.Deadline {
		return fmt.Errorf("partial threshold %v must be below deadline %v", b.PartialAfter, b.Deadline)
	}
	if b.ProviderTimeout > b.PartialAfter {
		return fmt.Errorf("provider timeout %v must not exceed partial threshold %v", b.ProviderTimeout, b.PartialAfter)
	}
	return nil
}
