package venues

import (
	"context"
	"fmt"

	"travelland/models"
)

// Adapter is the uniform contract over every geodata source. Implementations
// map their source's native tagging scheme onto the internal category
// taxonomy and never surface tags outside it. A failing adapter contributes
// zero candidates; it must not take the request down with it.
type Adapter interface {
	Name() string
	Query(ctx context.Context, area models.GeoArea, category models.Category) ([]models.RawVenue, error)
}

// ProviderError is an isolated per-adapter failure. It is logged and swallowed
// by the coordinator, never propagated as a request failure.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("providerError: %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Priority orders providers for tie-breaking and dedup field merging. Lower
// is better. Unknown providers sort last.
var Priority = map[string]int{
	"overpass":    0,
	"opentripmap": 1,
	"geonames":    2,
	"websearch":   3,
}

// PriorityOf returns the ranking priority for a provider name.
func PriorityOf(provider string) int {
	if p, ok := Priority[provider]; ok {
		return p
	}
	return len(Priority)
}
