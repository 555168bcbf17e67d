package search

import (
	"context"

	"travelland/models"
	"travelland/services/venues"

	"go.uber.org/zap"
)

// Service is the search engine surface consumed by the HTTP handlers.
type Service interface {
	Search(ctx context.Context, req models.SearchRequest) (models.SearchResponse, bool, error)
	Neighborhoods(ctx context.Context, city string, lat, lon float64) ([]models.Neighborhood, error)
}

// DefaultSearchService runs the coordinator behind the fingerprint cache.
type DefaultSearchService struct {
	Coordinator *Coordinator
	Cache       *Cache
	Overpass    *venues.OverpassAdapter
	Logger      *zap.Logger
}

// Search returns the memoized payload when fresh; otherwise it coordinates a
// full provider fan-out. The bool reports a cache hit. Identical concurrent
// requests share one computation through the cache's single-flight group.
func (s *DefaultSearchService) Search(ctx context.Context, req models.SearchRequest) (models.SearchResponse, bool, error) {
	key := Fingerprint(req, s.Coordinator.ProviderNames())

	return s.Cache.GetOrCompute(ctx, key, func(ctx context.Context) (models.SearchResponse, error) {
		outcome, err := s.Coordinator.Run(ctx, req, func(partial []models.Venue) {
			s.Logger.Info("partial snapshot ready",
				zap.String("city", req.City),
				zap.Int("venues", len(partial)))
		})
		if err != nil {
			return models.SearchResponse{}, err
		}

		s.Logger.Info("search finalized",
			zap.String("city", req.City),
			zap.String("category", string(outcome.Category)),
			zap.Int("venues", len(outcome.Venues)),
			zap.Int("providers_succeeded", outcome.ProvidersSucceeded),
			zap.Int("providers_failed", outcome.ProvidersFailed),
			zap.Int("providers_abandoned", outcome.ProvidersAbandoned))

		return Assemble(req, outcome), nil
	})
}

// Neighborhoods resolves the city (or uses the supplied point) and lists
// named sub-areas inside it. The seed table answers for curated cities;
// everything else goes to Overpass.
func (s *DefaultSearchService) Neighborhoods(ctx context.Context, city string, lat, lon float64) ([]models.Neighborhood, error) {
	if seeded, ok := seedNeighborhoods(city); ok {
		return seeded, nil
	}

	var area models.GeoArea
	if lat != 0 || lon != 0 {
		center := models.Coordinate{Lat: lat, Lon: lon}
		area = models.GeoArea{
			Center:   center,
			BBox:     models.BBoxFromCircle(center, s.Coordinator.Filter.MaxDistanceKm/2),
			RadiusKm: s.Coordinator.Filter.MaxDistanceKm / 2,
		}
	} else {
		resolved, err := s.Coordinator.Resolver.Resolve(ctx, city, "")
		if err != nil {
			return nil, err
		}
		area = resolved
	}

	if s.Overpass == nil {
		return []models.Neighborhood{}, nil
	}
	hoods, err := s.Overpass.Suburbs(ctx, area)
	if err != nil {
		s.Logger.Warn("neighborhood lookup degraded", zap.String("city", city), zap.Error(err))
		return []models.Neighborhood{}, nil
	}
	return hoods, nil
}
