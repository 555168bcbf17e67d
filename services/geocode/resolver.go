package geocode

import (
	"context"
	"fmt"
	"strings"

	"travelland/models"

	"go.uber.org/zap"
)

// GeocodeError means no source could resolve the place. It aborts the whole
// search; callers must not degrade to an unbounded global query.
type GeocodeError struct {
	Place   string
	Message string
}

func (e *GeocodeError) Error() string {
	return fmt.Sprintf("geocodeFailure: %s: %s", e.Place, e.Message)
}

func NewGeocodeError(place string) error {
	return &GeocodeError{Place: place, Message: "no geocoding source returned a location"}
}

// Candidate is one geocoding source's answer before validation.
type Candidate struct {
	Center     models.Coordinate
	BBox       *models.BoundingBox
	Confidence float64
}

// Source is a single geocoding upstream.
type Source interface {
	Name() string
	Lookup(ctx context.Context, place, country string) (*Candidate, error)
}

// Resolver resolves a free-text place name into a bounded search area.
type Resolver interface {
	Resolve(ctx context.Context, place, country string) (models.GeoArea, error)
}

// CascadeResolver tries the in-process seed index first, then each remote
// source in order, stopping at the first hit.
type CascadeResolver struct {
	Seeds            *SeedIndex
	Sources          []Source
	MaxSpanKm        float64
	FallbackRadiusKm float64
	Logger           *zap.Logger
}

func NewCascadeResolver(maxSpanKm, fallbackRadiusKm float64, logger *zap.Logger, sources ...Source) *CascadeResolver {
	return &CascadeResolver{
		Seeds:            DefaultSeedIndex(),
		Sources:          sources,
		MaxSpanKm:        maxSpanKm,
		FallbackRadiusKm: fallbackRadiusKm,
		Logger:           logger,
	}
}

func (r *CascadeResolver) Resolve(ctx context.Context, place, country string) (models.GeoArea, error) {
	place = strings.TrimSpace(place)
	if place == "" {
		return models.GeoArea{}, NewGeocodeError(place)
	}

	if area, ok := r.Seeds.Lookup(place, country); ok {
		return r.validate(area.Center, &area.BBox), nil
	}

	for _, src := range r.Sources {
		cand, err := src.Lookup(ctx, place, country)
		if err != nil {
			r.Logger.Warn("geocoding source failed",
				zap.String("source", src.Name()),
				zap.String("place", place),
				zap.Error(err))
			continue
		}
		if cand == nil {
			continue
		}
		return r.validate(cand.Center, cand.BBox), nil
	}

	return models.GeoArea{}, NewGeocodeError(place)
}

// validate turns a candidate into a GeoArea, replacing oversized or
// inconsistent bboxes with a fallback circle around the center. An oversized
// bbox usually means the geocoder answered with a state or country extent
// ("New York" resolving to NY State), which would flood results with venues
// hundreds of kilometres away.
func (r *CascadeResolver) validate(center models.Coordinate, bbox *models.BoundingBox) models.GeoArea {
	if bbox != nil && bbox.Contains(center) && bbox.DiagonalKm() <= r.MaxSpanKm {
		return models.GeoArea{
			Center:   center,
			BBox:     *bbox,
			RadiusKm: bbox.DiagonalKm() / 2,
		}
	}
	return models.GeoArea{
		Center:   center,
		BBox:     models.BBoxFromCircle(center, r.FallbackRadiusKm),
		RadiusKm: r.FallbackRadiusKm,
	}
}
