package search

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"travelland/models"
	"travelland/services/geocode"
	"travelland/services/venues"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubResolver struct {
	area models.GeoArea
	err  error
}

func (s *stubResolver) Resolve(ctx context.Context, place, country string) (models.GeoArea, error) {
	if s.err != nil {
		return models.GeoArea{}, s.err
	}
	return s.area, nil
}

// fakeAdapter returns canned venues after an optional delay. When
// ignoreContext is set it sleeps through cancellation, simulating an upstream
// that cannot be cancelled server-side.
type fakeAdapter struct {
	name          string
	venues        []models.RawVenue
	err           error
	delay         time.Duration
	ignoreContext bool
	calls         int32
}

func (f *fakeAdapter) Name() string { return f.name }

func (f *fakeAdapter) Query(ctx context.Context, area models.GeoArea, category models.Category) ([]models.RawVenue, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.delay > 0 {
		if f.ignoreContext {
			time.Sleep(f.delay)
		} else {
			select {
			case <-time.After(f.delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return f.venues, f.err
}

func londonArea() models.GeoArea {
	center := models.Coordinate{Lat: 51.5074, Lon: -0.1278}
	return models.GeoArea{Center: center, BBox: models.BBoxFromCircle(center, 10), RadiusKm: 10}
}

func cannedVenue(name, source string) models.RawVenue {
	return models.RawVenue{
		LocalID: "1", Name: name, Category: models.CategoryRestaurant,
		Lat: 51.51, Lon: -0.12, Address: "1 Test Street, London", Source: source,
	}
}

func testCoordinator(resolver geocode.Resolver, adapters ...venues.Adapter) *Coordinator {
	return &Coordinator{
		Resolver: resolver,
		Adapters: adapters,
		Filter:   NewFilterScorer(40, 20),
		Dedup:    NewDeduplicator(),
		Budget: models.RequestBudget{
			Deadline:        400 * time.Millisecond,
			PartialAfter:    150 * time.Millisecond,
			ProviderTimeout: 100 * time.Millisecond,
		},
		Logger: zap.NewNop(),
	}
}

func TestRunGeocodeFailureAbortsRequest(t *testing.T) {
	c := testCoordinator(&stubResolver{err: geocode.NewGeocodeError("Atlantis")},
		&fakeAdapter{name: "overpass"})

	_, err := c.Run(context.Background(), models.SearchRequest{City: "Atlantis", Q: "food"}, nil)
	require.Error(t, err)

	var geoErr *geocode.GeocodeError
	assert.ErrorAs(t, err, &geoErr)
}

func TestRunSurvivesProviderTimeout(t *testing.T) {
	fast := &fakeAdapter{name: "opentripmap", venues: []models.RawVenue{cannedVenue("Quick Bite", "opentripmap")}}
	hung := &fakeAdapter{name: "overpass", delay: 5 * time.Second}

	c := testCoordinator(&stubResolver{area: londonArea()}, fast, hung)

	start := time.Now()
	outcome, err := c.Run(context.Background(), models.SearchRequest{City: "London", Q: "restaurants"}, nil)
	require.NoError(t, err)

	assert.Less(t, time.Since(start), c.Budget.Deadline+100*time.Millisecond,
		"one hung provider must not stall the request past the deadline")
	require.Len(t, outcome.Venues, 1)
	assert.Equal(t, "Quick Bite", outcome.Venues[0].Name)
	assert.Equal(t, 1, outcome.ProvidersSucceeded)
	assert.Equal(t, 1, outcome.ProvidersFailed, "timed-out provider degrades, not aborts")
}

func TestRunAbandonsProvidersAtDeadline(t *testing.T) {
	stuck := &fakeAdapter{name: "overpass", delay: 5 * time.Second, ignoreContext: true}
	fast := &fakeAdapter{name: "geonames", venues: []models.RawVenue{cannedVenue("Fast Food", "geonames")}}

	c := testCoordinator(&stubResolver{area: londonArea()}, stuck, fast)

	outcome, err := c.Run(context.Background(), models.SearchRequest{City: "London", Q: "food"}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, outcome.ProvidersAbandoned)
	require.Len(t, outcome.Venues, 1)
}

func TestRunIsolatesProviderErrors(t *testing.T) {
	broken := &fakeAdapter{name: "overpass", err: &venues.ProviderError{Provider: "overpass", Err: errors.New("boom")}}
	ok := &fakeAdapter{name: "geonames", venues: []models.RawVenue{cannedVenue("Still Here", "geonames")}}

	c := testCoordinator(&stubResolver{area: londonArea()}, broken, ok)

	outcome, err := c.Run(context.Background(), models.SearchRequest{City: "London", Q: "food"}, nil)
	require.NoError(t, err)
	require.Len(t, outcome.Venues, 1)
	assert.Equal(t, "Still Here", outcome.Venues[0].Name)
}

func TestRunPartialSnapshotBeforeSlowProviderFinishes(t *testing.T) {
	fast := &fakeAdapter{name: "opentripmap", venues: []models.RawVenue{cannedVenue("Early Bird", "opentripmap")}}
	// Finishes between the partial threshold and the deadline.
	late := &fakeAdapter{
		name: "geonames", delay: 250 * time.Millisecond, ignoreContext: true,
		venues: []models.RawVenue{cannedVenue("Late Arrival", "geonames")},
	}

	c := testCoordinator(&stubResolver{area: londonArea()}, fast, late)
	c.Budget.ProviderTimeout = 150 * time.Millisecond
	c.Budget.PartialAfter = 150 * time.Millisecond

	var partial []models.Venue
	outcome, err := c.Run(context.Background(), models.SearchRequest{City: "London", Q: "food"}, func(vs []models.Venue) {
		partial = vs
	})
	require.NoError(t, err)

	require.Len(t, partial, 1, "partial cut carries only completed providers")
	assert.Equal(t, "Early Bird", partial[0].Name)

	// The straggler still lands in the final payload before the deadline.
	assert.Len(t, outcome.Venues, 2)
}

func TestRunNeighborhoodBBoxOverridesGeocoding(t *testing.T) {
	resolver := &stubResolver{err: geocode.NewGeocodeError("should not be called")}
	adapter := &fakeAdapter{name: "overpass", venues: []models.RawVenue{cannedVenue("Scoped", "overpass")}}
	c := testCoordinator(resolver, adapter)

	bbox := models.BBoxFromCircle(models.Coordinate{Lat: 51.51, Lon: -0.12}, 2)
	outcome, err := c.Run(context.Background(), models.SearchRequest{
		City:             "London",
		Neighborhood:     "Soho",
		NeighborhoodBBox: &bbox,
		Q:                "food",
	}, nil)
	require.NoError(t, err)

	assert.True(t, outcome.Area.BBox.Contains(outcome.Area.Center))
	require.Len(t, outcome.Venues, 1)
}

func TestRunEmptyResultIsNotAnError(t *testing.T) {
	empty := &fakeAdapter{name: "overpass"}
	c := testCoordinator(&stubResolver{area: londonArea()}, empty)

	outcome, err := c.Run(context.Background(), models.SearchRequest{City: "London", Q: "nightclubs"}, nil)
	require.NoError(t, err)
	assert.Empty(t, outcome.Venues)
}
