package search

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"travelland/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T, adapters ...*fakeAdapter) *DefaultSearchService {
	t.Helper()
	c := testCoordinator(&stubResolver{area: londonArea()})
	for _, a := range adapters {
		c.Adapters = append(c.Adapters, a)
	}
	cache := NewCache(time.Minute, nil)
	t.Cleanup(cache.Close)
	return &DefaultSearchService{
		Coordinator: c,
		Cache:       cache,
		Logger:      zap.NewNop(),
	}
}

func TestServiceSecondCallSkipsProviders(t *testing.T) {
	adapter := &fakeAdapter{name: "overpass", venues: []models.RawVenue{cannedVenue("Counted Cafe", "overpass")}}
	svc := newTestService(t, adapter)
	req := models.SearchRequest{City: "London", Category: "restaurant"}

	first, hit, err := svc.Search(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, hit)

	second, hit, err := svc.Search(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, hit)

	assert.EqualValues(t, 1, atomic.LoadInt32(&adapter.calls),
		"a fresh cache entry must absorb the second request")

	b1, _ := json.Marshal(first)
	b2, _ := json.Marshal(second)
	assert.Equal(t, b1, b2, "cached payload must be byte-identical")
}

func TestServiceConcurrentIdenticalRequestsShareOneFanout(t *testing.T) {
	adapter := &fakeAdapter{
		name:   "overpass",
		venues: []models.RawVenue{cannedVenue("Shared Result", "overpass")},
		delay:  50 * time.Millisecond,
	}
	svc := newTestService(t, adapter)
	req := models.SearchRequest{City: "London", Category: "restaurant"}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, _, err := svc.Search(context.Background(), req)
			assert.NoError(t, err)
			assert.Len(t, resp.Venues, 1)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&adapter.calls),
		"concurrent identical requests must collapse into one provider fan-out")
}

func TestServiceDistinctRequestsDoNotShareCache(t *testing.T) {
	adapter := &fakeAdapter{name: "overpass", venues: []models.RawVenue{cannedVenue("Venue", "overpass")}}
	svc := newTestService(t, adapter)

	_, _, err := svc.Search(context.Background(), models.SearchRequest{City: "London", Category: "restaurant"})
	require.NoError(t, err)
	_, _, err = svc.Search(context.Background(), models.SearchRequest{City: "London", Category: "museum"})
	require.NoError(t, err)

	assert.EqualValues(t, 2, atomic.LoadInt32(&adapter.calls))
}

func TestServiceResponseCarriesGuideSiblings(t *testing.T) {
	adapter := &fakeAdapter{name: "overpass", venues: []models.RawVenue{cannedVenue("Venue", "overpass")}}
	svc := newTestService(t, adapter)

	resp, _, err := svc.Search(context.Background(), models.SearchRequest{City: "London", Category: "restaurant", Budget: "mid"})
	require.NoError(t, err)

	require.Len(t, resp.Costs, 1, "budget tier filters the cost rows")
	assert.Equal(t, "mid", resp.Costs[0].Tier)
	assert.NotEmpty(t, resp.Transport)
	assert.NotEmpty(t, resp.Wikivoyage)
}

func TestServiceNeighborhoodsSeededCity(t *testing.T) {
	svc := newTestService(t)

	hoods, err := svc.Neighborhoods(context.Background(), "London", 0, 0)
	require.NoError(t, err)
	require.NotEmpty(t, hoods)
	assert.Equal(t, "Soho", hoods[0].Name)
}
