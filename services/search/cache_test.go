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
)

func testPayload(city string) models.SearchResponse {
	return models.SearchResponse{
		Venues: []models.Venue{{
			Name: "Cached Cafe", Category: models.CategoryCafe,
			Lat: 51.5, Lon: -0.1, Address: "1 Cache Row, " + city,
			Source: "overpass", DistanceKm: 0.4, Score: 0.98,
		}},
	}
}

func TestCacheSecondCallHitsWithoutRecompute(t *testing.T) {
	c := NewCache(time.Minute, nil)
	defer c.Close()
	ctx := context.Background()

	var calls int32
	compute := func(ctx context.Context) (models.SearchResponse, error) {
		atomic.AddInt32(&calls, 1)
		return testPayload("London"), nil
	}

	first, hit, err := c.GetOrCompute(ctx, "fp1", compute)
	require.NoError(t, err)
	assert.False(t, hit)

	second, hit, err := c.GetOrCompute(ctx, "fp1", compute)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls), "second call must not reach upstream")

	// Byte-identical payloads within the TTL.
	b1, _ := json.Marshal(first)
	b2, _ := json.Marshal(second)
	assert.Equal(t, b1, b2)
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache(20*time.Millisecond, nil)
	defer c.Close()
	ctx := context.Background()

	var calls int32
	compute := func(ctx context.Context) (models.SearchResponse, error) {
		atomic.AddInt32(&calls, 1)
		return testPayload("Paris"), nil
	}

	_, _, err := c.GetOrCompute(ctx, "fp2", compute)
	require.NoError(t, err)

	time.Sleep(40 * time.Millisecond)

	_, hit, err := c.GetOrCompute(ctx, "fp2", compute)
	require.NoError(t, err)
	assert.False(t, hit, "expired entry must be treated as a miss")
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestCacheSingleFlightCollapsesConcurrentCallers(t *testing.T) {
	c := NewCache(time.Minute, nil)
	defer c.Close()
	ctx := context.Background()

	var calls int32
	compute := func(ctx context.Context) (models.SearchResponse, error) {
		atomic.AddInt32(&calls, 1)
		time.Sleep(50 * time.Millisecond) // hold the flight open
		return testPayload("Berlin"), nil
	}

	const workers = 16
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, _, err := c.GetOrCompute(ctx, "fp3", compute)
			assert.NoError(t, err)
			assert.Len(t, resp.Venues, 1)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&calls),
		"identical concurrent requests must share one computation")
}

func TestCacheErrorsAreNotCached(t *testing.T) {
	c := NewCache(time.Minute, nil)
	defer c.Close()
	ctx := context.Background()

	var calls int32
	failing := func(ctx context.Context) (models.SearchResponse, error) {
		atomic.AddInt32(&calls, 1)
		return models.SearchResponse{}, assert.AnError
	}

	_, _, err := c.GetOrCompute(ctx, "fp4", failing)
	require.Error(t, err)

	_, _, err = c.GetOrCompute(ctx, "fp4", failing)
	require.Error(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls), "failures must be retried, not memoized")
}

func TestCacheJanitorEvictsExpiredEntries(t *testing.T) {
	c := NewCache(20*time.Millisecond, nil)
	defer c.Close()
	ctx := context.Background()

	for _, key := range []string{"fp5", "fp6", "fp7"} {
		_, _, err := c.GetOrCompute(ctx, key, func(ctx context.Context) (models.SearchResponse, error) {
			return testPayload("Rome"), nil
		})
		require.NoError(t, err)
	}

	// Expired entries must be removed from the map, not just skipped on read.
	assert.Eventually(t, func() bool {
		c.mu.RLock()
		defer c.mu.RUnlock()
		return len(c.entries) == 0
	}, time.Second, 10*time.Millisecond, "janitor must sweep expired fingerprints")
}

func TestFingerprintDeterminism(t *testing.T) {
	req := models.SearchRequest{City: "  London ", Category: "restaurant", Budget: "mid"}
	same := models.SearchRequest{City: "london", Category: "restaurant", Budget: "MID"}
	other := models.SearchRequest{City: "london", Category: "museum", Budget: "mid"}

	providers := []string{"overpass", "geonames"}
	reordered := []string{"geonames", "overpass"}

	assert.Equal(t, Fingerprint(req, providers), Fingerprint(same, reordered))
	assert.NotEqual(t, Fingerprint(req, providers), Fingerprint(other, providers))
	assert.NotEqual(t, Fingerprint(req, providers), Fingerprint(req, []string{"overpass"}))
}
