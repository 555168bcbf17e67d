package search

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"travelland/models"
	"travelland/services/geocode"

	"github.com/go-redis/redis/v8"
	"golang.org/x/sync/singleflight"
)

// ErrCacheMiss is internal to the cache layer; callers only ever see the
// recomputed payload.
var ErrCacheMiss = errors.New("cache miss")

const cacheKeyPrefix = "search:fp:"

// Cache memoizes finalized search payloads by request fingerprint. Reads hit
// an in-memory map first; an optional Redis client provides write-through so
// a restart or a sibling instance can reuse warm entries. Concurrent
// requests for the same fingerprint collapse into one upstream computation
// via singleflight, which is what keeps outbound volume inside the free-tier
// rate limits. A background janitor sweeps expired memory entries so the map
// cannot grow without bound on distinct fingerprints.
type Cache struct {
	ttl   time.Duration
	redis *redis.Client

	mu      sync.RWMutex
	entries map[string]cacheEntry

	group singleflight.Group
	done  chan struct{}
}

type cacheEntry struct {
	payload   models.SearchResponse
	createdAt time.Time
}

func NewCache(ttl time.Duration, redisClient *redis.Client) *Cache {
	c := &Cache{
		ttl:     ttl,
		redis:   redisClient,
		entries: make(map[string]cacheEntry),
		done:    make(chan struct{}),
	}
	go c.janitor()
	return c
}

// Close stops the background janitor.
func (c *Cache) Close() {
	close(c.done)
}

// janitor sweeps expired memory entries once per TTL period. Redis entries
// expire server-side and need no sweeping.
func (c *Cache) janitor() {
	ticker := time.NewTicker(c.ttl)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.evictExpired()
		case <-c.done:
			return
		}
	}
}

func (c *Cache) evictExpired() {
	now := time.Now()
	c.mu.Lock()
	for key, entry := range c.entries {
		if now.Sub(entry.createdAt) >= c.ttl {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
}

// Fingerprint derives the deterministic cache key from normalized request
// parameters and the active provider set.
func Fingerprint(req models.SearchRequest, providers []string) string {
	sorted := append([]string(nil), providers...)
	sort.Strings(sorted)

	parts := []string{
		geocode.NormalizePlace(req.City),
		geocode.NormalizePlace(req.Country),
		strings.ToLower(strings.TrimSpace(req.Query())),
		geocode.NormalizePlace(req.Neighborhood),
		strings.ToLower(strings.TrimSpace(req.Budget)),
		strings.ToLower(strings.TrimSpace(req.Provider)),
		strings.Join(sorted, ","),
	}
	if req.NeighborhoodBBox != nil {
		b, _ := json.Marshal(req.NeighborhoodBBox)
		parts = append(parts, string(b))
	}

	sum := sha1.Sum([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

// GetOrCompute returns the cached payload when fresh, otherwise runs compute
// exactly once per fingerprint and stores the result. The bool reports a
// cache hit.
func (c *Cache) GetOrCompute(ctx context.Context, key string, compute func(ctx context.Context) (models.SearchResponse, error)) (models.SearchResponse, bool, error) {
	if payload, err := c.lookup(ctx, key); err == nil {
		return payload, true, nil
	}

	type flightResult struct {
		payload models.SearchResponse
		hit     bool
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		// A waiter may have stored the entry while we queued.
		if payload, err := c.lookup(ctx, key); err == nil {
			return flightResult{payload: payload, hit: true}, nil
		}

		payload, err := compute(ctx)
		if err != nil {
			return flightResult{}, err
		}
		c.store(ctx, key, payload)
		return flightResult{payload: payload}, nil
	})
	if err != nil {
		return models.SearchResponse{}, false, err
	}

	res := v.(flightResult)
	return res.payload, res.hit, nil
}

// lookup checks memory then Redis. A Redis hit repopulates memory; an
// expired memory entry is deleted on the spot.
func (c *Cache) lookup(ctx context.Context, key string) (models.SearchResponse, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		if time.Since(entry.createdAt) < c.ttl {
			return entry.payload, nil
		}
		c.mu.Lock()
		if stale, ok := c.entries[key]; ok && time.Since(stale.createdAt) >= c.ttl {
			delete(c.entries, key)
		}
		c.mu.Unlock()
	}

	if c.redis == nil {
		return models.SearchResponse{}, ErrCacheMiss
	}

	data, err := c.redis.Get(ctx, cacheKeyPrefix+key).Result()
	if err != nil {
		return models.SearchResponse{}, ErrCacheMiss
	}
	var payload models.SearchResponse
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		return models.SearchResponse{}, ErrCacheMiss
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{payload: payload, createdAt: time.Now()}
	c.mu.Unlock()
	return payload, nil
}

func (c *Cache) store(ctx context.Context, key string, payload models.SearchResponse) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{payload: payload, createdAt: time.Now()}
	c.mu.Unlock()

	if c.redis == nil {
		return
	}
	if data, err := json.Marshal(payload); err == nil {
		// Write-through failures are invisible to the caller; memory still holds the entry.
		c.redis.Set(ctx, cacheKeyPrefix+key, data, c.ttl)
	}
}
