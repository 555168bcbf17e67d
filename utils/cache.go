package utils

import (
	"context"
	"log"
	"time"

	"travelland/config"

	"github.com/go-redis/redis/v8"
)

// CacheClient is the shared Redis client used by the search cache
// write-through. It stays nil when REDIS_ENABLED is false, in which case the
// search cache runs memory-only.
var CacheClient *redis.Client

// InitCache initializes the Redis cache client.
func InitCache() {
	if !config.AppConfig.RedisEnabled {
		log.Println("Redis disabled, search cache will run in-memory only")
		return
	}
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := CacheClient.Ping(ctx).Result(); err != nil {
		log.Printf("Failed to connect to Redis (Cache): %v; falling back to in-memory cache", err)
		CacheClient = nil
	}
}

// GetCacheClient returns the shared cache client, possibly nil.
func GetCacheClient() *redis.Client {
	return CacheClient
}
