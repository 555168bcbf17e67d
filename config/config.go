package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisEnabled  bool   `mapstructure:"REDIS_ENABLED"`

	// Geographic precision knobs. Venues farther than CityMaxDistanceKm from
	// the resolved center are dropped; scores decay to zero over
	// CityDistanceDecayKm; oversized geocoder bboxes are replaced by a circle
	// of CityFallbackBBoxKm around the center.
	CityMaxDistanceKm   float64 `mapstructure:"CITY_MAX_DISTANCE_KM"`
	CityDistanceDecayKm float64 `mapstructure:"CITY_DISTANCE_DECAY_KM"`
	CityFallbackBBoxKm  float64 `mapstructure:"CITY_FALLBACK_BBOX_KM"`

	// Request budget, in seconds.
	SearchDeadlineSec  int `mapstructure:"SEARCH_DEADLINE_SEC"`
	SearchPartialSec   int `mapstructure:"SEARCH_PARTIAL_SEC"`
	ProviderTimeoutSec int `mapstructure:"PROVIDER_TIMEOUT_SEC"`

	CacheTTLMin int `mapstructure:"CACHE_TTL_MIN"`

	// Upstream endpoints and credentials.
	OverpassURL        string `mapstructure:"OVERPASS_URL"`
	NominatimURL       string `mapstructure:"NOMINATIM_URL"`
	OpenTripMapAPIKey  string `mapstructure:"OPENTRIPMAP_API_KEY"`
	OpenTripMapBaseURL string `mapstructure:"OPENTRIPMAP_BASE_URL"`
	GeoNamesUsername   string `mapstructure:"GEONAMES_USERNAME"`
	GeoNamesBaseURL    string `mapstructure:"GEONAMES_BASE_URL"`
	SearxNGURL         string `mapstructure:"SEARXNG_URL"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_ENABLED", true)
	viper.SetDefault("CITY_MAX_DISTANCE_KM", 40.0)
	viper.SetDefault("CITY_DISTANCE_DECAY_KM", 20.0)
	viper.SetDefault("CITY_FALLBACK_BBOX_KM", 10.0)
	viper.SetDefault("SEARCH_DEADLINE_SEC", 25)
	viper.SetDefault("SEARCH_PARTIAL_SEC", 8)
	viper.SetDefault("PROVIDER_TIMEOUT_SEC", 6)
	viper.SetDefault("CACHE_TTL_MIN", 15)
	viper.SetDefault("OVERPASS_URL", "https://overpass-api.de/api/interpreter")
	viper.SetDefault("NOMINATIM_URL", "https://nominatim.openstreetmap.org")
	viper.SetDefault("OPENTRIPMAP_API_KEY", "")
	viper.SetDefault("OPENTRIPMAP_BASE_URL", "https://api.opentripmap.com/0.1/en")
	viper.SetDefault("GEONAMES_USERNAME", "")
	viper.SetDefault("GEONAMES_BASE_URL", "http://api.geonames.org")
	viper.SetDefault("SEARXNG_URL", "")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
