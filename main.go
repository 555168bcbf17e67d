package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"travelland/config"
	"travelland/handlers"
	"travelland/middleware"
	"travelland/models"
	"travelland/routes"
	"travelland/services/geocode"
	"travelland/services/search"
	"travelland/services/venues"
	"travelland/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitCache()
	utils.StartHealthMonitor(utils.GetCacheClient())

	cfg := config.AppConfig
	providerTimeout := time.Duration(cfg.ProviderTimeoutSec) * time.Second

	// Geocoding cascade: seed cities, then Nominatim, then OpenTripMap.
	resolver := geocode.NewCascadeResolver(
		2*cfg.CityMaxDistanceKm,
		cfg.CityFallbackBBoxKm,
		logger,
		geocode.NewNominatimSource(cfg.NominatimURL),
		geocode.NewOpenTripMapSource(cfg.OpenTripMapBaseURL, cfg.OpenTripMapAPIKey),
	)

	// Venue adapters. Overpass needs no credentials and is always on; the
	// rest join only when configured.
	overpass := venues.NewOverpassAdapter(cfg.OverpassURL, providerTimeout)
	adapters := []venues.Adapter{overpass}
	if cfg.OpenTripMapAPIKey != "" {
		adapters = append(adapters, venues.NewOpenTripMapAdapter(cfg.OpenTripMapBaseURL, cfg.OpenTripMapAPIKey, providerTimeout))
	}
	if cfg.GeoNamesUsername != "" {
		adapters = append(adapters, venues.NewGeoNamesAdapter(cfg.GeoNamesBaseURL, cfg.GeoNamesUsername, providerTimeout))
	}
	if cfg.SearxNGURL != "" {
		adapters = append(adapters, venues.NewWebSearchAdapter(cfg.SearxNGURL, providerTimeout))
	}

	coordinator := &search.Coordinator{
		Resolver: resolver,
		Adapters: adapters,
		Filter:   search.NewFilterScorer(cfg.CityMaxDistanceKm, cfg.CityDistanceDecayKm),
		Dedup:    search.NewDeduplicator(),
		Budget: models.RequestBudget{
			Deadline:        time.Duration(cfg.SearchDeadlineSec) * time.Second,
			PartialAfter:    time.Duration(cfg.SearchPartialSec) * time.Second,
			ProviderTimeout: providerTimeout,
		},
		Logger: logger,
	}
	if err := coordinator.Budget.Validate(); err != nil {
		logger.Sugar().Fatalf("main: invalid request budget: %v", err)
	}

	cache := search.NewCache(time.Duration(cfg.CacheTTLMin)*time.Minute, utils.GetCacheClient())
	defer cache.Close()

	searchService := &search.DefaultSearchService{
		Coordinator: coordinator,
		Cache:       cache,
		Overpass:    overpass,
		Logger:      logger,
	}

	searchHandler := handlers.NewSearchHandler(searchService, logger)
	handlerBundle := &handlers.HandlerBundle{
		SearchHandler:        searchHandler.Search,
		NeighborhoodsHandler: searchHandler.Neighborhoods,
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
