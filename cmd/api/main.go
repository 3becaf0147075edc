package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Jin-yujin/doctorpay-backend/internal/adapters/cache"
	"github.com/Jin-yujin/doctorpay-backend/internal/adapters/providers/geolocation"
	"github.com/Jin-yujin/doctorpay-backend/internal/adapters/recents"
	"github.com/Jin-yujin/doctorpay-backend/internal/adapters/search"
	"github.com/Jin-yujin/doctorpay-backend/internal/api/handlers"
	"github.com/Jin-yujin/doctorpay-backend/internal/api/middleware"
	"github.com/Jin-yujin/doctorpay-backend/internal/api/routes"
	"github.com/Jin-yujin/doctorpay-backend/internal/application/services"
	"github.com/Jin-yujin/doctorpay-backend/internal/domain/providers"
	"github.com/Jin-yujin/doctorpay-backend/internal/domain/repositories"
	"github.com/Jin-yujin/doctorpay-backend/internal/infrastructure/clients/hira"
	redisclient "github.com/Jin-yujin/doctorpay-backend/internal/infrastructure/clients/redis"
	tsclient "github.com/Jin-yujin/doctorpay-backend/internal/infrastructure/clients/typesense"
	"github.com/Jin-yujin/doctorpay-backend/internal/infrastructure/observability"
	"github.com/Jin-yujin/doctorpay-backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				if err := shutdown(shutdownCtx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Initialize Redis client. The application works without caching.
	var cacheProvider providers.CacheProvider
	redisClient, err := redisclient.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, using in-memory cache")
		cacheProvider = cache.NewMemoryAdapter()
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		log.Info().Msg("Redis client initialized")
	}

	// Initialize Typesense for typeahead search
	var searchRepo repositories.HospitalSearchRepository
	var suggester handlers.Suggester
	typesenseClient, err := tsclient.NewClient(&cfg.Typesense)
	if err != nil {
		log.Warn().Err(err).Msg("Typesense unavailable, suggestions disabled")
	} else {
		if err := typesenseClient.InitSchema(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to init Typesense schema")
		}
		adapter := search.NewTypesenseAdapter(typesenseClient)
		searchRepo = adapter
		suggester = adapter
	}

	// Recently-viewed store, embedded on disk with an in-memory fallback
	var recentRepo repositories.RecentHospitalRepository
	nutsAdapter, err := recents.NewNutsDBAdapter(cfg.Recents.Dir)
	if err != nil {
		log.Warn().Err(err).Msg("recents store unavailable, using in-memory fallback")
		recentRepo = recents.NewMemoryAdapter()
	} else {
		defer nutsAdapter.Close()
		recentRepo = nutsAdapter
	}

	var geolocationProvider providers.GeolocationProvider
	if cfg.Kakao.RESTAPIKey == "" {
		log.Warn().Msg("KAKAO_REST_API_KEY is not set; using mock geolocation provider")
		geolocationProvider = geolocation.NewMockGeolocationProvider()
	} else {
		geolocationProvider = geolocation.NewKakaoProvider(cfg.Kakao.RESTAPIKey, cacheProvider)
	}

	// Initialize services
	hiraClient := hira.NewClient(cfg.HIRA)
	classifier := services.NewDepartmentClassifier()

	hospitalService := services.NewHospitalService(hiraClient, classifier, services.HospitalServiceOptions{
		SearchRepo:        searchRepo,
		Cache:             cacheProvider,
		Metrics:           metrics,
		PageSize:          cfg.HIRA.PageSize,
		DetailConcurrency: cfg.HIRA.DetailConcurrency,
	})
	feed := services.NewHospitalFeed(hospitalService)
	recentService := services.NewRecentService(recentRepo, cfg.Recents.Cap)

	// Optionally keep a snapshot warm for one configured region
	if region := os.Getenv("FEED_REGION_CODE"); region != "" {
		query := services.FetchQuery{
			RegionCode:   region,
			DistrictCode: os.Getenv("FEED_DISTRICT_CODE"),
		}
		go feed.Run(ctx, 15*time.Minute, query)
		log.Info().Str("region", region).Msg("background feed refresh started")
	}

	// Initialize handlers
	hospitalHandler := handlers.NewHospitalHandler(hospitalService, feed, suggester)
	recentHandler := handlers.NewRecentHandler(recentService)
	geolocationHandler := handlers.NewGeolocationHandler(geolocationProvider)

	cacheMiddleware := middleware.NewCacheMiddleware(cacheProvider)

	router := routes.NewRouter(hospitalHandler, recentHandler, geolocationHandler, cacheMiddleware, metrics)
	handler := router.SetupRoutes()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Msg("server stopped")
}
