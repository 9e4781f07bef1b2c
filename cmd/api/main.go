// Package main is the entry point for the OEMLink API server.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/oemlink/oemlink/internal/api"
	"github.com/oemlink/oemlink/internal/auth"
	"github.com/oemlink/oemlink/internal/catalog"
	"github.com/oemlink/oemlink/internal/config"
	"github.com/oemlink/oemlink/internal/health"
	"github.com/oemlink/oemlink/internal/matching"
	"github.com/oemlink/oemlink/internal/middleware"
	"github.com/oemlink/oemlink/internal/payment"
	"github.com/oemlink/oemlink/internal/tracing"
	"github.com/oemlink/oemlink/internal/translate"
)

const serviceName = "oemlink-api"

func main() {
	configPath := flag.String("config", "", "path to optional YAML config file")
	help := flag.Bool("help", false, "display help message")
	flag.Parse()

	if *help {
		fmt.Println("OEMLink API Server")
		fmt.Println()
		fmt.Println("Usage: api [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	cfg, errs := config.Load(*configPath)
	if len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintln(os.Stderr, "config error:", err)
		}
		os.Exit(1)
	}

	logger := middleware.NewLogger(cfg.Env)
	slog.SetDefault(logger)
	logger.Info("configuration loaded", "summary", cfg.LogSummary())

	// Tracing
	provider, err := tracing.NewProvider(tracing.ConfigFromEnv(serviceName, cfg.Env))
	if err != nil {
		logger.Error("failed to initialize tracing", "error", err)
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			logger.Error("tracing shutdown failed", "error", err)
		}
	}()

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	httpMetrics := middleware.NewMetrics()
	if err := httpMetrics.Register(registry); err != nil {
		logger.Error("failed to register HTTP metrics", "error", err)
		os.Exit(1)
	}
	matchMetrics := matching.NewMetrics()
	if err := matchMetrics.Register(registry); err != nil {
		logger.Error("failed to register matching metrics", "error", err)
		os.Exit(1)
	}

	// Redis backs rate limiting and the translation cache when configured.
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer redisClient.Close()
	}

	loadCtx, loadCancel := context.WithTimeout(context.Background(), 30*time.Second)
	store, db, err := loadCatalog(loadCtx, cfg, logger)
	loadCancel()
	if err != nil {
		logger.Error("failed to load supplier catalog", "source", cfg.CatalogSource, "error", err)
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
	}
	if store.Len() == 0 {
		// Not fatal: matching serves empty results and /ready reports 503.
		logger.Warn("supplier catalog is empty", "source", cfg.CatalogSource)
	}
	logger.Info("supplier catalog loaded", "source", cfg.CatalogSource, "suppliers", store.Len())

	var cal *matching.Calibration
	if cfg.CalibrationPath != "" {
		cal, err = matching.LoadCalibration(cfg.CalibrationPath)
		if err != nil {
			logger.Error("failed to load calibration", "path", cfg.CalibrationPath, "error", err)
			os.Exit(1)
		}
	}
	engine := matching.NewEngine(cfg.HomeCountry, cal, matchMetrics)

	currentSecret, previousSecret := cfg.GetJWTSecrets()
	var jwtService *auth.JWTService
	if previousSecret != "" {
		jwtService = auth.NewJWTServiceWithRotation(currentSecret, previousSecret)
		logger.Info("JWT secret rotation window active")
	} else {
		jwtService = auth.NewJWTService(currentSecret)
	}

	routerCfg := api.RouterConfig{
		Match:     api.NewMatchHandlers(store, engine, logger),
		Suppliers: api.NewSupplierHandlers(store, logger),
		Metrics:   promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}

	healthCfg := api.HealthHandlersConfig{
		CatalogChecker: health.NewCatalogChecker(store),
	}
	if db != nil {
		healthCfg.DBChecker = health.NewDBChecker(db)
	}
	if redisClient != nil {
		healthCfg.RedisChecker = health.NewRedisChecker(redisClient)
	}
	routerCfg.Health = api.NewHealthHandlers(healthCfg)

	if cfg.StripeEnabled() {
		paymentService := payment.NewService(
			payment.NewStripeClient(cfg.StripeAPIKey),
			payment.NewInMemoryPaymentRepository(),
			cfg.StripePriceID,
			cfg.StripeSuccessURL,
			cfg.StripeCancelURL,
			logger,
		)
		routerCfg.Payments = api.NewPaymentHandlers(paymentService, jwtService, logger)
		if cfg.StripeWebhookSecret != "" {
			routerCfg.Webhooks = api.NewWebhookHandlers(
				paymentService, payment.NewInMemoryWebhookRepository(), cfg.StripeWebhookSecret, logger)
		}
	} else {
		logger.Info("stripe not configured, payment routes disabled")
	}

	if cfg.TranslateEnabled() {
		var cache translate.Cache
		if redisClient != nil {
			cache = translate.NewRedisCache(redisClient, translate.DefaultCacheTTL)
		}
		translateService := translate.NewService(
			translate.NewClient(cfg.TranslateAPIURL, cfg.TranslateAPIKey), cache, logger)
		routerCfg.Translate = api.NewTranslateHandlers(translateService, logger)
		routerCfg.RequirePremium = auth.RequirePremium(jwtService)
	} else {
		logger.Info("translation proxy not configured, translate route disabled")
	}

	mux := api.NewRouter(routerCfg)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			ctx := middleware.SetErrorCode(r.Context(), api.ErrCodeNotFound)
			api.WriteError(w, ctx, http.StatusNotFound, api.ErrCodeNotFound, "The requested resource was not found")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"service":"oemlink-api","version":"0.1.0"}`)); err != nil {
			slog.Error("failed to write response", "error", err)
		}
	})

	// Rate limiting: Redis store when available so limits hold across replicas.
	var limitStore middleware.RateLimitStore
	if redisClient != nil {
		limitStore = middleware.NewRedisRateLimitStore(redisClient).
			WithMetrics(httpMetrics).
			WithLogger(logger)
	} else {
		memStore := middleware.NewInMemoryRateLimitStore()
		limitStore = memStore
		go func() {
			ticker := time.NewTicker(time.Minute)
			defer ticker.Stop()
			for range ticker.C {
				memStore.Cleanup()
			}
		}()
	}

	corsCfg := middleware.DefaultCORSConfig(splitOrigins(os.Getenv("CORS_ALLOWED_ORIGINS")))

	// Middleware chain, outermost first.
	var handler http.Handler = mux
	handler = middleware.CORS(corsCfg)(handler)
	handler = middleware.RateLimiter(limitStore, middleware.DefaultGlobalLimit(), middleware.IPKeyFunc(), httpMetrics, "global")(handler)
	handler = middleware.HTTPMetrics(httpMetrics)(handler)
	handler = middleware.Tracing(serviceName)(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.RequestID(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting server", "port", cfg.Port, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// loadCatalog loads the supplier catalog from the configured source. The
// returned *sql.DB is non-nil only for the postgres source, so the caller
// can reuse it for readiness checks.
func loadCatalog(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*catalog.Store, *sql.DB, error) {
	switch cfg.CatalogSource {
	case config.CatalogSourceFile:
		store, err := catalog.LoadFile(cfg.CatalogFilePath)
		return store, nil, err

	case config.CatalogSourceS3:
		client := catalog.NewObjectStoreClient(catalog.ObjectStoreConfig{
			Bucket:          cfg.S3BucketName,
			Key:             cfg.S3ObjectKey,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			Endpoint:        cfg.S3Endpoint,
		})
		store, err := catalog.LoadObject(ctx, client, cfg.S3BucketName, cfg.S3ObjectKey)
		return store, nil, err

	case config.CatalogSourcePostgres:
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to ping database: %w", err)
		}
		store, err := catalog.NewPostgresRepository(db, logger).LoadAll(ctx)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return store, db, nil

	default:
		return nil, nil, fmt.Errorf("unknown catalog source %q", cfg.CatalogSource)
	}
}

// splitOrigins parses a comma-separated origin list, dropping empty entries.
func splitOrigins(raw string) []string {
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
