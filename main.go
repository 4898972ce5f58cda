package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wayfarer/config"
	"wayfarer/database"
	"wayfarer/gateway"
	"wayfarer/handlers"
	"wayfarer/maps"
	"wayfarer/middleware"
	"wayfarer/store"
	"wayfarer/telemetry"
	"wayfarer/workspace"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration:", err)
	}

	_, closeLog, err := telemetry.InitLogger(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer closeLog()

	if cfg.OTelEnabled {
		shutdown, err := telemetry.InitTelemetry(context.Background(), cfg.TelemetryDir)
		if err != nil {
			log.Fatal("Failed to initialize telemetry:", err)
		}
		defer shutdown()
	}

	// Create context with timeout for initial connections
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	persister, closePersister := openPersister(ctx, cfg)
	defer closePersister()

	projects := store.New(persister)
	if err := projects.Load(ctx); err != nil {
		log.Fatal("Failed to load projects:", err)
	}
	if cfg.SeedDemo {
		if err := projects.SeedDemo(ctx); err != nil {
			log.Fatal("Failed to seed demo project:", err)
		}
	}

	gw := gateway.New(newBackend(cfg), newCache(ctx, cfg))
	workspaces := workspace.NewRegistry(projects, gw, workspace.DefaultIdleTTL)

	locator, err := maps.NewLocator()
	if err != nil {
		slog.Warn("timezone lookup disabled", "error", err)
		locator = maps.NewLocatorWithFinder(nil)
	}

	limiter := middleware.NewRateLimiter(cfg.AIRatePerMin, 5)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	r.GET("/health", handlers.HealthCheck)

	api := r.Group("/", middleware.AuthRequired(cfg.APIKey))
	handlers.Register(api, handlers.Deps{
		Store:      projects,
		Gateway:    gw,
		Workspaces: workspaces,
		Locator:    locator,
		AI:         []gin.HandlerFunc{limiter.Limit(), middleware.BodyLimit(middleware.DefaultMaxBodyBytes)},
	})

	handler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler(r)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutdown signal received; shutting down gracefully...")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}

// openPersister picks Postgres, then SQLite, then memory only.
func openPersister(ctx context.Context, cfg config.Config) (store.Persister, func()) {
	switch {
	case cfg.DatabaseURL != "":
		db, err := database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}
		if err := db.Migrate(ctx); err != nil {
			log.Fatal("Failed to migrate database:", err)
		}
		return db, db.Close
	case cfg.SQLitePath != "":
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			log.Fatal("Failed to open sqlite database:", err)
		}
		return db, func() { db.Close() }
	}

	slog.Warn("no DATABASE_URL or SQLITE_PATH set; projects are kept in memory only")
	return nil, func() {}
}

func newBackend(cfg config.Config) gateway.Backend {
	if cfg.AIProvider == config.ProviderOpenAI {
		if cfg.OpenAIAPIKey == "" {
			slog.Warn("OPENAI_API_KEY not set; assistant replies will fall back")
		}
		return gateway.NewOpenAI(cfg.OpenAIAPIKey)
	}
	if cfg.GeminiAPIKey == "" {
		slog.Warn("GEMINI_API_KEY not set; assistant replies will fall back")
	}
	return gateway.NewGemini(cfg.GeminiAPIKey, cfg.GeminiBaseURL)
}

func newCache(ctx context.Context, cfg config.Config) gateway.Cache {
	if cfg.RedisURL != "" {
		cache, err := gateway.NewRedisCache(ctx, cfg.RedisURL)
		if err == nil {
			return cache
		}
		slog.Warn("redis unavailable, using in-process cache", "error", err)
	}
	return gateway.NewMemoryCache()
}
