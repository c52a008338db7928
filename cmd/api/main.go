package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/nextneighbor/discover/internal/adapters/geocode"
	"github.com/nextneighbor/discover/internal/adapters/http"
	"github.com/nextneighbor/discover/internal/adapters/memory"
	natsadapter "github.com/nextneighbor/discover/internal/adapters/nats"
	"github.com/nextneighbor/discover/internal/adapters/valkey"
	"github.com/nextneighbor/discover/internal/core/ports"
	"github.com/nextneighbor/discover/internal/core/usecases"
	"github.com/nextneighbor/discover/internal/pkg/config"
	"github.com/nextneighbor/discover/internal/pkg/logging"
	"github.com/nextneighbor/discover/internal/pkg/metrics"
	"github.com/nextneighbor/discover/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("discover-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup(logLevel, "json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Marker store
	repo, err := memory.LoadFixture(cfg.Data.FixturePath)
	if err != nil {
		log.Fatalf("load markers: %v", err)
	}
	count, _ := repo.Count(ctx)
	metrics.FixtureMarkers.Set(float64(count))
	slog.Info("marker fixture loaded", "markers", count)

	// Cache and events are optional: the service degrades to uncached,
	// silent operation when either backend is down.
	var cacheSvc ports.CacheService
	var events ports.EventPublisher

	cache, err := valkey.New(cfg.Valkey.Addr)
	if err != nil {
		slog.Warn("valkey unavailable", "error", err)
	} else {
		defer cache.Close()
		cacheSvc = cache
	}

	pub, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable", "error", err)
	} else {
		defer pub.Close()
		events = pub
	}

	// Raw NATS connection for WebSocket relay
	natsConn, err := natsadapter.RawConn(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats ws conn unavailable", "error", err)
	}

	// Use cases
	markerSvc := usecases.NewMarkerService(repo, cacheSvc, events)
	geocodeSvc := usecases.NewGeocodeService(geocode.NewStaticGeocoder(), cacheSvc, events)

	deps := &http.Dependencies{
		Markers: markerSvc,
		Geocode: geocodeSvc,
		NATS:    natsConn,
		Cache:   cache,
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB max request body
		AppName:      "NextNeighbor Discover API",
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	// Give in-flight requests up to 10s to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
