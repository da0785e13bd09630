package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"legalapi/internal/analysis"
	"legalapi/internal/config"
	"legalapi/internal/database"
	"legalapi/internal/database/migration"
	"legalapi/internal/docstore"
	handlers "legalapi/internal/http/handler"
	"legalapi/internal/http/middleware"
	"legalapi/internal/notify"
	"legalapi/internal/otel"
	"legalapi/internal/repository/postgres"
	"legalapi/internal/storage"
	"legalapi/internal/tasks"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	ctx := context.Background()

	shutdownTracing, err := otel.Init(ctx, time.UTC)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(shutdownCtx)
	}()

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, time.UTC, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Object storage is needed only by the blob document backend
	var objStore storage.Storage
	if cfg.Documents.Backend == config.BackendBlob {
		objStore, err = storage.NewMinIO(cfg.MinIO)
		if err != nil {
			log.Fatalf("failed to initialize object storage: %v", err)
		}
	}

	// Repositories and domain services
	docRepo := postgres.NewDocumentPostgres(db)
	taskRepo := postgres.NewTaskPostgres(db)
	analysisRepo := postgres.NewAnalysisPostgres(db)

	store, err := docstore.New(cfg.Documents, docRepo, objStore)
	if err != nil {
		log.Fatalf("failed to initialize document store: %v", err)
	}

	notifier, err := notify.NewSES(ctx, cfg.Mailer)
	if err != nil {
		log.Fatalf("failed to initialize ses mailer: %v", err)
	}

	register := tasks.NewRegister(taskRepo)
	analyzer := analysis.New(analysisRepo)

	// Metrics registry with process/runtime collectors
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	promMiddleware, err := middleware.NewPrometheusMiddleware(registry)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		// Inline documents can approach the 350 KB ceiling; leave headroom.
		BodyLimit: 8 * 1024 * 1024,
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(promMiddleware.Handler())

	invoke := handlers.NewInvokeHandler(db, store, docRepo, notifier, register, analyzer, promMiddleware)
	handlers.RegisterRoutes(app, db, invoke, registry)

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
