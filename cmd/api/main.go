package main

import (
	"context"
	"os"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "cardsapi/docs"
	"cardsapi/internal/config"
	"cardsapi/internal/database"
	"cardsapi/internal/database/migration"
	handlers "cardsapi/internal/http/handler"
	"cardsapi/internal/http/middleware"
	"cardsapi/internal/logger"
	"cardsapi/internal/otel"
	"cardsapi/internal/repository/postgres"
	"cardsapi/internal/service"
	"cardsapi/internal/storage"
)

// @title Cards API
// @version 1.0
// @description Visit counter and review list.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg, err := config.Load()
	if err != nil {
		boot := zerolog.New(os.Stderr).With().Timestamp().Logger()
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New(cfg.Env, cfg.LogLevel, os.Stdout)

	shutdownTracing, err := otel.Init(context.Background(), logger.ServiceName, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracing")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			log.Error().Err(err).Msg("tracing shutdown")
		}
	}()

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := migration.EnsureSchema(context.Background(), db, log); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure database schema")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := service.NewMetrics(reg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register domain metrics")
	}
	promMW, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register http metrics")
	}

	// Reviews are copied to object storage only when a bucket is configured
	var archive storage.Storage
	if cfg.MinIO.Enabled() {
		archive, err = storage.NewMinIO(cfg.MinIO)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize review archive")
		}
	}

	// Initialize repositories and services
	visitSvc := service.NewVisitService(postgres.NewVisitPostgres(db), metrics)
	reviewSvc := service.NewReviewService(postgres.NewReviewPostgres(db), archive, metrics, log)

	app := newApp(log, cfg.CORSOrigins, promMW.Handler(), handlers.Deps{
		DB:      db,
		Visits:  visitSvc,
		Reviews: reviewSvc,
		Metrics: adaptor.HTTPHandler(otelhttp.NewHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), "metrics")),
		Log:     log,
	})

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Msg("listening")

	if err := app.Listen(addr); err != nil {
		log.Error().Err(err).Msg("failed to start server")
	}
}

// newApp builds the Fiber app with global middleware, API routes and the
// Swagger UI. httpMetrics may be nil.
func newApp(log zerolog.Logger, corsOrigins string, httpMetrics fiber.Handler, deps handlers.Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	app.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	if httpMetrics != nil {
		app.Use(httpMetrics)
	}
	app.Use(middleware.CORS(corsOrigins))

	handlers.RegisterRoutes(app, deps)

	// docs.SwaggerInfo is never written per request; with Host and Schemes
	// left empty the UI resolves them from the page URL.
	app.Get("/swagger/*", swagger.HandlerDefault)

	return app
}
