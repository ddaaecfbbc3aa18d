package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/hfa-project/home_finance_app/internal/core/services"
	"github.com/hfa-project/home_finance_app/internal/handlers"
	"github.com/hfa-project/home_finance_app/internal/middleware"
	"github.com/hfa-project/home_finance_app/internal/platform/config"
	"github.com/hfa-project/home_finance_app/internal/platform/metrics"
	"github.com/hfa-project/home_finance_app/internal/repositories/database/pgsql"
	"github.com/hfa-project/home_finance_app/internal/scrapers"
	"github.com/hfa-project/home_finance_app/internal/vault"
	"github.com/hfa-project/home_finance_app/pkg/database"
)

// credentialVaultDomain separates connection-credential ciphertexts from any
// other use of the same master secret.
const credentialVaultDomain = "connection-credentials"

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	runMigrations(logger, cfg.DatabaseURL)

	// The vault is nil without a master secret: connection creation and sync
	// then report a configuration error while read paths keep working.
	var credentialVault *vault.Vault
	if cfg.MasterSecret != "" {
		credentialVault, err = vault.New(cfg.MasterSecret, credentialVaultDomain)
		if err != nil {
			logger.Error("Failed to initialize credential vault", slog.String("error", err.Error()))
			os.Exit(1)
		}
	} else {
		logger.Warn("MASTER_SECRET not set; credential encryption and sync are disabled")
	}

	var sink metrics.Sink = metrics.Noop{}
	if cfg.PosthogAPIKey != "" {
		posthogSink := metrics.NewPosthogSink(cfg.PosthogAPIKey, cfg.PosthogHost, logger)
		if posthogSink != nil {
			defer posthogSink.Close()
			sink = posthogSink
		}
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	scraperRegistry := scrapers.NewDefaultRegistry(cfg.ScraperURL)
	serviceContainer := services.NewServiceContainer(cfg, repos, scraperRegistry, credentialVault, sink)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS, rate limiting)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid RATE_LIMIT format", slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(limiter.New(memory.NewStore(), rate)))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations before the server starts
// serving traffic. Uses a temporary database/sql connection via the pgx
// stdlib driver so it stays compatible with the main pool.
func runMigrations(logger *slog.Logger, databaseURL string) {
	logger.Info("Running database migrations...")
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		logger.Error("Failed to open database connection for migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := migrationDB.Ping(); err != nil {
		logger.Error("Failed to ping database for migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		logger.Error("Could not create postgres driver instance for migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		logger.Error("Could not create migrate instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		logger.Error("Migration source error", slog.String("error", sourceErr.Error()))
		os.Exit(1)
	}
	if dbErr != nil {
		logger.Error("Migration database error", slog.String("error", dbErr.Error()))
		os.Exit(1)
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
}
