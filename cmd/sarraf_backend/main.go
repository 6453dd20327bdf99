package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sarrafhq/sarraf-backend/internal/core/services"
	"github.com/sarrafhq/sarraf-backend/internal/handlers"
	"github.com/sarrafhq/sarraf-backend/internal/middleware"
	"github.com/sarrafhq/sarraf-backend/internal/repositories/database/pgsql"
	"github.com/sarrafhq/sarraf-backend/pkg/config"
	"github.com/sarrafhq/sarraf-backend/pkg/database"

	portssvc "github.com/sarrafhq/sarraf-backend/internal/core/ports/services"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// @title Sarraf Backend API
// @version 1.0
// @description Gold and currency price quoting and administration backend.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		corsMiddleware(cfg),
		middleware.SecurityHeaders(),
		middleware.Sanitize(),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, buildRouterDeps(cfg, dbPool, logger))

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildRouterDeps wires repositories into services and builds the rate
// limiters. Stores are in-memory; swap for a shared store to fan out across
// instances.
func buildRouterDeps(cfg *config.Config, dbPool *pgxpool.Pool, logger *slog.Logger) handlers.RouterDeps {
	priceRepo := pgsql.NewPgxPriceRecordRepository(dbPool)
	goldTypeRepo := pgsql.NewPgxGoldTypeRepository(dbPool)
	currencyRepo := pgsql.NewPgxCurrencyRepository(dbPool)
	settingRepo := pgsql.NewPgxSettingRepository(dbPool)
	sessionRepo := pgsql.NewPgxSessionRepository(dbPool)
	userRepo := pgsql.NewPgxUserRepository(dbPool)
	auditRepo := pgsql.NewPgxAuditLogRepository(dbPool)

	auditService := services.NewAuditService(auditRepo, logger)
	settingsService := services.NewSettingsService(settingRepo, auditService, logger, cfg.DefaultTimezone)

	var google services.GoogleCodeVerifier
	if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" {
		google = services.NewGoogleOAuthService(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)
	}
	authService := services.NewAuthService(userRepo, sessionRepo, google, auditService, logger, cfg.SessionTTL)
	apiTokenService := services.NewAPITokenService(userRepo, cfg.APITokenSecret, cfg.APITokenIssuer, cfg.APITokenExpiryDuration)

	container := &portssvc.ServiceContainer{
		Price:    services.NewPriceService(priceRepo, goldTypeRepo, currencyRepo, settingsService, auditService),
		GoldType: services.NewGoldTypeService(goldTypeRepo, auditService),
		Currency: services.NewCurrencyService(currencyRepo, auditService),
		Settings: settingsService,
		Auth:     authService,
		APIToken: apiTokenService,
		Audit:    auditService,
	}

	lockoutRate := limiter.Rate{
		Period: cfg.LoginLockoutDuration,
		Limit:  cfg.LoginMaxAttempts,
	}

	return handlers.RouterDeps{
		Services:      container,
		Lockout:       middleware.NewLockout(memory.NewStore(), lockoutRate),
		PublicLimiter: newLimiter(cfg.PublicRateLimit, logger),
		AdminLimiter:  newLimiter(cfg.AdminRateLimit, logger),
		AuthLimiter:   newLimiter(cfg.AuthRateLimit, logger),
	}
}

func newLimiter(formatted string, logger *slog.Logger) *limiter.Limiter {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		logger.Warn("Invalid rate limit format, defaulting to 60-M", slog.String("value", formatted))
		rate, _ = limiter.NewRateFromFormatted("60-M")
	}
	return limiter.New(memory.NewStore(), rate)
}

func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = []string{cfg.FrontendBaseURL}
	corsCfg.AllowCredentials = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "X-CSRF-Token", "x-api-key")
	return cors.New(corsCfg)
}

func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to open database connection for migrations", slog.String("error", err.Error()))
		return err
	}
	if err := migrationDB.Ping(); err != nil {
		logger.Error("Failed to ping database for migrations", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		logger.Error("Could not create postgres driver instance for migrations", slog.String("error", err.Error()))
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		logger.Error("Could not create migrate instance", slog.String("error", err.Error()))
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		logger.Error("Migration source error", slog.String("error", sourceErr.Error()))
		return sourceErr
	}
	if dbErr != nil {
		logger.Error("Migration database error", slog.String("error", dbErr.Error()))
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
