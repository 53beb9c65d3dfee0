package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/acortes/biblioteca/docs" // generated swagger docs
	appControllers "github.com/acortes/biblioteca/internal/app/controllers"
	appMigrations "github.com/acortes/biblioteca/internal/app/migrations"
	appRepos "github.com/acortes/biblioteca/internal/app/repositories"
	appRoutes "github.com/acortes/biblioteca/internal/app/routes"
	appServices "github.com/acortes/biblioteca/internal/app/services"
	"github.com/acortes/biblioteca/internal/config"
	"github.com/acortes/biblioteca/internal/db"
	appMiddleware "github.com/acortes/biblioteca/internal/middleware"
	pkgAuth "github.com/acortes/biblioteca/internal/pkg/auth"
	"github.com/acortes/biblioteca/internal/pkg/helpers"
	"github.com/acortes/biblioteca/internal/pkg/logger"
	"github.com/acortes/biblioteca/internal/seed"
	"github.com/acortes/biblioteca/internal/workers"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos                 *appRepos.Repositories
	Services              *appServices.Services
	JWTService            *pkgAuth.JWTService
	AuthController        *appControllers.AuthController
	CatalogController     *appControllers.CatalogController
	LoanController        *appControllers.LoanController
	ReservationController *appControllers.ReservationController
	DigitalController     *appControllers.DigitalController
	UserController        *appControllers.UserController
	AuthMiddleware        *appMiddleware.AuthMiddleware
	ReservationSweeper    *workers.ReservationSweeper
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger
func LoadConfigAndSetupLogger() (*config.Config, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, err
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	logger.Info().
		Str("logLevel", cfg.Logging.Level).
		Str("logFormat", cfg.Logging.Format).
		Msg("Logger configured")

	return cfg, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the default data.
func SetupDatabase(cfg *config.Config) (*db.PostgresDB, error) {
	logger.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	logger.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	if err := seed.CreateDefaultData(ctx, database.Pool); err != nil {
		// A partial seed is logged but never blocks startup
		logger.Error().Err(err).Msg("Failed to create default data, proceeding anyway")
	}

	return database, nil
}

// BuildDependencies initializes repositories, services, controllers and workers
func BuildDependencies(cfg *config.Config, database *db.PostgresDB) *Dependencies {
	deps := &Dependencies{}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.Services = appServices.NewServices(deps.Repos, database, deps.JWTService, cfg)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.Services.Auth)
	deps.CatalogController = appControllers.NewCatalogController(deps.Services.Catalog)
	deps.LoanController = appControllers.NewLoanController(deps.Services.Loans)
	deps.ReservationController = appControllers.NewReservationController(deps.Services.Reservations)
	deps.DigitalController = appControllers.NewDigitalController(deps.Services.Digital)
	deps.UserController = appControllers.NewUserController(deps.Services.Users)

	sweepInterval := helpers.ParseDuration(cfg.Loans.ReservationSweep, 1*time.Hour)
	deps.ReservationSweeper = workers.NewReservationSweeper(deps.Services.Reservations, sweepInterval)

	return deps
}

// SetupRouter configures the Gin engine with middleware and routes
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.URL("/swagger/doc.json"),
		ginSwagger.DefaultModelsExpandDepth(1)))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.CatalogController,
		deps.LoanController,
		deps.ReservationController,
		deps.DigitalController,
		deps.UserController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
