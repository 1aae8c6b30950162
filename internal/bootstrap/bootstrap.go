package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/coursehub/coursehub/internal/app/controllers"
	appMigrations "github.com/coursehub/coursehub/internal/app/migrations"
	appRepos "github.com/coursehub/coursehub/internal/app/repositories"
	appRoutes "github.com/coursehub/coursehub/internal/app/routes"
	appServices "github.com/coursehub/coursehub/internal/app/services"
	"github.com/coursehub/coursehub/internal/config"
	"github.com/coursehub/coursehub/internal/db"
	appMiddleware "github.com/coursehub/coursehub/internal/middleware"
	"github.com/coursehub/coursehub/internal/pkg/filestorage"
	"github.com/coursehub/coursehub/internal/pkg/helpers"
	"github.com/coursehub/coursehub/internal/pkg/logger"
	"github.com/coursehub/coursehub/internal/pkg/qaclient"
	"github.com/coursehub/coursehub/internal/seed"
)

// DefaultConfigPath is where LoadConfigAndSetupLogger looks when no path is given.
var DefaultConfigPath = filepath.Join("configs", "config.yaml")

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos       *appRepos.Repositories
	Services    *appServices.Services
	Controllers appRoutes.Controllers
	FileStorage *filestorage.LocalStorage
	Backend     *qaclient.Client
	Logger      zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	level := logger.ParseLevel(cfg.Logging.Level)
	lgr := logger.Configure(logger.Config{
		Level:  level,
		Pretty: cfg.Logging.Format == "text",
	})

	lgr.Info().Str("logLevel", string(level)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// OpenDatabase opens the configured store without touching its schema.
func OpenDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.DB, error) {
	opts, err := db.OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	lgr.Info().Str("driver", opts.Driver).Msg("Establishing database connection...")
	store, err := db.Open(ctx, opts)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	return store, nil
}

// RunMigrations applies pending schema migrations.
func RunMigrations(ctx context.Context, store *db.DB, lgr zerolog.Logger) error {
	applied, err := appMigrations.NewMigrator(store, lgr).Migrate(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Int("applied", applied).Msg("Database migrations up to date")
	return nil
}

// SetupDatabase opens the store, migrates it and optionally seeds demo data.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.DB, error) {
	store, err := OpenDatabase(ctx, cfg, lgr)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, store, lgr); err != nil {
		_ = store.Close()
		return nil, err
	}

	if cfg.Seed.DemoData {
		if err := seed.SeedDemoData(ctx, appRepos.NewRepositories(store), lgr); err != nil {
			// A failed seed leaves an empty but usable store.
			lgr.Error().Err(err).Msg("Failed to seed demo data, proceeding anyway...")
		}
	}

	return store, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, store *db.DB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.Backend, err = qaclient.New(lgr, qaclient.Config{
		BaseURL:       cfg.Backend.URL,
		PingTimeout:   helpers.ParseDuration(cfg.Backend.PingTimeout, 5*time.Second),
		AskTimeout:    helpers.ParseDuration(cfg.Backend.AskTimeout, 60*time.Second),
		UploadTimeout: helpers.ParseDuration(cfg.Backend.UploadTimeout, 30*time.Second),
		DebugTimeout:  helpers.ParseDuration(cfg.Backend.DebugTimeout, 15*time.Second),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize backend client: %w", err)
	}
	lgr.Info().Str("backendUrl", deps.Backend.BaseURL()).Msg("Backend client configured")

	deps.Repos = appRepos.NewRepositories(store)
	deps.Services = appServices.NewServices(deps.Repos, deps.FileStorage, deps.Backend, lgr)

	svc := deps.Services
	deps.Controllers = appRoutes.Controllers{
		Course:   appControllers.NewCourseController(svc.Course, svc.Year),
		Year:     appControllers.NewYearController(svc.Year, svc.Semester),
		Semester: appControllers.NewSemesterController(svc.Semester, svc.Unit),
		Unit:     appControllers.NewUnitController(svc.Unit, svc.Document),
		Document: appControllers.NewDocumentController(svc.Document),
		Upload:   appControllers.NewUploadController(svc.Upload, int64(cfg.Server.MaxUploadMB)<<20),
		Ask:      appControllers.NewAskController(svc.Ask),
		Backend:  appControllers.NewBackendController(svc.Backend),
		Health:   appControllers.NewHealthController(store),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	appMiddleware.RegisterJSONFieldNames()

	router := gin.New()
	router.MaxMultipartMemory = int64(cfg.Server.MaxUploadMB) << 20
	router.Use(
		gin.Recovery(),
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(lgr),
		appMiddleware.CORS(cfg.CORS.AllowedOrigins),
	)

	appRoutes.SetupRouter(router, deps.Controllers)
	appRoutes.SetupSwagger(router)

	return router
}
