package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	_ "github.com/joho/godotenv/autoload"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/sjperalta/propostas-api/docs" // Swagger docs
	"github.com/sjperalta/propostas-api/internal/config"
	"github.com/sjperalta/propostas-api/internal/database"
	"github.com/sjperalta/propostas-api/internal/handlers"
	"github.com/sjperalta/propostas-api/internal/middleware"
	"github.com/sjperalta/propostas-api/internal/models"
	"github.com/sjperalta/propostas-api/internal/repository"
	"github.com/sjperalta/propostas-api/internal/services"
	"github.com/sjperalta/propostas-api/internal/version"
	"github.com/sjperalta/propostas-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// @title Propostas API
// @version 1.0
// @description REST API for credit proposal entry and reporting

// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Setup(cfg.Environment)

	// Initialize Sentry when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	info := version.Load(cfg.VersionFile)
	logger.Info("Starting", "version", info.Version, "build", info.Build)

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL,
		database.WithLogLevel(cfg.DBLogLevel),
		database.WithSlowThreshold(cfg.DBSlowQueryThreshold),
	)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database", "postgres", database.IsPostgres(cfg.DatabaseURL))

	// Initialize repositories and services
	repos := repository.NewRepositories(db)
	svcs := services.NewServices(repos, cfg)

	if err := seed(svcs, cfg); err != nil {
		logger.Error("Failed to seed database", "error", err)
		os.Exit(1)
	}

	// Initialize handlers
	h := handlers.NewHandlers(svcs, info)

	// Setup router
	router := setupRouter(h, svcs.Auth, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	if err := database.Close(db); err != nil {
		logger.Error("Failed to close database", "error", err)
	}

	// Flush Sentry events before exit
	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

// seed creates the first admin and the bank list on an empty database
func seed(svcs *services.Services, cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := svcs.User.EnsureSeedAdmin(ctx, cfg.AdminPassword); err != nil {
		return err
	}
	if cfg.SeedBanks {
		return svcs.Catalog.SeedIfEmpty(ctx, models.CatalogBanks, models.DefaultBanks)
	}
	return nil
}

func setupRouter(h *handlers.Handlers, verifier middleware.TokenVerifier, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// Redirect root to swagger
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	h.RegisterRoutes(router.Group("/api/v1"), verifier)
	return router
}
