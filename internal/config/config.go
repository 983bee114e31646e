package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sjperalta/propostas-api/pkg/logger"
	gormlogger "gorm.io/gorm/logger"
)

// Dedup scope names accepted by the DEDUP_SCOPE_* variables.
const (
	ScopeGlobal   = "global"
	ScopeFiltered = "filtered"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port        string
	Environment string

	// Database: a file path selects the embedded SQLite store, a postgres:// URL selects PostgreSQL
	DatabaseURL string

	// SQL logging: DB_LOG_LEVEL (silent, error, warn, info) and DB_SLOW_QUERY_MS
	DBLogLevel           gormlogger.LogLevel
	DBSlowQueryThreshold time.Duration

	// JWT
	JWTSecret          string
	JWTExpirationHours int

	// CORS
	AllowedOrigins []string

	// Sentry
	SentryDSN string

	// Version metadata file shown by /version
	VersionFile string

	// Seed data
	AdminLogin    string
	AdminPassword string
	SeedBanks     bool

	// Occurrence scope used by each reporting view for the CPF rule
	DashboardScope   string
	ReportsScope     string
	PerformanceScope string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		Environment:        getEnv("ENVIRONMENT", "development"),
		DatabaseURL:        getEnv("DATABASE_URL", "propostas.db"),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		JWTExpirationHours: getEnvAsInt("JWT_EXPIRATION_HOURS", 12),
		AllowedOrigins:     getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"}),
		SentryDSN:          getEnv("SENTRY_DSN", ""),
		VersionFile:        getEnv("VERSION_FILE", "version.json"),
		AdminLogin:         getEnv("ADMIN_LOGIN", "admin"),
		AdminPassword:      getEnv("ADMIN_PASSWORD", "admin"),
		SeedBanks:          getEnvAsBool("SEED_BANKS", true),
		DashboardScope:     getEnv("DEDUP_SCOPE_DASHBOARD", ScopeGlobal),
		ReportsScope:       getEnv("DEDUP_SCOPE_REPORTS", ScopeGlobal),
		PerformanceScope:   getEnv("DEDUP_SCOPE_PERFORMANCE", ScopeFiltered),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	// statements are logged outside production unless DB_LOG_LEVEL says otherwise
	defaultDBLevel := "info"
	if cfg.Environment == "production" {
		defaultDBLevel = "silent"
	}
	level, err := logger.GormLevel(getEnv("DB_LOG_LEVEL", defaultDBLevel))
	if err != nil {
		return nil, fmt.Errorf("DB_LOG_LEVEL: %w", err)
	}
	cfg.DBLogLevel = level
	cfg.DBSlowQueryThreshold = time.Duration(getEnvAsInt("DB_SLOW_QUERY_MS", 200)) * time.Millisecond

	if cfg.JWTSecret == "" && cfg.Environment == "production" {
		return nil, fmt.Errorf("JWT_SECRET is required in production")
	}

	// Set default JWT secret for development
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-secret-change-in-production"
	}

	for name, scope := range map[string]string{
		"DEDUP_SCOPE_DASHBOARD":   cfg.DashboardScope,
		"DEDUP_SCOPE_REPORTS":     cfg.ReportsScope,
		"DEDUP_SCOPE_PERFORMANCE": cfg.PerformanceScope,
	} {
		if scope != ScopeGlobal && scope != ScopeFiltered {
			return nil, fmt.Errorf("%s must be %q or %q, got %q", name, ScopeGlobal, ScopeFiltered, scope)
		}
	}

	return cfg, nil
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt reads an environment variable as integer
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool reads an environment variable as boolean
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsSlice reads an environment variable as comma-separated slice
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
