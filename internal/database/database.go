package database

import (
	"fmt"
	"strings"
	"time"

	pkgLogger "github.com/sjperalta/propostas-api/pkg/logger"

	"github.com/glebarez/sqlite"
	"github.com/sjperalta/propostas-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// IsPostgres reports whether databaseURL points at a PostgreSQL server
// instead of an embedded SQLite file.
func IsPostgres(databaseURL string) bool {
	return strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://")
}

// Option adjusts how Connect logs statements
type Option func(*options)

type options struct {
	logLevel      logger.LogLevel
	slowThreshold time.Duration
}

// WithLogLevel sets the GORM log level (default warn)
func WithLogLevel(level logger.LogLevel) Option {
	return func(o *options) { o.logLevel = level }
}

// WithSlowThreshold sets the duration above which a statement is logged as slow (default 200ms)
func WithSlowThreshold(d time.Duration) Option {
	return func(o *options) { o.slowThreshold = d }
}

// Connect opens the record store. A plain path (or "file:" DSN) opens the
// embedded SQLite database file; a postgres:// URL opens PostgreSQL.
func Connect(databaseURL string, opts ...Option) (*gorm.DB, error) {
	o := options{logLevel: logger.Warn, slowThreshold: 200 * time.Millisecond}
	for _, opt := range opts {
		opt(&o)
	}
	gormLogger := pkgLogger.NewGormLogger(o.logLevel, o.slowThreshold)

	dialector := dialectorFor(databaseURL)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL database
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	if IsPostgres(databaseURL) {
		sqlDB.SetMaxIdleConns(2)
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetConnMaxLifetime(time.Hour)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	} else {
		// SQLite serializes writers; a single connection also keeps an
		// in-memory database alive for the life of the pool.
		sqlDB.SetMaxOpenConns(1)
	}

	// Verify connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

func dialectorFor(databaseURL string) gorm.Dialector {
	if IsPostgres(databaseURL) {
		return postgres.Open(databaseURL)
	}
	dsn := databaseURL
	if !strings.Contains(dsn, "_pragma=") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_pragma=busy_timeout(5000)"
	}
	return sqlite.Open(dsn)
}

// Migrate creates or updates the five tables of the record store
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Proposal{},
		&models.User{},
		&models.ProposalLog{},
		&models.Partner{},
		&models.Bank{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
