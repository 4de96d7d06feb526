package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"atlas3-backend/internal/common/config"
	"atlas3-backend/internal/common/logger"
)

type Client struct {
	db  *gorm.DB
	sql *sql.DB
}

// NewClient opens the configured database and verifies the connection.
func NewClient(cfg *config.Config) (*Client, error) {
	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "mysql":
		dialector = mysql.Open(cfg.Database.DSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.Database.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}

	logLevel := gormlogger.Warn
	if cfg.Debug {
		logLevel = gormlogger.Info
	}

	client, err := Open(dialector, logLevel)
	if err != nil {
		return nil, err
	}
	client.sql.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	client.sql.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.HealthCheck(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().
		Str("driver", cfg.Database.Driver).
		Msg("Database client initialized")

	return client, nil
}

// Open wraps an already chosen dialector; tests use it with in-memory SQLite.
func Open(dialector gorm.Dialector, logLevel gormlogger.LogLevel) (*Client, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(logLevel),
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return &Client{db: db, sql: sqlDB}, nil
}

// Migrate creates or updates tables for the given models.
func (c *Client) Migrate(models ...interface{}) error {
	if err := c.db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func (c *Client) GetDB() *gorm.DB {
	return c.db
}

func (c *Client) Close() error {
	return c.sql.Close()
}

func (c *Client) HealthCheck(ctx context.Context) error {
	return c.sql.PingContext(ctx)
}
