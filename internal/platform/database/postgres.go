package database

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
)

//go:embed schema.sql
var schema string

type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func (c Config) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, sslMode)
}

func NewPostgresDB(cfg Config, logger *slog.Logger) (*sql.DB, error) {
	open := func() (*sql.DB, error) { return sql.Open("postgres", cfg.DSN()) }
	return connect(open, cfg.Host, 10, 2*time.Second, logger)
}

// connect opens and pings until the database answers. A handle that failed
// its ping is closed before the next attempt.
func connect(open func() (*sql.DB, error), host string, maxRetries int, wait time.Duration, logger *slog.Logger) (*sql.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var err error
	for i := 1; i <= maxRetries; i++ {
		logger.Info("connecting to database", "host", host, "attempt", i, "max_attempts", maxRetries)
		var db *sql.DB
		db, err = open()
		if err == nil {
			if err = db.Ping(); err == nil {
				logger.Info("database connected")
				return db, nil
			}
			_ = db.Close()
		}

		if i < maxRetries {
			logger.Warn("database not ready yet", "error", err, "retry_in", wait)
			time.Sleep(wait)
		}
	}

	return nil, fmt.Errorf("connect database: %w", err)
}

// EnsureSchema creates the engine tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
