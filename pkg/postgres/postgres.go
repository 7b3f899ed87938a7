package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"item-service/pkg/log"
)

const pingTimeout = 10 * time.Second

// Config describes how to reach PostgreSQL.
type Config struct {
	DSN        string
	MaxRetries int
	RetryDelay time.Duration
	// Debug logs every query through bundebug.
	Debug bool
}

// Connect opens a bun DB over pgdriver, retrying the initial ping until it
// succeeds, the retries run out, or ctx is done.
func Connect(ctx context.Context, cfg Config, l log.Logger) (*bun.DB, error) {
	retries := cfg.MaxRetries
	if retries <= 0 {
		retries = 1
	}

	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		l.Infof(ctx, "postgres.Connect: attempt %d/%d", attempt, retries)

		db := open(cfg)

		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		lastErr = db.PingContext(pingCtx)
		cancel()

		if lastErr == nil {
			l.Infof(ctx, "postgres.Connect: connected on attempt %d", attempt)
			return db, nil
		}

		l.Warnf(ctx, "postgres.Connect: ping failed: %v", lastErr)
		if err := db.Close(); err != nil {
			l.Warnf(ctx, "postgres.Connect: close: %v", err)
		}
		if attempt == retries {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(cfg.RetryDelay):
		}
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", retries, lastErr)
}

func open(cfg Config) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.DSN)))
	sqldb.SetMaxOpenConns(25)
	sqldb.SetMaxIdleConns(10)
	sqldb.SetConnMaxLifetime(5 * time.Minute)
	sqldb.SetConnMaxIdleTime(1 * time.Minute)

	db := bun.NewDB(sqldb, pgdialect.New())
	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(
			bundebug.WithVerbose(true),
			bundebug.FromEnv("BUNDEBUG"),
		))
	}
	return db
}
