package postgre

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"item-service/internal/item/repository"
	"item-service/pkg/log"
)

type implRepository struct {
	db *bun.DB
	l  log.Logger
}

// New creates a new PostgreSQL-backed Repository for the item domain.
func New(db *bun.DB, l log.Logger) repository.Repository {
	if db == nil {
		panic("item/repository/postgre: db is required")
	}
	return &implRepository{db: db, l: l}
}

// Ping checks the database connection.
func (r *implRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// CreateSchema creates the items table if it does not exist yet.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().
		Model((*itemRow)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create items table: %w", err)
	}
	return nil
}

// dsn is a helper to return a method-scoped context string for logging.
func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("item/repository/postgre.%s", method)
}
