package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/go-redis/redis/v8"

	"item-service/internal/item/repository"
	"item-service/pkg/log"
)

// Key layout, relative to the configured prefix:
//
//	items:seq         INCR counter that allocates ids
//	items:by_created  sorted set of ids scored by created_at (unix micros);
//	                  members are zero padded so equal scores order by id
//	item:<id>         hash holding id, name, description, created_at
const (
	seqKey   = "items:seq"
	indexKey = "items:by_created"
	itemKey  = "item:"
)

type implRepository struct {
	client *goredis.Client
	l      log.Logger
	prefix string
	now    func() time.Time
}

// New creates a new Redis-backed Repository for the item domain.
func New(client *goredis.Client, prefix string, l log.Logger) repository.Repository {
	if client == nil {
		panic("item/repository/redis: client is required")
	}
	return &implRepository{client: client, l: l, prefix: prefix, now: time.Now}
}

// Ping checks the Redis connection.
func (r *implRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *implRepository) seqKey() string   { return r.prefix + seqKey }
func (r *implRepository) indexKey() string { return r.prefix + indexKey }
func (r *implRepository) itemKey(id int64) string {
	return r.prefix + itemKey + strconv.FormatInt(id, 10)
}

// indexMember pads id to a fixed width so that lexicographic member order,
// which Redis uses to break score ties, matches numeric id order.
func indexMember(id int64) string {
	return fmt.Sprintf("%019d", id)
}

// dsn is a helper to return a method-scoped context string for logging.
func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("item/repository/redis.%s", method)
}
