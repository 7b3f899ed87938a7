package usecase

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"item-service/internal/item/repository"
	"item-service/internal/model"
	"item-service/pkg/log"
)

// CacheConfig sizes the read-through cache in front of the repository.
// Size <= 0 disables it.
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

// implUseCase is the private implementation of item.UseCase.
type implUseCase struct {
	repo  repository.Repository
	l     log.Logger
	cache *expirable.LRU[int64, model.Item]

	// cacheGen is bumped on every eviction so reads that overlap a write
	// do not refill the cache with the old row.
	cacheMu  sync.Mutex
	cacheGen uint64
}

// New creates a new item UseCase implementation.
func New(repo repository.Repository, l log.Logger, cacheCfg CacheConfig) *implUseCase {
	uc := &implUseCase{
		repo: repo,
		l:    l,
	}
	if cacheCfg.Size > 0 {
		uc.cache = expirable.NewLRU[int64, model.Item](cacheCfg.Size, nil, cacheCfg.TTL)
	}
	return uc
}
