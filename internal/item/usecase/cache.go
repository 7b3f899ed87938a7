package usecase

import "item-service/internal/model"

// cacheGet returns a copy of the cached item.
func (uc *implUseCase) cacheGet(id int64) (model.Item, bool) {
	if uc.cache == nil {
		return model.Item{}, false
	}
	cached, ok := uc.cache.Get(id)
	if !ok {
		return model.Item{}, false
	}
	return cloneItem(cached), true
}

// cacheVersion returns the current eviction generation. Pass it to
// cachePutIfCurrent after a repository read.
func (uc *implUseCase) cacheVersion() uint64 {
	uc.cacheMu.Lock()
	defer uc.cacheMu.Unlock()
	return uc.cacheGen
}

// cachePutIfCurrent stores item unless an eviction happened since version
// was taken, in which case item may already be stale.
func (uc *implUseCase) cachePutIfCurrent(item model.Item, version uint64) {
	if uc.cache == nil {
		return
	}
	uc.cacheMu.Lock()
	defer uc.cacheMu.Unlock()
	if uc.cacheGen != version {
		return
	}
	uc.cache.Add(item.ID, cloneItem(item))
}

// cacheDrop evicts id and invalidates reads that are still in flight.
func (uc *implUseCase) cacheDrop(id int64) {
	if uc.cache == nil {
		return
	}
	uc.cacheMu.Lock()
	defer uc.cacheMu.Unlock()
	uc.cacheGen++
	uc.cache.Remove(id)
}

func cloneItem(it model.Item) model.Item {
	if it.Description != nil {
		d := *it.Description
		it.Description = &d
	}
	return it
}
