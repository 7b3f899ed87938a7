package usecase

import (
	"context"

	repo "item-service/internal/item/repository"
	"item-service/internal/model"
)

// Create persists a new Item. The repository assigns id and created_at.
func (uc *implUseCase) Create(ctx context.Context, input model.ItemCreate) (model.Item, error) {
	version := uc.cacheVersion()
	item, err := uc.repo.CreateItem(ctx, repo.CreateItemOptions{
		Name:        input.Name,
		Description: input.Description,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Create CreateItem: %v", err)
		return model.Item{}, err
	}

	uc.cachePutIfCurrent(item, version)
	return item, nil
}
