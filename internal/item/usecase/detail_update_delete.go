package usecase

import (
	"context"

	"item-service/internal/item"
	repo "item-service/internal/item/repository"
	"item-service/internal/model"
)

// Detail retrieves a single Item by id. Returns ErrItemNotFound when not found.
func (uc *implUseCase) Detail(ctx context.Context, id int64) (model.Item, error) {
	if id <= 0 {
		return model.Item{}, item.ErrInvalidID
	}
	if cached, ok := uc.cacheGet(id); ok {
		return cached, nil
	}

	version := uc.cacheVersion()
	found, err := uc.repo.GetItem(ctx, id)
	if err != nil {
		uc.l.Errorf(ctx, "uc.Detail GetItem: %v", err)
		return model.Item{}, err
	}
	if found.ID == 0 {
		return model.Item{}, item.ErrItemNotFound
	}

	uc.cachePutIfCurrent(found, version)
	return found, nil
}

// Update applies a partial update. id and created_at never change.
// Returns ErrItemNotFound when not found.
func (uc *implUseCase) Update(ctx context.Context, input item.UpdateInput) (model.Item, error) {
	if input.ID <= 0 {
		return model.Item{}, item.ErrInvalidID
	}

	existing, err := uc.repo.GetItem(ctx, input.ID)
	if err != nil {
		uc.l.Errorf(ctx, "uc.Update GetItem: %v", err)
		return model.Item{}, err
	}
	if existing.ID == 0 {
		return model.Item{}, item.ErrItemNotFound
	}

	opt := repo.UpdateItemOptions{
		ID:          input.ID,
		Name:        existing.Name,
		Description: existing.Description,
	}
	if input.Name != nil {
		opt.Name = *input.Name
	}
	if input.SetDescription {
		opt.Description = input.Description
	}

	updated, err := uc.repo.UpdateItem(ctx, opt)
	// the next Detail reloads it
	uc.cacheDrop(input.ID)
	if err != nil {
		uc.l.Errorf(ctx, "uc.Update UpdateItem: %v", err)
		return model.Item{}, err
	}
	if updated.ID == 0 {
		// deleted between the read and the write
		return model.Item{}, item.ErrItemNotFound
	}

	return updated, nil
}

// Delete removes an Item by id. Returns ErrItemNotFound when not found.
func (uc *implUseCase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return item.ErrInvalidID
	}

	existing, err := uc.repo.GetItem(ctx, id)
	if err != nil {
		uc.l.Errorf(ctx, "uc.Delete GetItem: %v", err)
		return err
	}
	if existing.ID == 0 {
		uc.cacheDrop(id)
		return item.ErrItemNotFound
	}

	err = uc.repo.DeleteItem(ctx, id)
	uc.cacheDrop(id)
	if err != nil {
		uc.l.Errorf(ctx, "uc.Delete DeleteItem: %v", err)
		return err
	}
	return nil
}
