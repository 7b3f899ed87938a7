package usecase

import (
	"context"

	"item-service/internal/item"
	repo "item-service/internal/item/repository"
)

// List returns a paginated list of Items, newest first.
func (uc *implUseCase) List(ctx context.Context, input item.ListInput) (item.ListOutput, error) {
	items, total, err := uc.repo.ListItems(ctx, repo.ListItemsOptions{
		Limit:  input.Limit,
		Offset: input.Offset,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.List ListItems: %v", err)
		return item.ListOutput{}, err
	}

	return item.ListOutput{
		Items:  items,
		Total:  total,
		Limit:  input.Limit,
		Offset: input.Offset,
	}, nil
}
