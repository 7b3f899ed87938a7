package repository

import (
	"context"

	"item-service/internal/model"
)

// Repository is the composed interface for the item data store.
type Repository interface {
	ItemRepository
	Ping(ctx context.Context) error
}

// ItemRepository defines all data access methods for the Item entity.
// Lookups by id return a zero Item (ID == 0) when the row does not exist;
// ids are assigned from 1.
type ItemRepository interface {
	CreateItem(ctx context.Context, opt CreateItemOptions) (model.Item, error)
	GetItem(ctx context.Context, id int64) (model.Item, error)
	ListItems(ctx context.Context, opt ListItemsOptions) ([]model.Item, int, error)
	UpdateItem(ctx context.Context, opt UpdateItemOptions) (model.Item, error)
	DeleteItem(ctx context.Context, id int64) error
}
