package item

import (
	"context"

	"item-service/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	Create(ctx context.Context, input model.ItemCreate) (model.Item, error)
	List(ctx context.Context, input ListInput) (ListOutput, error)
	Detail(ctx context.Context, id int64) (model.Item, error)
	Update(ctx context.Context, input UpdateInput) (model.Item, error)
	Delete(ctx context.Context, id int64) error
}
