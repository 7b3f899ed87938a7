package item

import "item-service/internal/model"

// --- UseCase Inputs ---

type ListInput struct {
	Limit  int
	Offset int
}

// UpdateInput is a partial update. A nil Name keeps the current name.
// Description is applied only when SetDescription is true; a nil
// Description then clears it.
type UpdateInput struct {
	ID             int64
	Name           *string
	Description    *string
	SetDescription bool
}

// --- UseCase Outputs ---

type ListOutput struct {
	Items  []model.Item
	Total  int
	Limit  int
	Offset int
}
