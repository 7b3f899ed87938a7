package http

import (
	"time"

	"item-service/internal/item"
	"item-service/internal/model"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// --- Request DTOs ---

type listReq struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

func (r listReq) toInput() item.ListInput {
	limit := r.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset := r.Offset
	if offset < 0 {
		offset = 0
	}
	return item.ListInput{
		Limit:  limit,
		Offset: offset,
	}
}

type updateReq struct {
	ID    int64
	Patch model.ItemPatch
}

func (r updateReq) toInput() item.UpdateInput {
	return item.UpdateInput{
		ID:             r.ID,
		Name:           r.Patch.Name,
		Description:    r.Patch.Description,
		SetDescription: r.Patch.HasDescription,
	}
}

// --- Response DTOs ---

type itemResp struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func newItemResp(it model.Item) itemResp {
	return itemResp{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		CreatedAt:   it.CreatedAt,
	}
}

type detailResp struct {
	Item itemResp `json:"item"`
}

func (h *handler) newDetailResp(it model.Item) detailResp {
	return detailResp{Item: newItemResp(it)}
}

type listResp struct {
	Items  []itemResp `json:"items"`
	Total  int        `json:"total"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
}

func (h *handler) newListResp(out item.ListOutput) listResp {
	items := make([]itemResp, len(out.Items))
	for i, it := range out.Items {
		items[i] = newItemResp(it)
	}
	return listResp{
		Items:  items,
		Total:  out.Total,
		Limit:  out.Limit,
		Offset: out.Offset,
	}
}
