package postgre

import (
	"context"
	"database/sql"
	"errors"

	repo "item-service/internal/item/repository"
	"item-service/internal/model"
)

// CreateItem inserts a new row. id and created_at come from the database.
func (r *implRepository) CreateItem(ctx context.Context, opt repo.CreateItemOptions) (model.Item, error) {
	row := &itemRow{Name: opt.Name, Description: opt.Description}
	if _, err := r.db.NewInsert().Model(row).Returning("*").Exec(ctx); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateItem"), err)
		return model.Item{}, repo.ErrFailedToInsert
	}
	return r.toItem(ctx, row)
}

// GetItem retrieves a single Item by id.
// Returns zero-value Item (ID == 0) when not found.
func (r *implRepository) GetItem(ctx context.Context, id int64) (model.Item, error) {
	row := new(itemRow)
	err := r.db.NewSelect().Model(row).Where("i.id = ?", id).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Item{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetItem"), err)
		return model.Item{}, repo.ErrFailedToGet
	}
	return r.toItem(ctx, row)
}

// ListItems returns a page of Items, newest first, and the total count.
func (r *implRepository) ListItems(ctx context.Context, opt repo.ListItemsOptions) ([]model.Item, int, error) {
	var rows []itemRow
	q := r.db.NewSelect().
		Model(&rows).
		OrderExpr("i.created_at DESC, i.id DESC")
	if opt.Limit > 0 {
		q = q.Limit(opt.Limit)
	}
	if opt.Offset > 0 {
		q = q.Offset(opt.Offset)
	}

	total, err := q.ScanAndCount(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListItems"), err)
		return nil, 0, repo.ErrFailedToList
	}

	items := make([]model.Item, 0, len(rows))
	for i := range rows {
		item, err := r.toItem(ctx, &rows[i])
		if err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}
	return items, total, nil
}

// UpdateItem replaces name and description. Returns zero-value Item when not found.
func (r *implRepository) UpdateItem(ctx context.Context, opt repo.UpdateItemOptions) (model.Item, error) {
	row := &itemRow{ID: opt.ID, Name: opt.Name, Description: opt.Description}
	res, err := r.db.NewUpdate().
		Model(row).
		Column("name", "description").
		WherePK().
		Returning("*").
		Exec(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Item{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("UpdateItem"), err)
		return model.Item{}, repo.ErrFailedToUpdate
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return model.Item{}, nil
	}
	return r.toItem(ctx, row)
}

// DeleteItem removes an Item by id.
func (r *implRepository) DeleteItem(ctx context.Context, id int64) error {
	_, err := r.db.NewDelete().
		Model((*itemRow)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("DeleteItem"), err)
		return repo.ErrFailedToDelete
	}
	return nil
}

func (r *implRepository) toItem(ctx context.Context, row *itemRow) (model.Item, error) {
	item, err := model.ItemFromAttributes(row)
	if err != nil {
		r.l.Errorf(ctx, "%s: row %d: %v", r.dsn("toItem"), row.ID, err)
		return model.Item{}, repo.ErrInvalidRecord
	}
	return item, nil
}
