package postgre

import (
	"time"

	"github.com/uptrace/bun"

	"item-service/internal/model"
)

// itemRow is the bun model for the items table.
type itemRow struct {
	bun.BaseModel `bun:"table:items,alias:i"`

	ID          int64     `bun:"id,pk,autoincrement"`
	Name        string    `bun:"name,notnull"`
	Description *string   `bun:"description"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

// Attr exposes the row to model.ItemFromAttributes.
func (r *itemRow) Attr(name string) (any, bool) {
	switch name {
	case model.FieldID:
		return r.ID, true
	case model.FieldName:
		return r.Name, true
	case model.FieldDescription:
		return r.Description, true
	case model.FieldCreatedAt:
		return r.CreatedAt, true
	}
	return nil, false
}
