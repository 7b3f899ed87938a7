package model

import "time"

// ItemBase holds the fields shared by every item shape.
type ItemBase struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// ItemCreate is the input a caller supplies when asking for a new item.
// It carries no generated fields.
type ItemCreate struct {
	ItemBase
}

// Item is a stored item: the base fields plus the identity and creation
// time assigned by the persistence layer.
type Item struct {
	ItemBase
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewItemCreate builds an ItemCreate. A nil description means absent.
func NewItemCreate(name string, description *string) ItemCreate {
	return ItemCreate{ItemBase: ItemBase{Name: name, Description: description}}
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

// Field names as they appear on the wire and in attribute sources.
const (
	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldCreatedAt   = "created_at"
)
