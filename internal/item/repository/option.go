package repository

// CreateItemOptions holds parameters for inserting a new Item.
// The store assigns id and created_at.
type CreateItemOptions struct {
	Name        string
	Description *string
}

// ListItemsOptions holds pagination parameters for listing Items.
// Items are returned newest first. Limit <= 0 means no limit.
type ListItemsOptions struct {
	Limit  int
	Offset int
}

// UpdateItemOptions replaces the mutable fields of an existing Item.
type UpdateItemOptions struct {
	ID          int64
	Name        string
	Description *string
}
