package redis

import "item-service/internal/model"

// hashRecord is an item hash as returned by HGETALL. Every value is a
// string; model.ItemFromAttributes does the type coercion.
type hashRecord map[string]string

// Attr implements model.Attributes. A missing description field is absent.
func (h hashRecord) Attr(name string) (any, bool) {
	v, ok := h[name]
	return v, ok
}

var _ model.Attributes = hashRecord(nil)
