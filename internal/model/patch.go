package model

// ItemPatch is a partial change to an ItemBase. A nil Name keeps the
// current name. HasDescription reports whether description was sent; a
// nil Description with HasDescription set clears it.
type ItemPatch struct {
	Name           *string
	Description    *string
	HasDescription bool
}

type patchPayload struct {
	Name        *string `attr:"name"`
	Description *string `attr:"description"`
}

// ItemPatchFromAttributes reads an ItemPatch. Absent fields are left
// unchanged; name may not be null.
func ItemPatchFromAttributes(src Attributes) (ItemPatch, error) {
	r := newReader(src)
	p := patchPayload{
		Name:        r.text(FieldName, true),
		Description: r.text(FieldDescription, false),
	}
	if err := r.check(&p); err != nil {
		return ItemPatch{}, err
	}
	_, hasDescription := r.src.Attr(FieldDescription)
	return ItemPatch{
		Name:           p.Name,
		Description:    p.Description,
		HasDescription: hasDescription,
	}, nil
}

// DecodeItemPatch parses and validates a JSON partial update.
func DecodeItemPatch(data []byte) (ItemPatch, error) {
	fields, err := decodeObject(data)
	if err != nil {
		return ItemPatch{}, err
	}
	return ItemPatchFromAttributes(fields)
}
