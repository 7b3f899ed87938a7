package model

import (
	"bytes"
	"encoding/json"
	"io"
)

// RootField names errors that concern the whole document rather than one field.
const RootField = "__root__"

// decodeObject parses data as exactly one JSON object. Numbers are kept as
// json.Number so integer ids survive without float rounding.
func decodeObject(data []byte) (Fields, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, ValidationErrors{{Field: RootField, Message: MsgMalformedObject}}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, ValidationErrors{{Field: RootField, Message: MsgMalformedObject}}
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, ValidationErrors{{Field: RootField, Message: MsgObjectExpected}}
	}
	return Fields(obj), nil
}

// DecodeItemBase parses and validates a JSON ItemBase.
func DecodeItemBase(data []byte) (ItemBase, error) {
	fields, err := decodeObject(data)
	if err != nil {
		return ItemBase{}, err
	}
	return ItemBaseFromAttributes(fields)
}

// DecodeItemCreate parses and validates a JSON creation request.
func DecodeItemCreate(data []byte) (ItemCreate, error) {
	fields, err := decodeObject(data)
	if err != nil {
		return ItemCreate{}, err
	}
	return ItemCreateFromAttributes(fields)
}

// DecodeItem parses and validates a JSON stored item.
func DecodeItem(data []byte) (Item, error) {
	fields, err := decodeObject(data)
	if err != nil {
		return Item{}, err
	}
	return ItemFromAttributes(fields)
}

// UnmarshalJSON validates like DecodeItemBase.
func (b *ItemBase) UnmarshalJSON(data []byte) error {
	v, err := DecodeItemBase(data)
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// UnmarshalJSON validates like DecodeItemCreate.
func (c *ItemCreate) UnmarshalJSON(data []byte) error {
	v, err := DecodeItemCreate(data)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// UnmarshalJSON validates like DecodeItem.
func (i *Item) UnmarshalJSON(data []byte) error {
	v, err := DecodeItem(data)
	if err != nil {
		return err
	}
	*i = v
	return nil
}
