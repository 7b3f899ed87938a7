package model

import (
	"errors"
	"reflect"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
)

// Attributes is a source of named field values, such as a database row or
// a decoded JSON object. Attr reports false when the field is absent.
type Attributes interface {
	Attr(name string) (any, bool)
}

// Fields adapts a plain mapping to Attributes.
type Fields map[string]any

// Attr implements Attributes.
func (f Fields) Attr(name string) (any, bool) {
	v, ok := f[name]
	return v, ok
}

// basePayload and itemPayload hold coerced values before presence checks.
// A nil pointer means the field was absent, null or failed to coerce.
type basePayload struct {
	Name        *string `attr:"name" validate:"required"`
	Description *string `attr:"description"`
}

type itemPayload struct {
	Name        *string    `attr:"name" validate:"required"`
	Description *string    `attr:"description"`
	ID          *int64     `attr:"id" validate:"required"`
	CreatedAt   *time.Time `attr:"created_at" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("attr")
	})
	return v
}

// ItemBaseFromAttributes builds an ItemBase from any attribute source.
func ItemBaseFromAttributes(src Attributes) (ItemBase, error) {
	r := newReader(src)
	p := basePayload{
		Name:        r.text(FieldName, true),
		Description: r.text(FieldDescription, false),
	}
	if err := r.check(&p); err != nil {
		return ItemBase{}, err
	}
	return ItemBase{Name: *p.Name, Description: p.Description}, nil
}

// ItemCreateFromAttributes builds an ItemCreate from any attribute source.
// Generated fields present in src are ignored.
func ItemCreateFromAttributes(src Attributes) (ItemCreate, error) {
	base, err := ItemBaseFromAttributes(src)
	if err != nil {
		return ItemCreate{}, err
	}
	return ItemCreate{ItemBase: base}, nil
}

// ItemFromAttributes builds a stored Item from any attribute source. It reads
// id, name, description and created_at, coercing compatible types.
func ItemFromAttributes(src Attributes) (Item, error) {
	r := newReader(src)
	p := itemPayload{
		Name:        r.text(FieldName, true),
		Description: r.text(FieldDescription, false),
		ID:          r.integer(FieldID),
		CreatedAt:   r.timestamp(FieldCreatedAt),
	}
	if err := r.check(&p); err != nil {
		return Item{}, err
	}
	return Item{
		ItemBase:  ItemBase{Name: *p.Name, Description: p.Description},
		ID:        *p.ID,
		CreatedAt: *p.CreatedAt,
	}, nil
}

type reader struct {
	src  Attributes
	errs ValidationErrors
}

func newReader(src Attributes) *reader {
	if src == nil {
		src = Fields(nil)
	}
	return &reader{src: src}
}

func (r *reader) fail(field, msg string) {
	r.errs = append(r.errs, FieldError{Field: field, Message: msg})
}

// lookup returns the raw value, or ok=false when absent or null. Null on a
// required field is recorded here; absence is left to the validator.
func (r *reader) lookup(field string, required bool) (any, bool) {
	v, ok := r.src.Attr(field)
	if !ok {
		return nil, false
	}
	if isNull(v) {
		if required {
			r.fail(field, MsgNoneNotAllowed)
		}
		return nil, false
	}
	return v, true
}

func (r *reader) text(field string, required bool) *string {
	v, ok := r.lookup(field, required)
	if !ok {
		return nil
	}
	s, err := coerceString(v)
	if err != nil {
		r.fail(field, err.Error())
		return nil
	}
	return &s
}

func (r *reader) integer(field string) *int64 {
	v, ok := r.lookup(field, true)
	if !ok {
		return nil
	}
	n, err := coerceInt(v)
	if err != nil {
		r.fail(field, err.Error())
		return nil
	}
	return &n
}

func (r *reader) timestamp(field string) *time.Time {
	v, ok := r.lookup(field, true)
	if !ok {
		return nil
	}
	t, err := coerceTime(v)
	if err != nil {
		r.fail(field, err.Error())
		return nil
	}
	return &t
}

// check runs the presence rules on payload and returns every collected error.
func (r *reader) check(payload any) error {
	if err := validate.Struct(payload); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			if r.errs.Has(fe.Field()) {
				continue
			}
			r.fail(fe.Field(), messageForTag(fe.Tag()))
		}
	}
	if len(r.errs) == 0 {
		return nil
	}
	sort.SliceStable(r.errs, func(i, j int) bool {
		return fieldOrder(r.errs[i].Field) < fieldOrder(r.errs[j].Field)
	})
	return r.errs
}

func messageForTag(tag string) string {
	switch tag {
	case "required":
		return MsgFieldRequired
	default:
		return "failed on " + tag
	}
}

// fieldOrder follows declaration order: base fields first.
func fieldOrder(field string) int {
	switch field {
	case FieldName:
		return 1
	case FieldDescription:
		return 2
	case FieldID:
		return 3
	case FieldCreatedAt:
		return 4
	default:
		return 0
	}
}
