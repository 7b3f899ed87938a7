package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidation matches every ValidationErrors value via errors.Is.
var ErrValidation = errors.New("validation failed")

// Validation messages, worded after pydantic's.
const (
	MsgFieldRequired   = "field required"
	MsgNoneNotAllowed  = "none is not an allowed value"
	MsgStrType         = "str type expected"
	MsgIntType         = "value is not a valid integer"
	MsgDateTimeType    = "invalid datetime format"
	MsgObjectExpected  = "value is not a valid dict"
	MsgMalformedObject = "malformed JSON"
)

// FieldError describes one failed field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (fe FieldError) Error() string {
	return fmt.Sprintf("%s: %s", fe.Field, fe.Message)
}

// ValidationErrors collects every field that failed to validate.
type ValidationErrors []FieldError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, len(ve))
	for i, fe := range ve {
		msgs[i] = fe.Error()
	}
	return fmt.Sprintf("%d validation error(s): %s", len(ve), strings.Join(msgs, "; "))
}

// Is reports whether target is ErrValidation.
func (ve ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

// Has reports whether field has an error.
func (ve ValidationErrors) Has(field string) bool {
	for _, fe := range ve {
		if fe.Field == field {
			return true
		}
	}
	return false
}
