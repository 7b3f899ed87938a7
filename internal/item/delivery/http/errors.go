package http

import (
	"errors"
	"net/http"

	"item-service/internal/item"
	"item-service/internal/model"
	pkgErrors "item-service/pkg/errors"
)

var (
	errInvalidID = pkgErrors.NewHTTPError(http.StatusBadRequest, "invalid item id")
	errNotFound  = pkgErrors.NewHTTPError(http.StatusNotFound, "item not found")
	errInvalid   = pkgErrors.NewHTTPError(http.StatusBadRequest, "validation failed")
)

// mapError translates domain and use-case errors into HTTP errors.
// Unknown errors are passed through and reported as 500.
func (h *handler) mapError(err error) error {
	var verrs model.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return errInvalid.WithDetails(verrs)
	case errors.Is(err, item.ErrItemNotFound):
		return errNotFound
	case errors.Is(err, item.ErrInvalidID):
		return errInvalidID
	default:
		return err
	}
}
