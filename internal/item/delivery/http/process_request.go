package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"item-service/internal/item"
	"item-service/internal/model"
	pkgErrors "item-service/pkg/errors"
)

// processCreateReq reads the body and validates it as an ItemCreate.
func (h *handler) processCreateReq(c *gin.Context) (model.ItemCreate, error) {
	body, err := c.GetRawData()
	if err != nil {
		return model.ItemCreate{}, pkgErrors.ErrBadRequest
	}
	return model.DecodeItemCreate(body)
}

// processListReq binds the list query parameters.
func (h *handler) processListReq(c *gin.Context) (listReq, error) {
	var req listReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, pkgErrors.ErrBadRequest.WithDetails(err.Error())
	}
	return req, nil
}

// processIDParam parses the :id path parameter.
func (h *handler) processIDParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, item.ErrInvalidID
	}
	return id, nil
}

// processUpdateReq reads the path id and the partial update body.
func (h *handler) processUpdateReq(c *gin.Context) (updateReq, error) {
	id, err := h.processIDParam(c)
	if err != nil {
		return updateReq{}, err
	}
	body, err := c.GetRawData()
	if err != nil {
		return updateReq{}, pkgErrors.ErrBadRequest
	}
	patch, err := model.DecodeItemPatch(body)
	if err != nil {
		return updateReq{}, err
	}
	return updateReq{ID: id, Patch: patch}, nil
}
