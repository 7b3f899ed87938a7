package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	itemHTTP "item-service/internal/item/delivery/http"
	itemUC "item-service/internal/item/usecase"
)

// setupItemDomain wires repository, use case and handler, then registers
// /api/v1/items.
func (srv *HTTPServer) setupItemDomain(ctx context.Context, api *gin.RouterGroup) error {
	// 1. UseCase over the configured repository
	uc := itemUC.New(srv.repo, srv.l, srv.cache)

	// 2. HTTP Handler
	h := itemHTTP.New(srv.l, uc)

	// 3. Routes
	itemHTTP.RegisterRoutes(api, h, srv.mw)

	srv.l.Infof(ctx, "Item domain registered")
	return nil
}
