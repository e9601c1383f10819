package handlers

import (
	"github.com/gin-gonic/gin"

	"puntoventa/internal/core/id"
	"puntoventa/internal/domain/catalogs/product"
	"puntoventa/internal/infrastructure/http/v1/dto"
)

// InventoryHandler handles manual stock corrections.
type InventoryHandler struct {
	*BaseHandler
	products *product.Service
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(base *BaseHandler, products *product.Service) *InventoryHandler {
	return &InventoryHandler{BaseHandler: base, products: products}
}

// Adjust handles POST /inventory/adjust - signed stock correction
// recorded as an adjustment movement.
func (h *InventoryHandler) Adjust(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.AdjustStockRequest
	if !h.BindJSON(c, &req) {
		return
	}

	// uuid binding already validated the format
	productID, _ := id.Parse(req.ProductID)

	newStock, err := h.products.AdjustInventory(ctx, productID, req.Delta, req.Reason)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.AdjustStockResponse{OK: true, NewStock: newStock})
}
