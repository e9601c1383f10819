package handlers

import (
	"github.com/gin-gonic/gin"

	"puntoventa/internal/core/apperror"
	"puntoventa/internal/core/id"
	"puntoventa/internal/domain/catalogs/product"
	"puntoventa/internal/domain/maintenance"
	"puntoventa/internal/infrastructure/http/v1/dto"
)

// AlertsHandler serves the operational alert feeds: products running
// low on stock and maintenance reminders coming due.
type AlertsHandler struct {
	*BaseHandler
	products    *product.Service
	maintenance *maintenance.Service
}

// NewAlertsHandler creates a new alerts handler.
func NewAlertsHandler(base *BaseHandler, products *product.Service, maintenanceSvc *maintenance.Service) *AlertsHandler {
	return &AlertsHandler{
		BaseHandler: base,
		products:    products,
		maintenance: maintenanceSvc,
	}
}

// LowStock handles GET /alerts/low-stock.
func (h *AlertsHandler) LowStock(c *gin.Context) {
	ctx := c.Request.Context()

	items, err := h.products.ListLowStock(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	out := make([]dto.ProductResponse, 0, len(items))
	for _, p := range items {
		out = append(out, dto.FromProduct(p))
	}
	h.OK(c, dto.NewListResponse(out))
}

// Maintenance handles GET /alerts/maintenance?days=N - reminders due
// within the horizon.
func (h *AlertsHandler) Maintenance(c *gin.Context) {
	ctx := c.Request.Context()

	days := h.ParseIntQuery(c, "days", maintenance.DefaultHorizonDays)
	items, err := h.maintenance.ListDue(ctx, days)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewListResponse(dto.FromReminders(items)))
}

// CompleteMaintenance handles POST /alerts/maintenance/:id/complete.
func (h *AlertsHandler) CompleteMaintenance(c *gin.Context) {
	ctx := c.Request.Context()

	reminderID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.maintenance.Complete(ctx, reminderID); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "reminder completed")
}
