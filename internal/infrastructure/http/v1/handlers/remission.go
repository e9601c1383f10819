package handlers

import (
	"github.com/gin-gonic/gin"

	"puntoventa/internal/core/apperror"
	"puntoventa/internal/core/id"
	"puntoventa/internal/domain/documents/remission"
	"puntoventa/internal/infrastructure/http/v1/dto"
)

// RemissionHandler handles HTTP requests for remission documents.
type RemissionHandler struct {
	*BaseHandler
	service *remission.Service
}

// NewRemissionHandler creates a new remission handler.
func NewRemissionHandler(base *BaseHandler, service *remission.Service) *RemissionHandler {
	return &RemissionHandler{BaseHandler: base, service: service}
}

// Create handles POST /remissions - issue a remission and move stock out.
func (h *RemissionHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateRemissionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.Create(ctx, req.ToCreateInput())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromRemission(doc))
}

// List handles GET /remissions/history.
func (h *RemissionHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	limit := h.ParseIntQuery(c, "limit", 50)
	items, err := h.service.List(ctx, limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewListResponse(dto.FromRemissions(items)))
}

// Get handles GET /remissions/:id - header with items.
func (h *RemissionHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	remissionID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	doc, err := h.service.GetByID(ctx, remissionID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromRemission(doc))
}
