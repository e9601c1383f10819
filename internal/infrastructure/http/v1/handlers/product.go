package handlers

import (
	"github.com/gin-gonic/gin"

	"puntoventa/internal/core/apperror"
	"puntoventa/internal/core/id"
	"puntoventa/internal/domain/catalogs/product"
	"puntoventa/internal/domain/documents"
	"puntoventa/internal/domain/ledger"
	"puntoventa/internal/domain/reports"
	"puntoventa/internal/infrastructure/http/v1/dto"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	*BaseHandler
	products *product.Service
	reports  *reports.Service
	ledger   *ledger.Service
	deletion *documents.DeletionService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(
	base *BaseHandler,
	products *product.Service,
	reportsSvc *reports.Service,
	ledgerSvc *ledger.Service,
	deletion *documents.DeletionService,
) *ProductHandler {
	return &ProductHandler{
		BaseHandler: base,
		products:    products,
		reports:     reportsSvc,
		ledger:      ledgerSvc,
		deletion:    deletion,
	}
}

// Create handles POST /products.
func (h *ProductHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p := req.ToEntity()
	if err := h.products.Create(ctx, p, req.InitialStock); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromProduct(p))
}

// List handles GET /products - full catalog with sales facts.
func (h *ProductHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	items, err := h.products.List(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	stats, err := h.reports.ProductStats(ctx, productIDs(items))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewListResponse(dto.FromProducts(items, stats)))
}

// Search handles GET /products/search?q=...
func (h *ProductHandler) Search(c *gin.Context) {
	ctx := c.Request.Context()

	q := c.Query("q")
	limit := h.ParseIntQuery(c, "limit", 20)

	items, err := h.products.Search(ctx, q, limit)
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

// Get handles GET /products/:id - single product with sales facts.
func (h *ProductHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	p, err := h.products.GetByID(ctx, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	stats, err := h.reports.ProductStats(ctx, []id.ID{productID})
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromProductDetail(p, stats[productID]))
}

// Movements handles GET /products/:id/movements - the stock ledger.
func (h *ProductHandler) Movements(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	movements, err := h.ledger.History(ctx, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewListResponse(dto.FromMovements(movements)))
}

// Delete handles DELETE /products/:id - cascade removal of the product
// and every document line and movement referencing it.
func (h *ProductHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	result, err := h.deletion.DeleteProduct(ctx, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.DeleteProductResponse{
		OK:             true,
		PurchaseItems:  result.PurchaseItems,
		InvoiceItems:   result.InvoiceItems,
		RemissionItems: result.RemissionItems,
		StockMovements: result.StockMovements,
	})
}

func productIDs(items []*product.Product) []id.ID {
	ids := make([]id.ID, 0, len(items))
	for _, p := range items {
		ids = append(ids, p.ID)
	}
	return ids
}
