package dto

import (
	"time"

	"puntoventa/internal/core/id"
	"puntoventa/internal/core/types"
	"puntoventa/internal/domain/catalogs/product"
	"puntoventa/internal/domain/ledger"
	"puntoventa/internal/domain/reports"
)

// --- Request DTOs ---

// CreateProductRequest represents a request to create a product.
type CreateProductRequest struct {
	Name              string   `json:"name" binding:"required"`
	SKU               string   `json:"sku" binding:"required"`
	Price             float64  `json:"price" binding:"gte=0"`
	VATRate           *float64 `json:"vatRate,omitempty" binding:"omitempty,gte=0,lte=1"`
	LowStockThreshold *int64   `json:"lowStockThreshold,omitempty" binding:"omitempty,gte=0"`
	InitialStock      int64    `json:"initialStock,omitempty" binding:"gte=0"`
}

// ToEntity converts request to domain entity.
func (r *CreateProductRequest) ToEntity() *product.Product {
	p := product.New(r.Name, r.SKU)
	p.Price = types.Quantize(types.NewMoney(r.Price))
	if r.VATRate != nil {
		p.VATRate = types.NewMoney(*r.VATRate)
	}
	if r.LowStockThreshold != nil {
		p.LowStockThreshold = *r.LowStockThreshold
	}
	return p
}

// --- Response DTOs ---

// ProductResponse represents a product in API responses.
type ProductResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	SKU               string    `json:"sku"`
	Price             float64   `json:"price"`
	PriceWithVAT      float64   `json:"priceWithVat"`
	VATRate           float64   `json:"vatRate"`
	VATAmount         float64   `json:"vatAmount"`
	LowStockThreshold int64     `json:"lowStockThreshold"`
	CurrentStock      int64     `json:"currentStock"`
	CreatedAt         time.Time `json:"createdAt"`
}

// ProductDetailResponse adds sales facts to the base product view.
type ProductDetailResponse struct {
	ProductResponse
	SupplierName string `json:"supplierName"`
	TotalSold    int64  `json:"totalSold"`
}

// noSupplier is the display value for never-purchased products.
const noSupplier = "Sin proveedor"

// FromProduct converts entity to response DTO.
func FromProduct(p *product.Product) ProductResponse {
	return ProductResponse{
		ID:                p.ID.String(),
		Name:              p.Name,
		SKU:               p.SKU,
		Price:             p.Price.InexactFloat64(),
		PriceWithVAT:      p.PriceWithVAT().InexactFloat64(),
		VATRate:           p.VATRate.InexactFloat64(),
		VATAmount:         p.VATAmount().InexactFloat64(),
		LowStockThreshold: p.LowStockThreshold,
		CurrentStock:      p.CurrentStock,
		CreatedAt:         p.CreatedAt,
	}
}

// FromProductDetail combines a product with its sales stats.
func FromProductDetail(p *product.Product, stats reports.ProductStats) ProductDetailResponse {
	supplierName := stats.LastSupplierName
	if supplierName == "" {
		supplierName = noSupplier
	}
	return ProductDetailResponse{
		ProductResponse: FromProduct(p),
		SupplierName:    supplierName,
		TotalSold:       stats.TotalSold,
	}
}

// FromProducts converts a product slice with per-product stats.
func FromProducts(items []*product.Product, stats map[id.ID]reports.ProductStats) []ProductDetailResponse {
	out := make([]ProductDetailResponse, 0, len(items))
	for _, p := range items {
		out = append(out, FromProductDetail(p, stats[p.ID]))
	}
	return out
}

// MovementResponse represents one stock ledger entry.
type MovementResponse struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"productId"`
	MovementType   string    `json:"movementType"`
	QuantityChange int64     `json:"quantityChange"`
	Note           string    `json:"note,omitempty"`
	ReferenceType  string    `json:"referenceType,omitempty"`
	ReferenceID    string    `json:"referenceId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// FromMovements converts ledger entries to response DTOs.
func FromMovements(items []*ledger.Movement) []MovementResponse {
	out := make([]MovementResponse, 0, len(items))
	for _, m := range items {
		resp := MovementResponse{
			ID:             m.ID.String(),
			ProductID:      m.ProductID.String(),
			MovementType:   string(m.Type),
			QuantityChange: m.QuantityChange,
			Note:           m.Note,
			ReferenceType:  m.Reference.Type,
			CreatedAt:      m.CreatedAt,
		}
		if m.Reference.ID != nil {
			resp.ReferenceID = m.Reference.ID.String()
		}
		out = append(out, resp)
	}
	return out
}
