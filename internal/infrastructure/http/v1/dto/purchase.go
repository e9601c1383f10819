package dto

import (
	"time"

	"puntoventa/internal/core/id"
	"puntoventa/internal/core/types"
	"puntoventa/internal/domain/catalogs/supplier"
	"puntoventa/internal/domain/documents/purchase"
)

// --- Request DTOs ---

// SupplierInput carries the supplier block of a purchase request.
// Sending an ID selects an existing supplier; otherwise one is
// resolved by name or created.
type SupplierInput struct {
	ID      string `json:"id,omitempty" binding:"omitempty,uuid"`
	Name    string `json:"name" binding:"required_without=ID"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

// ToInput converts the DTO to the domain resolution input.
func (r SupplierInput) ToInput() supplier.Input {
	in := supplier.Input{
		Name:    r.Name,
		Phone:   r.Phone,
		Email:   r.Email,
		Address: r.Address,
	}
	if r.ID != "" {
		if supplierID, err := id.Parse(r.ID); err == nil {
			in.ID = &supplierID
		}
	}
	return in
}

// PurchaseItemRequest is one line in a purchase request.
type PurchaseItemRequest struct {
	ProductID string   `json:"productId" binding:"required,uuid"`
	Quantity  int64    `json:"quantity" binding:"required,gt=0"`
	UnitCost  float64  `json:"unitCost" binding:"gte=0"`
	VATRate   *float64 `json:"vatRate,omitempty" binding:"omitempty,gte=0,lte=1"`
}

// CreatePurchaseRequest represents a request to record a purchase.
type CreatePurchaseRequest struct {
	Supplier SupplierInput         `json:"supplier" binding:"required"`
	Items    []PurchaseItemRequest `json:"items" binding:"required,min=1,dive"`
	Notes    string                `json:"notes,omitempty"`
}

// ToCreateInput converts the request to the service input.
func (r *CreatePurchaseRequest) ToCreateInput() purchase.CreateInput {
	in := purchase.CreateInput{
		Supplier: r.Supplier.ToInput(),
		Notes:    r.Notes,
		Items:    make([]purchase.LineInput, 0, len(r.Items)),
	}
	for _, item := range r.Items {
		productID, _ := id.Parse(item.ProductID)
		line := purchase.LineInput{
			ProductID: productID,
			Quantity:  item.Quantity,
			UnitCost:  types.NewMoney(item.UnitCost),
		}
		if item.VATRate != nil {
			rate := types.NewMoney(*item.VATRate)
			line.VATRate = &rate
		}
		in.Items = append(in.Items, line)
	}
	return in
}

// --- Response DTOs ---

// PurchaseItemResponse is one line of a recorded purchase.
type PurchaseItemResponse struct {
	ID           string  `json:"id"`
	ProductID    string  `json:"productId"`
	Quantity     int64   `json:"quantity"`
	UnitCost     float64 `json:"unitCost"`
	VATRate      float64 `json:"vatRate"`
	TotalExclVAT float64 `json:"totalExclVat"`
	VATAmount    float64 `json:"vatAmount"`
	TotalInclVAT float64 `json:"totalInclVat"`
}

// PurchaseResponse represents a purchase document with its lines.
type PurchaseResponse struct {
	ID              string                 `json:"id"`
	Code            string                 `json:"code"`
	SupplierID      string                 `json:"supplierId"`
	SupplierName    string                 `json:"supplierName,omitempty"`
	Date            time.Time              `json:"date"`
	SubtotalExclVAT float64                `json:"subtotalExclVat"`
	VATTotal        float64                `json:"vatTotal"`
	Total           float64                `json:"total"`
	Notes           string                 `json:"notes,omitempty"`
	Items           []PurchaseItemResponse `json:"items,omitempty"`
}

// FromPurchase converts entity to response DTO.
func FromPurchase(p *purchase.Purchase) PurchaseResponse {
	resp := PurchaseResponse{
		ID:              p.ID.String(),
		Code:            p.Code,
		SupplierID:      p.SupplierID.String(),
		SupplierName:    p.SupplierName,
		Date:            p.Date,
		SubtotalExclVAT: p.SubtotalExclVAT.InexactFloat64(),
		VATTotal:        p.VATTotal.InexactFloat64(),
		Total:           p.Total.InexactFloat64(),
		Notes:           p.Notes,
	}
	for _, item := range p.Items {
		resp.Items = append(resp.Items, PurchaseItemResponse{
			ID:           item.ID.String(),
			ProductID:    item.ProductID.String(),
			Quantity:     item.Quantity,
			UnitCost:     item.UnitCost.InexactFloat64(),
			VATRate:      item.VATRate.InexactFloat64(),
			TotalExclVAT: item.TotalExclVAT.InexactFloat64(),
			VATAmount:    item.VATAmount.InexactFloat64(),
			TotalInclVAT: item.TotalInclVAT.InexactFloat64(),
		})
	}
	return resp
}

// FromPurchases converts a purchase slice to response DTOs.
func FromPurchases(items []*purchase.Purchase) []PurchaseResponse {
	out := make([]PurchaseResponse, 0, len(items))
	for _, p := range items {
		out = append(out, FromPurchase(p))
	}
	return out
}
