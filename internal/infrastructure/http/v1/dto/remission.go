package dto

import (
	"time"

	"puntoventa/internal/core/id"
	"puntoventa/internal/core/types"
	"puntoventa/internal/domain/documents/remission"
)

// CreateRemissionRequest represents a request to issue a remission.
type CreateRemissionRequest struct {
	Customer        CustomerInput     `json:"customer" binding:"required"`
	Items           []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
	PaymentMethod   string            `json:"paymentMethod,omitempty"`
	Notes           string            `json:"notes,omitempty"`
	MaintenanceDays int               `json:"maintenanceDays,omitempty" binding:"gte=0"`
}

// ToCreateInput converts the request to the service input.
func (r *CreateRemissionRequest) ToCreateInput() remission.CreateInput {
	in := remission.CreateInput{
		Customer:        r.Customer.ToInput(),
		PaymentMethod:   r.PaymentMethod,
		Notes:           r.Notes,
		MaintenanceDays: r.MaintenanceDays,
		Items:           make([]remission.LineInput, 0, len(r.Items)),
	}
	for _, item := range r.Items {
		productID, _ := id.Parse(item.ProductID)
		in.Items = append(in.Items, remission.LineInput{
			ProductID: productID,
			Quantity:  item.Quantity,
			UnitPrice: types.NewMoney(item.UnitPrice),
		})
	}
	return in
}

// RemissionResponse represents a remission with its lines.
type RemissionResponse struct {
	ID              string             `json:"id"`
	Number          string             `json:"number"`
	CustomerID      string             `json:"customerId"`
	CustomerName    string             `json:"customerName,omitempty"`
	Date            time.Time          `json:"date"`
	SubtotalExclVAT float64            `json:"subtotalExclVat"`
	VATTotal        float64            `json:"vatTotal"`
	Total           float64            `json:"total"`
	PaymentMethod   string             `json:"paymentMethod"`
	Notes           string             `json:"notes,omitempty"`
	Items           []SaleItemResponse `json:"items,omitempty"`
}

// FromRemission converts entity to response DTO.
func FromRemission(rem *remission.Remission) RemissionResponse {
	resp := RemissionResponse{
		ID:              rem.ID.String(),
		Number:          rem.Number,
		CustomerID:      rem.CustomerID.String(),
		CustomerName:    rem.CustomerName,
		Date:            rem.Date,
		SubtotalExclVAT: rem.SubtotalExclVAT.InexactFloat64(),
		VATTotal:        rem.VATTotal.InexactFloat64(),
		Total:           rem.Total.InexactFloat64(),
		PaymentMethod:   rem.PaymentMethod,
		Notes:           rem.Notes,
	}
	for _, item := range rem.Items {
		resp.Items = append(resp.Items, SaleItemResponse{
			ID:           item.ID.String(),
			ProductID:    item.ProductID.String(),
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice.InexactFloat64(),
			VATRate:      item.VATRate.InexactFloat64(),
			TotalExclVAT: item.TotalExclVAT.InexactFloat64(),
			VATAmount:    item.VATAmount.InexactFloat64(),
			TotalInclVAT: item.TotalInclVAT.InexactFloat64(),
		})
	}
	return resp
}

// FromRemissions converts a remission slice to response DTOs.
func FromRemissions(items []*remission.Remission) []RemissionResponse {
	out := make([]RemissionResponse, 0, len(items))
	for _, rem := range items {
		out = append(out, FromRemission(rem))
	}
	return out
}
