package dto

import (
	"time"

	"puntoventa/internal/core/id"
	"puntoventa/internal/core/types"
	"puntoventa/internal/domain/documents/invoice"
)

// --- Request DTOs ---

// SaleItemRequest is one line in an invoice or remission request.
type SaleItemRequest struct {
	ProductID string  `json:"productId" binding:"required,uuid"`
	Quantity  int64   `json:"quantity" binding:"required,gt=0"`
	UnitPrice float64 `json:"unitPrice" binding:"gte=0"`
}

// CreateInvoiceRequest represents a request to issue an invoice.
type CreateInvoiceRequest struct {
	Customer        CustomerInput     `json:"customer" binding:"required"`
	Items           []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
	PaymentMethod   string            `json:"paymentMethod,omitempty"`
	Notes           string            `json:"notes,omitempty"`
	MaintenanceDays int               `json:"maintenanceDays,omitempty" binding:"gte=0"`
}

// ToCreateInput converts the request to the service input.
func (r *CreateInvoiceRequest) ToCreateInput() invoice.CreateInput {
	in := invoice.CreateInput{
		Customer:        r.Customer.ToInput(),
		PaymentMethod:   r.PaymentMethod,
		Notes:           r.Notes,
		MaintenanceDays: r.MaintenanceDays,
		Items:           make([]invoice.LineInput, 0, len(r.Items)),
	}
	for _, item := range r.Items {
		productID, _ := id.Parse(item.ProductID)
		in.Items = append(in.Items, invoice.LineInput{
			ProductID: productID,
			Quantity:  item.Quantity,
			UnitPrice: types.NewMoney(item.UnitPrice),
		})
	}
	return in
}

// --- Response DTOs ---

// SaleItemResponse is one line of an issued sale document.
type SaleItemResponse struct {
	ID           string  `json:"id"`
	ProductID    string  `json:"productId"`
	Quantity     int64   `json:"quantity"`
	UnitPrice    float64 `json:"unitPrice"`
	VATRate      float64 `json:"vatRate"`
	TotalExclVAT float64 `json:"totalExclVat"`
	VATAmount    float64 `json:"vatAmount"`
	TotalInclVAT float64 `json:"totalInclVat"`
}

// InvoiceResponse represents an invoice with its lines.
type InvoiceResponse struct {
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

// FromInvoice converts entity to response DTO.
func FromInvoice(inv *invoice.Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		ID:              inv.ID.String(),
		Number:          inv.Number,
		CustomerID:      inv.CustomerID.String(),
		CustomerName:    inv.CustomerName,
		Date:            inv.Date,
		SubtotalExclVAT: inv.SubtotalExclVAT.InexactFloat64(),
		VATTotal:        inv.VATTotal.InexactFloat64(),
		Total:           inv.Total.InexactFloat64(),
		PaymentMethod:   inv.PaymentMethod,
		Notes:           inv.Notes,
	}
	for _, item := range inv.Items {
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

// FromInvoices converts an invoice slice to response DTOs.
func FromInvoices(items []*invoice.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, 0, len(items))
	for _, inv := range items {
		out = append(out, FromInvoice(inv))
	}
	return out
}
