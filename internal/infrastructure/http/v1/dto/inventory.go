package dto

// AdjustStockRequest represents a manual stock correction.
type AdjustStockRequest struct {
	ProductID string `json:"productId" binding:"required,uuid"`

	// Delta is the signed stock change; zero is rejected by the service.
	Delta  int64  `json:"delta" binding:"required"`
	Reason string `json:"reason,omitempty"`
}

// AdjustStockResponse acknowledges a stock correction.
type AdjustStockResponse struct {
	OK       bool  `json:"ok"`
	NewStock int64 `json:"newStock"`
}

// DeleteProductResponse reports what a cascade deletion removed.
type DeleteProductResponse struct {
	OK             bool  `json:"ok"`
	PurchaseItems  int64 `json:"purchaseItems"`
	InvoiceItems   int64 `json:"invoiceItems"`
	RemissionItems int64 `json:"remissionItems"`
	StockMovements int64 `json:"stockMovements"`
}
