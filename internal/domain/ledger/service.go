package ledger

import (
	"context"
	"fmt"

	"puntoventa/internal/core/apperror"
	"puntoventa/internal/core/id"
	"puntoventa/pkg/logger"
)

// Service applies stock adjustments. Both the product counter update and
// the movement insert are staged into the caller's transaction; Adjust
// never commits on its own.
type Service struct {
	movements Repository
	products  StockStore
}

// NewService creates a new ledger service.
func NewService(movements Repository, products StockStore) *Service {
	return &Service{
		movements: movements,
		products:  products,
	}
}

// Adjust applies a signed delta to the product's stock and appends one
// movement row with the same delta and metadata. Returns the new stock.
//
// Adjust does not forbid a negative result: adjustment movements may
// correct stock to any value, including into negative territory for
// audit reconciliation. Sales must go through Deduct, which enforces
// the availability floor against the locked value.
func (s *Service) Adjust(ctx context.Context, productID id.ID, delta int64, movementType MovementType, note string, ref Reference) (int64, error) {
	if !movementType.IsValid() {
		return 0, apperror.NewValidation("invalid movement type").
			WithDetail("field", "movementType").
			WithDetail("value", string(movementType))
	}

	stock, err := s.products.StockForUpdate(ctx, productID)
	if err != nil {
		return 0, err
	}

	return s.apply(ctx, productID, delta, stock+delta, movementType, note, ref)
}

// Deduct moves qty units out of stock for a sale document. Availability
// is validated against the row-locked value, not a prior read: under
// concurrent sales the first transaction to lock the row wins and the
// loser sees the already-deducted stock, so a sale can never commit
// negative stock.
func (s *Service) Deduct(ctx context.Context, productID id.ID, productName string, qty int64, movementType MovementType, note string, ref Reference) (int64, error) {
	if !movementType.IsValid() {
		return 0, apperror.NewValidation("invalid movement type").
			WithDetail("field", "movementType").
			WithDetail("value", string(movementType))
	}
	if qty <= 0 {
		return 0, apperror.NewValidation("quantity must be positive").
			WithDetail("field", "quantity")
	}

	stock, err := s.products.StockForUpdate(ctx, productID)
	if err != nil {
		return 0, err
	}
	if stock < qty {
		return 0, apperror.NewInsufficientStock(productID.String(), productName, qty, stock)
	}

	return s.apply(ctx, productID, -qty, stock-qty, movementType, note, ref)
}

// apply writes the already-computed stock value and the movement row.
// Callers hold the row lock from StockForUpdate.
func (s *Service) apply(ctx context.Context, productID id.ID, delta, newStock int64, movementType MovementType, note string, ref Reference) (int64, error) {
	if err := s.products.SetStock(ctx, productID, newStock); err != nil {
		return 0, fmt.Errorf("set stock: %w", err)
	}

	move := NewMovement(productID, movementType, delta, note, ref)
	if err := s.movements.Insert(ctx, move); err != nil {
		return 0, fmt.Errorf("insert movement: %w", err)
	}

	logger.Debug(ctx, "stock adjusted",
		"product_id", productID,
		"delta", delta,
		"movement_type", movementType,
		"new_stock", newStock,
	)

	return newStock, nil
}

// History returns a product's movements, oldest first.
func (s *Service) History(ctx context.Context, productID id.ID) ([]*Movement, error) {
	return s.movements.ListByProduct(ctx, productID)
}
