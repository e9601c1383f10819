package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"puntoventa/internal/core/apperror"
	"puntoventa/internal/core/id"
)

type fakeStore struct {
	stocks    map[id.ID]int64
	movements []*Movement
}

func newFakeStore() *fakeStore {
	return &fakeStore{stocks: make(map[id.ID]int64)}
}

func (f *fakeStore) StockForUpdate(_ context.Context, productID id.ID) (int64, error) {
	stock, ok := f.stocks[productID]
	if !ok {
		return 0, apperror.NewNotFound("product", productID)
	}
	return stock, nil
}

func (f *fakeStore) SetStock(_ context.Context, productID id.ID, stock int64) error {
	f.stocks[productID] = stock
	return nil
}

func (f *fakeStore) Insert(_ context.Context, m *Movement) error {
	f.movements = append(f.movements, m)
	return nil
}

func (f *fakeStore) ListByProduct(_ context.Context, productID id.ID) ([]*Movement, error) {
	var out []*Movement
	for _, m := range f.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeStore) DeleteByProduct(_ context.Context, productID id.ID) (int64, error) {
	var kept []*Movement
	var removed int64
	for _, m := range f.movements {
		if m.ProductID == productID {
			removed++
			continue
		}
		kept = append(kept, m)
	}
	f.movements = kept
	return removed, nil
}

func TestAdjust_AppendsMovementAndUpdatesStock(t *testing.T) {
	store := newFakeStore()
	productID := id.New()
	store.stocks[productID] = 0

	svc := NewService(store, store)
	ctx := context.Background()

	newStock, err := svc.Adjust(ctx, productID, 10, MovementPurchase, "Compra COMP-1", DocumentRef("purchase", id.New()))
	require.NoError(t, err)
	assert.Equal(t, int64(10), newStock)

	newStock, err = svc.Adjust(ctx, productID, -4, MovementInvoice, "Factura FAC-001", DocumentRef("invoice", id.New()))
	require.NoError(t, err)
	assert.Equal(t, int64(6), newStock)

	// Invariant: current stock equals the sum of movement deltas.
	moves, err := svc.History(ctx, productID)
	require.NoError(t, err)
	var sum int64
	for _, m := range moves {
		sum += m.QuantityChange
	}
	assert.Equal(t, store.stocks[productID], sum)
}

func TestAdjust_UnknownProduct(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, store)

	_, err := svc.Adjust(context.Background(), id.New(), 5, MovementAdjustment, "", Reference{})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
	assert.Empty(t, store.movements, "no movement may be recorded on failure")
}

func TestAdjust_AllowsNegativeResult(t *testing.T) {
	store := newFakeStore()
	productID := id.New()
	store.stocks[productID] = 3

	svc := NewService(store, store)

	// Adjustment movements may correct stock below zero for reconciliation.
	newStock, err := svc.Adjust(context.Background(), productID, -5, MovementAdjustment, "conteo fisico", Reference{})
	require.NoError(t, err)
	assert.Equal(t, int64(-2), newStock)
}

func TestAdjust_RejectsUnknownMovementType(t *testing.T) {
	store := newFakeStore()
	productID := id.New()
	store.stocks[productID] = 1

	svc := NewService(store, store)

	_, err := svc.Adjust(context.Background(), productID, 1, MovementType("transfer"), "", Reference{})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestDeduct_MovesStockOut(t *testing.T) {
	store := newFakeStore()
	productID := id.New()
	store.stocks[productID] = 6

	svc := NewService(store, store)

	newStock, err := svc.Deduct(context.Background(), productID, "Bujia", 4, MovementInvoice, "Factura FAC-001", DocumentRef("invoice", id.New()))
	require.NoError(t, err)
	assert.Equal(t, int64(2), newStock)

	require.Len(t, store.movements, 1)
	assert.Equal(t, int64(-4), store.movements[0].QuantityChange)
}

func TestDeduct_InsufficientAgainstLockedStock(t *testing.T) {
	store := newFakeStore()
	productID := id.New()
	store.stocks[productID] = 2

	svc := NewService(store, store)

	_, err := svc.Deduct(context.Background(), productID, "Bujia", 3, MovementInvoice, "Factura FAC-002", DocumentRef("invoice", id.New()))
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "Bujia", appErr.Details["product"])
	assert.Equal(t, int64(3), appErr.Details["requested"])
	assert.Equal(t, int64(2), appErr.Details["available"])

	assert.Equal(t, int64(2), store.stocks[productID], "stock must be untouched on failure")
	assert.Empty(t, store.movements, "no movement may be recorded on failure")
}

func TestDeduct_RejectsNonPositiveQuantity(t *testing.T) {
	store := newFakeStore()
	productID := id.New()
	store.stocks[productID] = 5

	svc := NewService(store, store)

	_, err := svc.Deduct(context.Background(), productID, "Bujia", 0, MovementRemission, "", Reference{})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}
