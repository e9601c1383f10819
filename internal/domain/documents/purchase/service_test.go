package purchase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"puntoventa/internal/core/apperror"
	"puntoventa/internal/core/id"
	"puntoventa/internal/core/sequence"
	"puntoventa/internal/core/types"
	"puntoventa/internal/domain/catalogs/product"
	"puntoventa/internal/domain/catalogs/supplier"
	"puntoventa/internal/domain/ledger"
	"puntoventa/internal/domain/totals"
)

// env is the in-memory backing state shared by all fakes of one test.
type env struct {
	products  map[id.ID]*product.Product
	suppliers map[id.ID]*supplier.Supplier
	purchases map[id.ID]*Purchase
	items     map[id.ID][]Item
	movements []*ledger.Movement
}

func newEnv() *env {
	return &env{
		products:  make(map[id.ID]*product.Product),
		suppliers: make(map[id.ID]*supplier.Supplier),
		purchases: make(map[id.ID]*Purchase),
		items:     make(map[id.ID][]Item),
	}
}

func (e *env) snapshot() *env {
	cp := newEnv()
	for k, v := range e.products {
		p := *v
		cp.products[k] = &p
	}
	for k, v := range e.suppliers {
		s := *v
		cp.suppliers[k] = &s
	}
	for k, v := range e.purchases {
		p := *v
		cp.purchases[k] = &p
	}
	for k, v := range e.items {
		cp.items[k] = append([]Item(nil), v...)
	}
	cp.movements = append([]*ledger.Movement(nil), e.movements...)
	return cp
}

func (e *env) restore(from *env) {
	e.products = from.products
	e.suppliers = from.suppliers
	e.purchases = from.purchases
	e.items = from.items
	e.movements = from.movements
}

// fakeTx mimics transactional semantics: state mutated by fn is thrown
// away when fn fails.
type fakeTx struct{ env *env }

func (t *fakeTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	snap := t.env.snapshot()
	if err := fn(ctx); err != nil {
		t.env.restore(snap)
		return err
	}
	return nil
}

type fakeProductStore struct{ env *env }

func (f *fakeProductStore) GetByID(_ context.Context, productID id.ID) (*product.Product, error) {
	p, ok := f.env.products[productID]
	if !ok {
		return nil, apperror.NewNotFound("product", productID)
	}
	return p, nil
}

func (f *fakeProductStore) StockForUpdate(_ context.Context, productID id.ID) (int64, error) {
	p, ok := f.env.products[productID]
	if !ok {
		return 0, apperror.NewNotFound("product", productID)
	}
	return p.CurrentStock, nil
}

func (f *fakeProductStore) SetStock(_ context.Context, productID id.ID, stock int64) error {
	p, ok := f.env.products[productID]
	if !ok {
		return apperror.NewNotFound("product", productID)
	}
	p.CurrentStock = stock
	return nil
}

type fakeMovementRepo struct{ env *env }

func (f *fakeMovementRepo) Insert(_ context.Context, m *ledger.Movement) error {
	f.env.movements = append(f.env.movements, m)
	return nil
}

func (f *fakeMovementRepo) ListByProduct(_ context.Context, productID id.ID) ([]*ledger.Movement, error) {
	var out []*ledger.Movement
	for _, m := range f.env.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMovementRepo) DeleteByProduct(_ context.Context, productID id.ID) (int64, error) {
	var kept []*ledger.Movement
	var removed int64
	for _, m := range f.env.movements {
		if m.ProductID == productID {
			removed++
			continue
		}
		kept = append(kept, m)
	}
	f.env.movements = kept
	return removed, nil
}

type fakeSupplierRepo struct{ env *env }

func (f *fakeSupplierRepo) Create(_ context.Context, s *supplier.Supplier) error {
	f.env.suppliers[s.ID] = s
	return nil
}

func (f *fakeSupplierRepo) GetByID(_ context.Context, supplierID id.ID) (*supplier.Supplier, error) {
	s, ok := f.env.suppliers[supplierID]
	if !ok {
		return nil, apperror.NewNotFound("supplier", supplierID)
	}
	return s, nil
}

func (f *fakeSupplierRepo) List(_ context.Context) ([]*supplier.Supplier, error) {
	var out []*supplier.Supplier
	for _, s := range f.env.suppliers {
		out = append(out, s)
	}
	return out, nil
}

type fakePurchaseRepo struct{ env *env }

func (f *fakePurchaseRepo) Create(_ context.Context, p *Purchase) error {
	for _, existing := range f.env.purchases {
		if existing.Code == p.Code {
			return apperror.NewDuplicate("purchase", "code", p.Code)
		}
	}
	f.env.purchases[p.ID] = p
	return nil
}

func (f *fakePurchaseRepo) SaveItems(_ context.Context, purchaseID id.ID, items []Item) error {
	f.env.items[purchaseID] = append(f.env.items[purchaseID], items...)
	return nil
}

func (f *fakePurchaseRepo) GetByID(_ context.Context, purchaseID id.ID) (*Purchase, error) {
	p, ok := f.env.purchases[purchaseID]
	if !ok {
		return nil, apperror.NewNotFound("purchase", purchaseID)
	}
	return p, nil
}

func (f *fakePurchaseRepo) GetItems(_ context.Context, purchaseID id.ID) ([]Item, error) {
	return f.env.items[purchaseID], nil
}

func (f *fakePurchaseRepo) List(_ context.Context, limit int) ([]*Purchase, error) {
	var out []*Purchase
	for _, p := range f.env.purchases {
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakePurchaseRepo) UpdateTotals(_ context.Context, purchaseID id.ID, t totals.DocumentTotals) error {
	p, ok := f.env.purchases[purchaseID]
	if !ok {
		return apperror.NewNotFound("purchase", purchaseID)
	}
	p.ApplyTotals(t)
	return nil
}

func (f *fakePurchaseRepo) ItemsByProduct(_ context.Context, productID id.ID) ([]Item, error) {
	var out []Item
	for _, items := range f.env.items {
		for _, it := range items {
			if it.ProductID == productID {
				out = append(out, it)
			}
		}
	}
	return out, nil
}

func (f *fakePurchaseRepo) DeleteItemsByProduct(_ context.Context, productID id.ID) (int64, error) {
	var removed int64
	for pid, items := range f.env.items {
		var kept []Item
		for _, it := range items {
			if it.ProductID == productID {
				removed++
				continue
			}
			kept = append(kept, it)
		}
		f.env.items[pid] = kept
	}
	return removed, nil
}

func newTestService(e *env) *Service {
	products := &fakeProductStore{env: e}
	movements := &fakeMovementRepo{env: e}
	return NewService(
		&fakePurchaseRepo{env: e},
		products,
		supplier.NewService(&fakeSupplierRepo{env: e}),
		ledger.NewService(movements, products),
		sequence.NewMockGenerator(),
		&fakeTx{env: e},
	)
}

func TestCreate_ComputesTotalsAndMovesStock(t *testing.T) {
	e := newEnv()
	prod := product.New("Aceite 20W50", "ACE-001")
	e.products[prod.ID] = prod

	svc := newTestService(e)
	ctx := context.Background()

	rate := types.MustMoney("0.19")
	doc, err := svc.Create(ctx, CreateInput{
		Supplier: supplier.Input{Name: "Distribuidora Norte", Phone: "3001234567"},
		Items: []LineInput{
			{ProductID: prod.ID, Quantity: 3, UnitCost: types.MustMoney("3333.335"), VATRate: &rate},
		},
		Notes: "pedido semanal",
	})
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("COMP-%s-1001", time.Now().UTC().Format("20060102")), doc.Code)
	assert.Equal(t, "10000.01", doc.SubtotalExclVAT.String())
	assert.Equal(t, "1900", doc.VATTotal.String())
	assert.Equal(t, "11900.01", doc.Total.String())

	// Stock moved in, one movement per line.
	assert.Equal(t, int64(3), e.products[prod.ID].CurrentStock)
	require.Len(t, e.movements, 1)
	assert.Equal(t, ledger.MovementPurchase, e.movements[0].Type)
	assert.Equal(t, int64(3), e.movements[0].QuantityChange)
	assert.Equal(t, "Compra "+doc.Code, e.movements[0].Note)
	require.NotNil(t, e.movements[0].Reference.ID)
	assert.Equal(t, doc.ID, *e.movements[0].Reference.ID)

	// Supplier was created from the embedded fields.
	sup, ok := e.suppliers[doc.SupplierID]
	require.True(t, ok)
	assert.Equal(t, "Distribuidora Norte", sup.Name)
	assert.Equal(t, sup.Name, doc.SupplierName)

	// Items persisted with quantized derived fields.
	items := e.items[doc.ID]
	require.Len(t, items, 1)
	assert.Equal(t, "3333.34", items[0].UnitCost.String())
	assert.Equal(t, "10000.01", items[0].TotalExclVAT.String())
}

func TestCreate_DefaultVATRate(t *testing.T) {
	e := newEnv()
	prod := product.New("Filtro", "FIL-001")
	e.products[prod.ID] = prod

	svc := newTestService(e)

	doc, err := svc.Create(context.Background(), CreateInput{
		Supplier: supplier.Input{Name: "Proveedor SA"},
		Items: []LineInput{
			{ProductID: prod.ID, Quantity: 2, UnitCost: types.MustMoney("100")},
		},
	})
	require.NoError(t, err)

	items := e.items[doc.ID]
	require.Len(t, items, 1)
	assert.Equal(t, "0.19", items[0].VATRate.String())
	assert.Equal(t, "38", doc.VATTotal.String())
	assert.Equal(t, "238", doc.Total.String())
}

func TestCreate_RejectsEmptyItems(t *testing.T) {
	e := newEnv()
	svc := newTestService(e)

	_, err := svc.Create(context.Background(), CreateInput{
		Supplier: supplier.Input{Name: "Proveedor SA"},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	assert.Empty(t, e.purchases)
	assert.Empty(t, e.suppliers)
}

func TestCreate_UnknownProductRollsBack(t *testing.T) {
	e := newEnv()
	prod := product.New("Bujia", "BUJ-001")
	prod.CurrentStock = 7
	e.products[prod.ID] = prod

	svc := newTestService(e)

	_, err := svc.Create(context.Background(), CreateInput{
		Supplier: supplier.Input{Name: "Proveedor SA"},
		Items: []LineInput{
			{ProductID: prod.ID, Quantity: 5, UnitCost: types.MustMoney("10")},
			{ProductID: id.New(), Quantity: 1, UnitCost: types.MustMoney("10")},
		},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))

	// Nothing may survive the rollback: no header, no supplier, no
	// movement, and the first line's stock change is undone.
	assert.Empty(t, e.purchases)
	assert.Empty(t, e.suppliers)
	assert.Empty(t, e.movements)
	assert.Equal(t, int64(7), e.products[prod.ID].CurrentStock)
}

func TestCreate_ReusesExistingSupplier(t *testing.T) {
	e := newEnv()
	prod := product.New("Llanta", "LLA-001")
	e.products[prod.ID] = prod
	sup := supplier.New("Importadora Sur")
	e.suppliers[sup.ID] = sup

	svc := newTestService(e)

	doc, err := svc.Create(context.Background(), CreateInput{
		Supplier: supplier.Input{ID: &sup.ID},
		Items: []LineInput{
			{ProductID: prod.ID, Quantity: 1, UnitCost: types.MustMoney("250000")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, sup.ID, doc.SupplierID)
	assert.Len(t, e.suppliers, 1)
}

func TestCreate_SequenceAdvances(t *testing.T) {
	e := newEnv()
	prod := product.New("Grasa", "GRA-001")
	e.products[prod.ID] = prod

	svc := newTestService(e)
	ctx := context.Background()

	in := CreateInput{
		Supplier: supplier.Input{Name: "Proveedor SA"},
		Items:    []LineInput{{ProductID: prod.ID, Quantity: 1, UnitCost: types.MustMoney("10")}},
	}

	first, err := svc.Create(ctx, in)
	require.NoError(t, err)
	second, err := svc.Create(ctx, in)
	require.NoError(t, err)

	assert.NotEqual(t, first.Code, second.Code)
	assert.Contains(t, first.Code, "-1001")
	assert.Contains(t, second.Code, "-1002")
}

func TestFormatCode(t *testing.T) {
	at := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "COMP-20250115-1001", FormatCode(at, 1001))
}
