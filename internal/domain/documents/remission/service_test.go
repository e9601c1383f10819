package remission

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
	"puntoventa/internal/domain/catalogs/customer"
	"puntoventa/internal/domain/catalogs/product"
	"puntoventa/internal/domain/ledger"
	"puntoventa/internal/domain/maintenance"
	"puntoventa/internal/domain/totals"
)

// env is the in-memory backing state shared by all fakes of one test.
type env struct {
	products   map[id.ID]*product.Product
	customers  map[id.ID]*customer.Customer
	remissions map[id.ID]*Remission
	items      map[id.ID][]Item
	movements  []*ledger.Movement
	reminders  []*maintenance.Reminder
}

func newEnv() *env {
	return &env{
		products:   make(map[id.ID]*product.Product),
		customers:  make(map[id.ID]*customer.Customer),
		remissions: make(map[id.ID]*Remission),
		items:      make(map[id.ID][]Item),
	}
}

func (e *env) snapshot() *env {
	cp := newEnv()
	for k, v := range e.products {
		p := *v
		cp.products[k] = &p
	}
	for k, v := range e.customers {
		c := *v
		cp.customers[k] = &c
	}
	for k, v := range e.remissions {
		r := *v
		cp.remissions[k] = &r
	}
	for k, v := range e.items {
		cp.items[k] = append([]Item(nil), v...)
	}
	cp.movements = append([]*ledger.Movement(nil), e.movements...)
	cp.reminders = append([]*maintenance.Reminder(nil), e.reminders...)
	return cp
}

func (e *env) restore(from *env) {
	e.products = from.products
	e.customers = from.customers
	e.remissions = from.remissions
	e.items = from.items
	e.movements = from.movements
	e.reminders = from.reminders
}

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

type fakeCustomerRepo struct{ env *env }

func (f *fakeCustomerRepo) Create(_ context.Context, c *customer.Customer) error {
	f.env.customers[c.ID] = c
	return nil
}

func (f *fakeCustomerRepo) Update(_ context.Context, c *customer.Customer) error {
	f.env.customers[c.ID] = c
	return nil
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, customerID id.ID) (*customer.Customer, error) {
	c, ok := f.env.customers[customerID]
	if !ok {
		return nil, apperror.NewNotFound("customer", customerID)
	}
	return c, nil
}

func (f *fakeCustomerRepo) FindByDocument(_ context.Context, documentNumber string) (*customer.Customer, error) {
	for _, c := range f.env.customers {
		if c.DocumentNumber == documentNumber {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCustomerRepo) FindByPhone(_ context.Context, phone string) (*customer.Customer, error) {
	for _, c := range f.env.customers {
		if c.Phone == phone {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCustomerRepo) FindByName(_ context.Context, name string) (*customer.Customer, error) {
	for _, c := range f.env.customers {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCustomerRepo) List(_ context.Context, limit int) ([]*customer.Customer, error) {
	var out []*customer.Customer
	for _, c := range f.env.customers {
		out = append(out, c)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakeReminderRepo struct{ env *env }

func (f *fakeReminderRepo) Create(_ context.Context, r *maintenance.Reminder) error {
	f.env.reminders = append(f.env.reminders, r)
	return nil
}

func (f *fakeReminderRepo) ListDue(_ context.Context, until time.Time) ([]*maintenance.Reminder, error) {
	var out []*maintenance.Reminder
	for _, r := range f.env.reminders {
		if !r.DueDate.After(until) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReminderRepo) Delete(_ context.Context, reminderID id.ID) error {
	for i, r := range f.env.reminders {
		if r.ID == reminderID {
			f.env.reminders = append(f.env.reminders[:i], f.env.reminders[i+1:]...)
			return nil
		}
	}
	return apperror.NewNotFound("reminder", reminderID)
}

type fakeRemissionRepo struct{ env *env }

func (f *fakeRemissionRepo) Create(_ context.Context, r *Remission) error {
	for _, existing := range f.env.remissions {
		if existing.Number == r.Number {
			return apperror.NewDuplicate("remission", "number", r.Number)
		}
	}
	f.env.remissions[r.ID] = r
	return nil
}

func (f *fakeRemissionRepo) SaveItems(_ context.Context, remissionID id.ID, items []Item) error {
	f.env.items[remissionID] = append(f.env.items[remissionID], items...)
	return nil
}

func (f *fakeRemissionRepo) GetByID(_ context.Context, remissionID id.ID) (*Remission, error) {
	r, ok := f.env.remissions[remissionID]
	if !ok {
		return nil, apperror.NewNotFound("remission", remissionID)
	}
	return r, nil
}

func (f *fakeRemissionRepo) GetItems(_ context.Context, remissionID id.ID) ([]Item, error) {
	return f.env.items[remissionID], nil
}

func (f *fakeRemissionRepo) List(_ context.Context, limit int) ([]*Remission, error) {
	var out []*Remission
	for _, r := range f.env.remissions {
		out = append(out, r)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeRemissionRepo) UpdateTotals(_ context.Context, remissionID id.ID, t totals.DocumentTotals) error {
	r, ok := f.env.remissions[remissionID]
	if !ok {
		return apperror.NewNotFound("remission", remissionID)
	}
	r.ApplyTotals(t)
	return nil
}

func (f *fakeRemissionRepo) ItemsByProduct(_ context.Context, productID id.ID) ([]Item, error) {
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

func (f *fakeRemissionRepo) DeleteItemsByProduct(_ context.Context, productID id.ID) (int64, error) {
	var removed int64
	for rid, items := range f.env.items {
		var kept []Item
		for _, it := range items {
			if it.ProductID == productID {
				removed++
				continue
			}
			kept = append(kept, it)
		}
		f.env.items[rid] = kept
	}
	return removed, nil
}

func newTestService(e *env) *Service {
	products := &fakeProductStore{env: e}
	movements := &fakeMovementRepo{env: e}
	return NewService(
		&fakeRemissionRepo{env: e},
		products,
		customer.NewService(&fakeCustomerRepo{env: e}),
		ledger.NewService(movements, products),
		maintenance.NewService(&fakeReminderRepo{env: e}),
		sequence.NewMockGenerator(),
		&fakeTx{env: e},
	)
}

func TestCreate_DeliversOutOfStock(t *testing.T) {
	e := newEnv()
	prod := product.New("Aceite 20W50", "ACE-001")
	prod.CurrentStock = 8
	e.products[prod.ID] = prod

	svc := newTestService(e)

	doc, err := svc.Create(context.Background(), CreateInput{
		Customer: customer.Input{Name: "Juan Perez"},
		Items: []LineInput{
			{ProductID: prod.ID, Quantity: 2, UnitPrice: types.MustMoney("50000")},
		},
		PaymentMethod: "TRANSFERENCIA",
	})
	require.NoError(t, err)

	wantNumber := fmt.Sprintf("REM-%s-001", time.Now().UTC().Format("20060102"))
	assert.Equal(t, wantNumber, doc.Number)
	assert.Equal(t, "TRANSFERENCIA", doc.PaymentMethod)

	// Sale tax rule: no VAT on outgoing documents.
	assert.Equal(t, "100000", doc.Total.String())
	assert.True(t, doc.VATTotal.IsZero())

	assert.Equal(t, int64(6), e.products[prod.ID].CurrentStock)
	require.Len(t, e.movements, 1)
	assert.Equal(t, ledger.MovementRemission, e.movements[0].Type)
	assert.Equal(t, int64(-2), e.movements[0].QuantityChange)
	assert.Equal(t, "Remisión "+doc.Number, e.movements[0].Note)
}

func TestCreate_InsufficientStockRollsBack(t *testing.T) {
	e := newEnv()
	prod := product.New("Filtro", "FIL-001")
	prod.CurrentStock = 1
	e.products[prod.ID] = prod

	svc := newTestService(e)

	_, err := svc.Create(context.Background(), CreateInput{
		Customer: customer.Input{Name: "Juan Perez"},
		Items: []LineInput{
			{ProductID: prod.ID, Quantity: 2, UnitPrice: types.MustMoney("100")},
		},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	assert.Equal(t, int64(1), e.products[prod.ID].CurrentStock)
	assert.Empty(t, e.remissions)
	assert.Empty(t, e.movements)
}

func TestCreate_SchedulesMaintenanceReminder(t *testing.T) {
	e := newEnv()
	prod := product.New("Aceite", "ACE-002")
	prod.CurrentStock = 5
	e.products[prod.ID] = prod

	svc := newTestService(e)

	doc, err := svc.Create(context.Background(), CreateInput{
		Customer: customer.Input{Name: "Maria Lopez"},
		Items: []LineInput{
			{ProductID: prod.ID, Quantity: 1, UnitPrice: types.MustMoney("60000")},
		},
		MaintenanceDays: 30,
	})
	require.NoError(t, err)

	require.Len(t, e.reminders, 1)
	rem := e.reminders[0]
	assert.Equal(t, "Recordatorio por remisión "+doc.Number, rem.Notes)
	assert.Equal(t, "remission", rem.ReferenceType)
	assert.WithinDuration(t, time.Now().UTC().AddDate(0, 0, 30), rem.DueDate, time.Minute)
}

func TestFormatNumber(t *testing.T) {
	at := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "REM-20250115-001", FormatNumber(at, 1))
	assert.Equal(t, "REM-20250115-042", FormatNumber(at, 42))
}

// staleProductLookup returns product snapshots whose stock predates a
// concurrent sale, so the orchestrator's read is out of date.
type staleProductLookup struct {
	env        *env
	staleStock int64
}

func (f *staleProductLookup) GetByID(_ context.Context, productID id.ID) (*product.Product, error) {
	p, ok := f.env.products[productID]
	if !ok {
		return nil, apperror.NewNotFound("product", productID)
	}
	snap := *p
	snap.CurrentStock = f.staleStock
	return &snap, nil
}

func TestCreate_ConcurrentSaleCannotOversell(t *testing.T) {
	e := newEnv()
	prod := product.New("Llanta 90/90", "LLA-001")
	prod.CurrentStock = 1
	e.products[prod.ID] = prod

	// The lookup still sees 5 units, as if read before another sale
	// committed. The locked row holds the real balance of 1.
	products := &fakeProductStore{env: e}
	svc := NewService(
		&fakeRemissionRepo{env: e},
		&staleProductLookup{env: e, staleStock: 5},
		customer.NewService(&fakeCustomerRepo{env: e}),
		ledger.NewService(&fakeMovementRepo{env: e}, products),
		maintenance.NewService(&fakeReminderRepo{env: e}),
		sequence.NewMockGenerator(),
		&fakeTx{env: e},
	)

	_, err := svc.Create(context.Background(), CreateInput{
		Customer: customer.Input{Name: "Juan Perez"},
		Items: []LineInput{
			{ProductID: prod.ID, Quantity: 2, UnitPrice: types.MustMoney("50000")},
		},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	assert.Equal(t, int64(1), e.products[prod.ID].CurrentStock)
	assert.Empty(t, e.movements)
	assert.Empty(t, e.remissions)
}
