package customer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"puntoventa/internal/core/apperror"
	"puntoventa/internal/core/id"
)

type fakeRepo struct {
	customers []*Customer
}

func (f *fakeRepo) Create(_ context.Context, c *Customer) error {
	f.customers = append(f.customers, c)
	return nil
}

func (f *fakeRepo) Update(_ context.Context, c *Customer) error {
	for i, existing := range f.customers {
		if existing.ID == c.ID {
			f.customers[i] = c
			return nil
		}
	}
	return apperror.NewNotFound("customer", c.ID)
}

func (f *fakeRepo) GetByID(_ context.Context, customerID id.ID) (*Customer, error) {
	for _, c := range f.customers {
		if c.ID == customerID {
			return c, nil
		}
	}
	return nil, apperror.NewNotFound("customer", customerID)
}

func (f *fakeRepo) FindByDocument(_ context.Context, doc string) (*Customer, error) {
	for _, c := range f.customers {
		if c.DocumentNumber == doc {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) FindByPhone(_ context.Context, phone string) (*Customer, error) {
	for _, c := range f.customers {
		if c.Phone == phone {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) FindByName(_ context.Context, name string) (*Customer, error) {
	for _, c := range f.customers {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) List(_ context.Context, limit int) ([]*Customer, error) {
	if limit > len(f.customers) {
		limit = len(f.customers)
	}
	return f.customers[:limit], nil
}

func TestEnsure_CreatesWhenNoMatch(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	c, err := svc.Ensure(context.Background(), Input{
		Name:           "Ana Perez",
		DocumentNumber: "900123",
		Phone:          "3001234567",
	})
	require.NoError(t, err)
	assert.Len(t, repo.customers, 1)
	assert.Equal(t, "900123", c.DocumentNumber)
}

func TestEnsure_MatchesByDocumentFirst(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	first, err := svc.Ensure(ctx, Input{Name: "Ana", DocumentNumber: "900123", Phone: "111"})
	require.NoError(t, err)

	// Same document, different phone and name: must merge, not create.
	second, err := svc.Ensure(ctx, Input{Name: "Ana Perez", DocumentNumber: "900123", Phone: "222"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, repo.customers, 1)
	assert.Equal(t, "Ana Perez", second.Name)
	assert.Equal(t, "222", second.Phone)
}

func TestEnsure_FallsBackToPhoneThenName(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	orig, err := svc.Ensure(ctx, Input{Name: "Carlos", Phone: "555"})
	require.NoError(t, err)

	byPhone, err := svc.Ensure(ctx, Input{Name: "Carlos Ruiz", Phone: "555"})
	require.NoError(t, err)
	assert.Equal(t, orig.ID, byPhone.ID)

	byName, err := svc.Ensure(ctx, Input{Name: "Carlos Ruiz"})
	require.NoError(t, err)
	assert.Equal(t, orig.ID, byName.ID)

	assert.Len(t, repo.customers, 1)
}

func TestEnsure_EmptyFieldsDoNotOverwrite(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.Ensure(ctx, Input{Name: "Luisa", DocumentNumber: "42", Phone: "777", Email: "luisa@example.com", Address: "Calle 1"})
	require.NoError(t, err)

	merged, err := svc.Ensure(ctx, Input{Name: "Luisa", DocumentNumber: "42"})
	require.NoError(t, err)

	assert.Equal(t, "777", merged.Phone)
	assert.Equal(t, "luisa@example.com", merged.Email)
	assert.Equal(t, "Calle 1", merged.Address)
}

func TestEnsure_RequiresName(t *testing.T) {
	svc := NewService(&fakeRepo{})

	_, err := svc.Ensure(context.Background(), Input{DocumentNumber: "1"})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}
