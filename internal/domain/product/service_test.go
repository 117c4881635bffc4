package product_test

import (
	"context"
	"testing"

	"github.com/Azell-Tech/azell-web/internal/domain/product"
	"github.com/Azell-Tech/azell-web/internal/domain/shared"
	appErrors "github.com/Azell-Tech/azell-web/internal/errors"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memProductRepo struct {
	items []*product.Product
}

func (m *memProductRepo) Create(ctx context.Context, p *product.Product) error {
	m.items = append(m.items, p)
	return nil
}

func (m *memProductRepo) Update(ctx context.Context, p *product.Product) error { return nil }

func (m *memProductRepo) GetByID(ctx context.Context, tenantID, id ulid.ULID) (*product.Product, error) {
	for _, p := range m.items {
		if p.Id == id && p.TenantId == tenantID {
			return p, nil
		}
	}
	return nil, appErrors.ErrProductNotFound
}

func (m *memProductRepo) GetByCode(ctx context.Context, tenantID ulid.ULID, code string) (*product.Product, error) {
	for _, p := range m.items {
		if p.Code == code && p.TenantId == tenantID {
			return p, nil
		}
	}
	return nil, appErrors.ErrProductNotFound
}

func (m *memProductRepo) List(ctx context.Context, tenantID ulid.ULID, activeOnly bool) ([]*product.Product, error) {
	var out []*product.Product
	for _, p := range m.items {
		if p.TenantId != tenantID || (activeOnly && !p.Active) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *memProductRepo) LatestActive(ctx context.Context, tenantID ulid.ULID) (*product.Product, error) {
	for i := len(m.items) - 1; i >= 0; i-- {
		if m.items[i].TenantId == tenantID && m.items[i].Active {
			return m.items[i], nil
		}
	}
	return nil, appErrors.ErrProductNotFound
}

type fakeHoldings struct {
	ids []ulid.ULID
}

func (f fakeHoldings) ProductIDsByUser(ctx context.Context, tenantID, userID ulid.ULID) ([]ulid.ULID, error) {
	return f.ids, nil
}

func admin(tenantID ulid.ULID) shared.Session {
	return shared.Session{UserID: ulid.Make(), TenantID: tenantID, Role: shared.RoleAdmin, Approved: true}
}

func TestCreateProduct(t *testing.T) {
	t.Parallel()

	repo := &memProductRepo{}
	svc := product.NewService(repo, nil, 12, "MXN")
	ctx := context.Background()
	session := admin(ulid.Make())

	p, err := svc.Create(ctx, session, product.CreateInput{Code: "inv 12m", Name: " Inversión 12 meses ", AnnualRateBps: 1200})
	require.NoError(t, err)
	assert.Equal(t, "INV_12M", p.Code)
	assert.Equal(t, "Inversión 12 meses", p.Name)
	assert.Equal(t, 12, p.TermMonths)
	assert.Equal(t, "MXN", p.Currency)
	assert.True(t, p.Active)
	assert.InDelta(t, 0.12, p.AnnualRate(), 1e-9)

	_, err = svc.Create(ctx, session, product.CreateInput{Code: "INV_12M", Name: "Otro", AnnualRateBps: 900})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrProductCodeExists))
}

func TestCreateProductValidation(t *testing.T) {
	t.Parallel()

	negative := -5.0
	badBonus := 200000

	tests := []struct {
		name    string
		session func(ulid.ULID) shared.Session
		in      product.CreateInput
		want    string
	}{
		{name: "not admin", session: func(id ulid.ULID) shared.Session {
			return shared.Session{UserID: ulid.Make(), TenantID: id, Role: shared.RoleUser}
		}, in: product.CreateInput{Code: "A", Name: "A", AnnualRateBps: 100}, want: appErrors.ErrForbidden.Code},
		{name: "missing code", session: admin, in: product.CreateInput{Name: "A", AnnualRateBps: 100}, want: "VALIDATION_ERROR"},
		{name: "missing name", session: admin, in: product.CreateInput{Code: "A", AnnualRateBps: 100}, want: "VALIDATION_ERROR"},
		{name: "zero rate", session: admin, in: product.CreateInput{Code: "A", Name: "A"}, want: "VALIDATION_ERROR"},
		{name: "bonus too high", session: admin, in: product.CreateInput{Code: "A", Name: "A", AnnualRateBps: 100, NoWithdrawBonusBps: &badBonus}, want: "VALIDATION_ERROR"},
		{name: "negative minimum", session: admin, in: product.CreateInput{Code: "A", Name: "A", AnnualRateBps: 100, MinContribution: &negative}, want: "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := product.NewService(&memProductRepo{}, nil, 12, "MXN")
			_, err := svc.Create(context.Background(), tt.session(ulid.Make()), tt.in)
			appErr, ok := appErrors.AsAppError(err)
			require.True(t, ok, "expected AppError, got %v", err)
			assert.Equal(t, tt.want, appErr.Code)
		})
	}
}

func TestUpdateProduct(t *testing.T) {
	t.Parallel()

	repo := &memProductRepo{}
	svc := product.NewService(repo, nil, 12, "MXN")
	ctx := context.Background()
	session := admin(ulid.Make())

	p, err := svc.Create(ctx, session, product.CreateInput{Code: "INV", Name: "Inv", AnnualRateBps: 1000})
	require.NoError(t, err)

	inactive := false
	rate := 1500
	updated, err := svc.Update(ctx, session, p.Id, product.UpdateInput{Active: &inactive, AnnualRateBps: &rate})
	require.NoError(t, err)
	assert.False(t, updated.Active)
	assert.Equal(t, 1500, updated.AnnualRateBps)

	_, err = svc.Update(ctx, session, ulid.Make(), product.UpdateInput{})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrProductNotFound))
}

func TestAvailableExcludesHeldAndInactive(t *testing.T) {
	t.Parallel()

	tenantID := ulid.Make()
	held := &product.Product{Id: ulid.Make(), TenantId: tenantID, Code: "A", Name: "A", TermMonths: 12, AnnualRateBps: 1000, Active: true}
	free := &product.Product{Id: ulid.Make(), TenantId: tenantID, Code: "B", Name: "B", TermMonths: 12, AnnualRateBps: 1200, Active: true}
	off := &product.Product{Id: ulid.Make(), TenantId: tenantID, Code: "C", Name: "C", TermMonths: 12, AnnualRateBps: 800, Active: false}

	repo := &memProductRepo{items: []*product.Product{held, free, off}}
	svc := product.NewService(repo, fakeHoldings{ids: []ulid.ULID{held.Id}}, 12, "MXN")

	session := shared.Session{UserID: ulid.Make(), TenantID: tenantID, Role: shared.RoleUser, Approved: true}
	items, err := svc.Available(context.Background(), session)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, free.Id.String(), items[0].ID)
	assert.Equal(t, product.StatusAvailable, items[0].Status)
	assert.Equal(t, "12 meses", items[0].Term)
	assert.Equal(t, float64(1), items[0].MinContribution)

	options, err := svc.Options(context.Background(), session)
	require.NoError(t, err)
	assert.Len(t, options, 2)
}
