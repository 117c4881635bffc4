package product

import (
	"context"
	"strings"

	"github.com/Azell-Tech/azell-web/internal/domain/shared"
	appErrors "github.com/Azell-Tech/azell-web/internal/errors"
	"github.com/Azell-Tech/azell-web/internal/logger"
	"github.com/Azell-Tech/azell-web/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type CreateInput struct {
	Code               string
	Name               string
	AnnualRateBps      int
	NoWithdrawBonusBps *int
	MinContribution    *float64
	Active             *bool
}

type UpdateInput struct {
	Name               *string
	AnnualRateBps      *int
	NoWithdrawBonusBps *int
	MinContribution    *float64
	Active             *bool
}

type Service struct {
	Repository Repository
	Holdings   HoldingLister
	TermMonths int
	Currency   string
}

func NewService(repo Repository, holdings HoldingLister, termMonths int, currency string) *Service {
	return &Service{
		Repository: repo,
		Holdings:   holdings,
		TermMonths: termMonths,
		Currency:   currency,
	}
}

func (s *Service) Create(ctx context.Context, session shared.Session, in CreateInput) (*Product, error) {
	if err := session.RequireAdmin(); err != nil {
		return nil, err
	}
	p, err := s.Build(session.TenantID, in)
	if err != nil {
		return nil, err
	}

	if _, err := s.Repository.GetByCode(ctx, session.TenantID, p.Code); err == nil {
		return nil, appErrors.ErrProductCodeExists
	} else if !appErrors.HasCode(err, appErrors.ErrProductNotFound) {
		return nil, err
	}

	if err := s.Repository.Create(ctx, p); err != nil {
		if shared.IsUniqueConstraintError(err) {
			return nil, appErrors.ErrProductCodeExists.WithError(err)
		}
		return nil, err
	}

	logger.Info().
		Str("tenant_id", session.TenantID.String()).
		Str("product_id", p.Id.String()).
		Str("code", p.Code).
		Msg("Producto creado")
	return p, nil
}

// Build valida la entrada y arma el producto sin guardarlo; la usa también la instalación inicial.
func (s *Service) Build(tenantID ulid.ULID, in CreateInput) (*Product, error) {
	code := shared.NormalizeCode(in.Code)
	if code == "" {
		return nil, appErrors.NewValidationError("code", "El código es obligatorio")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, appErrors.NewValidationError("name", "El nombre es obligatorio")
	}
	if err := validateRates(in.AnnualRateBps, in.NoWithdrawBonusBps, in.MinContribution); err != nil {
		return nil, err
	}

	active := true
	if in.Active != nil {
		active = *in.Active
	}

	term := s.TermMonths
	if term < 1 {
		term = 12
	}
	currency := s.Currency
	if currency == "" {
		currency = "MXN"
	}

	now := pkg.Now()
	return &Product{
		Id:                 pkg.NewID(),
		TenantId:           tenantID,
		Code:               code,
		Name:               name,
		TermMonths:         term,
		AnnualRateBps:      in.AnnualRateBps,
		NoWithdrawBonusBps: in.NoWithdrawBonusBps,
		MinContribution:    in.MinContribution,
		Currency:           currency,
		Active:             active,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

func (s *Service) Update(ctx context.Context, session shared.Session, id ulid.ULID, in UpdateInput) (*Product, error) {
	if err := session.RequireAdmin(); err != nil {
		return nil, err
	}

	p, err := s.Repository.GetByID(ctx, session.TenantID, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, appErrors.NewValidationError("name", "El nombre es obligatorio")
		}
		p.Name = name
	}
	if in.AnnualRateBps != nil {
		p.AnnualRateBps = *in.AnnualRateBps
	}
	if in.NoWithdrawBonusBps != nil {
		p.NoWithdrawBonusBps = in.NoWithdrawBonusBps
	}
	if in.MinContribution != nil {
		p.MinContribution = in.MinContribution
	}
	if in.Active != nil {
		p.Active = *in.Active
	}
	if err := validateRates(p.AnnualRateBps, p.NoWithdrawBonusBps, p.MinContribution); err != nil {
		return nil, err
	}

	p.UpdatedAt = pkg.Now()
	if err := s.Repository.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, session shared.Session) ([]*Product, error) {
	if err := session.RequireAdmin(); err != nil {
		return nil, err
	}
	return s.Repository.List(ctx, session.TenantID, false)
}

func (s *Service) GetByID(ctx context.Context, tenantID, id ulid.ULID) (*Product, error) {
	return s.Repository.GetByID(ctx, tenantID, id)
}

// Options lista los productos activos como {id, label}.
func (s *Service) Options(ctx context.Context, session shared.Session) ([]Option, error) {
	products, err := s.Repository.List(ctx, session.TenantID, true)
	if err != nil {
		return nil, err
	}
	out := make([]Option, 0, len(products))
	for _, p := range products {
		out = append(out, Option{ID: p.Id.String(), Label: p.Label()})
	}
	return out, nil
}

// Available devuelve los productos activos que el usuario todavía no contrató.
func (s *Service) Available(ctx context.Context, session shared.Session) ([]CatalogItem, error) {
	products, err := s.Repository.List(ctx, session.TenantID, true)
	if err != nil {
		return nil, err
	}

	held := make(map[ulid.ULID]struct{})
	if s.Holdings != nil {
		ids, err := s.Holdings.ProductIDsByUser(ctx, session.TenantID, session.UserID)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			held[id] = struct{}{}
		}
	}

	out := make([]CatalogItem, 0, len(products))
	for _, p := range products {
		if _, ok := held[p.Id]; ok {
			continue
		}
		out = append(out, ToCatalogItem(p))
	}
	return out, nil
}

func ToCatalogItem(p *Product) CatalogItem {
	return CatalogItem{
		ID:              p.Id.String(),
		Code:            p.Code,
		Name:            p.Name,
		Status:          StatusAvailable,
		Term:            p.TermLabel(),
		Rate:            p.RateLabel(),
		AnnualRate:      p.AnnualRate(),
		NoWithdrawBonus: p.NoWithdrawBonus(),
		MinContribution: p.MinimumContribution(),
		Currency:        p.Currency,
	}
}

func validateRates(annualRateBps int, bonusBps *int, minContribution *float64) error {
	if annualRateBps < 1 || annualRateBps > 100000 {
		return appErrors.NewValidationError("annualRateBps", "La tasa anual debe estar entre 1 y 100000 puntos base")
	}
	if bonusBps != nil && (*bonusBps < 0 || *bonusBps > 100000) {
		return appErrors.NewValidationError("noWithdrawBonusBps", "El bono debe estar entre 0 y 100000 puntos base")
	}
	if minContribution != nil && *minContribution < 0 {
		return appErrors.NewValidationError("minContribution", "La aportación mínima no puede ser negativa")
	}
	return nil
}
