package setup

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/Azell-Tech/azell-web/internal/domain/product"
	"github.com/Azell-Tech/azell-web/internal/domain/shared"
	"github.com/Azell-Tech/azell-web/internal/domain/tenant"
	"github.com/Azell-Tech/azell-web/internal/domain/user"
	appErrors "github.com/Azell-Tech/azell-web/internal/errors"
	"github.com/Azell-Tech/azell-web/internal/logger"
	"github.com/Azell-Tech/azell-web/internal/pkg"
)

const (
	DefaultProductCode = "INV_12M"
	DefaultProductName = "Inversión 12 meses"
)

type Input struct {
	SetupKey           string
	TenantCode         string
	TenantName         string
	AdminName          string
	AdminEmail         string
	AdminPassword      string
	ProductCode        string
	ProductName        string
	AnnualRateBps      int
	MinContribution    *float64
	NoWithdrawBonusBps *int
}

type Result struct {
	Tenant  *tenant.Tenant   `json:"tenant"`
	Admin   *user.User       `json:"admin"`
	Product *product.Product `json:"product"`
}

type Service struct {
	Key        string
	Tenants    tenant.Repository
	Users      *user.Service
	Catalog    *product.Service
	Transactor shared.Transactor
}

func NewService(key string, tenants tenant.Repository, users *user.Service, catalog *product.Service, transactor shared.Transactor) *Service {
	return &Service{
		Key:        key,
		Tenants:    tenants,
		Users:      users,
		Catalog:    catalog,
		Transactor: transactor,
	}
}

// Bootstrap crea la organización, su super administrador y el primer producto.
// Requiere la clave de instalación configurada.
func (s *Service) Bootstrap(ctx context.Context, in Input) (*Result, error) {
	if s.Key == "" || subtle.ConstantTimeCompare([]byte(s.Key), []byte(in.SetupKey)) != 1 {
		logger.Warn().Str("tenant", in.TenantCode).Msg("Intento de instalación con clave inválida")
		return nil, appErrors.ErrInvalidSetupKey
	}

	code := shared.NormalizeCode(in.TenantCode)
	if code == "" {
		return nil, appErrors.NewValidationError("tenantCode", "El código de la organización es obligatorio")
	}
	tenantName := strings.TrimSpace(in.TenantName)
	if tenantName == "" {
		return nil, appErrors.NewValidationError("tenantName", "El nombre de la organización es obligatorio")
	}
	if strings.TrimSpace(in.AdminName) == "" {
		return nil, appErrors.NewValidationError("adminName", "El nombre es obligatorio")
	}
	if err := user.ValidatePassword("adminPassword", in.AdminPassword); err != nil {
		return nil, err
	}

	productCode := in.ProductCode
	if strings.TrimSpace(productCode) == "" {
		productCode = DefaultProductCode
	}
	productName := in.ProductName
	if strings.TrimSpace(productName) == "" {
		productName = DefaultProductName
	}

	var result *Result
	err := s.Transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.Tenants.GetByCode(ctx, code); err == nil {
			return appErrors.ErrTenantAlreadyExists
		} else if !appErrors.HasCode(err, appErrors.ErrTenantNotFound) {
			return err
		}

		now := pkg.Now()
		t := &tenant.Tenant{
			Id:        pkg.NewID(),
			Code:      code,
			Name:      tenantName,
			Active:    true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.Tenants.Create(ctx, t); err != nil {
			if shared.IsUniqueConstraintError(err) {
				return appErrors.ErrTenantAlreadyExists.WithError(err)
			}
			return err
		}

		admin := &user.User{
			TenantId:      t.Id,
			Name:          in.AdminName,
			Email:         in.AdminEmail,
			Password:      in.AdminPassword,
			Role:          shared.RoleSuperAdmin,
			Active:        true,
			EmailVerified: true,
			ApprovedAt:    &now,
		}
		if err := s.Users.Create(ctx, admin); err != nil {
			return err
		}

		p, err := s.Catalog.Build(t.Id, product.CreateInput{
			Code:               productCode,
			Name:               productName,
			AnnualRateBps:      in.AnnualRateBps,
			NoWithdrawBonusBps: in.NoWithdrawBonusBps,
			MinContribution:    in.MinContribution,
		})
		if err != nil {
			return err
		}
		if err := s.Catalog.Repository.Create(ctx, p); err != nil {
			return err
		}

		result = &Result{Tenant: t, Admin: admin, Product: p}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("tenant", result.Tenant.Code).
		Str("admin_id", result.Admin.Id.String()).
		Str("product", result.Product.Code).
		Msg("Instalación inicial completada")
	return result, nil
}
