package investment

import (
	"context"
	"fmt"
	"math"

	"github.com/Azell-Tech/azell-web/internal/domain/product"
	"github.com/Azell-Tech/azell-web/internal/domain/shared"
	"github.com/Azell-Tech/azell-web/internal/domain/transaction"
	appErrors "github.com/Azell-Tech/azell-web/internal/errors"
	"github.com/Azell-Tech/azell-web/internal/logger"
	"github.com/Azell-Tech/azell-web/internal/pkg"
	"github.com/Azell-Tech/azell-web/internal/pkg/money"

	"github.com/oklog/ulid/v2"
)

type Service struct {
	Repository      Repository
	ProductRepo     product.Repository
	TransactionRepo transaction.Repository
	Transactor      shared.Transactor
	Approval        *shared.ApprovalChecker
	Accrual         AccrualPolicy
}

func NewService(
	repo Repository,
	productRepo product.Repository,
	transactionRepo transaction.Repository,
	transactor shared.Transactor,
	approval *shared.ApprovalChecker,
	accrual AccrualPolicy,
) *Service {
	return &Service{
		Repository:      repo,
		ProductRepo:     productRepo,
		TransactionRepo: transactionRepo,
		Transactor:      transactor,
		Approval:        approval,
		Accrual:         accrual,
	}
}

// ContributionResult agrupa la cuenta actualizada y los movimientos generados.
type ContributionResult struct {
	Investment *Investment              `json:"investment"`
	Movement   *transaction.Transaction `json:"movement"`
	Yield      *transaction.Transaction `json:"yield,omitempty"`
}

// OpenForUser abre la cuenta del usuario en el producto indicado o, si no se
// indica, en el producto activo más reciente. Si ya existe una cuenta activa en
// ese producto la devuelve sin crear otra.
func (s *Service) OpenForUser(ctx context.Context, session shared.Session, productID *ulid.ULID) (*Investment, bool, error) {
	if err := s.Approval.EnsureApproved(ctx, session); err != nil {
		return nil, false, err
	}

	p, err := s.resolveProduct(ctx, session.TenantID, productID)
	if err != nil {
		return nil, false, err
	}

	existing, err := s.Repository.GetActiveByUserAndProduct(ctx, session.TenantID, session.UserID, p.Id)
	if err == nil {
		return existing, false, nil
	}
	if !appErrors.HasCode(err, appErrors.ErrInvestmentNotFound) {
		return nil, false, err
	}

	now := pkg.Now()
	entity := &Investment{
		Id:            pkg.NewID(),
		TenantId:      session.TenantID,
		UserId:        session.UserID,
		ProductId:     p.Id,
		Status:        StatusActive,
		Currency:      p.Currency,
		OpenedAt:      now,
		MaturityAt:    now.AddDate(0, p.TermMonths, 0),
		LastAccrualAt: now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Repository.Create(ctx, entity); err != nil {
		return nil, false, err
	}

	logger.Info().
		Str("user_id", session.UserID.String()).
		Str("investment_id", entity.Id.String()).
		Str("product", p.Code).
		Msg("Cuenta de inversión abierta")
	return entity, true, nil
}

// Contribute suma un aporte al principal, devenga el rendimiento y registra
// los movimientos en una sola transacción.
func (s *Service) Contribute(ctx context.Context, session shared.Session, investmentID ulid.ULID, amount float64) (*ContributionResult, error) {
	if err := s.Approval.EnsureApproved(ctx, session); err != nil {
		return nil, err
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return nil, appErrors.NewValidationError("amount", "Monto inválido")
	}
	amount = money.Round2(amount)

	var result *ContributionResult
	err := s.Transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		inv, err := s.Repository.LockForUpdate(ctx, session.TenantID, investmentID)
		if err != nil {
			return err
		}
		if inv.UserId != session.UserID {
			return appErrors.ErrInvestmentNotFound
		}
		if inv.Status != StatusActive {
			return appErrors.NewValidationError("investment", "La inversión no está activa")
		}

		p, err := s.ProductRepo.GetByID(ctx, session.TenantID, inv.ProductId)
		if err != nil {
			return err
		}
		if minimum := p.MinimumContribution(); amount < minimum {
			return appErrors.NewValidationError("amount",
				fmt.Sprintf("El aporte mínimo es $%s", money.FormatCurrency(minimum)))
		}

		now := pkg.Now()
		increment := s.Accrual.Increment(inv, amount, p.AnnualRateBps, now)
		if err := s.Repository.ApplyContribution(ctx, inv.Id, amount, increment, now); err != nil {
			return err
		}

		invID := inv.Id
		movement := transaction.NewMovement(session.TenantID, session.UserID, &invID,
			transaction.Investment, amount, "Aportación a "+p.Name, "INV", inv.Currency)
		if err := s.TransactionRepo.Create(ctx, movement); err != nil {
			return err
		}

		result = &ContributionResult{Movement: movement}
		if increment > 0 {
			yield := transaction.NewMovement(session.TenantID, session.UserID, &invID,
				transaction.Yield, increment, "Rendimiento "+p.Name, "YLD", inv.Currency)
			if err := s.TransactionRepo.Create(ctx, yield); err != nil {
				return err
			}
			result.Yield = yield
		}

		inv.Principal = money.Round2(inv.Principal + amount)
		inv.AccruedYield = money.Round2(inv.AccruedYield + increment)
		inv.LastAccrualAt = now
		inv.UpdatedAt = now
		result.Investment = inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("user_id", session.UserID.String()).
		Str("investment_id", investmentID.String()).
		Float64("amount", amount).
		Msg("Aporte registrado")
	return result, nil
}

func (s *Service) List(ctx context.Context, session shared.Session) ([]Holding, error) {
	if err := s.Approval.EnsureApproved(ctx, session); err != nil {
		return nil, err
	}
	return s.Holdings(ctx, session.TenantID, session.UserID)
}

// Holdings carga las cuentas del usuario junto con su producto.
func (s *Service) Holdings(ctx context.Context, tenantID, userID ulid.ULID) ([]Holding, error) {
	investments, err := s.Repository.ListByUser(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	if len(investments) == 0 {
		return []Holding{}, nil
	}

	products, err := s.ProductRepo.List(ctx, tenantID, false)
	if err != nil {
		return nil, err
	}
	byID := make(map[ulid.ULID]*product.Product, len(products))
	for _, p := range products {
		byID[p.Id] = p
	}

	out := make([]Holding, 0, len(investments))
	for _, inv := range investments {
		out = append(out, Holding{Investment: inv, Product: byID[inv.ProductId]})
	}
	return out, nil
}

// GetForUser devuelve la cuenta sólo si pertenece al usuario.
func (s *Service) GetForUser(ctx context.Context, session shared.Session, id ulid.ULID) (*Investment, error) {
	inv, err := s.Repository.GetByID(ctx, session.TenantID, id)
	if err != nil {
		return nil, err
	}
	if inv.UserId != session.UserID {
		return nil, appErrors.ErrInvestmentNotFound
	}
	return inv, nil
}

func (s *Service) resolveProduct(ctx context.Context, tenantID ulid.ULID, productID *ulid.ULID) (*product.Product, error) {
	if productID == nil {
		p, err := s.ProductRepo.LatestActive(ctx, tenantID)
		if err != nil {
			if appErrors.HasCode(err, appErrors.ErrProductNotFound) {
				return nil, appErrors.ErrProductNotFound.WithMessage("No hay productos disponibles")
			}
			return nil, err
		}
		return p, nil
	}

	p, err := s.ProductRepo.GetByID(ctx, tenantID, *productID)
	if err != nil {
		return nil, err
	}
	if !p.Active {
		return nil, appErrors.ErrProductNotFound.WithMessage("El producto no está disponible")
	}
	return p, nil
}
