package withdrawal

import (
	"context"
	"net/http"
	"sort"

	"github.com/Azell-Tech/azell-web/internal/domain/investment"
	"github.com/Azell-Tech/azell-web/internal/domain/ledger"
	"github.com/Azell-Tech/azell-web/internal/domain/product"
	"github.com/Azell-Tech/azell-web/internal/domain/shared"
	"github.com/Azell-Tech/azell-web/internal/domain/transaction"
	appErrors "github.com/Azell-Tech/azell-web/internal/errors"
	"github.com/Azell-Tech/azell-web/internal/logger"
	"github.com/Azell-Tech/azell-web/internal/pkg/money"

	"github.com/oklog/ulid/v2"
)

// Result es la respuesta de una solicitud de retiro aceptada.
type Result struct {
	Accepted   bool                     `json:"accepted"`
	Available  float64                  `json:"available"`
	Withdrawal *transaction.Transaction `json:"withdrawal"`
}

// ProductWithdrawals resume los retiros de una cuenta de inversión.
type ProductWithdrawals struct {
	ProductID  string               `json:"productId"`
	PendingSum float64              `json:"pendingSum"`
	AppliedSum float64              `json:"appliedSum"`
	Pending    []ledger.Transaction `json:"pending"`
}

type Service struct {
	Transactions transaction.Repository
	Investments  investment.Repository
	Products     product.Repository
	Transactor   shared.Transactor
	Approval     *shared.ApprovalChecker
}

func NewService(
	transactions transaction.Repository,
	investments investment.Repository,
	products product.Repository,
	transactor shared.Transactor,
	approval *shared.ApprovalChecker,
) *Service {
	return &Service{
		Transactions: transactions,
		Investments:  investments,
		Products:     products,
		Transactor:   transactor,
		Approval:     approval,
	}
}

// Request valida el retiro contra el saldo disponible de la cuenta y, si
// procede, lo registra En proceso. La cuenta queda bloqueada mientras se
// valida para que dos solicitudes simultáneas no usen el mismo saldo.
func (s *Service) Request(ctx context.Context, session shared.Session, investmentID ulid.ULID, amount float64) (*Result, error) {
	if err := s.Approval.EnsureApproved(ctx, session); err != nil {
		return nil, err
	}

	var result *Result
	err := s.Transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		inv, err := s.Investments.LockForUpdate(ctx, session.TenantID, investmentID)
		if err != nil {
			return err
		}
		if inv.UserId != session.UserID {
			return appErrors.ErrInvestmentNotFound
		}

		p, err := s.Products.GetByID(ctx, session.TenantID, inv.ProductId)
		if err != nil && !appErrors.HasCode(err, appErrors.ErrProductNotFound) {
			return err
		}
		holding := investment.Holding{Investment: inv, Product: p}

		txns, err := s.Transactions.AllByUser(ctx, session.TenantID, session.UserID)
		if err != nil {
			return err
		}
		ledgers := ledger.AggregateWithdrawals(transaction.ToLedger(txns))

		v := ledger.ValidateWithdrawal(holding.ToLedger(), ledgers[inv.Id.String()], amount)
		if !v.Accepted {
			return rejection(v)
		}

		invID := inv.Id
		name := "inversión"
		if p != nil {
			name = p.Name
		}
		w := transaction.NewMovement(session.TenantID, session.UserID, &invID,
			transaction.Withdrawal, -money.Round2(amount), "Retiro de "+name, "WDR", inv.Currency)
		w.Status = transaction.StatusPending
		if err := s.Transactions.Create(ctx, w); err != nil {
			return err
		}

		result = &Result{Accepted: true, Available: money.Round2(v.Available - money.Round2(amount)), Withdrawal: w}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("user_id", session.UserID.String()).
		Str("investment_id", investmentID.String()).
		Str("reference", result.Withdrawal.Reference).
		Msg("Retiro solicitado")
	return result, nil
}

// Cancel permite al dueño cancelar un retiro que sigue En proceso.
func (s *Service) Cancel(ctx context.Context, session shared.Session, id ulid.ULID) (*transaction.Transaction, error) {
	if err := s.Approval.EnsureApproved(ctx, session); err != nil {
		return nil, err
	}
	t, err := s.getWithdrawal(ctx, session.TenantID, id)
	if err != nil {
		return nil, err
	}
	if !t.BelongsTo(session.UserID) {
		return nil, appErrors.ErrResourceNotOwned
	}
	return s.transition(ctx, session, t, transaction.StatusCancelled)
}

// Apply marca como aplicado un retiro pendiente; sólo administradores.
func (s *Service) Apply(ctx context.Context, session shared.Session, id ulid.ULID) (*transaction.Transaction, error) {
	if err := session.RequireAdmin(); err != nil {
		return nil, err
	}
	t, err := s.getWithdrawal(ctx, session.TenantID, id)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, session, t, transaction.StatusApplied)
}

// ListPending agrupa los retiros del usuario por cuenta de inversión.
func (s *Service) ListPending(ctx context.Context, session shared.Session) ([]ProductWithdrawals, error) {
	if err := s.Approval.EnsureApproved(ctx, session); err != nil {
		return nil, err
	}
	txns, err := s.Transactions.AllByUser(ctx, session.TenantID, session.UserID)
	if err != nil {
		return nil, err
	}

	ledgers := ledger.AggregateWithdrawals(transaction.ToLedger(txns))
	out := make([]ProductWithdrawals, 0, len(ledgers))
	for id, entry := range ledgers {
		out = append(out, ProductWithdrawals{
			ProductID:  id,
			PendingSum: entry.PendingSum,
			AppliedSum: entry.AppliedSum,
			Pending:    entry.Pending,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

// ListPendingForTenant es la bandeja de retiros del backoffice.
func (s *Service) ListPendingForTenant(ctx context.Context, session shared.Session) ([]*transaction.Transaction, error) {
	if err := session.RequireAdmin(); err != nil {
		return nil, err
	}
	return s.Transactions.ListPendingWithdrawals(ctx, session.TenantID, nil)
}

func (s *Service) getWithdrawal(ctx context.Context, tenantID, id ulid.ULID) (*transaction.Transaction, error) {
	t, err := s.Transactions.GetByID(ctx, tenantID, id)
	if err != nil {
		if appErrors.HasCode(err, appErrors.ErrTransactionNotFound) {
			return nil, appErrors.ErrWithdrawalNotFound
		}
		return nil, err
	}
	if !ledger.IsWithdrawal(t.ToLedger()) {
		return nil, appErrors.ErrWithdrawalNotFound
	}
	return t, nil
}

func (s *Service) transition(ctx context.Context, session shared.Session, t *transaction.Transaction, to transaction.Status) (*transaction.Transaction, error) {
	if !ledger.CanTransition(string(t.Status), string(to)) {
		return nil, appErrors.ErrInvalidStatusTransition
	}

	ok, err := s.Transactions.UpdateStatus(ctx, session.TenantID, t.Id, t.Status, to)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, appErrors.ErrInvalidStatusTransition
	}

	logger.Info().
		Str("actor_id", session.UserID.String()).
		Str("withdrawal_id", t.Id.String()).
		Str("from", string(t.Status)).
		Str("to", string(to)).
		Msg("Estado de retiro actualizado")

	t.Status = to
	return t, nil
}

func rejection(v ledger.Validation) *appErrors.AppError {
	return appErrors.NewAppError(v.Code, v.Reason, http.StatusBadRequest).WithDetails(map[string]interface{}{
		"accepted":  false,
		"available": v.Available,
	})
}
