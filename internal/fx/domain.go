package fx

import (
	"github.com/Azell-Tech/azell-web/config"
	"github.com/Azell-Tech/azell-web/internal/domain/auth"
	"github.com/Azell-Tech/azell-web/internal/domain/dashboard"
	"github.com/Azell-Tech/azell-web/internal/domain/investment"
	"github.com/Azell-Tech/azell-web/internal/domain/product"
	"github.com/Azell-Tech/azell-web/internal/domain/setup"
	"github.com/Azell-Tech/azell-web/internal/domain/shared"
	"github.com/Azell-Tech/azell-web/internal/domain/transaction"
	"github.com/Azell-Tech/azell-web/internal/domain/user"
	"github.com/Azell-Tech/azell-web/internal/domain/withdrawal"
	"github.com/Azell-Tech/azell-web/internal/infrastructure"
	"github.com/Azell-Tech/azell-web/internal/logger"

	"go.uber.org/fx"
)

// DomainModule provee los servicios del dominio
var DomainModule = fx.Module("domain",
	fx.Provide(
		newUserService,
		newApprovalChecker,
		newAuthService,
		newAccrualPolicy,
		newProductService,
		newInvestmentService,
		newTransactionService,
		newWithdrawalService,
		newDashboardService,
		newSetupService,
	),
)

func newUserService(repo *infrastructure.UserRepository) *user.Service {
	return user.NewService(repo)
}

func newApprovalChecker(userSvc *user.Service) *shared.ApprovalChecker {
	return shared.NewApprovalChecker(userSvc)
}

func newAuthService(
	tenants *infrastructure.TenantRepository,
	users *infrastructure.UserRepository,
	userSvc *user.Service,
) *auth.Service {
	return auth.NewService(tenants, users, userSvc)
}

func newAccrualPolicy(cfg *config.Config) investment.AccrualPolicy {
	if cfg.Ledger.AccrualMode == config.AccrualElapsed {
		logger.Info().Msg("Devengo por días transcurridos desde el último aporte")
		return investment.AccrualPolicy{Elapsed: true}
	}
	return investment.FixedAccrual(cfg.Ledger.AccrualDays)
}

func newProductService(
	cfg *config.Config,
	repo *infrastructure.ProductRepository,
	investments *infrastructure.InvestmentRepository,
) *product.Service {
	return product.NewService(repo, investments, cfg.Ledger.TermMonths, cfg.Ledger.Currency)
}

func newInvestmentService(
	repo *infrastructure.InvestmentRepository,
	productRepo *infrastructure.ProductRepository,
	transactionRepo *infrastructure.TransactionRepository,
	transactor *infrastructure.GormTransactor,
	approval *shared.ApprovalChecker,
	accrual investment.AccrualPolicy,
) *investment.Service {
	return investment.NewService(repo, productRepo, transactionRepo, transactor, approval, accrual)
}

func newTransactionService(
	repo *infrastructure.TransactionRepository,
	approval *shared.ApprovalChecker,
) *transaction.Service {
	return transaction.NewService(repo, approval)
}

func newWithdrawalService(
	transactions *infrastructure.TransactionRepository,
	investments *infrastructure.InvestmentRepository,
	products *infrastructure.ProductRepository,
	transactor *infrastructure.GormTransactor,
	approval *shared.ApprovalChecker,
) *withdrawal.Service {
	return withdrawal.NewService(transactions, investments, products, transactor, approval)
}

func newDashboardService(
	cfg *config.Config,
	repo *infrastructure.DashboardRepository,
	approval *shared.ApprovalChecker,
) *dashboard.Service {
	return dashboard.NewService(repo, approval, cfg.Ledger.Currency)
}

func newSetupService(
	cfg *config.Config,
	tenants *infrastructure.TenantRepository,
	userSvc *user.Service,
	catalog *product.Service,
	transactor *infrastructure.GormTransactor,
) *setup.Service {
	if cfg.Setup.Key == "" {
		logger.Warn().Msg("SETUP_KEY no configurada, la instalación inicial queda deshabilitada")
	}
	return setup.NewService(cfg.Setup.Key, tenants, userSvc, catalog, transactor)
}
