package fx

import (
	"github.com/Azell-Tech/azell-web/config"
	"github.com/Azell-Tech/azell-web/internal/domain/auth"
	"github.com/Azell-Tech/azell-web/internal/domain/dashboard"
	"github.com/Azell-Tech/azell-web/internal/domain/investment"
	"github.com/Azell-Tech/azell-web/internal/domain/product"
	"github.com/Azell-Tech/azell-web/internal/domain/setup"
	"github.com/Azell-Tech/azell-web/internal/domain/transaction"
	"github.com/Azell-Tech/azell-web/internal/domain/user"
	"github.com/Azell-Tech/azell-web/internal/domain/withdrawal"
	"github.com/Azell-Tech/azell-web/internal/infrastructure"
	"github.com/Azell-Tech/azell-web/internal/middleware"
	"github.com/Azell-Tech/azell-web/internal/routes"

	"go.uber.org/fx"
)

// RoutesModule provee el handler y los limitadores
var RoutesModule = fx.Module("routes",
	fx.Provide(
		newHandler,
		newLimits,
	),
)

func newHandler(
	userSvc *user.Service,
	authSvc *auth.Service,
	jwtSvc *middleware.JwtService,
	productSvc *product.Service,
	investmentSvc *investment.Service,
	transactionSvc *transaction.Service,
	withdrawalSvc *withdrawal.Service,
	dashboardSvc *dashboard.Service,
	setupSvc *setup.Service,
	health *infrastructure.HealthCheck,
) *routes.Handler {
	return &routes.Handler{
		UserService:        userSvc,
		AuthService:        authSvc,
		JwtService:         jwtSvc,
		ProductService:     productSvc,
		InvestmentService:  investmentSvc,
		TransactionService: transactionSvc,
		WithdrawalService:  withdrawalSvc,
		DashboardService:   dashboardSvc,
		SetupService:       setupSvc,
		Health:             health,
	}
}

func newLimits(cfg *config.Config, counter *infrastructure.ResourceCounter) routes.Limits {
	return routes.Limits{
		Public:                middleware.NewRateLimiter(cfg.Server.PublicRateLimit),
		PerUser:               middleware.NewRateLimiter(cfg.Server.UserRateLimit),
		PendingWithdrawals:    counter,
		MaxPendingWithdrawals: cfg.Ledger.MaxPendingWithdrawals,
	}
}
