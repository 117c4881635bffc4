package fx

import (
	"github.com/Azell-Tech/azell-web/config"
	"github.com/Azell-Tech/azell-web/internal/infrastructure"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

var InfrastructureModule = fx.Module("infrastructure",
	fx.Provide(
		newDatabase,
		newTransactor,
		newTenantRepository,
		newUserRepository,
		newProductRepository,
		newInvestmentRepository,
		newTransactionRepository,
		newDashboardRepository,
		newResourceCounter,
		newHealthCheck,
	),
)

func newDatabase(cfg *config.Config) (*gorm.DB, error) {
	return infrastructure.NewDb(cfg)
}

func newTransactor(db *gorm.DB) *infrastructure.GormTransactor {
	return infrastructure.NewTransactor(db)
}

func newTenantRepository(db *gorm.DB) *infrastructure.TenantRepository {
	return &infrastructure.TenantRepository{DB: db}
}

func newUserRepository(db *gorm.DB) *infrastructure.UserRepository {
	return &infrastructure.UserRepository{DB: db}
}

func newProductRepository(db *gorm.DB) *infrastructure.ProductRepository {
	return &infrastructure.ProductRepository{DB: db}
}

func newInvestmentRepository(db *gorm.DB) *infrastructure.InvestmentRepository {
	return &infrastructure.InvestmentRepository{DB: db}
}

func newTransactionRepository(db *gorm.DB) *infrastructure.TransactionRepository {
	return &infrastructure.TransactionRepository{DB: db}
}

func newDashboardRepository(db *gorm.DB) *infrastructure.DashboardRepository {
	return &infrastructure.DashboardRepository{DB: db}
}

func newResourceCounter(db *gorm.DB) *infrastructure.ResourceCounter {
	return &infrastructure.ResourceCounter{DB: db}
}

func newHealthCheck(db *gorm.DB) *infrastructure.HealthCheck {
	return &infrastructure.HealthCheck{DB: db}
}
