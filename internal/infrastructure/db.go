package infrastructure

import (
	"context"
	"fmt"

	"github.com/Azell-Tech/azell-web/config"
	"github.com/Azell-Tech/azell-web/internal/logger"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func NewDb(cfg *config.Config) (*gorm.DB, error) {
	db, err := Open(cfg.Database.Driver, cfg.Database.ConnectionString())
	if err != nil {
		logger.Error().
			Err(err).
			Str("driver", cfg.Database.Driver).
			Str("host", cfg.Database.Host).
			Str("database", cfg.Database.DBName).
			Msg("No se pudo conectar a la base de datos")
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error().Err(err).Msg("No se pudo obtener la conexión de la base de datos")
		return nil, err
	}

	if IsSQLite(db) {
		// sqlite sólo admite un escritor a la vez
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(cfg.Database.GetConnMaxLifetime())

	logger.Info().
		Str("driver", db.Dialector.Name()).
		Str("host", cfg.Database.Host).
		Str("database", cfg.Database.DBName).
		Msg("Conexión con la base de datos establecida")

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Open abre la base con el driver indicado ("postgres" o "sqlite").
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres", "":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("driver de base de datos no soportado: %s", driver)
	}

	return gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
}

func IsSQLite(db *gorm.DB) bool {
	return db.Dialector.Name() == "sqlite"
}

type migration struct {
	name  string
	model interface{}
}

func RunMigrations(db *gorm.DB) error {
	logger.Info().Msg("Ejecutando migraciones...")

	entities := []migration{
		{name: "Tenant", model: &tenantDB{}},
		{name: "User", model: &userDB{}},
		{name: "Product", model: &productDB{}},
		{name: "Investment", model: &investmentDB{}},
		{name: "Movement", model: &movementDB{}},
	}

	for _, entity := range entities {
		if err := db.AutoMigrate(entity.model); err != nil {
			logger.Error().
				Err(err).
				Str("entity", entity.name).
				Msg("Error al migrar la entidad")
			return err
		}
	}

	if err := dropGlobalEmailIndex(db); err != nil {
		logger.Warn().Err(err).Msg("No se pudo eliminar el índice global de correo en users")
	}

	logger.Info().Msg("Migraciones ejecutadas")
	return nil
}

// dropGlobalEmailIndex quita el índice único por correo de instalaciones
// anteriores; el correo es único por organización.
func dropGlobalEmailIndex(db *gorm.DB) error {
	migrator := db.Migrator()
	if !migrator.HasIndex(&userDB{}, "idx_users_email") {
		return nil
	}
	if err := migrator.DropIndex(&userDB{}, "idx_users_email"); err != nil {
		return err
	}
	logger.Info().Msg("Índice idx_users_email eliminado")
	return nil
}

// HealthCheck verifica que la base responda.
type HealthCheck struct {
	DB *gorm.DB
}

func (h *HealthCheck) Ping(ctx context.Context) error {
	sqlDB, err := h.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
