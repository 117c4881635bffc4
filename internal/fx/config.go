package fx

import (
	"log"

	"github.com/Azell-Tech/azell-web/config"
	"github.com/Azell-Tech/azell-web/internal/logger"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.Load,
	),
	fx.Invoke(
		loadEnvFiles,
		initLogger,
	),
)

// loadEnvFiles corre antes de config.Load para que las variables del .env
// participen en los overrides.
func loadEnvFiles() error {
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: no se pudo cargar .env del directorio actual: %v", err)
	}
	return nil
}

func initLogger(cfg *config.Config) {
	logger.Init(cfg)
}
