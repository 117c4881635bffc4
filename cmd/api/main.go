package main

import (
	appfx "github.com/Azell-Tech/azell-web/internal/fx"

	"go.uber.org/fx"
)

// @title Azell API
// @version 1.0
// @description Portal de inversiones: catálogo, aportes, retiros y tablero.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	fx.New(
		appfx.AppModule,
	).Run()
}
