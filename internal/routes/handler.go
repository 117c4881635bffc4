package routes

import (
	"context"

	"github.com/Azell-Tech/azell-web/internal/domain/auth"
	"github.com/Azell-Tech/azell-web/internal/domain/dashboard"
	"github.com/Azell-Tech/azell-web/internal/domain/investment"
	"github.com/Azell-Tech/azell-web/internal/domain/product"
	"github.com/Azell-Tech/azell-web/internal/domain/setup"
	"github.com/Azell-Tech/azell-web/internal/domain/shared"
	"github.com/Azell-Tech/azell-web/internal/domain/transaction"
	"github.com/Azell-Tech/azell-web/internal/domain/user"
	"github.com/Azell-Tech/azell-web/internal/domain/withdrawal"
	appErrors "github.com/Azell-Tech/azell-web/internal/errors"
	"github.com/Azell-Tech/azell-web/internal/logger"
	"github.com/Azell-Tech/azell-web/internal/middleware"
	"github.com/Azell-Tech/azell-web/internal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	UserService        *user.Service
	AuthService        *auth.Service
	JwtService         *middleware.JwtService
	ProductService     *product.Service
	InvestmentService  *investment.Service
	TransactionService *transaction.Service
	WithdrawalService  *withdrawal.Service
	DashboardService   *dashboard.Service
	SetupService       *setup.Service
	Health             Pinger
}

func (h *Handler) session(c *gin.Context) (shared.Session, error) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return shared.Session{}, appErrors.ErrUnauthorized
	}
	return session, nil
}

func (h *Handler) parsePagination(c *gin.Context) *pkg.PaginationParams {
	return pkg.ParsePagination(c.DefaultQuery("page", "1"), c.DefaultQuery("limit", "10"))
}

func (h *Handler) parseID(c *gin.Context, param string) (ulid.ULID, error) {
	id, err := pkg.ParseULID(c.Param(param))
	if err != nil {
		return ulid.ULID{}, appErrors.NewValidationError(param, "Identificador inválido")
	}
	return id, nil
}

func (h *Handler) bindJSON(c *gin.Context, body interface{}) error {
	if err := c.ShouldBindJSON(body); err != nil {
		return appErrors.ParseValidationErrors(err)
	}
	return nil
}

func (h *Handler) respondError(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	event := logger.Warn()
	if appErr.StatusCode >= 500 {
		event = logger.Error()
	}
	event = event.Str("code", appErr.Code).Str("path", c.FullPath())
	if appErr.Err != nil {
		event = event.Err(appErr.Err)
	}
	event.Msg("request_error")

	payload := gin.H{
		"error":   appErr.Code,
		"message": appErr.Message,
	}
	if len(appErr.Details) > 0 {
		payload["details"] = appErr.Details
	}
	c.JSON(appErr.StatusCode, payload)
}
