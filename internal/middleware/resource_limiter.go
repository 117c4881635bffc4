package middleware

import (
	"context"
	"net/http"

	appErrors "github.com/Azell-Tech/azell-web/internal/errors"
	"github.com/Azell-Tech/azell-web/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

type PendingWithdrawalCounter interface {
	CountPendingWithdrawals(ctx context.Context, tenantID, userID ulid.ULID) (int64, error)
}

// LimitPendingWithdrawals rechaza nuevas solicitudes de retiro cuando el
// usuario ya tiene limit en proceso. Con limit <= 0 no hay límite.
func LimitPendingWithdrawals(counter PendingWithdrawalCounter, limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit <= 0 {
			c.Next()
			return
		}

		session, ok := SessionFromContext(c)
		if !ok {
			abortWithError(c, appErrors.ErrUnauthorized)
			return
		}

		count, err := counter.CountPendingWithdrawals(c.Request.Context(), session.TenantID, session.UserID)
		if err != nil {
			// no bloquea la solicitud; el servicio valida el saldo igual
			logger.Warn().Err(err).Str("user_id", session.UserID.String()).Msg("No se pudieron contar los retiros en proceso")
			c.Next()
			return
		}

		if count >= int64(limit) {
			appErr := appErrors.NewAppError("LIMIT_REACHED",
				"Alcanzaste el máximo de retiros en proceso. Espera a que se apliquen o cancela alguno.",
				http.StatusForbidden).WithDetails(map[string]interface{}{
				"resource": "pending_withdrawals",
				"current":  count,
				"limit":    limit,
			})
			abortWithError(c, appErr)
			return
		}

		c.Next()
	}
}
