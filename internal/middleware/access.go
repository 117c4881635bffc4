package middleware

import (
	"github.com/Azell-Tech/azell-web/internal/domain/shared"
	appErrors "github.com/Azell-Tech/azell-web/internal/errors"

	"github.com/gin-gonic/gin"
)

// RequireRole deja pasar sólo a las sesiones con alguno de los roles indicados.
func RequireRole(roles ...shared.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := SessionFromContext(c)
		if !ok {
			abortWithError(c, appErrors.ErrUnauthorized)
			return
		}
		for _, role := range roles {
			if session.Role == role {
				c.Next()
				return
			}
		}
		abortWithError(c, appErrors.ErrForbidden)
	}
}

// RequireApproved corta temprano a los usuarios pendientes. Los servicios
// vuelven a validar contra la base.
func RequireApproved() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := SessionFromContext(c)
		if !ok {
			abortWithError(c, appErrors.ErrUnauthorized)
			return
		}
		if err := session.RequireApproved(); err != nil {
			abortWithError(c, err)
			return
		}
		c.Next()
	}
}
