package shared

import (
	"context"

	appErrors "github.com/Azell-Tech/azell-web/internal/errors"

	"github.com/oklog/ulid/v2"
)

type ApprovalGetter interface {
	IsApproved(ctx context.Context, tenantID, userID ulid.ULID) (bool, error)
}

// ApprovalChecker vuelve a consultar la aprobación en la base; el token puede
// haberse emitido antes de que un administrador aprobara o desactivara al usuario.
type ApprovalChecker struct {
	users ApprovalGetter
}

func NewApprovalChecker(users ApprovalGetter) *ApprovalChecker {
	return &ApprovalChecker{users: users}
}

func (c *ApprovalChecker) EnsureApproved(ctx context.Context, session Session) error {
	if session.IsZero() {
		return appErrors.ErrUnauthorized
	}
	if c == nil || c.users == nil {
		return appErrors.ErrInternalServer
	}

	approved, err := c.users.IsApproved(ctx, session.TenantID, session.UserID)
	if err != nil {
		if appErrors.HasCode(err, appErrors.ErrUserNotFound) {
			return appErrors.ErrUserNotFound.WithError(err)
		}
		return err
	}
	if !approved {
		return appErrors.ErrUserNotApproved
	}
	return nil
}
