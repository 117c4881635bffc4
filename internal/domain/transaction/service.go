package transaction

import (
	"context"

	"github.com/Azell-Tech/azell-web/internal/domain/shared"
	"github.com/Azell-Tech/azell-web/internal/pkg"
)

type Service struct {
	Repository Repository
	Approval   *shared.ApprovalChecker
}

func NewService(repo Repository, approval *shared.ApprovalChecker) *Service {
	return &Service{Repository: repo, Approval: approval}
}

// List devuelve los movimientos del usuario, del más reciente al más antiguo.
func (s *Service) List(ctx context.Context, session shared.Session, pagination *pkg.PaginationParams) (*pkg.PaginatedResponse[*Transaction], error) {
	if err := s.Approval.EnsureApproved(ctx, session); err != nil {
		return nil, err
	}
	pagination = pkg.NormalizePagination(pagination)
	items, total, err := s.Repository.ListByUser(ctx, session.TenantID, session.UserID, pagination)
	if err != nil {
		return nil, err
	}
	return pkg.NewPaginatedResponse(items, pagination, total), nil
}

func (s *Service) AllByUser(ctx context.Context, session shared.Session) ([]*Transaction, error) {
	return s.Repository.AllByUser(ctx, session.TenantID, session.UserID)
}
