package user

import (
	"context"
	"regexp"
	"strings"

	"github.com/Azell-Tech/azell-web/internal/domain/shared"
	appErrors "github.com/Azell-Tech/azell-web/internal/errors"
	"github.com/Azell-Tech/azell-web/internal/logger"
	"github.com/Azell-Tech/azell-web/internal/pkg"

	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

var (
	upperRe   = regexp.MustCompile(`[A-Z]`)
	specialRe = regexp.MustCompile(`[@$!%*?&#._-]`)
)

type Service struct {
	Repository Repository
}

func NewService(repo Repository) *Service {
	return &Service{Repository: repo}
}

// Create guarda al usuario con la contraseña ya cifrada.
func (s *Service) Create(ctx context.Context, u *User) error {
	u.Id = pkg.NewID()
	u.Email = shared.NormalizeEmail(u.Email)
	u.Name = strings.TrimSpace(u.Name)
	if !u.Role.IsValid() {
		u.Role = shared.RoleUser
	}

	now := pkg.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	hashed, err := HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed

	if err := s.Repository.Create(ctx, u); err != nil {
		if shared.IsUniqueConstraintError(err) {
			return appErrors.ErrEmailAlreadyExists.WithError(err)
		}
		return err
	}
	return nil
}

func (s *Service) GetByID(ctx context.Context, tenantID, id ulid.ULID) (*User, error) {
	return s.Repository.GetByID(ctx, tenantID, id)
}

func (s *Service) GetByEmail(ctx context.Context, tenantID ulid.ULID, email string) (*User, error) {
	return s.Repository.GetByEmail(ctx, tenantID, shared.NormalizeEmail(email))
}

func (s *Service) IsApproved(ctx context.Context, tenantID, userID ulid.ULID) (bool, error) {
	u, err := s.GetByID(ctx, tenantID, userID)
	if err != nil {
		return false, err
	}
	return u.Active, nil
}

func (s *Service) List(ctx context.Context, session shared.Session, status string, pagination *pkg.PaginationParams) ([]*User, int64, error) {
	if err := session.RequireAdmin(); err != nil {
		return nil, 0, err
	}

	var filter Filter
	switch status {
	case StatusPending:
		active, rejected := false, false
		filter.Active = &active
		filter.Rejected = &rejected
	case StatusApproved:
		active := true
		filter.Active = &active
	case StatusRejected:
		active, rejected := false, true
		filter.Active = &active
		filter.Rejected = &rejected
	case "", "all":
	default:
		return nil, 0, appErrors.NewValidationError("status", "El estado debe ser pending, approved o rejected")
	}
	return s.Repository.List(ctx, session.TenantID, filter, pagination)
}

// Approve activa al usuario para que pueda invertir y retirar.
func (s *Service) Approve(ctx context.Context, session shared.Session, userID ulid.ULID) (*User, error) {
	return s.setActive(ctx, session, userID, true)
}

// Reject desactiva al usuario; no se borra.
func (s *Service) Reject(ctx context.Context, session shared.Session, userID ulid.ULID) (*User, error) {
	return s.setActive(ctx, session, userID, false)
}

func (s *Service) setActive(ctx context.Context, session shared.Session, userID ulid.ULID, active bool) (*User, error) {
	if err := session.RequireAdmin(); err != nil {
		return nil, err
	}
	if userID == session.UserID {
		return nil, appErrors.NewValidationError("id", "No puedes cambiar tu propio estado")
	}

	u, err := s.GetByID(ctx, session.TenantID, userID)
	if err != nil {
		return nil, err
	}
	if u.Role == shared.RoleSuperAdmin && session.Role != shared.RoleSuperAdmin {
		return nil, appErrors.ErrForbidden
	}
	if u.Active == active && (active || u.IsRejected()) {
		return u, nil
	}

	now := pkg.Now()
	u.Active = active
	u.UpdatedAt = now
	if active {
		u.ApprovedAt = &now
		u.RejectedAt = nil
	} else {
		u.ApprovedAt = nil
		u.RejectedAt = &now
	}

	if err := s.Repository.Update(ctx, u); err != nil {
		return nil, err
	}

	logger.Info().
		Str("tenant_id", session.TenantID.String()).
		Str("user_id", u.Id.String()).
		Str("by", session.UserID.String()).
		Bool("active", active).
		Msg("Estado de usuario actualizado")
	return u, nil
}

func (s *Service) UpdateName(ctx context.Context, session shared.Session, name string) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, appErrors.NewValidationError("name", "El nombre no puede estar vacío")
	}

	u, err := s.GetByID(ctx, session.TenantID, session.UserID)
	if err != nil {
		return nil, err
	}
	u.Name = name
	u.UpdatedAt = pkg.Now()
	if err := s.Repository.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// UpdatePassword también cierra el flujo de primer acceso.
func (s *Service) UpdatePassword(ctx context.Context, session shared.Session, currentPassword, newPassword string) (*User, error) {
	u, err := s.GetByID(ctx, session.TenantID, session.UserID)
	if err != nil {
		return nil, err
	}

	if err := CheckPassword(currentPassword, u.Password); err != nil {
		return nil, err
	}
	if currentPassword == newPassword {
		return nil, appErrors.NewValidationError("newPassword", "La nueva contraseña debe ser distinta")
	}
	if err := ValidatePassword("newPassword", newPassword); err != nil {
		return nil, err
	}

	hashed, err := HashPassword(newPassword)
	if err != nil {
		return nil, err
	}

	u.Password = hashed
	u.MustChangePassword = false
	u.UpdatedAt = pkg.Now()
	if err := s.Repository.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func ValidatePassword(field, password string) error {
	if len(password) < 8 {
		return appErrors.NewValidationError(field, "Debe contener al menos 8 caracteres")
	}
	if !upperRe.MatchString(password) {
		return appErrors.NewValidationError(field, "Debe contener al menos una letra mayúscula")
	}
	if !specialRe.MatchString(password) {
		return appErrors.NewValidationError(field, "Debe contener al menos un caracter especial")
	}
	return nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", appErrors.ErrInternalServer.WithError(err)
	}
	return string(hash), nil
}

func CheckPassword(input, stored string) error {
	if input == "" {
		return appErrors.NewValidationError("password", "La contraseña es obligatoria")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(input)); err != nil {
		return appErrors.ErrInvalidCredentials
	}
	return nil
}
