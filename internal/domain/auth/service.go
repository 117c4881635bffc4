package auth

import (
	"context"
	"strings"

	"github.com/Azell-Tech/azell-web/internal/domain/shared"
	"github.com/Azell-Tech/azell-web/internal/domain/tenant"
	"github.com/Azell-Tech/azell-web/internal/domain/user"
	appErrors "github.com/Azell-Tech/azell-web/internal/errors"
	"github.com/Azell-Tech/azell-web/internal/logger"
)

type Login struct {
	TenantCode string
	Email      string
	Password   string
}

type Registration struct {
	TenantCode string
	Name       string
	Email      string
	Password   string
}

type Service struct {
	Tenants     tenant.Repository
	Users       user.Repository
	UserService *user.Service
}

func NewService(tenants tenant.Repository, users user.Repository, userSvc *user.Service) *Service {
	return &Service{
		Tenants:     tenants,
		Users:       users,
		UserService: userSvc,
	}
}

// Login valida credenciales dentro de la organización indicada. Los usuarios
// pendientes sí pueden entrar; la sesión indica que no están aprobados. Los
// rechazados no.
func (s *Service) Login(ctx context.Context, login Login) (shared.Session, error) {
	t, err := tenant.ResolveActive(ctx, s.Tenants, shared.NormalizeCode(login.TenantCode))
	if err != nil {
		if appErrors.HasCode(err, appErrors.ErrTenantNotFound) {
			return shared.Session{}, appErrors.ErrInvalidCredentials
		}
		return shared.Session{}, err
	}

	entity, err := s.Users.GetByEmail(ctx, t.Id, shared.NormalizeEmail(login.Email))
	if err != nil {
		if appErrors.HasCode(err, appErrors.ErrUserNotFound) {
			return shared.Session{}, appErrors.ErrInvalidCredentials
		}
		return shared.Session{}, err
	}
	if err := user.CheckPassword(login.Password, entity.Password); err != nil {
		logger.Warn().
			Str("tenant", t.Code).
			Str("user_id", entity.Id.String()).
			Msg("Intento de acceso con contraseña incorrecta")
		return shared.Session{}, err
	}
	if entity.IsRejected() {
		return shared.Session{}, appErrors.ErrUserInactive
	}

	return NewSession(entity, t), nil
}

// Register crea un usuario pendiente de aprobación.
func (s *Service) Register(ctx context.Context, reg Registration) (shared.Session, error) {
	t, err := tenant.ResolveActive(ctx, s.Tenants, shared.NormalizeCode(reg.TenantCode))
	if err != nil {
		return shared.Session{}, err
	}

	if strings.TrimSpace(reg.Name) == "" {
		return shared.Session{}, appErrors.NewValidationError("name", "El nombre es obligatorio")
	}
	if err := user.ValidatePassword("password", reg.Password); err != nil {
		return shared.Session{}, err
	}

	email := shared.NormalizeEmail(reg.Email)
	exists, err := s.emailExists(ctx, t, email)
	if err != nil {
		return shared.Session{}, err
	}
	if exists {
		return shared.Session{}, appErrors.ErrEmailAlreadyExists
	}

	entity := &user.User{
		TenantId: t.Id,
		Name:     reg.Name,
		Email:    email,
		Password: reg.Password,
		Role:     shared.RoleUser,
		Active:   false,
	}
	if err := s.UserService.Create(ctx, entity); err != nil {
		return shared.Session{}, err
	}

	logger.Info().
		Str("tenant", t.Code).
		Str("user_id", entity.Id.String()).
		Msg("Usuario registrado, pendiente de aprobación")
	return NewSession(entity, t), nil
}

// Refresh vuelve a leer al usuario para emitir una sesión con su estado actual.
func (s *Service) Refresh(ctx context.Context, session shared.Session) (shared.Session, error) {
	t, err := s.Tenants.GetByID(ctx, session.TenantID)
	if err != nil {
		return shared.Session{}, err
	}
	entity, err := s.Users.GetByID(ctx, session.TenantID, session.UserID)
	if err != nil {
		return shared.Session{}, err
	}
	if entity.IsRejected() {
		return shared.Session{}, appErrors.ErrUserInactive
	}
	return NewSession(entity, t), nil
}

func NewSession(u *user.User, t *tenant.Tenant) shared.Session {
	return shared.Session{
		UserID:             u.Id,
		TenantID:           t.Id,
		TenantCode:         t.Code,
		Email:              u.Email,
		Name:               u.Name,
		Role:               u.Role,
		Approved:           u.Active,
		MustChangePassword: u.MustChangePassword,
	}
}

func (s *Service) emailExists(ctx context.Context, t *tenant.Tenant, email string) (bool, error) {
	_, err := s.Users.GetByEmail(ctx, t.Id, email)
	if err == nil {
		return true, nil
	}
	if appErrors.HasCode(err, appErrors.ErrUserNotFound) {
		return false, nil
	}
	if _, ok := appErrors.AsAppError(err); !ok {
		return false, appErrors.ErrInternalServer.WithError(err)
	}
	return false, err
}
