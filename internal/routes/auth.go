package routes

import (
	"net/http"

	"github.com/Azell-Tech/azell-web/internal/contracts"
	"github.com/Azell-Tech/azell-web/internal/domain/auth"
	"github.com/Azell-Tech/azell-web/internal/domain/shared"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Login(c *gin.Context) {
	var body contracts.LoginRequest
	if err := h.bindJSON(c, &body); err != nil {
		h.respondError(c, err)
		return
	}

	session, err := h.AuthService.Login(c.Request.Context(), auth.Login{
		TenantCode: body.TenantCode,
		Email:      body.Email,
		Password:   body.Password,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.issueToken(c, http.StatusOK, session)
}

func (h *Handler) Register(c *gin.Context) {
	var body contracts.RegisterRequest
	if err := h.bindJSON(c, &body); err != nil {
		h.respondError(c, err)
		return
	}

	session, err := h.AuthService.Register(c.Request.Context(), auth.Registration{
		TenantCode: body.TenantCode,
		Name:       body.Name,
		Email:      body.Email,
		Password:   body.Password,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.issueToken(c, http.StatusCreated, session)
}

func (h *Handler) Logout(c *gin.Context) {
	h.JwtService.ClearSessionCookie(c)
	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Sesión cerrada"})
}

func (h *Handler) Me(c *gin.Context) {
	session, err := h.session(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// RefreshSession emite un token nuevo con el estado actual del usuario, por
// ejemplo después de que un administrador lo aprobó.
func (h *Handler) RefreshSession(c *gin.Context) {
	session, err := h.session(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	fresh, err := h.AuthService.Refresh(c.Request.Context(), session)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.issueToken(c, http.StatusOK, fresh)
}

func (h *Handler) UpdatePassword(c *gin.Context) {
	var body contracts.PasswordUpdateRequest
	if err := h.bindJSON(c, &body); err != nil {
		h.respondError(c, err)
		return
	}
	session, err := h.session(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	if _, err := h.UserService.UpdatePassword(ctx, session, body.CurrentPassword, body.NewPassword); err != nil {
		h.respondError(c, err)
		return
	}

	fresh, err := h.AuthService.Refresh(ctx, session)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.issueToken(c, http.StatusOK, fresh)
}

func (h *Handler) UpdateName(c *gin.Context) {
	var body contracts.NameUpdateRequest
	if err := h.bindJSON(c, &body); err != nil {
		h.respondError(c, err)
		return
	}
	session, err := h.session(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	if _, err := h.UserService.UpdateName(ctx, session, body.Name); err != nil {
		h.respondError(c, err)
		return
	}

	fresh, err := h.AuthService.Refresh(ctx, session)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.issueToken(c, http.StatusOK, fresh)
}

func (h *Handler) issueToken(c *gin.Context, status int, session shared.Session) {
	token, expiresAt, err := h.JwtService.GenerateToken(session)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.JwtService.SetSessionCookie(c, token)
	c.JSON(status, contracts.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Session:   session,
	})
}
