package routes

import (
	"net/http"

	"github.com/Azell-Tech/azell-web/internal/contracts"
	appErrors "github.com/Azell-Tech/azell-web/internal/errors"
	"github.com/Azell-Tech/azell-web/internal/pkg"

	"github.com/gin-gonic/gin"
)

// RequestWithdrawal responde 400 con {accepted:false, code, available} cuando el
// monto no procede.
func (h *Handler) RequestWithdrawal(c *gin.Context) {
	var body contracts.WithdrawalRequest
	if err := h.bindJSON(c, &body); err != nil {
		h.respondError(c, err)
		return
	}
	session, err := h.session(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	productID, err := pkg.ParseULID(body.ProductID)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("productId", "Identificador inválido"))
		return
	}

	result, err := h.WithdrawalService.Request(c.Request.Context(), session, productID, body.Amount.Float64())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *Handler) ListWithdrawals(c *gin.Context) {
	session, err := h.session(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	groups, err := h.WithdrawalService.ListPending(c.Request.Context(), session)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": groups})
}

func (h *Handler) CancelWithdrawal(c *gin.Context) {
	session, err := h.session(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	id, err := h.parseID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	t, err := h.WithdrawalService.Cancel(c.Request.Context(), session, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}
