package routes

import (
	"net/http"

	"github.com/Azell-Tech/azell-web/internal/contracts"
	"github.com/Azell-Tech/azell-web/internal/domain/product"
	"github.com/Azell-Tech/azell-web/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListUsers(c *gin.Context) {
	session, err := h.session(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	pagination := h.parsePagination(c)
	users, total, err := h.UserService.List(c.Request.Context(), session, c.Query("status"), pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg.NewPaginatedResponse(contracts.NewUserResponses(users), pagination, total))
}

func (h *Handler) ApproveUser(c *gin.Context) {
	h.changeUserStatus(c, true)
}

func (h *Handler) RejectUser(c *gin.Context) {
	h.changeUserStatus(c, false)
}

func (h *Handler) changeUserStatus(c *gin.Context, approve bool) {
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

	ctx := c.Request.Context()
	update := h.UserService.Reject
	if approve {
		update = h.UserService.Approve
	}
	u, err := update(ctx, session, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contracts.NewUserResponse(u))
}

func (h *Handler) ListAdminProducts(c *gin.Context) {
	session, err := h.session(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	products, err := h.ProductService.List(c.Request.Context(), session)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var body contracts.ProductCreateRequest
	if err := h.bindJSON(c, &body); err != nil {
		h.respondError(c, err)
		return
	}
	session, err := h.session(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	p, err := h.ProductService.Create(c.Request.Context(), session, product.CreateInput{
		Code:               body.Code,
		Name:               body.Name,
		AnnualRateBps:      body.AnnualRateBps,
		NoWithdrawBonusBps: body.NoWithdrawBonusBps,
		MinContribution:    body.MinContribution,
		Active:             body.Active,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	var body contracts.ProductUpdateRequest
	if err := h.bindJSON(c, &body); err != nil {
		h.respondError(c, err)
		return
	}
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

	p, err := h.ProductService.Update(c.Request.Context(), session, id, product.UpdateInput{
		Name:               body.Name,
		AnnualRateBps:      body.AnnualRateBps,
		NoWithdrawBonusBps: body.NoWithdrawBonusBps,
		MinContribution:    body.MinContribution,
		Active:             body.Active,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) ListTenantWithdrawals(c *gin.Context) {
	session, err := h.session(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	items, err := h.WithdrawalService.ListPendingForTenant(c.Request.Context(), session)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"withdrawals": items})
}

func (h *Handler) ApplyWithdrawal(c *gin.Context) {
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

	t, err := h.WithdrawalService.Apply(c.Request.Context(), session, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}
