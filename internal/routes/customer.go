package routes

import (
	"net/http"

	"github.com/Azell-Tech/azell-web/internal/contracts"
	"github.com/Azell-Tech/azell-web/internal/domain/product"
	appErrors "github.com/Azell-Tech/azell-web/internal/errors"
	"github.com/Azell-Tech/azell-web/internal/pkg"

	"github.com/gin-gonic/gin"
)

// ListProducts sólo conoce el filtro de productos disponibles para el usuario.
func (h *Handler) ListProducts(c *gin.Context) {
	if status := c.Query("status"); status != "" && status != product.StatusAvailable {
		h.respondError(c, appErrors.NewValidationError("status", "Estado de producto no soportado"))
		return
	}
	session, err := h.session(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	items, err := h.ProductService.Available(c.Request.Context(), session)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": items})
}

func (h *Handler) ProductOptions(c *gin.Context) {
	session, err := h.session(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	options, err := h.ProductService.Options(c.Request.Context(), session)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, options)
}

func (h *Handler) OpenInvestment(c *gin.Context) {
	var body contracts.InvestmentOpenRequest
	if c.Request.ContentLength != 0 {
		if err := h.bindJSON(c, &body); err != nil {
			h.respondError(c, err)
			return
		}
	}
	session, err := h.session(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	productID, err := pkg.ParseOptionalULID(body.ProductID)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("productId", "Identificador inválido"))
		return
	}

	inv, created, err := h.InvestmentService.OpenForUser(c.Request.Context(), session, productID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"investment": inv, "created": created})
}

func (h *Handler) Contribute(c *gin.Context) {
	var body contracts.ContributionRequest
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

	result, err := h.InvestmentService.Contribute(c.Request.Context(), session, id, body.Amount.Float64())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) ListInvestments(c *gin.Context) {
	session, err := h.session(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	holdings, err := h.InvestmentService.List(c.Request.Context(), session)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"investments": holdings})
}

func (h *Handler) ListTransactions(c *gin.Context) {
	session, err := h.session(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	page, err := h.TransactionService.List(c.Request.Context(), session, h.parsePagination(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) GetDashboard(c *gin.Context) {
	session, err := h.session(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp, err := h.DashboardService.GetDashboard(c.Request.Context(), session)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
