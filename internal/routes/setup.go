package routes

import (
	"net/http"

	"github.com/Azell-Tech/azell-web/internal/contracts"
	"github.com/Azell-Tech/azell-web/internal/domain/setup"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Bootstrap(c *gin.Context) {
	var body contracts.SetupBootstrapRequest
	if err := h.bindJSON(c, &body); err != nil {
		h.respondError(c, err)
		return
	}

	result, err := h.SetupService.Bootstrap(c.Request.Context(), setup.Input{
		SetupKey:           body.SetupKey,
		TenantCode:         body.TenantCode,
		TenantName:         body.TenantName,
		AdminName:          body.AdminName,
		AdminEmail:         body.AdminEmail,
		AdminPassword:      body.AdminPassword,
		ProductCode:        body.ProductCode,
		ProductName:        body.ProductName,
		AnnualRateBps:      body.AnnualRateBps,
		MinContribution:    body.MinContribution,
		NoWithdrawBonusBps: body.NoWithdrawBonusBps,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *Handler) HealthCheck(c *gin.Context) {
	if h.Health != nil {
		if err := h.Health.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
}
