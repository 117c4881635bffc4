package routes

import (
	"github.com/Azell-Tech/azell-web/internal/domain/shared"
	"github.com/Azell-Tech/azell-web/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Limits agrupa los limitadores que se montan sobre las rutas.
type Limits struct {
	Public                *middleware.RateLimiter
	PerUser               *middleware.RateLimiter
	PendingWithdrawals    middleware.PendingWithdrawalCounter
	MaxPendingWithdrawals int
}

func (h *Handler) Mount(router *gin.Engine, limits Limits) {
	router.GET("/health", h.HealthCheck)

	public := router.Group("/api")
	if limits.Public != nil {
		public.Use(middleware.RateLimit(limits.Public))
	}
	{
		public.POST("/auth/login", h.Login)
		public.POST("/auth/register", h.Register)
		public.POST("/auth/logout", h.Logout)
		public.POST("/setup/bootstrap", h.Bootstrap)
	}

	private := router.Group("/api")
	private.Use(middleware.AuthMiddleware(h.JwtService))
	if limits.PerUser != nil {
		private.Use(middleware.RateLimitByUser(limits.PerUser))
	}
	{
		private.GET("/me", h.Me)
		private.POST("/me/refresh", h.RefreshSession)
		private.PATCH("/me", h.UpdateName)
		private.PATCH("/me/password", h.UpdatePassword)

		admin := private.Group("/admin")
		admin.Use(middleware.RequireRole(shared.RoleAdmin, shared.RoleSuperAdmin))
		{
			admin.GET("/users", h.ListUsers)
			admin.POST("/users/:id/approve", h.ApproveUser)
			admin.POST("/users/:id/reject", h.RejectUser)

			admin.GET("/products", h.ListAdminProducts)
			admin.POST("/products", h.CreateProduct)
			admin.PATCH("/products/:id", h.UpdateProduct)

			admin.GET("/withdrawals", h.ListTenantWithdrawals)
			admin.POST("/withdrawals/:id/apply", h.ApplyWithdrawal)
		}

		customer := private.Group("")
		customer.Use(middleware.RequireApproved())
		{
			customer.GET("/products", h.ListProducts)
			customer.GET("/products/options", h.ProductOptions)

			customer.GET("/investments", h.ListInvestments)
			customer.POST("/investments/open", h.OpenInvestment)
			customer.POST("/investments/:id/contribute", h.Contribute)

			customer.GET("/transactions", h.ListTransactions)
			customer.GET("/dashboard", h.GetDashboard)

			withdrawals := customer.Group("/withdrawals")
			{
				withdrawals.GET("", h.ListWithdrawals)
				withdrawals.POST("/:id/cancel", h.CancelWithdrawal)
				if limits.PendingWithdrawals != nil {
					withdrawals.POST("", middleware.LimitPendingWithdrawals(limits.PendingWithdrawals, limits.MaxPendingWithdrawals), h.RequestWithdrawal)
				} else {
					withdrawals.POST("", h.RequestWithdrawal)
				}
			}
		}
	}
}
