package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sbdiallo/bizstock/internal/server/handlers"
	"github.com/sbdiallo/bizstock/internal/server/middleware"
	"github.com/sbdiallo/bizstock/internal/session"
)

// Handlers groups the HTTP adapters the router wires up.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Inventory *handlers.InventoryHandler
	Admin     *handlers.AdminHandler
	Banner    *handlers.BannerHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, sessions session.Manager, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/api/banner", h.Banner.Get)

	r.POST("/api/register", h.Auth.Register)
	r.POST("/api/login", h.Auth.Login)
	r.POST("/api/password/reset", h.Auth.ResetPassword)

	authed := r.Group("/api", middleware.RequireTenant(sessions))
	{
		authed.POST("/logout", h.Auth.Logout)

		authed.GET("/inventory", h.Inventory.GetInventory)
		authed.POST("/inventory/stock", h.Inventory.AddStock)
		authed.GET("/sales", h.Inventory.GetSales)
		authed.POST("/sales", h.Inventory.ProcessSale)
		authed.GET("/purchases", h.Inventory.GetPurchases)
		authed.GET("/expenses", h.Inventory.GetExpenses)
		authed.POST("/expenses", h.Inventory.AddExpense)
	}

	admin := authed.Group("/admin", middleware.RequireAdmin())
	{
		admin.GET("/users", h.Admin.ListTenants)
		admin.PATCH("/users/:id/status", h.Admin.UpdateTenantStatus)
		admin.DELETE("/users/:id", h.Admin.DeleteTenant)
		admin.POST("/banner", h.Admin.SetBanner)
		admin.POST("/sync/export", h.Admin.Export)
		admin.GET("/sync/state", h.Admin.SyncState)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
