package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sbdiallo/bizstock/internal/domain/models"
	"github.com/sbdiallo/bizstock/internal/server/middleware"
	"github.com/sbdiallo/bizstock/internal/service/accounts"
	"github.com/sbdiallo/bizstock/internal/service/banner"
	syncengine "github.com/sbdiallo/bizstock/internal/sync"
)

// AdminHandler exposes tenant administration, banner management and manual
// sync controls. Routes are guarded by the admin middleware.
type AdminHandler struct {
	accounts *accounts.Service
	banner   *banner.Service
	engine   *syncengine.Engine
	logger   *zap.Logger
}

// NewAdminHandler constructs the administrative HTTP adapter.
func NewAdminHandler(accountsSvc *accounts.Service, bannerSvc *banner.Service, engine *syncengine.Engine, logger *zap.Logger) *AdminHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminHandler{accounts: accountsSvc, banner: bannerSvc, engine: engine, logger: logger}
}

// ListTenants returns every tenant record.
func (h *AdminHandler) ListTenants(c *gin.Context) {
	tenants, err := h.accounts.List(c.Request.Context(), middleware.TenantFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tenants)
}

type statusRequest struct {
	Status models.Status `json:"status" binding:"required"`
}

// UpdateTenantStatus moves a tenant through the approval lifecycle.
func (h *AdminHandler) UpdateTenantStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	tenant, err := h.accounts.UpdateStatus(c.Request.Context(), middleware.TenantFrom(c), c.Param("id"), req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tenant)
}

// DeleteTenant removes a tenant record locally.
func (h *AdminHandler) DeleteTenant(c *gin.Context) {
	if err := h.accounts.Delete(c.Request.Context(), middleware.TenantFrom(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type bannerRequest struct {
	Position string `json:"position" binding:"required"`
	Value    string `json:"value"`
}

// SetBanner replaces one banner value.
func (h *AdminHandler) SetBanner(c *gin.Context) {
	var req bannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.banner.Set(c.Request.Context(), middleware.TenantFrom(c), req.Position, req.Value); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Export bulk-saves every table to the remote store.
func (h *AdminHandler) Export(c *gin.Context) {
	if err := h.engine.ExportAll(c.Request.Context()); err != nil {
		h.logger.Error("manual export failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "export failed"})
		return
	}
	c.Status(http.StatusAccepted)
}

// SyncState reports the engine's lifecycle state.
func (h *AdminHandler) SyncState(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"state": h.engine.State().String()})
}
