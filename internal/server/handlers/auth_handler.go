package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sbdiallo/bizstock/internal/server/middleware"
	"github.com/sbdiallo/bizstock/internal/service/accounts"
	"github.com/sbdiallo/bizstock/internal/session"
)

// AuthHandler exposes registration, login, logout and password reset.
type AuthHandler struct {
	accounts *accounts.Service
	sessions session.Manager
	logger   *zap.Logger
}

// NewAuthHandler constructs the HTTP adapter for the accounts service.
func NewAuthHandler(accountsSvc *accounts.Service, sessions session.Manager, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{accounts: accountsSvc, sessions: sessions, logger: logger}
}

type registerRequest struct {
	CompanyName   string `json:"companyName" binding:"required"`
	Username      string `json:"username" binding:"required"`
	ContactPerson string `json:"contactPerson"`
	Password      string `json:"password" binding:"required"`
}

// Register creates a pending tenant account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	tenant, err := h.accounts.Register(c.Request.Context(), accounts.RegisterInput{
		CompanyName:   req.CompanyName,
		Username:      req.Username,
		ContactPerson: req.ContactPerson,
		Password:      req.Password,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":       tenant.ID,
		"username": tenant.Username,
		"status":   tenant.Status,
	})
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and opens a session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	tenant, err := h.accounts.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	token, err := h.sessions.Create(c.Request.Context(), *tenant)
	if err != nil {
		h.logger.Error("failed creating session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"tenant": gin.H{
			"id":          tenant.ID,
			"companyName": tenant.CompanyName,
			"username":    tenant.Username,
			"role":        tenant.Role,
		},
	})
}

// Logout clears the active session.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.TokenFrom(c)
	if err := h.sessions.Clear(c.Request.Context(), token); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type resetPasswordRequest struct {
	Username        string `json:"username" binding:"required"`
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// ResetPassword replaces a tenant's password.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.accounts.ResetPassword(c.Request.Context(), req.Username, req.CurrentPassword, req.NewPassword); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
