// Package middleware resolves the active tenant from a bearer token and
// guards administrative routes.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sbdiallo/bizstock/internal/domain/models"
	"github.com/sbdiallo/bizstock/internal/session"
)

const (
	tenantContextKey = "activeTenant"
	tokenContextKey  = "sessionToken"
)

// RequireTenant validates the Authorization header and stores the session's
// tenant in the request context.
func RequireTenant(sessions session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		tenant, err := sessions.Get(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			return
		}

		c.Set(tenantContextKey, tenant)
		c.Set(tokenContextKey, token)
		c.Next()
	}
}

// RequireAdmin allows only the privileged tenant through. Must run after
// RequireTenant.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant := TenantFrom(c)
		if tenant == nil || !tenant.Privileged() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

// TenantFrom returns the active tenant set by RequireTenant, or nil.
func TenantFrom(c *gin.Context) *models.Tenant {
	v, ok := c.Get(tenantContextKey)
	if !ok {
		return nil
	}
	tenant, _ := v.(*models.Tenant)
	return tenant
}

// TokenFrom returns the raw bearer token set by RequireTenant.
func TokenFrom(c *gin.Context) string {
	v, ok := c.Get(tokenContextKey)
	if !ok {
		return ""
	}
	token, _ := v.(string)
	return token
}
