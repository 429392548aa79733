package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sbdiallo/bizstock/internal/service/banner"
)

// BannerHandler serves the public banner read.
type BannerHandler struct {
	banner *banner.Service
}

// NewBannerHandler constructs the public banner adapter.
func NewBannerHandler(bannerSvc *banner.Service) *BannerHandler {
	return &BannerHandler{banner: bannerSvc}
}

// Get returns both banner values.
func (h *BannerHandler) Get(c *gin.Context) {
	horizontal, vertical, err := h.banner.Get(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"horizontal": horizontal, "vertical": vertical})
}
