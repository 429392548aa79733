package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sbdiallo/bizstock/internal/server/middleware"
	"github.com/sbdiallo/bizstock/internal/service/expenses"
	"github.com/sbdiallo/bizstock/internal/service/inventory"
)

// InventoryHandler exposes stock, sale, purchase and expense operations for
// the active tenant.
type InventoryHandler struct {
	inventory *inventory.Service
	expenses  *expenses.Service
	logger    *zap.Logger
}

// NewInventoryHandler constructs the HTTP adapter for the trading services.
func NewInventoryHandler(inventorySvc *inventory.Service, expensesSvc *expenses.Service, logger *zap.Logger) *InventoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryHandler{inventory: inventorySvc, expenses: expensesSvc, logger: logger}
}

type addStockRequest struct {
	ItemName    string  `json:"itemName" binding:"required"`
	Quantity    int     `json:"quantity" binding:"required"`
	Cost        float64 `json:"cost"`
	Date        string  `json:"date"`
	Vendor      string  `json:"vendor"`
	Category    string  `json:"category"`
	Brand       string  `json:"brand"`
	Model       string  `json:"model"`
	PaymentType string  `json:"paymentType"`
}

// AddStock upserts an inventory item and records the purchase.
func (h *InventoryHandler) AddStock(c *gin.Context) {
	var req addStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, purchase, err := h.inventory.AddStock(c.Request.Context(), middleware.TenantFrom(c), inventory.AddStockInput{
		ItemName:    req.ItemName,
		Quantity:    req.Quantity,
		Cost:        req.Cost,
		Date:        req.Date,
		Vendor:      req.Vendor,
		Category:    req.Category,
		Brand:       req.Brand,
		Model:       req.Model,
		PaymentType: req.PaymentType,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"item": item, "purchase": purchase})
}

type saleRequest struct {
	ItemName string  `json:"itemName" binding:"required"`
	Quantity int     `json:"quantity" binding:"required"`
	Price    float64 `json:"price"`
	Date     string  `json:"date"`
}

// ProcessSale records one sale against current stock.
func (h *InventoryHandler) ProcessSale(c *gin.Context) {
	var req saleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sale, err := h.inventory.ProcessSale(c.Request.Context(), middleware.TenantFrom(c), inventory.SaleInput{
		ItemName: req.ItemName,
		Quantity: req.Quantity,
		Price:    req.Price,
		Date:     req.Date,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sale)
}

// GetInventory lists the active tenant's items.
func (h *InventoryHandler) GetInventory(c *gin.Context) {
	items, err := h.inventory.GetInventory(c.Request.Context(), middleware.TenantFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetSales lists the active tenant's sales ledger.
func (h *InventoryHandler) GetSales(c *gin.Context) {
	sales, err := h.inventory.GetSales(c.Request.Context(), middleware.TenantFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sales)
}

// GetPurchases lists the active tenant's purchase ledger.
func (h *InventoryHandler) GetPurchases(c *gin.Context) {
	purchases, err := h.inventory.GetPurchases(c.Request.Context(), middleware.TenantFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, purchases)
}

type expenseRequest struct {
	Name   string  `json:"name" binding:"required"`
	Amount float64 `json:"amount" binding:"required"`
	Date   string  `json:"date"`
}

// AddExpense appends one expense row.
func (h *InventoryHandler) AddExpense(c *gin.Context) {
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	expense, err := h.expenses.Add(c.Request.Context(), middleware.TenantFrom(c), req.Name, req.Amount, req.Date)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, expense)
}

// GetExpenses lists the active tenant's expenses.
func (h *InventoryHandler) GetExpenses(c *gin.Context) {
	records, err := h.expenses.List(c.Request.Context(), middleware.TenantFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}
