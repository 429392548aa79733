// Package inventory implements stock, sale and purchase operations. Every
// mutation commits locally first, then fires a best-effort push for each
// record it touched.
package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sbdiallo/bizstock/internal/domain/models"
	"github.com/sbdiallo/bizstock/internal/errs"
	"github.com/sbdiallo/bizstock/internal/store"
	syncengine "github.com/sbdiallo/bizstock/internal/sync"
)

const dateLayout = "2006-01-02"

// Service mutates the inventory, sales and purchases tables.
type Service struct {
	store  store.Store
	pusher syncengine.Pusher
	logger *zap.Logger
}

// NewService wires an inventory service.
func NewService(s store.Store, pusher syncengine.Pusher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: s, pusher: pusher, logger: logger}
}

// AddStockInput describes a restock. The purchase metadata lands in the
// purchases ledger; quantity and cost feed the inventory item.
type AddStockInput struct {
	ItemName    string
	Quantity    int
	Cost        float64
	Date        string
	Vendor      string
	Category    string
	Brand       string
	Model       string
	PaymentType string
}

// AddStock upserts the (owner, itemName) inventory item and appends a
// purchase ledger row. Items match case-insensitively on name; restocks
// recompute the weighted average cost.
func (s *Service) AddStock(ctx context.Context, tenant *models.Tenant, in AddStockInput) (*models.InventoryItem, *models.Purchase, error) {
	if tenant == nil || tenant.Privileged() {
		return nil, nil, errs.ErrForbidden
	}
	in.ItemName = strings.TrimSpace(in.ItemName)
	if in.ItemName == "" {
		return nil, nil, fmt.Errorf("validation: item name is required")
	}
	if in.Quantity <= 0 {
		return nil, nil, fmt.Errorf("validation: quantity must be positive")
	}
	if in.Cost < 0 {
		return nil, nil, fmt.Errorf("validation: cost must not be negative")
	}
	date, err := normalizeDate(in.Date)
	if err != nil {
		return nil, nil, err
	}

	items, err := store.LoadTable[models.InventoryItem](ctx, s.store, store.TableInventory)
	if err != nil {
		return nil, nil, err
	}

	idx := findItem(items, tenant.Username, in.ItemName)
	var item models.InventoryItem
	if idx >= 0 {
		existing := items[idx]
		totalQty := existing.Quantity + in.Quantity
		existing.AvgCost = (float64(existing.Quantity)*existing.AvgCost + float64(in.Quantity)*in.Cost) / float64(totalQty)
		existing.Quantity = totalQty
		items[idx] = existing
		item = existing
	} else {
		item = models.InventoryItem{
			ID:       models.NewID(models.PrefixInventory),
			Owner:    tenant.Username,
			ItemName: in.ItemName,
			Quantity: in.Quantity,
			AvgCost:  in.Cost,
		}
		items = append(items, item)
	}

	if err := store.SaveTable(ctx, s.store, store.TableInventory, items); err != nil {
		return nil, nil, err
	}
	s.pusher.Push(store.TableInventory, item)

	purchase := models.Purchase{
		ID:          models.NewID(models.PrefixPurchase),
		Owner:       tenant.Username,
		Date:        date,
		Vendor:      in.Vendor,
		Category:    in.Category,
		Brand:       in.Brand,
		Model:       in.Model,
		ItemName:    in.ItemName,
		Quantity:    in.Quantity,
		Cost:        in.Cost,
		PaymentType: in.PaymentType,
	}

	purchases, err := store.LoadTable[models.Purchase](ctx, s.store, store.TablePurchases)
	if err != nil {
		return nil, nil, err
	}
	purchases = append(purchases, purchase)
	if err := store.SaveTable(ctx, s.store, store.TablePurchases, purchases); err != nil {
		return nil, nil, err
	}
	s.pusher.Push(store.TablePurchases, purchase)

	s.logger.Info("stock added",
		zap.String("owner", tenant.Username),
		zap.String("item", in.ItemName),
		zap.Int("quantity", in.Quantity))
	return &item, &purchase, nil
}

// SaleInput describes one sale of an owned item.
type SaleInput struct {
	ItemName string
	Quantity int
	Price    float64
	Date     string
}

// ProcessSale decrements stock and appends one sale row with
// total = quantity * price. A sale that would drive stock below zero fails
// with ErrInsufficientStock and mutates nothing.
func (s *Service) ProcessSale(ctx context.Context, tenant *models.Tenant, in SaleInput) (*models.Sale, error) {
	if tenant == nil || tenant.Privileged() {
		return nil, errs.ErrForbidden
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("validation: quantity must be positive")
	}
	if in.Price < 0 {
		return nil, fmt.Errorf("validation: price must not be negative")
	}
	date, err := normalizeDate(in.Date)
	if err != nil {
		return nil, err
	}

	items, err := store.LoadTable[models.InventoryItem](ctx, s.store, store.TableInventory)
	if err != nil {
		return nil, err
	}

	idx := findItem(items, tenant.Username, in.ItemName)
	if idx < 0 || items[idx].Quantity < in.Quantity {
		return nil, errs.ErrInsufficientStock
	}

	items[idx].Quantity -= in.Quantity
	if err := store.SaveTable(ctx, s.store, store.TableInventory, items); err != nil {
		return nil, err
	}
	s.pusher.Push(store.TableInventory, items[idx])

	sale := models.Sale{
		ID:       models.NewID(models.PrefixSale),
		Owner:    tenant.Username,
		Date:     date,
		ItemName: items[idx].ItemName,
		Quantity: in.Quantity,
		Price:    in.Price,
		Total:    float64(in.Quantity) * in.Price,
	}

	sales, err := store.LoadTable[models.Sale](ctx, s.store, store.TableSales)
	if err != nil {
		return nil, err
	}
	sales = append(sales, sale)
	if err := store.SaveTable(ctx, s.store, store.TableSales, sales); err != nil {
		return nil, err
	}
	s.pusher.Push(store.TableSales, sale)

	s.logger.Info("sale processed",
		zap.String("owner", tenant.Username),
		zap.String("item", sale.ItemName),
		zap.Int("quantity", sale.Quantity))
	return &sale, nil
}

// GetInventory returns the active tenant's items through the ownership
// filter.
func (s *Service) GetInventory(ctx context.Context, tenant *models.Tenant) ([]models.InventoryItem, error) {
	items, err := store.LoadTable[models.InventoryItem](ctx, s.store, store.TableInventory)
	if err != nil {
		return nil, err
	}
	return store.FilterOwned(items, tenant), nil
}

// GetSales returns the active tenant's sales ledger.
func (s *Service) GetSales(ctx context.Context, tenant *models.Tenant) ([]models.Sale, error) {
	sales, err := store.LoadTable[models.Sale](ctx, s.store, store.TableSales)
	if err != nil {
		return nil, err
	}
	return store.FilterOwned(sales, tenant), nil
}

// GetPurchases returns the active tenant's purchase ledger.
func (s *Service) GetPurchases(ctx context.Context, tenant *models.Tenant) ([]models.Purchase, error) {
	purchases, err := store.LoadTable[models.Purchase](ctx, s.store, store.TablePurchases)
	if err != nil {
		return nil, err
	}
	return store.FilterOwned(purchases, tenant), nil
}

func findItem(items []models.InventoryItem, owner, itemName string) int {
	for i := range items {
		if items[i].Owner == owner && strings.EqualFold(items[i].ItemName, itemName) {
			return i
		}
	}
	return -1
}

func normalizeDate(date string) (string, error) {
	if date == "" {
		return time.Now().Format(dateLayout), nil
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return "", fmt.Errorf("validation: date must be YYYY-MM-DD: %w", err)
	}
	return date, nil
}
