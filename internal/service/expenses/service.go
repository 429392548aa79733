// Package expenses implements the expense ledger.
package expenses

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

// Service mutates the expenses table.
type Service struct {
	store  store.Store
	pusher syncengine.Pusher
	logger *zap.Logger
}

// NewService wires an expenses service.
func NewService(s store.Store, pusher syncengine.Pusher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: s, pusher: pusher, logger: logger}
}

// Add appends one immutable expense row and pushes it.
func (s *Service) Add(ctx context.Context, tenant *models.Tenant, name string, amount float64, date string) (*models.Expense, error) {
	if tenant == nil || tenant.Privileged() {
		return nil, errs.ErrForbidden
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("validation: expense name is required")
	}
	if amount <= 0 {
		return nil, fmt.Errorf("validation: amount must be positive")
	}
	if date == "" {
		date = time.Now().Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("validation: date must be YYYY-MM-DD: %w", err)
	}

	expense := models.Expense{
		ID:     models.NewID(models.PrefixExpense),
		Owner:  tenant.Username,
		Name:   name,
		Amount: amount,
		Date:   date,
	}

	records, err := store.LoadTable[models.Expense](ctx, s.store, store.TableExpenses)
	if err != nil {
		return nil, err
	}
	records = append(records, expense)
	if err := store.SaveTable(ctx, s.store, store.TableExpenses, records); err != nil {
		return nil, err
	}
	s.pusher.Push(store.TableExpenses, expense)

	s.logger.Info("expense recorded", zap.String("owner", tenant.Username), zap.Float64("amount", amount))
	return &expense, nil
}

// List returns the active tenant's expenses through the ownership filter.
func (s *Service) List(ctx context.Context, tenant *models.Tenant) ([]models.Expense, error) {
	records, err := store.LoadTable[models.Expense](ctx, s.store, store.TableExpenses)
	if err != nil {
		return nil, err
	}
	return store.FilterOwned(records, tenant), nil
}
