// Package banner manages the two site-wide banner settings. Unlike record
// tables these are scalar values; remote pushes travel under the shared
// "banner" key discriminated by position.
package banner

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sbdiallo/bizstock/internal/domain/models"
	"github.com/sbdiallo/bizstock/internal/errs"
	"github.com/sbdiallo/bizstock/internal/store"
	syncengine "github.com/sbdiallo/bizstock/internal/sync"
)

// Positions accepted by Set.
const (
	PositionHorizontal = "horizontal"
	PositionVertical   = "vertical"
)

// Service mutates the banner values.
type Service struct {
	store  store.Store
	pusher syncengine.Pusher
	logger *zap.Logger
}

// NewService wires a banner service.
func NewService(s store.Store, pusher syncengine.Pusher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: s, pusher: pusher, logger: logger}
}

// Set replaces one banner value. Privileged only.
func (s *Service) Set(ctx context.Context, actor *models.Tenant, position, value string) error {
	if actor == nil || !actor.Privileged() {
		return errs.ErrForbidden
	}

	var key string
	switch position {
	case PositionHorizontal:
		key = store.KeyBannerHorizontal
	case PositionVertical:
		key = store.KeyBannerVertical
	default:
		return fmt.Errorf("validation: unknown banner position %q", position)
	}

	if err := s.store.PutValue(ctx, key, value); err != nil {
		return err
	}
	s.pusher.Push(store.TableBanner, models.BannerSetting{Key: position, Value: value})

	s.logger.Info("banner updated", zap.String("position", position))
	return nil
}

// Get returns both banner values. Public read; no ownership applies.
func (s *Service) Get(ctx context.Context) (horizontal, vertical string, err error) {
	horizontal, err = s.store.GetValue(ctx, store.KeyBannerHorizontal)
	if err != nil {
		return "", "", err
	}
	vertical, err = s.store.GetValue(ctx, store.KeyBannerVertical)
	if err != nil {
		return "", "", err
	}
	return horizontal, vertical, nil
}
