// Package accounts implements the tenant lifecycle: registration, login,
// approval, password reset and administrative delete.
package accounts

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sbdiallo/bizstock/internal/domain/models"
	"github.com/sbdiallo/bizstock/internal/errs"
	"github.com/sbdiallo/bizstock/internal/store"
	syncengine "github.com/sbdiallo/bizstock/internal/sync"
)

// Service mutates the users table and propagates each touched record.
type Service struct {
	store  store.Store
	pusher syncengine.Pusher
	logger *zap.Logger
}

// NewService wires an accounts service.
func NewService(s store.Store, pusher syncengine.Pusher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: s, pusher: pusher, logger: logger}
}

// RegisterInput is the self-service registration payload.
type RegisterInput struct {
	CompanyName   string
	Username      string
	ContactPerson string
	Password      string
}

// Register creates a Pending tenant. Usernames are unique
// case-insensitively and immutable afterwards.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.Tenant, error) {
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" || in.Password == "" {
		return nil, fmt.Errorf("validation: username and password are required")
	}

	users, err := store.LoadTable[models.Tenant](ctx, s.store, store.TableUsers)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Username, in.Username) {
			return nil, errs.ErrDuplicateTenant
		}
	}

	tenant := models.Tenant{
		ID:            models.NewID(models.PrefixTenant),
		CompanyName:   in.CompanyName,
		Username:      in.Username,
		ContactPerson: in.ContactPerson,
		Password:      in.Password,
		Role:          models.RoleUser,
		Status:        models.StatusPending,
	}
	users = append(users, tenant)

	if err := store.SaveTable(ctx, s.store, store.TableUsers, users); err != nil {
		return nil, err
	}
	s.pusher.Push(store.TableUsers, tenant)

	s.logger.Info("tenant registered", zap.String("username", tenant.Username))
	return &tenant, nil
}

// Login checks credentials and the approval gate. The privileged tenant is
// always allowed through regardless of stored status.
func (s *Service) Login(ctx context.Context, username, password string) (*models.Tenant, error) {
	users, err := store.LoadTable[models.Tenant](ctx, s.store, store.TableUsers)
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if !strings.EqualFold(u.Username, username) {
			continue
		}
		if u.Password != password {
			return nil, errs.ErrInvalidCredentials
		}
		if !u.Privileged() && u.Status != models.StatusApproved {
			return nil, errs.ErrNotApproved
		}
		return &u, nil
	}

	return nil, errs.ErrInvalidCredentials
}

// ResetPassword replaces a tenant's password after verifying the current
// one, and propagates the updated record.
func (s *Service) ResetPassword(ctx context.Context, username, currentPassword, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("validation: new password is required")
	}

	users, err := store.LoadTable[models.Tenant](ctx, s.store, store.TableUsers)
	if err != nil {
		return err
	}

	for i := range users {
		if !strings.EqualFold(users[i].Username, username) {
			continue
		}
		if users[i].Password != currentPassword {
			return errs.ErrInvalidCredentials
		}

		users[i].Password = newPassword
		if err := store.SaveTable(ctx, s.store, store.TableUsers, users); err != nil {
			return err
		}
		s.pusher.Push(store.TableUsers, users[i])
		return nil
	}

	return errs.ErrNotFound
}

// UpdateStatus moves a tenant through the approval lifecycle. Privileged
// only; the admin account itself cannot be modified.
func (s *Service) UpdateStatus(ctx context.Context, actor *models.Tenant, tenantID string, status models.Status) (*models.Tenant, error) {
	if actor == nil || !actor.Privileged() {
		return nil, errs.ErrForbidden
	}
	if tenantID == models.PrivilegedTenantID {
		return nil, errs.ErrForbidden
	}
	switch status {
	case models.StatusPending, models.StatusApproved, models.StatusRejected:
	default:
		return nil, fmt.Errorf("validation: unknown status %q", status)
	}

	users, err := store.LoadTable[models.Tenant](ctx, s.store, store.TableUsers)
	if err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].ID != tenantID {
			continue
		}

		users[i].Status = status
		if err := store.SaveTable(ctx, s.store, store.TableUsers, users); err != nil {
			return nil, err
		}
		s.pusher.Push(store.TableUsers, users[i])

		s.logger.Info("tenant status updated",
			zap.String("tenant", users[i].Username),
			zap.String("status", string(status)))
		updated := users[i]
		return &updated, nil
	}

	return nil, errs.ErrNotFound
}

// Delete removes a tenant record locally. Deletes are not propagated over
// the push channel (it has no delete action), a known asymmetry.
func (s *Service) Delete(ctx context.Context, actor *models.Tenant, tenantID string) error {
	if actor == nil || !actor.Privileged() {
		return errs.ErrForbidden
	}
	if tenantID == models.PrivilegedTenantID {
		return errs.ErrForbidden
	}

	users, err := store.LoadTable[models.Tenant](ctx, s.store, store.TableUsers)
	if err != nil {
		return err
	}

	kept := users[:0]
	found := false
	for _, u := range users {
		if u.ID == tenantID {
			found = true
			continue
		}
		kept = append(kept, u)
	}
	if !found {
		return errs.ErrNotFound
	}

	return store.SaveTable(ctx, s.store, store.TableUsers, kept)
}

// List returns every tenant record. Privileged only.
func (s *Service) List(ctx context.Context, actor *models.Tenant) ([]models.Tenant, error) {
	if actor == nil || !actor.Privileged() {
		return nil, errs.ErrForbidden
	}
	return store.LoadTable[models.Tenant](ctx, s.store, store.TableUsers)
}
