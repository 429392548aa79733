package store

import (
	"context"
	"fmt"

	"github.com/sbdiallo/bizstock/internal/domain/models"
)

// Bootstrap provisions defaults for every table and scalar entry, then
// re-asserts the privileged tenant. It runs on every process start and is
// idempotent.
func Bootstrap(ctx context.Context, s Store, admin models.Tenant) error {
	for _, key := range TableKeys() {
		if _, err := s.GetTable(ctx, key); err != nil {
			return fmt.Errorf("provision table %s: %w", key, err)
		}
	}
	for _, key := range ValueKeys() {
		if _, err := s.GetValue(ctx, key); err != nil {
			return fmt.Errorf("provision value %s: %w", key, err)
		}
	}

	return EnsureAdmin(ctx, s, admin)
}

// EnsureAdmin upserts the privileged tenant into the users table, replacing
// any stored copy. Stored mutations to the admin account (including a
// password change that arrived through a remote snapshot) do not survive a
// restart; operators rotate the credentials through configuration.
func EnsureAdmin(ctx context.Context, s Store, admin models.Tenant) error {
	admin.ID = models.PrivilegedTenantID
	admin.Role = models.RoleAdmin
	admin.Status = models.StatusApproved

	users, err := LoadTable[models.Tenant](ctx, s, TableUsers)
	if err != nil {
		return err
	}

	replaced := false
	for i := range users {
		if users[i].ID == models.PrivilegedTenantID {
			users[i] = admin
			replaced = true
			break
		}
	}
	if !replaced {
		users = append([]models.Tenant{admin}, users...)
	}

	return SaveTable(ctx, s, TableUsers, users)
}
