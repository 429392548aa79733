package store

import "github.com/sbdiallo/bizstock/internal/domain/models"

// FilterOwned restricts a table's records to those owned by the active
// tenant. The policy is strict default-deny:
//   - no active tenant: nothing is visible;
//   - the privileged tenant: nothing is visible (it administers accounts
//     but never reads owned business data through this path);
//   - otherwise: exact, case-sensitive match on the owner field. Rows with
//     an empty owner are excluded, never leaked.
func FilterOwned[T models.Owned](records []T, active *models.Tenant) []T {
	if active == nil || active.Privileged() {
		return nil
	}

	out := make([]T, 0, len(records))
	for _, rec := range records {
		owner := rec.OwnerName()
		if owner == "" || owner != active.Username {
			continue
		}
		out = append(out, rec)
	}
	return out
}
