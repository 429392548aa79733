package accounts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sbdiallo/bizstock/internal/domain/models"
	"github.com/sbdiallo/bizstock/internal/errs"
	"github.com/sbdiallo/bizstock/internal/store"
	"github.com/sbdiallo/bizstock/internal/store/memory"
)

type fakePusher struct {
	pushes []string
}

func (f *fakePusher) Push(table string, _ any) {
	f.pushes = append(f.pushes, table)
}

func newService(t *testing.T) (*Service, *memory.Store, *fakePusher) {
	t.Helper()
	s := memory.NewStore()
	admin := models.Tenant{Username: "admin", Password: "admin123"}
	require.NoError(t, store.Bootstrap(context.Background(), s, admin))

	pusher := &fakePusher{}
	return NewService(s, pusher, nil), s, pusher
}

func TestRegister_CreatesPendingTenant(t *testing.T) {
	svc, _, pusher := newService(t)

	tenant, err := svc.Register(context.Background(), RegisterInput{
		CompanyName: "Acme Ltd",
		Username:    "Acme",
		Password:    "secret",
	})
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, tenant.Status)
	require.Equal(t, models.RoleUser, tenant.Role)
	require.NotEmpty(t, tenant.ID)
	require.Equal(t, []string{store.TableUsers}, pusher.pushes)
}

func TestRegister_DuplicateUsernameCaseInsensitive(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Username: "Acme", Password: "a"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Username: "ACME", Password: "b"})
	require.ErrorIs(t, err, errs.ErrDuplicateTenant)
}

func TestLogin_ApprovalGate(t *testing.T) {
	svc, s, _ := newService(t)
	ctx := context.Background()

	tenant, err := svc.Register(ctx, RegisterInput{Username: "Acme", Password: "secret"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "Acme", "secret")
	require.ErrorIs(t, err, errs.ErrNotApproved)

	admin := &models.Tenant{ID: models.PrivilegedTenantID, Username: "admin"}
	_, err = svc.UpdateStatus(ctx, admin, tenant.ID, models.StatusApproved)
	require.NoError(t, err)

	got, err := svc.Login(ctx, "Acme", "secret")
	require.NoError(t, err)
	require.Equal(t, "Acme", got.Username)

	// Approval survives a reload from the store.
	users, err := store.LoadTable[models.Tenant](ctx, s, store.TableUsers)
	require.NoError(t, err)
	for _, u := range users {
		if u.ID == tenant.ID {
			require.Equal(t, models.StatusApproved, u.Status)
		}
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Username: "Acme", Password: "secret"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "Acme", "wrong")
	require.ErrorIs(t, err, errs.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody", "secret")
	require.ErrorIs(t, err, errs.ErrInvalidCredentials)
}

func TestLogin_PrivilegedBypassesApproval(t *testing.T) {
	svc, _, _ := newService(t)

	got, err := svc.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	require.True(t, got.Privileged())
}

func TestResetPassword(t *testing.T) {
	svc, _, pusher := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Username: "Acme", Password: "old"})
	require.NoError(t, err)

	require.ErrorIs(t, svc.ResetPassword(ctx, "Acme", "wrong", "new"), errs.ErrInvalidCredentials)
	require.NoError(t, svc.ResetPassword(ctx, "Acme", "old", "new"))
	require.Len(t, pusher.pushes, 2, "register and reset both push")

	_, err = svc.Login(ctx, "Acme", "old")
	require.ErrorIs(t, err, errs.ErrInvalidCredentials)
}

func TestUpdateStatus_RequiresPrivilege(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	tenant, err := svc.Register(ctx, RegisterInput{Username: "Acme", Password: "pw"})
	require.NoError(t, err)

	regular := &models.Tenant{ID: "usr-x", Username: "Globex"}
	_, err = svc.UpdateStatus(ctx, regular, tenant.ID, models.StatusApproved)
	require.ErrorIs(t, err, errs.ErrForbidden)

	admin := &models.Tenant{ID: models.PrivilegedTenantID}
	_, err = svc.UpdateStatus(ctx, admin, models.PrivilegedTenantID, models.StatusRejected)
	require.ErrorIs(t, err, errs.ErrForbidden, "the admin account itself is immutable")
}

func TestDelete_LocalOnly(t *testing.T) {
	svc, _, pusher := newService(t)
	ctx := context.Background()

	tenant, err := svc.Register(ctx, RegisterInput{Username: "Acme", Password: "pw"})
	require.NoError(t, err)
	pushesBefore := len(pusher.pushes)

	admin := &models.Tenant{ID: models.PrivilegedTenantID}
	require.NoError(t, svc.Delete(ctx, admin, tenant.ID))

	require.Len(t, pusher.pushes, pushesBefore, "deletes are not propagated")

	tenants, err := svc.List(ctx, admin)
	require.NoError(t, err)
	require.Len(t, tenants, 1, "only the admin remains")

	require.ErrorIs(t, svc.Delete(ctx, admin, "usr-missing"), errs.ErrNotFound)
}
