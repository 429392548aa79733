package expenses

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

func TestAdd_AppendsAndPushes(t *testing.T) {
	pusher := &fakePusher{}
	svc := NewService(memory.NewStore(), pusher, nil)
	ctx := context.Background()
	acme := &models.Tenant{ID: "usr-1", Username: "Acme"}

	expense, err := svc.Add(ctx, acme, "Rent", 1200, "2026-08-01")
	require.NoError(t, err)
	require.Equal(t, "Acme", expense.Owner)
	require.NotEmpty(t, expense.ID)
	require.Equal(t, []string{store.TableExpenses}, pusher.pushes)

	got, err := svc.List(ctx, acme)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, 1200.0, got[0].Amount)
}

func TestAdd_Validation(t *testing.T) {
	svc := NewService(memory.NewStore(), &fakePusher{}, nil)
	ctx := context.Background()
	acme := &models.Tenant{ID: "usr-1", Username: "Acme"}

	_, err := svc.Add(ctx, acme, "", 10, "")
	require.Error(t, err)

	_, err = svc.Add(ctx, acme, "Rent", 0, "")
	require.Error(t, err)

	_, err = svc.Add(ctx, nil, "Rent", 10, "")
	require.ErrorIs(t, err, errs.ErrForbidden)
}

func TestList_FilteredByOwner(t *testing.T) {
	svc := NewService(memory.NewStore(), &fakePusher{}, nil)
	ctx := context.Background()
	acme := &models.Tenant{ID: "usr-1", Username: "Acme"}
	globex := &models.Tenant{ID: "usr-2", Username: "Globex"}

	_, err := svc.Add(ctx, acme, "Rent", 1200, "")
	require.NoError(t, err)
	_, err = svc.Add(ctx, globex, "Power", 300, "")
	require.NoError(t, err)

	got, err := svc.List(ctx, globex)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Power", got[0].Name)
}
