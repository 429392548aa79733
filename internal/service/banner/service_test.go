package banner

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
	pushes []any
}

func (f *fakePusher) Push(_ string, record any) {
	f.pushes = append(f.pushes, record)
}

func TestSet_AdminOnly(t *testing.T) {
	svc := NewService(memory.NewStore(), &fakePusher{}, nil)
	ctx := context.Background()

	tenant := &models.Tenant{ID: "usr-1", Username: "Acme"}
	require.ErrorIs(t, svc.Set(ctx, tenant, PositionHorizontal, "hi"), errs.ErrForbidden)
	require.ErrorIs(t, svc.Set(ctx, nil, PositionHorizontal, "hi"), errs.ErrForbidden)
}

func TestSetAndGet(t *testing.T) {
	pusher := &fakePusher{}
	svc := NewService(memory.NewStore(), pusher, nil)
	ctx := context.Background()
	admin := &models.Tenant{ID: models.PrivilegedTenantID, Username: "admin"}

	require.NoError(t, svc.Set(ctx, admin, PositionHorizontal, "Summer sale"))
	require.NoError(t, svc.Set(ctx, admin, PositionVertical, "New arrivals"))
	require.Error(t, svc.Set(ctx, admin, "diagonal", "nope"))

	h, v, err := svc.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "Summer sale", h)
	require.Equal(t, "New arrivals", v)

	require.Len(t, pusher.pushes, 2)
	first, ok := pusher.pushes[0].(models.BannerSetting)
	require.True(t, ok)
	require.Equal(t, PositionHorizontal, first.Key)
}

func TestSet_UsesDistinctLocalKeys(t *testing.T) {
	s := memory.NewStore()
	svc := NewService(s, &fakePusher{}, nil)
	ctx := context.Background()
	admin := &models.Tenant{ID: models.PrivilegedTenantID}

	require.NoError(t, svc.Set(ctx, admin, PositionHorizontal, "only-h"))

	h, _ := s.GetValue(ctx, store.KeyBannerHorizontal)
	v, _ := s.GetValue(ctx, store.KeyBannerVertical)
	require.Equal(t, "only-h", h)
	require.Equal(t, "", v)
}
