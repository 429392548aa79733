package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sbdiallo/bizstock/internal/domain/models"
	"github.com/sbdiallo/bizstock/internal/errs"
)

const testSecret = "test-secret"

func TestMemoryManager_RoundTrip(t *testing.T) {
	m := NewMemoryManager(testSecret, time.Hour)
	ctx := context.Background()

	tenant := models.Tenant{ID: "usr-1", Username: "Acme", Role: models.RoleUser}
	token, err := m.Create(ctx, tenant)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := m.Get(ctx, token)
	require.NoError(t, err)
	require.Equal(t, "Acme", got.Username)
}

func TestMemoryManager_ClearEndsSession(t *testing.T) {
	m := NewMemoryManager(testSecret, time.Hour)
	ctx := context.Background()

	token, err := m.Create(ctx, models.Tenant{ID: "usr-1", Username: "Acme"})
	require.NoError(t, err)

	require.NoError(t, m.Clear(ctx, token))

	_, err = m.Get(ctx, token)
	require.ErrorIs(t, err, errs.ErrNoSession)
}

func TestMemoryManager_RejectsGarbageToken(t *testing.T) {
	m := NewMemoryManager(testSecret, time.Hour)

	_, err := m.Get(context.Background(), "not-a-token")
	require.ErrorIs(t, err, errs.ErrNoSession)
}

func TestMemoryManager_ExpiredSession(t *testing.T) {
	m := NewMemoryManager(testSecret, -time.Minute)
	ctx := context.Background()

	token, err := m.Create(ctx, models.Tenant{ID: "usr-1", Username: "Acme"})
	require.NoError(t, err)

	_, err = m.Get(ctx, token)
	require.ErrorIs(t, err, errs.ErrNoSession)
}

func TestMemoryManager_TokenFromOtherSecretRejected(t *testing.T) {
	a := NewMemoryManager("secret-a", time.Hour)
	b := NewMemoryManager("secret-b", time.Hour)
	ctx := context.Background()

	token, err := a.Create(ctx, models.Tenant{ID: "usr-1", Username: "Acme"})
	require.NoError(t, err)

	_, err = b.Get(ctx, token)
	require.ErrorIs(t, err, errs.ErrNoSession)
}
