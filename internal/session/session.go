// Package session holds the active tenant for each logged-in context. The
// active tenant used to be ambient global state; modelling it as an explicit
// session keeps concurrent server-side contexts from interfering.
package session

import (
	"context"
	stdsync "sync"
	"time"

	"github.com/google/uuid"

	"github.com/sbdiallo/bizstock/internal/auth"
	"github.com/sbdiallo/bizstock/internal/domain/models"
	"github.com/sbdiallo/bizstock/internal/errs"
)

// Manager stores the active tenant per session. Logout clears the stored
// record.
type Manager interface {
	// Create opens a session for the tenant and returns a bearer token.
	Create(ctx context.Context, tenant models.Tenant) (string, error)
	// Get resolves a bearer token to its active tenant.
	Get(ctx context.Context, token string) (*models.Tenant, error)
	// Clear ends the session identified by the token.
	Clear(ctx context.Context, token string) error
}

type memoryEntry struct {
	tenant  models.Tenant
	expires time.Time
}

// MemoryManager keeps sessions in-process. It serves tests and deployments
// without redis; sessions do not survive a restart.
type MemoryManager struct {
	mu       stdsync.RWMutex
	sessions map[string]memoryEntry
	secret   string
	ttl      time.Duration
}

// NewMemoryManager creates an in-process session manager.
func NewMemoryManager(secret string, ttl time.Duration) *MemoryManager {
	return &MemoryManager{
		sessions: make(map[string]memoryEntry),
		secret:   secret,
		ttl:      ttl,
	}
}

func (m *MemoryManager) Create(_ context.Context, tenant models.Tenant) (string, error) {
	sid := uuid.NewString()

	token, err := auth.GenerateToken(sid, tenant.Username, m.secret, m.ttl)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	m.sessions[sid] = memoryEntry{tenant: tenant, expires: time.Now().Add(m.ttl)}
	m.mu.Unlock()

	return token, nil
}

func (m *MemoryManager) Get(_ context.Context, token string) (*models.Tenant, error) {
	claims, err := auth.ParseToken(token, m.secret)
	if err != nil {
		return nil, errs.ErrNoSession
	}

	m.mu.RLock()
	entry, ok := m.sessions[claims.SessionID]
	m.mu.RUnlock()

	if !ok || time.Now().After(entry.expires) {
		return nil, errs.ErrNoSession
	}

	tenant := entry.tenant
	return &tenant, nil
}

func (m *MemoryManager) Clear(_ context.Context, token string) error {
	claims, err := auth.ParseToken(token, m.secret)
	if err != nil {
		return errs.ErrNoSession
	}

	m.mu.Lock()
	delete(m.sessions, claims.SessionID)
	m.mu.Unlock()
	return nil
}
