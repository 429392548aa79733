// Package sync keeps the local record store and the remote sheet-backed
// store loosely converged: one snapshot reconciliation at startup and a
// best-effort, fire-and-forget push after every local write. Sync failures
// are absorbed; they never block local reads or writes.
package sync

import (
	"context"
	stdsync "sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/sbdiallo/bizstock/internal/domain/models"
	"github.com/sbdiallo/bizstock/internal/remote"
	"github.com/sbdiallo/bizstock/internal/store"
)

// State tracks the engine through its process lifetime. LocalReady is the
// steady state; the sync states are transient and always fall back to it.
type State int32

const (
	StateUninitialized State = iota
	StateLocalReady
	StateSyncPending
	StateSyncApplied
	StateSyncFailed
)

func (s State) String() string {
	switch s {
	case StateLocalReady:
		return "local_ready"
	case StateSyncPending:
		return "sync_pending"
	case StateSyncApplied:
		return "sync_applied"
	case StateSyncFailed:
		return "sync_failed"
	default:
		return "uninitialized"
	}
}

// Gateway is the remote-store surface the engine drives.
type Gateway interface {
	Configured() bool
	PullSnapshot(ctx context.Context) (*remote.Snapshot, error)
	PushRecord(ctx context.Context, key string, record any) error
	PushTable(ctx context.Context, key string, records any) error
}

// Pusher is the write-propagation contract domain operations depend on.
type Pusher interface {
	// Push replicates one just-written record. It returns immediately; the
	// remote write is unordered, unacknowledged and dropped on failure.
	Push(table string, record any)
}

// Engine orchestrates startup reconciliation and write propagation.
type Engine struct {
	store       store.Store
	gateway     Gateway
	admin       models.Tenant
	logger      *zap.Logger
	pushTimeout time.Duration

	state atomic.Int32
	wg    stdsync.WaitGroup
}

// NewEngine wires an engine over an already-bootstrapped store.
func NewEngine(s store.Store, gateway Gateway, admin models.Tenant, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		store:       s,
		gateway:     gateway,
		admin:       admin,
		logger:      logger,
		pushTimeout: 15 * time.Second,
	}
	e.state.Store(int32(StateLocalReady))
	return e
}

// State returns the engine's current lifecycle state.
func (e *Engine) State() State {
	return State(e.state.Load())
}

// Reconcile pulls one remote snapshot and merges it into the local store.
//
// Merge policy: a local table is replaced only when the remote payload for
// it is a non-empty, well-typed array. An empty or missing remote table is
// read as "not provisioned remotely yet" and never erases local data. This
// conflates deliberate remote emptiness with absence; the wire format
// carries nothing to tell them apart. Scalar settings overwrite local when
// non-empty. Failures leave the store untouched and are only logged.
func (e *Engine) Reconcile(ctx context.Context) error {
	if !e.gateway.Configured() {
		e.logger.Info("remote endpoint not configured, skipping reconciliation")
		return nil
	}

	e.state.Store(int32(StateSyncPending))

	snap, err := e.gateway.PullSnapshot(ctx)
	if err != nil {
		e.state.Store(int32(StateSyncFailed))
		e.logger.Warn("snapshot pull failed, keeping local cache", zap.Error(err))
		return err
	}

	for _, key := range store.TableKeys() {
		records := snap.Tables[key]
		if len(records) == 0 {
			continue
		}
		if err := e.store.PutTable(ctx, key, records); err != nil {
			e.state.Store(int32(StateSyncFailed))
			e.logger.Error("failed applying remote table", zap.String("table", key), zap.Error(err))
			return err
		}
		e.logger.Info("remote table applied", zap.String("table", key), zap.Int("records", len(records)))
	}

	for _, key := range store.ValueKeys() {
		value := snap.Values[key]
		if value == "" {
			continue
		}
		if err := e.store.PutValue(ctx, key, value); err != nil {
			e.state.Store(int32(StateSyncFailed))
			e.logger.Error("failed applying remote value", zap.String("key", key), zap.Error(err))
			return err
		}
	}

	// A remote users table may have overwritten the privileged tenant;
	// re-assert it like the bootstrap does.
	if len(snap.Tables[store.TableUsers]) > 0 {
		if err := store.EnsureAdmin(ctx, e.store, e.admin); err != nil {
			e.state.Store(int32(StateSyncFailed))
			e.logger.Error("failed re-asserting admin after merge", zap.Error(err))
			return err
		}
	}

	e.state.Store(int32(StateSyncApplied))
	e.logger.Info("startup reconciliation applied")
	return nil
}

// Push replicates one record to the remote store without blocking the
// caller. The push runs on its own goroutine with its own timeout; a
// failure is logged and dropped, never retried.
func (e *Engine) Push(table string, record any) {
	if !e.gateway.Configured() {
		return
	}

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), e.pushTimeout)
		defer cancel()

		if err := e.gateway.PushRecord(ctx, table, record); err != nil {
			e.logger.Warn("record push dropped",
				zap.String("table", table),
				zap.Error(err))
		}
	}()
}

// ExportAll bulk-saves every table to the remote store. Unlike Push this is
// synchronous and reports failure; it backs the manual admin export.
func (e *Engine) ExportAll(ctx context.Context) error {
	if !e.gateway.Configured() {
		return remote.ErrNotConfigured
	}

	for _, key := range store.TableKeys() {
		records, err := e.store.GetTable(ctx, key)
		if err != nil {
			return err
		}
		if err := e.gateway.PushTable(ctx, key, records); err != nil {
			return err
		}
	}

	banners := make([]models.BannerSetting, 0, 2)
	if v, err := e.store.GetValue(ctx, store.KeyBannerHorizontal); err == nil && v != "" {
		banners = append(banners, models.BannerSetting{Key: "horizontal", Value: v})
	}
	if v, err := e.store.GetValue(ctx, store.KeyBannerVertical); err == nil && v != "" {
		banners = append(banners, models.BannerSetting{Key: "vertical", Value: v})
	}
	if len(banners) > 0 {
		if err := e.gateway.PushTable(ctx, store.TableBanner, banners); err != nil {
			return err
		}
	}

	e.logger.Info("full export pushed")
	return nil
}

// Drain waits for in-flight pushes, up to the given timeout. Used at
// shutdown; pushes still pending afterwards are dropped by contract.
func (e *Engine) Drain(timeout time.Duration) {
	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		e.logger.Warn("shutdown before all pushes completed")
	}
}
