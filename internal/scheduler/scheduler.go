// Package scheduler optionally re-runs reconciliation on a cron schedule.
// The default is a single startup pull; operators opt in to periodic
// re-syncs via configuration.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	syncengine "github.com/sbdiallo/bizstock/internal/sync"
)

// Scheduler manages the periodic reconciliation job.
type Scheduler struct {
	cron     *cron.Cron
	engine   *syncengine.Engine
	schedule string
	logger   *zap.Logger
}

// NewScheduler creates a scheduler for the given cron expression. An empty
// expression disables scheduling entirely.
func NewScheduler(schedule string, engine *syncengine.Engine, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:     cron.New(),
		engine:   engine,
		schedule: schedule,
		logger:   logger,
	}
}

// Start registers and starts the re-sync job, if one is configured.
func (s *Scheduler) Start() {
	if s.schedule == "" {
		s.logger.Info("periodic re-sync disabled")
		return
	}

	if _, err := s.cron.AddFunc(s.schedule, s.runReconcile); err != nil {
		s.logger.Error("failed to schedule re-sync", zap.String("schedule", s.schedule), zap.Error(err))
		return
	}

	s.logger.Info("periodic re-sync scheduled", zap.String("schedule", s.schedule))
	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) runReconcile() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// Failures are already absorbed and logged by the engine.
	_ = s.engine.Reconcile(ctx)
}
