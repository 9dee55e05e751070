// Package scheduler wires the import run into a cron daemon.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"MarketImporter/internal/pipeline"
)

// Scheduler manages the recurring import task.
type Scheduler struct {
	Cron   *cron.Cron
	Runner *pipeline.Runner
	Ctx    context.Context
	Log    zerolog.Logger
}

// NewScheduler creates a scheduler around the given runner.
func NewScheduler(ctx context.Context, runner *pipeline.Runner, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		Cron:   cron.New(cron.WithSeconds()),
		Runner: runner,
		Ctx:    ctx,
		Log:    log.With().Str("component", "scheduler").Logger(),
	}
}

// Register adds the daily import task.
func (s *Scheduler) Register(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.importTask); err != nil {
		return fmt.Errorf("register daily import task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	s.Log.Info().Msg("scheduler stopped")
}

// RunNow executes the import task immediately (manual trigger / run-once mode).
func (s *Scheduler) RunNow() {
	s.importTask()
}

func (s *Scheduler) importTask() {
	if _, err := s.Runner.Run(s.Ctx); err != nil {
		s.Log.Error().Err(err).Msg("import run aborted")
	}
}
