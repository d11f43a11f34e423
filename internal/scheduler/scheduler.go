package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/sales-manager/internal/config"
	"github.com/mamadbah2/sales-manager/internal/service/sales"
)

const refreshTimeout = 30 * time.Second

// Loader reloads the sales list.
type Loader interface {
	Load(ctx context.Context) sales.State
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron   *cron.Cron
	loader Loader
	cfg    config.RefreshConfig
	logger *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.RefreshConfig, loader Loader, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:   cron.New(),
		loader: loader,
		cfg:    cfg,
		logger: logger,
	}
}

// Start registers the refresh job and starts the cron loop. It is a no-op
// when no schedule is configured.
func (s *Scheduler) Start() error {
	if s.cfg.Schedule == "" {
		s.logger.Info("sales refresh disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.cfg.Schedule, s.refresh); err != nil {
		return fmt.Errorf("schedule sales refresh %q: %w", s.cfg.Schedule, err)
	}

	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.Schedule))
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running refresh to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	state := s.loader.Load(ctx)
	if state.Error != "" {
		s.logger.Warn("scheduled sales refresh failed", zap.String("error", state.Error))
		return
	}
	s.logger.Debug("scheduled sales refresh done", zap.Int("count", len(state.Sales)))
}
