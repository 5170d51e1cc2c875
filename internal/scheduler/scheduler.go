package scheduler

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/sdiagne/loansched/internal/config"
	"github.com/sdiagne/loansched/internal/repository/cache"
)

// Scheduler runs periodic maintenance jobs. Its single job today sweeps the
// in-process response cache so expired entries do not pile up between reads.
type Scheduler struct {
	cron   *cron.Cron
	memory *cache.Memory
	cfg    config.Config
	logger *zap.Logger
}

// NewScheduler creates a new scheduler instance. memory may be nil when the
// Redis backend is active; Redis handles its own expiry.
func NewScheduler(cfg config.Config, memory *cache.Memory, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:   cron.New(),
		memory: memory,
		cfg:    cfg,
		logger: logger,
	}
}

// Start registers the cache sweep job and starts the cron loop.
func (s *Scheduler) Start() {
	if s.memory == nil {
		s.logger.Info("no in-process cache configured, scheduler idle")
		return
	}

	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.Janitor.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.Janitor.CronSchedule, s.sweepCache); err != nil {
		s.logger.Error("failed to schedule cache sweep", zap.Error(err))
		return
	}

	s.cron.Start()
}

// Stop stops the cron loop.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) sweepCache() {
	evicted := s.memory.Sweep()
	s.logger.Info("cache sweep completed",
		zap.Int("evicted", evicted),
		zap.Int("resident", s.memory.Len()))
}
