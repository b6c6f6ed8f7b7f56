package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"fridgeagent/internal/config"
	"fridgeagent/internal/service/alerts"
)

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron      *cron.Cron
	alertsSvc *alerts.Service
	cfg       config.DigestConfig
	logger    *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.DigestConfig, alertsSvc *alerts.Service, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("unknown timezone, falling back to UTC", zap.String("timezone", cfg.Timezone))
		location = time.UTC
	}

	return &Scheduler{
		cron:      cron.New(cron.WithLocation(location)),
		alertsSvc: alertsSvc,
		cfg:       cfg,
		logger:    logger,
	}
}

// Start registers the daily digest job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.runDailyDigest); err != nil {
		s.logger.Error("failed to schedule daily digest", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runDailyDigest() {
	s.logger.Info("generating daily alert digest")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	digest, err := s.alertsSvc.RunDigest(ctx)
	if err != nil {
		s.logger.Error("failed to generate daily digest", zap.Error(err))
		return
	}

	s.logger.Info("daily digest saved",
		zap.Int("total_items", digest.TotalItems),
		zap.Int("expiring", digest.ExpiringCount),
		zap.Int("expired", digest.ExpiredCount),
		zap.Int("low_stock", digest.LowStockCount))
}
