package scheduler

import (
	"context"
	"fmt"

	"fgd/internal/providers"
	"fgd/internal/services"
	"fgd/internal/structures"

	"github.com/robfig/cron/v3"
	"go.uber.org/atomic"
)

type SchedulerInterface interface {
	Init()
	Stop()
	RunNow(ctx context.Context) (services.RefreshResult, error)
}

// Scheduler repeats the refresh cycle on the configured interval. Runs
// never overlap: a tick that fires while a refresh is still in flight is
// skipped, not queued.
type Scheduler struct {
	config  *structures.Config
	logger  providers.Logger
	refresh services.RefreshServiceInterface
	cron    *cron.Cron
	running atomic.Bool
}

func NewScheduler(config *structures.Config, logger providers.Logger, refresh services.RefreshServiceInterface) SchedulerInterface {
	return &Scheduler{
		config:  config,
		logger:  logger,
		refresh: refresh,
	}
}

func (s *Scheduler) Init() {
	s.cron = cron.New()
	interval := s.config.Persistence.RefreshInterval

	_, err := s.cron.AddFunc(fmt.Sprintf("@every %s", interval), func() {
		if _, err := s.RunNow(context.Background()); err != nil {
			s.logger.Errorf(providers.TypeApp, "Scheduled refresh failed: %s", err)
		}
	})
	if err != nil {
		// A daemon without ticks serves stale data forever; make the
		// misconfiguration loud.
		s.logger.Errorf(providers.TypeApp, "Failed to schedule refresh every %s: %s", interval, err)
		return
	}

	s.cron.Start()
	s.logger.Infof(providers.TypeApp, "Scheduler started, refresh every %s", interval)
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) RunNow(ctx context.Context) (services.RefreshResult, error) {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Warnf(providers.TypeApp, "Refresh already in progress, skipping")
		return services.RefreshResult{}, nil
	}
	defer s.running.Store(false)

	return s.refresh.Run(ctx)
}
