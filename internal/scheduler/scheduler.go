// Package scheduler drives the periodic overdue sweep. No background thread
// owns rental state; the cron entry only invokes the lifecycle service's
// batch recalculation with a fresh reference instant.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/motorent/rental-service/internal/service"
	"github.com/motorent/rental-service/pkg/datetime"
)

type Scheduler struct {
	cron *cron.Cron
	svc  *service.Service
	log  *zap.Logger
}

// NewScheduler registers the overdue sweep at the given cron spec
// (e.g. "*/5 * * * *").
func NewScheduler(spec string, svc *service.Service, log *zap.Logger) (*Scheduler, error) {
	c := cron.New(cron.WithLocation(datetime.WIB))
	s := &Scheduler{
		cron: c,
		svc:  svc,
		log:  log.Named("scheduler"),
	}
	if _, err := c.AddFunc(spec, s.sweepOverdue); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) sweepOverdue() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	items, err := s.svc.FindOverdue(ctx, datetime.Now())
	if err != nil {
		s.log.Error("overdue sweep", zap.Error(err))
		return
	}
	s.log.Debug("overdue sweep finished", zap.Int("overdue", len(items)))
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
