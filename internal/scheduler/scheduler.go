// Package scheduler runs the end-of-day analytics snapshot job.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler triggers the daily stats snapshot shortly before midnight UTC.
type Scheduler struct {
	cron         *cron.Cron
	ctx          context.Context
	cancel       context.CancelFunc
	snapshotFunc func(ctx context.Context) error
}

func New() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		ctx:    ctx,
		cancel: cancel,
	}
}

// SetSnapshotFunction sets the job run once per day.
func (s *Scheduler) SetSnapshotFunction(f func(ctx context.Context) error) {
	s.snapshotFunc = f
}

func (s *Scheduler) Start() error {
	if s.snapshotFunc == nil {
		log.Println("snapshot function not set, scheduler will not run")
		return nil
	}

	// 23:55 UTC, so the snapshot covers nearly the whole day it is keyed to.
	_, err := s.cron.AddFunc("55 23 * * *", func() {
		if err := s.snapshotFunc(s.ctx); err != nil {
			log.Printf("daily stats snapshot failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Println("scheduler started - daily stats snapshot at 23:55 UTC")
	return nil
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	if s.cancel != nil {
		s.cancel()
	}
	log.Println("scheduler stopped")
}

func (s *Scheduler) IsRunning() bool {
	return s.cron != nil && len(s.cron.Entries()) > 0
}
