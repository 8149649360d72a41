package dating

import (
	"context"
	"log"
	"time"
)

type Scheduler struct {
	service  Service
	syncHour int
}

func NewScheduler(service Service, syncHour int) *Scheduler {
	return &Scheduler{service: service, syncHour: syncHour}
}

func (s *Scheduler) Start(ctx context.Context) {
	// Daily bulk QCS sync
	go s.runDaily(ctx, s.syncHour, 0, "qcs sync", func(ctx context.Context) error {
		_, err := s.service.SyncScores(ctx)
		return err
	})

	// Cleanup stale pair scores daily at 3 AM
	go s.runDaily(ctx, 3, 0, "score cleanup", s.service.CleanupStaleScores)
}

func (s *Scheduler) runDaily(ctx context.Context, hour, minute int, name string, task func(context.Context) error) {
	for {
		now := time.Now()
		timer := time.NewTimer(nextRun(now, hour, minute).Sub(now))

		select {
		case <-timer.C:
			if err := task(ctx); err != nil {
				log.Printf("Scheduled task %s failed: %v", name, err)
			}
		case <-ctx.Done():
			timer.Stop()
			return
		}
	}
}

// nextRun is the next hour:minute strictly after now, in now's location.
func nextRun(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
