// services/scheduler.go
package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartSessionSweeper expires stale admin sessions in the background.
func (s *AuthService) StartSessionSweeper() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(func() {
			if removed := s.SweepExpired(); removed > 0 {
				log.Printf("[Scheduler] Expired %d admin session(s)", removed)
			}
		}),
	)
}
