package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"wordbuilder/internal/service"
)

// retentionSweepTime is when the daily purge runs, in UTC. Overnight
// for every school timezone the game is deployed in.
const retentionSweepTime = "03:00"

// Scheduler runs the application's background maintenance jobs
type Scheduler struct {
	scheduler      *gocron.Scheduler
	sessionService *service.SessionService
	retentionDays  int
}

// New creates a scheduler. retentionDays controls the inactive-session
// sweep; zero or negative disables it.
func New(sessionService *service.SessionService, retentionDays int) *Scheduler {
	return &Scheduler{
		scheduler:      gocron.NewScheduler(time.UTC),
		sessionService: sessionService,
		retentionDays:  retentionDays,
	}
}

// Start registers the jobs and runs them in the background
func (s *Scheduler) Start() {
	if s.retentionDays <= 0 {
		log.Println("Session retention sweep disabled")
		return
	}

	if _, err := s.scheduler.Every(1).Day().At(retentionSweepTime).Do(s.purgeInactiveSessions); err != nil {
		log.Printf("Failed to schedule retention sweep: %v", err)
		return
	}

	s.scheduler.StartAsync()
	log.Printf("Session retention sweep scheduled daily at %s UTC (inactive > %d days)",
		retentionSweepTime, s.retentionDays)
}

// Stop terminates all scheduled jobs
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// purgeInactiveSessions removes sessions idle past the retention cutoff
func (s *Scheduler) purgeInactiveSessions() {
	purged, err := s.sessionService.PurgeInactive(s.retentionDays)
	if err != nil {
		log.Printf("Retention sweep failed: %v", err)
		return
	}
	if purged > 0 {
		log.Printf("Retention sweep removed %d inactive sessions", purged)
	}
}
