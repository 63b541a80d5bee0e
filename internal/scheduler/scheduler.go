package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"pocket-sommelier/internal/session"
)

// Scheduler periodically drops idle sessions so the in-memory session map
// does not grow for the lifetime of the process.
type Scheduler struct {
	cron     *cron.Cron
	sessions *session.Manager
	ttl      time.Duration
}

func New(sessions *session.Manager, ttl time.Duration) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(time.UTC)),
		sessions: sessions,
		ttl:      ttl,
	}
}

// Start schedules an hourly sweep of sessions idle longer than the TTL.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc("@hourly", func() {
		if dropped := s.sessions.ClearIdle(s.ttl); dropped > 0 {
			log.Printf("session sweep: dropped %d idle sessions", dropped)
		}
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("session sweep scheduled hourly (ttl=%s)", s.ttl)
	return nil
}

// Stop halts the sweep and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
