package service

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartSessionSweeper removes expired table sessions on an interval. Expiry
// itself is enforced by the lookup queries; this is housekeeping so the
// sessions table does not grow without bound.
func StartSessionSweeper(repo TableRepository, interval time.Duration) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			n, err := repo.EndExpiredSessions(time.Now())
			if err != nil {
				log.Printf("[table-svc] session sweep failed: %v", err)
				return
			}
			if n > 0 {
				log.Printf("[table-svc] swept %d expired table sessions", n)
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	s.Start()
	return s, nil
}
