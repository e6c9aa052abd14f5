package jobs

import (
	"log"
	"time"

	"github.com/cartunez-in/cartunez-backend/internal/storage"
)

// CleanupJob periodically purges expired OTP requests so stale codes do not
// accumulate in the store.
type CleanupJob struct {
	store    storage.Store
	interval time.Duration
	stop     chan struct{}
}

// NewCleanupJob creates a cleanup job scheduler
func NewCleanupJob(store storage.Store) *CleanupJob {
	return &CleanupJob{
		store:    store,
		interval: 10 * time.Minute,
		stop:     make(chan struct{}),
	}
}

// Start begins the periodic cleanup loop
func (j *CleanupJob) Start() {
	log.Printf("Starting OTP cleanup job (every %v)", j.interval)
	go j.run()
}

// Stop halts the cleanup loop
func (j *CleanupJob) Stop() {
	close(j.stop)
	log.Println("Stopping OTP cleanup job...")
}

func (j *CleanupJob) run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			deleted, err := j.store.DeleteExpiredOtpRequests()
			if err != nil {
				log.Printf("Failed to purge expired OTP requests: %v", err)
				continue
			}
			if deleted > 0 {
				log.Printf("Purged %d expired OTP requests", deleted)
			}
		case <-j.stop:
			return
		}
	}
}
