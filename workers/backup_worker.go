package workers

import (
	"context"
	"log"
	"time"

	"golf-quota-tracker/services"
)

// PollBackups pushes a snapshot of the document to R2 on a fixed interval.
// Failures are logged and retried next tick; the worker stops with the
// context.
func PollBackups(ctx context.Context, backups *services.BackupService, interval time.Duration) {
	log.Printf("Starting periodic backup worker (every %s)...", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Backup worker stopped.")
			return
		case <-ticker.C:
			url, err := backups.Snapshot()
			if err != nil {
				log.Printf("❌ Backup snapshot failed: %v", err)
				continue
			}
			log.Printf("✅ Backup snapshot uploaded: %s", url)
		}
	}
}
