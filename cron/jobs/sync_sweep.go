// Package jobs holds cron jobs that need database access. Each job
// registers itself via cron.Register from init(); importing this
// package (from the server or CLI entrypoint) is what enables them.
package jobs

import (
	"context"
	"log"

	"restaurant.GO/config"
	"restaurant.GO/cron"
	syncService "restaurant.GO/service/sync"
)

func init() {
	cron.Register("syncsweep", "@every 5m", runSyncSweep)
}

// runSyncSweep retries the push of completed-but-unsynced special
// records into the sales module.
func runSyncSweep(...string) {
	db, err := config.NewSpecialDB()
	if err != nil {
		log.Printf("syncsweep: open special db: %v", err)
		return
	}
	config.LoadAppConfig()
	api := syncService.NewHTTPSalesAPI(config.AppConfig.SalesAPIBaseURL, config.AppConfig.SalesAPIKey)
	svc := syncService.NewService(db, api)

	result := svc.SweepPending(context.Background())
	if result.Synced > 0 || result.Failed > 0 {
		log.Printf("syncsweep: synced=%d failed=%d", result.Synced, result.Failed)
	}
}
