package jobs

import (
	"log"

	"restaurant.GO/config"
	"restaurant.GO/cron"
	inventoryService "restaurant.GO/service/inventory"
)

func init() {
	cron.Register("dailyreport", "@daily", runDailyReport)
}

// runDailyReport logs receiving/issue counts for the past day and any
// items sitting at a warning level, so the morning shift sees what
// needs reordering without opening the dashboard.
func runDailyReport(...string) {
	db, err := config.NewDB()
	if err != nil {
		log.Printf("dailyreport: open db: %v", err)
		return
	}

	var inbound, issued int64
	db.Raw(`SELECT COUNT(*) FROM inbound_records WHERE inbound_time >= datetime('now', '-1 day')`).Scan(&inbound)
	db.Raw(`SELECT COUNT(*) FROM outbound_records WHERE status = 'fulfilled' AND outbound_time >= datetime('now', '-1 day')`).Scan(&issued)

	ledger, err := inventoryService.NewLedger(db)
	if err != nil {
		log.Printf("dailyreport: %v", err)
		return
	}
	summary, err := ledger.Summary()
	if err != nil {
		log.Printf("dailyreport: stock summary: %v", err)
		return
	}
	warnings := 0
	for _, row := range summary {
		if row.WarningLevel != inventoryService.WarningNormal {
			warnings++
			log.Printf("dailyreport: %s at %s, level %s", row.ItemName, row.Quantity, row.WarningLevel)
		}
	}
	log.Printf("dailyreport: inbound=%d issued=%d warnings=%d", inbound, issued, warnings)
}
