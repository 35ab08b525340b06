package helper

import (
	"log"
	"time"

	"github.com/ciby9833/xspace-sub002/model"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

var scheduler *cron.Cron

// StartOrderScheduler completes confirmed orders whose window has passed.
// Runs every 10 minutes; skipped if the previous run is still going.
func StartOrderScheduler(db *gorm.DB) {
	scheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := scheduler.AddFunc("*/10 * * * *", func() { completeFinishedOrders(db) })
	if err != nil {
		log.Printf("order scheduler init failed: %v", err)
		return
	}

	scheduler.Start()
	log.Println("Order scheduler started (every 10 minutes)")
}

func completeFinishedOrders(db *gorm.DB) {
	result := db.Model(&model.Order{}).
		Where("status = ? AND is_active = ? AND end_time < ?", model.OrderConfirmed, true, time.Now()).
		Update("status", model.OrderCompleted)

	if result.Error != nil {
		log.Printf("order completion sweep failed: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Marked %d order(s) completed", result.RowsAffected)
	}
}

func StopOrderScheduler() {
	if scheduler != nil {
		scheduler.Stop()
		log.Println("Order scheduler stopped")
	}
}
