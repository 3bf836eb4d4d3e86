package helper

import (
	"log"
	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/model"

	"github.com/robfig/cron/v3"
)

var sweeper *cron.Cron

// StartStaleOrderSweeper periodically releases table pointers that still
// reference paid orders. The engine heals such pointers lazily on the next
// placement; the sweeper cleans up tables nobody orders at again.
func StartStaleOrderSweeper() {
	sweeper = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := sweeper.AddFunc("*/5 * * * *", ReleaseStalePaidPointers)
	if err != nil {
		log.Printf("failed to start stale order sweeper: %v", err)
		return
	}

	sweeper.Start()
	log.Println("stale order sweeper started (every 5 minutes)")
}

func StopStaleOrderSweeper() {
	if sweeper != nil {
		sweeper.Stop()
	}
}

func ReleaseStalePaidPointers() {
	db := database.DB

	var tables []model.Table
	err := db.
		Joins("JOIN orders ON orders.id = tables.current_order_id").
		Where("orders.status = ?", constants.ORDER_PAID).
		Find(&tables).Error
	if err != nil {
		log.Printf("stale pointer sweep failed: %v", err)
		return
	}

	for _, table := range tables {
		err := db.Model(&model.Table{}).
			Where("id = ?", table.ID).
			Updates(map[string]interface{}{
				"status":           constants.TABLE_DIRTY,
				"current_order_id": nil,
			}).Error
		if err != nil {
			log.Printf("failed to release table %s: %v", table.Number, err)
		}
	}

	if len(tables) > 0 {
		log.Printf("released %d table(s) with stale paid orders", len(tables))
	}
}
