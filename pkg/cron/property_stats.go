// pkg/cron/property_stats.go
package cron

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"casavista_backend/internal/model"
	"casavista_backend/pkg/database"
)

// InitPropertyStatsCron görüntülenme sayaçlarının periyodik sıfırlamasını kurar
func InitPropertyStatsCron() {
	c := cron.New()

	// Her gece 00:05'te günlük sayaçlar
	_, err := c.AddFunc("5 0 * * *", resetDailyViews)
	if err != nil {
		log.Printf("Could not schedule daily stats reset: %v", err)
		return
	}

	// Her Pazartesi 00:10'da haftalık sayaçlar
	_, err = c.AddFunc("10 0 * * 1", resetWeeklyViews)
	if err != nil {
		log.Printf("Could not schedule weekly stats reset: %v", err)
		return
	}

	c.Start()
}

func resetDailyViews() {
	err := database.GetDB().Model(&model.PropertyStats{}).
		Where("daily_views > 0").
		Updates(map[string]interface{}{
			"daily_views":      0,
			"last_daily_reset": time.Now(),
		}).Error
	if err != nil {
		log.Printf("Could not reset daily view counters: %v", err)
	}
}

func resetWeeklyViews() {
	err := database.GetDB().Model(&model.PropertyStats{}).
		Where("weekly_views > 0").
		Update("weekly_views", 0).Error
	if err != nil {
		log.Printf("Could not reset weekly view counters: %v", err)
	}
}
