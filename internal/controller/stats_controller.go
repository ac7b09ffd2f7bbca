package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"casavista_backend/internal/model"
	"casavista_backend/pkg/database"
)

// DashboardStats genel dashboard istatistikleri
type DashboardStats struct {
	TotalListings     int64         `json:"total_listings"`
	PublishedListings int64         `json:"published_listings"`
	TotalViews        int64         `json:"total_views"`
	NewLeads          int64         `json:"new_leads"`
	TopProperties     []TopProperty `json:"top_properties"`
	StatusBreakdown   []StatusCount `json:"status_breakdown"`
	LeadBreakdown     []StatusCount `json:"lead_breakdown"`
	DailyStats        []DailyStat   `json:"daily_stats"`
}

type TopProperty struct {
	ID           uint    `json:"id"`
	Title        string  `json:"title"`
	Views        int64   `json:"views"`
	Price        float64 `json:"price"`
	PrimaryImage string  `json:"primary_image"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type DailyStat struct {
	Date     string `json:"date"`
	Views    int64  `json:"views"`
	NewLeads int64  `json:"new_leads"`
}

// GetDashboardStats dashboard istatistiklerini getirir
func GetDashboardStats(c *fiber.Ctx) error {
	db := database.GetDB()

	var stats DashboardStats

	db.Model(&model.Property{}).Count(&stats.TotalListings)
	db.Model(&model.Property{}).Where("published = ?", true).Count(&stats.PublishedListings)
	db.Model(&model.PropertyView{}).Count(&stats.TotalViews)
	db.Model(&model.Lead{}).Where("status = ?", model.LeadStatusNew).Count(&stats.NewLeads)

	// En çok görüntülenen 5 ilan
	var topProps []TopProperty
	db.Table("properties").
		Select("properties.id, properties.title, properties.price, COUNT(property_views.id) as views").
		Joins("LEFT JOIN property_views ON properties.id = property_views.property_id").
		Where("properties.deleted_at IS NULL").
		Group("properties.id").
		Order("views DESC").
		Limit(5).
		Scan(&topProps)

	for i := range topProps {
		var primary model.PropertyImage
		if err := db.Where("property_id = ? AND is_primary = ?", topProps[i].ID, true).
			First(&primary).Error; err == nil {
			topProps[i].PrimaryImage = primary.URL
		}
	}
	stats.TopProperties = topProps

	// Status dağılımları
	db.Model(&model.Property{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&stats.StatusBreakdown)

	db.Model(&model.Lead{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&stats.LeadBreakdown)

	// Son 7 günün istatistikleri
	for i := 6; i >= 0; i-- {
		date := time.Now().AddDate(0, 0, -i)
		day := date.Format("2006-01-02")

		var stat DailyStat
		stat.Date = day

		db.Model(&model.PropertyView{}).
			Where("DATE(viewed_at) = ?", day).
			Count(&stat.Views)

		db.Model(&model.Lead{}).
			Where("DATE(created_at) = ?", day).
			Count(&stat.NewLeads)

		stats.DailyStats = append(stats.DailyStats, stat)
	}

	return c.JSON(stats)
}
