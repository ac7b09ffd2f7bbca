package controller

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"casavista_backend/internal/model"
	"casavista_backend/internal/realtime"
	"casavista_backend/pkg/database"
)

// GetWebConfig sitenin CMS dokümanını döner. Kayıt yoksa boş obje döner ki
// frontend varsayılan içerikle açılabilsin.
func GetWebConfig(c *fiber.Ctx) error {
	var cfg model.WebConfig
	err := database.GetDB().Where("key = ?", model.WebConfigKey).First(&cfg).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(fiber.Map{"key": model.WebConfigKey, "data": fiber.Map{}})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch web config",
		})
	}

	return c.JSON(cfg)
}

// UpdateWebConfig dokümanın tamamını değiştirir. Versiyonlama ve optimistic
// lock yoktur, son yazan kazanır.
func UpdateWebConfig(c *fiber.Ctx) error {
	body := c.Body()
	if !json.Valid(body) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid JSON body",
		})
	}

	var cfg model.WebConfig
	err := database.GetDB().Where("key = ?", model.WebConfigKey).First(&cfg).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch web config",
		})
	}

	cfg.Key = model.WebConfigKey
	cfg.Data = datatypes.JSON(body)

	if err := database.GetDB().Save(&cfg).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update web config",
		})
	}

	publishChange(realtime.EventUpdate, realtime.TableWebConfig, cfg, nil)

	return c.JSON(cfg)
}
