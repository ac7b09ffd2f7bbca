package controller

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"casavista_backend/internal/livesync"
	"casavista_backend/internal/model"
	"casavista_backend/internal/realtime"
	"casavista_backend/pkg/database"
	"casavista_backend/pkg/utils/jwt"
)

const MaxPropertyImages = 16

// stripChildren event payload'ını parent satıra indirger.
func stripChildren(p model.Property) model.Property {
	p.Images = nil
	p.Features = nil
	p.PropertyType = nil
	p.Development = nil
	return p
}

// CreateProperty yeni emlak ilanı oluşturur
func CreateProperty(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)
	input := new(livesync.PropertyWrite)

	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if input.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title is required",
		})
	}
	if len(input.Images) > MaxPropertyImages {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Maximum %d images allowed", MaxPropertyImages),
		})
	}
	if input.Status == "" {
		input.Status = model.PropertyStatusAvailable
	}
	input.ActorID = claims.UserID

	property, err := store.CreateProperty(c.Context(), *input)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create property",
		})
	}

	publishChange(realtime.EventInsert, realtime.TableProperties, stripChildren(property), nil)

	return c.Status(fiber.StatusCreated).JSON(property)
}

// UpdateProperty emlak ilanını günceller
func UpdateProperty(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid property ID",
		})
	}

	input := new(livesync.PropertyWrite)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if len(input.Images) > MaxPropertyImages {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Maximum %d images allowed", MaxPropertyImages),
		})
	}
	input.ActorID = claims.UserID

	property, err := store.UpdateProperty(c.Context(), uint(id), *input)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Property not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update property",
		})
	}

	publishChange(realtime.EventUpdate, realtime.TableProperties, stripChildren(property), nil)

	return c.JSON(property)
}

// DeleteProperty emlak ilanını siler
func DeleteProperty(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid property ID",
		})
	}

	old, err := store.PropertyByID(c.Context(), uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Property not found",
		})
	}

	if err := store.DeleteProperty(c.Context(), uint(id)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete property",
		})
	}

	publishChange(realtime.EventDelete, realtime.TableProperties, nil, stripChildren(old))

	return c.SendStatus(fiber.StatusNoContent)
}

// ListProperties public katalog: yayındaki ilanları birleştirilmiş görünümle
// listeler (iki fazlı toplu yükleme, child'lar tek sorguda).
func ListProperties(c *fiber.Ctx) error {
	filter := livesync.PropertyFilter{
		PublishedOnly: true,
		Limit:         c.QueryInt("limit", 0),
		Offset:        c.QueryInt("offset", 0),
	}
	if status := c.Query("status"); status != "" {
		filter.Status = model.PropertyStatus(status)
	}
	if c.QueryBool("featured") {
		filter.FeaturedOnly = true
	}

	views, err := livesync.FetchProperties(c.Context(), store, filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch properties",
		})
	}

	return c.JSON(views)
}

// ListAdminProperties admin panel için tüm ilanları listeler
func ListAdminProperties(c *fiber.Ctx) error {
	filter := livesync.PropertyFilter{
		Limit:  c.QueryInt("limit", 0),
		Offset: c.QueryInt("offset", 0),
	}
	if status := c.Query("status"); status != "" {
		filter.Status = model.PropertyStatus(status)
	}

	views, err := livesync.FetchProperties(c.Context(), store, filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch properties",
		})
	}

	return c.JSON(views)
}

// GetPropertyBySlug ilan detayını URL'den alır
func GetPropertyBySlug(c *fiber.Ctx) error {
	propertySlug := c.Params("slug")

	var property model.Property
	err := database.GetDB().
		Where("published = ? AND slug = ?", true, propertySlug).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("property_images.display_order ASC")
		}).
		Preload("Features").
		Preload("PropertyType").
		First(&property).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Property not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch property",
		})
	}

	view := livesync.MapProperty(property, property.Images, property.Features, property.PropertyType)
	return c.JSON(view)
}

// RecordPropertyView görüntülenme kaydı oluşturur
func RecordPropertyView(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid property ID",
		})
	}

	view := model.PropertyView{
		PropertyID: uint(id),
		IP:         c.IP(),
		SessionID:  c.Get("X-Session-Id"),
		UserAgent:  c.Get("User-Agent"),
		ViewedAt:   time.Now(),
	}

	if err := database.GetDB().Create(&view).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not record view",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}
