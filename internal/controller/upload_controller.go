package controller

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"casavista_backend/internal/model"
	"casavista_backend/pkg/database"
	"casavista_backend/pkg/utils/storage"
)

// UploadPropertyImage resmi storage'a yükler ve ilana bağlar
func UploadPropertyImage(c *fiber.Ctx) error {
	propertyID, err := strconv.ParseUint(c.Params("property_id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid property ID",
		})
	}

	var property model.Property
	if err := database.GetDB().First(&property, propertyID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Property not found",
		})
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No image provided",
		})
	}

	var imageCount int64
	database.GetDB().Model(&model.PropertyImage{}).
		Where("property_id = ?", property.ID).
		Count(&imageCount)
	if imageCount >= MaxPropertyImages {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Image limit reached for this property",
		})
	}

	url, err := storage.UploadPropertyImage(file, property.ID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	image := model.PropertyImage{
		PropertyID:   property.ID,
		URL:          url,
		IsPrimary:    imageCount == 0,
		DisplayOrder: int(imageCount),
	}
	if err := database.GetDB().Create(&image).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save image",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(image)
}

// DeletePropertyImage resmi storage'dan ve veritabanından siler
func DeletePropertyImage(c *fiber.Ctx) error {
	imageID, err := strconv.ParseUint(c.Params("image_id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid image ID",
		})
	}

	var image model.PropertyImage
	if err := database.GetDB().First(&image, imageID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Image not found",
		})
	}

	if err := storage.DeleteImage(image.URL); err != nil {
		// Storage hatası kaydın silinmesini engellemesin
		c.Context().Logger().Printf("Could not delete image from storage: %v", err)
	}

	if err := database.GetDB().Delete(&image).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete image",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
