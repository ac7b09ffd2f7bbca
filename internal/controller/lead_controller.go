package controller

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"casavista_backend/internal/livesync"
	"casavista_backend/internal/model"
	"casavista_backend/internal/realtime"
	"casavista_backend/pkg/database"
	"casavista_backend/pkg/email"
)

// Panel sözlüğündeki geçerli status değerleri
var validViewStatuses = map[string]bool{
	livesync.LeadViewPending:   true,
	livesync.LeadViewConfirmed: true,
	livesync.LeadViewCompleted: true,
	livesync.LeadViewCancelled: true,
}

// CreateLead public formlardan (iletişim formu, chat widget, hızlı form)
// gelen başvuruyu kaydeder.
func CreateLead(c *fiber.Ctx) error {
	input := new(livesync.LeadWrite)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if input.Email == "" && input.Phone == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email or phone is required",
		})
	}

	lead, err := store.CreateLead(c.Context(), *input)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create lead",
		})
	}

	publishChange(realtime.EventInsert, realtime.TableLeads, lead, nil)

	// Bağlı ilan varsa operatöre bildirim maili gönder
	if email.GlobalEmailService != nil {
		go notifyLead(lead)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Your inquiry has been sent successfully. We will contact you soon.",
	})
}

func notifyLead(lead model.Lead) {
	propertyTitle := ""
	to := ""

	if lead.PropertyID != nil {
		var property model.Property
		if err := database.GetDB().First(&property, *lead.PropertyID).Error; err == nil {
			propertyTitle = property.Title

			var owner model.User
			if err := database.GetDB().First(&owner, property.CreatedBy).Error; err == nil {
				to = owner.Email
			}
		}
	}
	if to == "" {
		return
	}

	view := livesync.MapLead(lead)
	err := email.GlobalEmailService.SendLeadNotificationEmail(
		to, propertyTitle, view.Name, lead.Email, lead.Phone, lead.Notes,
	)
	if err != nil {
		log.Printf("Could not send lead notification email: %v", err)
	}
}

// GetLeads admin panel için lead listesini panel görünümüyle döner
func GetLeads(c *fiber.Ctx) error {
	filter := livesync.LeadFilter{
		Limit:  c.QueryInt("limit", 0),
		Offset: c.QueryInt("offset", 0),
	}
	if status := c.Query("status"); status != "" {
		filter.Status = model.LeadStatus(status)
	}
	if c.Query("read") == "false" {
		filter.UnreadOnly = true
	}
	if propertyID := c.Query("property_id"); propertyID != "" {
		if id, err := strconv.ParseUint(propertyID, 10, 32); err == nil {
			pid := uint(id)
			filter.PropertyID = &pid
		}
	}

	views, err := livesync.FetchLeads(c.Context(), store, filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch leads",
		})
	}

	return c.JSON(views)
}

// UpdateLeadStatus panel sözlüğündeki status'u write-map üzerinden backend
// değerine çevirip kaydeder. Okuma eşlemesi kayıplı olduğu için panelden
// dönen confirmed her zaman contacted olarak yazılır.
func UpdateLeadStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid lead ID",
		})
	}

	input := struct {
		Status string `json:"status"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if !validViewStatuses[input.Status] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid status value",
			"valid_statuses": []string{
				livesync.LeadViewPending,
				livesync.LeadViewConfirmed,
				livesync.LeadViewCompleted,
				livesync.LeadViewCancelled,
			},
		})
	}

	lead, err := store.UpdateLeadStatus(c.Context(), uint(id), livesync.LeadStatusFromView(input.Status))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Lead not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update lead status",
		})
	}

	publishChange(realtime.EventUpdate, realtime.TableLeads, lead, nil)

	return c.JSON(fiber.Map{
		"message": "Lead status updated successfully",
		"lead":    livesync.MapLead(lead),
	})
}

// MarkLeadAsRead lead'i okunmuş işaretler
func MarkLeadAsRead(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid lead ID",
		})
	}

	lead, err := store.MarkLeadRead(c.Context(), uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Lead not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not mark lead as read",
		})
	}

	publishChange(realtime.EventUpdate, realtime.TableLeads, lead, nil)

	return c.SendStatus(fiber.StatusOK)
}
