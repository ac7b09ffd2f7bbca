package controller

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"casavista_backend/internal/livesync"
	"casavista_backend/internal/model"
	"casavista_backend/internal/realtime"
)

// FunctionRequest RPC tarzı çağrı gövdesi
type FunctionRequest struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

func fnError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

func fnData(c *fiber.Ctx, data interface{}) error {
	return c.JSON(fiber.Map{"data": data})
}

// InvokeFunction named RPC gateway: {action, data} alır, {data} veya {error}
// döner. CRUD aksiyonları REST endpoint'leriyle aynı mantığa gider.
func InvokeFunction(c *fiber.Ctx) error {
	name := c.Params("name")

	req := new(FunctionRequest)
	if err := c.BodyParser(req); err != nil {
		return fnError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	switch name {
	case "properties-crud":
		return invokePropertiesCRUD(c, req)
	case "leads-crud":
		return invokeLeadsCRUD(c, req)
	default:
		return fnError(c, fiber.StatusNotFound, "Unknown function: "+name)
	}
}

func invokePropertiesCRUD(c *fiber.Ctx, req *FunctionRequest) error {
	ctx := c.Context()

	switch req.Action {
	case "list":
		var filter livesync.PropertyFilter
		if len(req.Data) > 0 {
			if err := json.Unmarshal(req.Data, &filter); err != nil {
				return fnError(c, fiber.StatusBadRequest, "Invalid filter")
			}
		}
		views, err := livesync.FetchProperties(ctx, store, filter)
		if err != nil {
			return fnError(c, fiber.StatusInternalServerError, "Could not fetch properties")
		}
		return fnData(c, views)

	case "create":
		var w livesync.PropertyWrite
		if err := json.Unmarshal(req.Data, &w); err != nil {
			return fnError(c, fiber.StatusBadRequest, "Invalid payload")
		}
		if w.Status == "" {
			w.Status = model.PropertyStatusAvailable
		}
		property, err := store.CreateProperty(ctx, w)
		if err != nil {
			return fnError(c, fiber.StatusInternalServerError, "Could not create property")
		}
		publishChange(realtime.EventInsert, realtime.TableProperties, stripChildren(property), nil)
		return fnData(c, property)

	case "update":
		var payload struct {
			ID uint `json:"id"`
			livesync.PropertyWrite
		}
		if err := json.Unmarshal(req.Data, &payload); err != nil {
			return fnError(c, fiber.StatusBadRequest, "Invalid payload")
		}
		property, err := store.UpdateProperty(ctx, payload.ID, payload.PropertyWrite)
		if err != nil {
			return fnError(c, fiber.StatusInternalServerError, "Could not update property")
		}
		publishChange(realtime.EventUpdate, realtime.TableProperties, stripChildren(property), nil)
		return fnData(c, property)

	case "delete":
		var payload struct {
			ID uint `json:"id"`
		}
		if err := json.Unmarshal(req.Data, &payload); err != nil {
			return fnError(c, fiber.StatusBadRequest, "Invalid payload")
		}
		old, err := store.PropertyByID(ctx, payload.ID)
		if err != nil {
			return fnError(c, fiber.StatusNotFound, "Property not found")
		}
		if err := store.DeleteProperty(ctx, payload.ID); err != nil {
			return fnError(c, fiber.StatusInternalServerError, "Could not delete property")
		}
		publishChange(realtime.EventDelete, realtime.TableProperties, nil, stripChildren(old))
		return fnData(c, fiber.Map{"deleted": payload.ID})

	default:
		return fnError(c, fiber.StatusBadRequest, "Unknown action: "+req.Action)
	}
}

func invokeLeadsCRUD(c *fiber.Ctx, req *FunctionRequest) error {
	ctx := c.Context()

	switch req.Action {
	case "list":
		var filter livesync.LeadFilter
		if len(req.Data) > 0 {
			if err := json.Unmarshal(req.Data, &filter); err != nil {
				return fnError(c, fiber.StatusBadRequest, "Invalid filter")
			}
		}
		views, err := livesync.FetchLeads(ctx, store, filter)
		if err != nil {
			return fnError(c, fiber.StatusInternalServerError, "Could not fetch leads")
		}
		return fnData(c, views)

	case "create":
		var w livesync.LeadWrite
		if err := json.Unmarshal(req.Data, &w); err != nil {
			return fnError(c, fiber.StatusBadRequest, "Invalid payload")
		}
		lead, err := store.CreateLead(ctx, w)
		if err != nil {
			return fnError(c, fiber.StatusInternalServerError, "Could not create lead")
		}
		publishChange(realtime.EventInsert, realtime.TableLeads, lead, nil)
		return fnData(c, livesync.MapLead(lead))

	case "update_status":
		var payload struct {
			ID     uint   `json:"id"`
			Status string `json:"status"`
		}
		if err := json.Unmarshal(req.Data, &payload); err != nil {
			return fnError(c, fiber.StatusBadRequest, "Invalid payload")
		}
		if !validViewStatuses[payload.Status] {
			return fnError(c, fiber.StatusBadRequest, "Invalid status value")
		}
		lead, err := store.UpdateLeadStatus(ctx, payload.ID, livesync.LeadStatusFromView(payload.Status))
		if err != nil {
			return fnError(c, fiber.StatusInternalServerError, "Could not update lead status")
		}
		publishChange(realtime.EventUpdate, realtime.TableLeads, lead, nil)
		return fnData(c, livesync.MapLead(lead))

	default:
		return fnError(c, fiber.StatusBadRequest, "Unknown action: "+req.Action)
	}
}
