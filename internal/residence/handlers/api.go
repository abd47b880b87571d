package handlers

import (
	"polynomial-residence/internal/residence/catalog"
	"polynomial-residence/internal/residence/floorplan"
	"polynomial-residence/internal/residence/models"
	"polynomial-residence/internal/residence/units"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// API Handler
// ============================================================

// APIHandler exposes the catalog and the computed layout as read-only JSON.
type APIHandler struct {
	catalog *catalog.Catalog
	layout  *floorplan.Layout
}

func NewAPIHandler(c *catalog.Catalog, layout *floorplan.Layout) *APIHandler {
	return &APIHandler{catalog: c, layout: layout}
}

type layoutResponse struct {
	House   models.House          `json:"house"`
	Bounds  models.Rect           `json:"bounds"`
	Hallway models.Rect           `json:"hallway"`
	Rooms   []models.RoomGeometry `json:"rooms"`
}

type invoiceItem struct {
	Letter string  `json:"letter"`
	RoomID string  `json:"roomId"`
	Name   string  `json:"name"`
	Total  float64 `json:"total"`
}

type invoiceResponse struct {
	Date       string        `json:"date"`
	Items      []invoiceItem `json:"items"`
	GrandTotal float64       `json:"grandTotal"`
}

func (h *APIHandler) ListRooms(c fiber.Ctx) error {
	rooms := h.catalog.Rooms()
	return c.JSON(fiber.Map{
		"rooms": rooms,
		"count": len(rooms),
	})
}

func (h *APIHandler) GetRoom(c fiber.Ctx) error {
	room, ok := h.catalog.Lookup(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "room not found"})
	}
	return c.JSON(room)
}

func (h *APIHandler) Layout(c fiber.Ctx) error {
	return c.JSON(layoutResponse{
		House:   h.layout.House,
		Bounds:  h.layout.Bounds,
		Hallway: h.layout.Hallway,
		Rooms:   h.layout.Geometry(),
	})
}

// Invoice lists the costed rooms most expensive first, lettered A, B, ...
func (h *APIHandler) Invoice(c fiber.Ctx) error {
	resp := invoiceResponse{
		Date:       h.catalog.House().EstimateDate,
		Items:      []invoiceItem{},
		GrandTotal: h.catalog.GrandTotal(),
	}
	for i, room := range h.catalog.Costed() {
		resp.Items = append(resp.Items, invoiceItem{
			Letter: units.ItemLetter(i),
			RoomID: room.ID,
			Name:   room.Name,
			Total:  room.CostBreakdown.Total,
		})
	}
	return c.JSON(resp)
}
