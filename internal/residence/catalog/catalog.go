// Package catalog holds the read-only Room Catalog: the house facts and the
// per-room descriptive and numeric data every view reads from.
package catalog

import (
	"errors"
	"fmt"
	"sort"

	"polynomial-residence/internal/residence/models"
	"polynomial-residence/internal/residence/units"

	"github.com/go-playground/validator/v10"
)

// ErrRoomNotFound is returned when an id is absent from the catalog.
var ErrRoomNotFound = errors.New("room not found")

var validate = validator.New(validator.WithRequiredStructEnabled())

// ============================================================
// Catalog
// ============================================================

// Catalog is immutable once built and safe to share between sessions.
type Catalog struct {
	house models.House
	rooms map[string]models.RoomSpec
	order []string
}

// New validates the feed and indexes rooms by id, keeping feed order.
func New(house models.House, rooms []models.RoomSpec) (*Catalog, error) {
	if err := validate.Struct(house); err != nil {
		return nil, fmt.Errorf("house: %w", err)
	}
	if house.CheckValue == 0 {
		return nil, fmt.Errorf("house: check value is required")
	}
	if len(rooms) == 0 {
		return nil, fmt.Errorf("catalog has no rooms")
	}

	c := &Catalog{
		house: house,
		rooms: make(map[string]models.RoomSpec, len(rooms)),
		order: make([]string, 0, len(rooms)),
	}
	for _, room := range rooms {
		if err := validate.Struct(room); err != nil {
			return nil, fmt.Errorf("room %q: %w", room.ID, err)
		}
		if _, dup := c.rooms[room.ID]; dup {
			return nil, fmt.Errorf("room %q: duplicate id", room.ID)
		}
		c.rooms[room.ID] = cloneRoom(room)
		c.order = append(c.order, room.ID)
	}
	return c, nil
}

func (c *Catalog) House() models.House {
	return c.house
}

// Has reports whether id names a catalog room.
func (c *Catalog) Has(id string) bool {
	_, ok := c.rooms[id]
	return ok
}

// Lookup returns a copy of the room so callers cannot mutate the feed.
func (c *Catalog) Lookup(id string) (models.RoomSpec, bool) {
	room, ok := c.rooms[id]
	if !ok {
		return models.RoomSpec{}, false
	}
	return cloneRoom(room), true
}

// Get is Lookup with an error for callers that propagate it.
func (c *Catalog) Get(id string) (models.RoomSpec, error) {
	room, ok := c.Lookup(id)
	if !ok {
		return models.RoomSpec{}, fmt.Errorf("%w: %q", ErrRoomNotFound, id)
	}
	return room, nil
}

func (c *Catalog) IDs() []string {
	return append([]string(nil), c.order...)
}

func (c *Catalog) Len() int {
	return len(c.order)
}

// Rooms returns every room in feed order.
func (c *Catalog) Rooms() []models.RoomSpec {
	out := make([]models.RoomSpec, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, cloneRoom(c.rooms[id]))
	}
	return out
}

// Wing returns the rooms of one wing in feed order.
func (c *Catalog) Wing(w models.Wing) []models.RoomSpec {
	var out []models.RoomSpec
	for _, id := range c.order {
		if room := c.rooms[id]; room.Wing == w {
			out = append(out, cloneRoom(room))
		}
	}
	return out
}

// Costed returns the rooms carrying a cost breakdown, most expensive first.
func (c *Catalog) Costed() []models.RoomSpec {
	var out []models.RoomSpec
	for _, id := range c.order {
		if room := c.rooms[id]; room.CostBreakdown != nil {
			out = append(out, cloneRoom(room))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return units.Cents(out[i].CostBreakdown.Total) > units.Cents(out[j].CostBreakdown.Total)
	})
	return out
}

// GrandTotal sums the totals of every costed room.
func (c *Catalog) GrandTotal() float64 {
	var cents int64
	for _, id := range c.order {
		if cb := c.rooms[id].CostBreakdown; cb != nil {
			cents += units.Cents(cb.Total)
		}
	}
	return float64(cents) / 100
}

func cloneRoom(room models.RoomSpec) models.RoomSpec {
	room.Features = append([]string(nil), room.Features...)
	if room.CostBreakdown != nil {
		cb := *room.CostBreakdown
		if cb.Carpet != nil {
			carpet := *cb.Carpet
			cb.Carpet = &carpet
		}
		if cb.Molding != nil {
			molding := *cb.Molding
			cb.Molding = &molding
		}
		if cb.Installation != nil {
			fee := *cb.Installation
			cb.Installation = &fee
		}
		room.CostBreakdown = &cb
	}
	return room
}
