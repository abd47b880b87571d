package floorplan

import (
	"errors"
	"fmt"

	"polynomial-residence/internal/residence/catalog"
	"polynomial-residence/internal/residence/models"
	"polynomial-residence/internal/residence/units"
)

// ============================================================
// Layout
// ============================================================

// HallwayID names the reserved corridor. It is never a room.
const HallwayID = "hallway"

// ErrInvalidLayout is returned when the built geometry breaks the overlap
// or bounds rules.
var ErrInvalidLayout = errors.New("invalid floor plan layout")

// Room is one placed catalog room plus its resolved decoration.
type Room struct {
	models.RoomGeometry
	decorate decorator
}

// WingSummary is the static side-panel text of one wing.
type WingSummary struct {
	Wing     models.Wing
	Title    string
	Rooms    []WingLine
	Subtotal string
	Count    int
}

type WingLine struct {
	Name string
	Area string
}

// Layout is the fixed floor plan built once from the catalog.
type Layout struct {
	House          models.House
	Bounds         models.Rect
	Hallway        models.Rect
	HallwayLabel   string
	Rooms          []Room
	WidthText      string
	HeightText     string
	TotalAreaText  string
	TotalPerimeter string
	Wings          []WingSummary
	byID           map[string]int
}

var wingTitles = map[models.Wing]string{
	models.WingPrivate: "LEFT WING (Private)",
	models.WingCommon:  "RIGHT WING (Common)",
}

// Build places the private wing in a left column, the hallway next to it
// and the common wing in a right column, stacking rooms top-down in feed
// order. Sizes come from the catalog's dimension polynomials.
func Build(c *catalog.Catalog) (*Layout, error) {
	house := c.House()
	hm, err := catalog.MeasureHouse(house)
	if err != nil {
		return nil, fmt.Errorf("measure house: %w", err)
	}

	l := &Layout{
		House:          house,
		Bounds:         models.Rect{Width: hm.Width, Height: hm.Height},
		WidthText:      units.Feet(hm.Width),
		HeightText:     units.Feet(hm.Height),
		TotalAreaText:  units.SquareFeet(hm.Area),
		TotalPerimeter: units.Feet(hm.Perimeter),
		byID:           make(map[string]int),
	}

	x := 0.0
	for i, wing := range []models.Wing{models.WingPrivate, models.WingCommon} {
		if i == 1 {
			l.Hallway = models.Rect{X: x, Y: 0, Width: hm.HallwayWidth, Height: hm.Height}
			l.HallwayLabel = fmt.Sprintf("%s = %s", house.HallwayWidthPolynomial, units.Feet(hm.HallwayWidth))
			x += hm.HallwayWidth
		}

		width, summary, err := l.placeColumn(c, wing, x)
		if err != nil {
			return nil, err
		}
		l.Wings = append(l.Wings, summary)
		x += width
	}

	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Layout) placeColumn(c *catalog.Catalog, wing models.Wing, x float64) (float64, WingSummary, error) {
	summary := WingSummary{Wing: wing, Title: wingTitles[wing]}
	var y, width, subtotal float64

	for _, spec := range c.Wing(wing) {
		m, err := catalog.MeasureRoom(spec, l.House.CheckValue)
		if err != nil {
			return 0, WingSummary{}, fmt.Errorf("measure room: %w", err)
		}

		room := Room{
			RoomGeometry: models.RoomGeometry{
				ID:               spec.ID,
				Name:             spec.Name,
				Wing:             spec.Wing,
				Rect:             models.Rect{X: x, Y: y, Width: m.Width, Height: m.Height},
				WidthPolynomial:  m.WidthPolynomial,
				HeightPolynomial: m.HeightPolynomial,
				AreaPolynomial:   spec.AreaPolynomial,
				AreaValue:        m.Area,
				PerimeterValue:   m.Perimeter,
				AreaText:         units.SquareFeet(m.Area),
				PerimeterText:    units.Feet(m.Perimeter),
			},
			decorate: decorations[spec.ID],
		}
		l.byID[spec.ID] = len(l.Rooms)
		l.Rooms = append(l.Rooms, room)

		summary.Rooms = append(summary.Rooms, WingLine{Name: spec.Name, Area: room.AreaText})
		summary.Count++
		subtotal += m.Area
		y += m.Height
		if m.Width > width {
			width = m.Width
		}
	}

	summary.Subtotal = units.SquareFeet(subtotal)
	return width, summary, nil
}

// Validate enforces the geometry invariants: rooms stay inside the house,
// never overlap each other and never overlap the hallway.
func (l *Layout) Validate() error {
	var errs []error

	if !l.Bounds.Contains(l.Hallway) {
		errs = append(errs, fmt.Errorf("%w: hallway outside the house", ErrInvalidLayout))
	}
	for i, a := range l.Rooms {
		if a.ID == HallwayID {
			errs = append(errs, fmt.Errorf("%w: room id %q is reserved", ErrInvalidLayout, HallwayID))
		}
		if !l.Bounds.Contains(a.Rect) {
			errs = append(errs, fmt.Errorf("%w: room %q outside the house", ErrInvalidLayout, a.ID))
		}
		if a.Rect.Overlaps(l.Hallway) {
			errs = append(errs, fmt.Errorf("%w: room %q overlaps the hallway", ErrInvalidLayout, a.ID))
		}
		for _, b := range l.Rooms[i+1:] {
			if a.Rect.Overlaps(b.Rect) {
				errs = append(errs, fmt.Errorf("%w: rooms %q and %q overlap", ErrInvalidLayout, a.ID, b.ID))
			}
		}
	}
	return errors.Join(errs...)
}

// Room returns the placed room with the given id. The hallway is not a room.
func (l *Layout) Room(id string) (Room, bool) {
	i, ok := l.byID[id]
	if !ok {
		return Room{}, false
	}
	return l.Rooms[i], true
}

// Geometry returns the plain geometry list, e.g. for JSON output.
func (l *Layout) Geometry() []models.RoomGeometry {
	out := make([]models.RoomGeometry, 0, len(l.Rooms))
	for _, r := range l.Rooms {
		out = append(out, r.RoomGeometry)
	}
	return out
}
