package catalog

import (
	"fmt"

	"polynomial-residence/internal/residence/models"
	"polynomial-residence/internal/residence/parser"
)

// ============================================================
// Evaluated measures
// ============================================================

// Measure is a room's polynomials evaluated at the check value. It is the
// single place where numeric room sizes come from.
type Measure struct {
	WidthPolynomial  string
	HeightPolynomial string
	Width            float64
	Height           float64
	Area             float64
	Perimeter        float64
}

type HouseMeasure struct {
	Width        float64
	Height       float64
	Area         float64
	Perimeter    float64
	HallwayWidth float64
}

func MeasureRoom(room models.RoomSpec, x float64) (Measure, error) {
	widthPoly, heightPoly, err := parser.SplitDimensions(room.Dimensions)
	if err != nil {
		return Measure{}, fmt.Errorf("room %q: %w", room.ID, err)
	}

	m := Measure{WidthPolynomial: widthPoly, HeightPolynomial: heightPoly}
	fields := []struct {
		expr string
		dst  *float64
	}{
		{widthPoly, &m.Width},
		{heightPoly, &m.Height},
		{room.AreaPolynomial, &m.Area},
		{room.PerimeterPolynomial, &m.Perimeter},
	}
	for _, f := range fields {
		v, err := parser.Evaluate(f.expr, x)
		if err != nil {
			return Measure{}, fmt.Errorf("room %q: %w", room.ID, err)
		}
		*f.dst = v
	}
	return m, nil
}

func MeasureHouse(h models.House) (HouseMeasure, error) {
	var m HouseMeasure
	fields := []struct {
		name string
		expr string
		dst  *float64
	}{
		{"width", h.WidthPolynomial, &m.Width},
		{"height", h.HeightPolynomial, &m.Height},
		{"area", h.AreaPolynomial, &m.Area},
		{"perimeter", h.PerimeterPolynomial, &m.Perimeter},
		{"hallway width", h.HallwayWidthPolynomial, &m.HallwayWidth},
	}
	for _, f := range fields {
		v, err := parser.Evaluate(f.expr, h.CheckValue)
		if err != nil {
			return HouseMeasure{}, fmt.Errorf("house %s: %w", f.name, err)
		}
		*f.dst = v
	}
	return m, nil
}

// Measure evaluates one catalog room at the house check value.
func (c *Catalog) Measure(id string) (Measure, error) {
	room, err := c.Get(id)
	if err != nil {
		return Measure{}, err
	}
	return MeasureRoom(room, c.house.CheckValue)
}

// WingArea sums the evaluated areas of one wing.
func (c *Catalog) WingArea(w models.Wing) (float64, error) {
	var total float64
	for _, room := range c.Wing(w) {
		m, err := MeasureRoom(room, c.house.CheckValue)
		if err != nil {
			return 0, err
		}
		total += m.Area
	}
	return total, nil
}
