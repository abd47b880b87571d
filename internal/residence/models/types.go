package models

// ============================================================
// Room Catalog
// ============================================================

// Wing groups rooms into the two columns of the house.
type Wing string

const (
	WingPrivate Wing = "private"
	WingCommon  Wing = "common"
)

type CarpetCost struct {
	Area  float64 `json:"area" validate:"gt=0"`
	Rate  float64 `json:"rate" validate:"gt=0"`
	Total float64 `json:"total" validate:"gt=0"`
}

type MoldingCost struct {
	Perimeter float64 `json:"perimeter" validate:"gt=0"`
	Rate      float64 `json:"rate" validate:"gt=0"`
	Total     float64 `json:"total" validate:"gt=0"`
}

// CostBreakdown is the optional invoice section of a room. Every part
// except Total may be absent.
type CostBreakdown struct {
	Carpet       *CarpetCost  `json:"carpet,omitempty"`
	Molding      *MoldingCost `json:"molding,omitempty"`
	Installation *float64     `json:"installation,omitempty" validate:"omitempty,gt=0"`
	Total        float64      `json:"total" validate:"gt=0"`
}

type RoomSpec struct {
	ID                  string         `json:"id" validate:"required"`
	Name                string         `json:"name" validate:"required"`
	Wing                Wing           `json:"wing" validate:"oneof=private common"`
	Dimensions          string         `json:"dimensions" validate:"required"`
	AreaPolynomial      string         `json:"areaPolynomial" validate:"required"`
	PerimeterPolynomial string         `json:"perimeterPolynomial" validate:"required"`
	Verification        string         `json:"verification" validate:"required"`
	Description         string         `json:"description" validate:"required"`
	Features            []string       `json:"features" validate:"min=1,dive,required"`
	CostBreakdown       *CostBreakdown `json:"costBreakdown,omitempty"`
}

// House holds the whole-house facts shown next to the room listings.
type House struct {
	Name                   string  `json:"name" validate:"required"`
	WidthPolynomial        string  `json:"widthPolynomial" validate:"required"`
	HeightPolynomial       string  `json:"heightPolynomial" validate:"required"`
	AreaPolynomial         string  `json:"areaPolynomial" validate:"required"`
	PerimeterPolynomial    string  `json:"perimeterPolynomial" validate:"required"`
	HallwayWidthPolynomial string  `json:"hallwayWidthPolynomial" validate:"required"`
	CheckValue             float64 `json:"checkValue"`
	EstimateDate           string  `json:"estimateDate" validate:"required"`
}

// ============================================================
// Geometry primitives
// ============================================================

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle, in feet unless stated otherwise.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (r Rect) MaxX() float64 { return r.X + r.Width }
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Overlaps reports whether the interiors intersect. Shared edges do not count.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.MaxX() && o.X < r.MaxX() && r.Y < o.MaxY() && o.Y < r.MaxY()
}

// Contains reports whether o lies entirely inside r.
func (r Rect) Contains(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y && o.MaxX() <= r.MaxX() && o.MaxY() <= r.MaxY()
}

// Scale maps the rectangle into pixel space and shifts it by origin.
func (r Rect) Scale(factor float64, origin Point) Rect {
	return Rect{
		X:      origin.X + r.X*factor,
		Y:      origin.Y + r.Y*factor,
		Width:  r.Width * factor,
		Height: r.Height * factor,
	}
}

// ============================================================
// Floor plan geometry
// ============================================================

// RoomGeometry places one catalog room on the floor plan. The numeric
// fields are evaluated from the room's polynomials at the check value.
type RoomGeometry struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Wing             Wing    `json:"wing"`
	Rect             Rect    `json:"rect"`
	WidthPolynomial  string  `json:"widthPolynomial"`
	HeightPolynomial string  `json:"heightPolynomial"`
	AreaPolynomial   string  `json:"areaPolynomial"`
	AreaValue        float64 `json:"areaValue"`
	PerimeterValue   float64 `json:"perimeterValue"`
	AreaText         string  `json:"areaText"`
	PerimeterText    string  `json:"perimeterText"`
}
