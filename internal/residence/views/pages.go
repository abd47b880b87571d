package views

import (
	"fmt"
	"html/template"
	"strings"

	"polynomial-residence/internal/residence/models"
	"polynomial-residence/internal/residence/navigation"
	"polynomial-residence/internal/residence/units"
)

// ============================================================
// Page models
// ============================================================

// Frame is shared by every page: the house header and the menu.
type Frame struct {
	Title      string
	House      models.House
	CheckValue string
	Menu       []MenuLink
	AutoPrint  bool
}

type MenuLink struct {
	Item   navigation.MenuItem
	Label  string
	Active bool
}

type HomePage struct {
	Frame
	TotalArea      string
	RoomCount      int
	RoomsBreakdown string
	Dimensions     string
	DimensionsPoly string
	Rooms          []models.RoomSpec
}

type FloorPlanPage struct {
	Frame
	SVG template.HTML
}

type TechnicalWing struct {
	Title string
	Rooms []models.RoomSpec
}

type HouseTotals struct {
	Dimensions     string
	AreaPoly       string
	PerimeterPoly  string
	Verification   string
	TotalArea      string
	TotalPerimeter string
}

type TechnicalPage struct {
	Frame
	Wings  []TechnicalWing
	Totals HouseTotals
}

// CostLine is one priced row of an invoice or a detail cost section.
type CostLine struct {
	Label  string
	Detail string
	Amount string
}

type InvoiceItem struct {
	Letter   string
	RoomID   string
	Name     string
	Title    string
	Measures string
	Lines    []CostLine
	Subtotal string
	Summary  string
}

type CostPage struct {
	Frame
	Date       string
	Items      []InvoiceItem
	GrandTotal string
}

type CostSection struct {
	Lines []CostLine
	Total string
}

type DetailPage struct {
	Frame
	Room models.RoomSpec
	Cost *CostSection
}

type PrintPage struct {
	Frame
	SVG       template.HTML
	Technical TechnicalPage
	Cost      CostPage
}

// ============================================================
// Builders
// ============================================================

func (v *Views) frame(title string, active navigation.MenuItem) Frame {
	house := v.catalog.House()
	f := Frame{
		Title:      title,
		House:      house,
		CheckValue: units.Number(house.CheckValue),
	}
	if active == "" {
		return f
	}
	for _, item := range navigation.Menu {
		f.Menu = append(f.Menu, MenuLink{Item: item, Label: item.Label(), Active: item == active})
	}
	return f
}

func (v *Views) homePage() HomePage {
	house := v.catalog.House()
	private := len(v.catalog.Wing(models.WingPrivate))
	common := len(v.catalog.Wing(models.WingCommon))

	return HomePage{
		Frame:          v.frame(house.Name, navigation.MenuHome),
		TotalArea:      v.layout.TotalAreaText,
		RoomCount:      v.catalog.Len(),
		RoomsBreakdown: fmt.Sprintf("%d Bedrooms/Bathrooms + %d Common Areas", private, common),
		Dimensions:     v.houseDimensions(),
		DimensionsPoly: fmt.Sprintf("(%s) by (%s)", house.WidthPolynomial, house.HeightPolynomial),
		Rooms:          v.catalog.Rooms(),
	}
}

func (v *Views) technicalPage() TechnicalPage {
	house := v.catalog.House()
	return TechnicalPage{
		Frame: v.frame("Technical Room Analysis", navigation.MenuTechnical),
		Wings: []TechnicalWing{
			{Title: "Private Wing", Rooms: v.catalog.Wing(models.WingPrivate)},
			{Title: "Common Wing", Rooms: v.catalog.Wing(models.WingCommon)},
		},
		Totals: HouseTotals{
			Dimensions:    fmt.Sprintf("(%s) by (%s)", house.WidthPolynomial, house.HeightPolynomial),
			AreaPoly:      house.AreaPolynomial,
			PerimeterPoly: house.PerimeterPolynomial,
			Verification: fmt.Sprintf("%sft Width x %sft Length = %s Total Area",
				units.Number(v.layout.Bounds.Width), units.Number(v.layout.Bounds.Height), v.layout.TotalAreaText),
			TotalArea:      v.layout.TotalAreaText,
			TotalPerimeter: v.layout.TotalPerimeter,
		},
	}
}

// costPage lists the costed rooms as lettered invoice items, most
// expensive first.
func (v *Views) costPage() CostPage {
	page := CostPage{
		Frame:      v.frame("Cost Analysis Invoice", navigation.MenuCostAnalysis),
		Date:       v.catalog.House().EstimateDate,
		GrandTotal: units.Money(v.catalog.GrandTotal()),
	}

	for i, room := range v.catalog.Costed() {
		cb := room.CostBreakdown
		item := InvoiceItem{
			Letter:   units.ItemLetter(i),
			RoomID:   room.ID,
			Name:     room.Name,
			Title:    fmt.Sprintf("%s (%s)", room.Name, scopeLabel(cb)),
			Subtotal: units.Money(cb.Total),
			Summary:  summaryLabel(cb),
		}

		var measures []string
		if cb.Carpet != nil {
			measures = append(measures, "Area: "+units.SquareFeet(cb.Carpet.Area))
			item.Lines = append(item.Lines, CostLine{
				Label:  fmt.Sprintf("Carpet Material (%s/sq ft):", units.Money(cb.Carpet.Rate)),
				Amount: units.Money(cb.Carpet.Total),
			})
		}
		if cb.Molding != nil {
			measures = append(measures, "Perimeter: "+units.Feet(cb.Molding.Perimeter))
			item.Lines = append(item.Lines, CostLine{
				Label:  fmt.Sprintf("Crown Molding (%s/ft):", units.Money(cb.Molding.Rate)),
				Amount: units.Money(cb.Molding.Total),
			})
		}
		if cb.Installation != nil {
			item.Lines = append(item.Lines, CostLine{Label: "Installation Fee:", Amount: units.Money(*cb.Installation)})
		}
		item.Measures = strings.Join(measures, " | ")

		page.Items = append(page.Items, item)
	}
	return page
}

func (v *Views) detailPage(room models.RoomSpec) DetailPage {
	page := DetailPage{
		Frame: v.frame(room.Name, ""),
		Room:  room,
	}
	if room.CostBreakdown != nil {
		page.Cost = costSection(room.CostBreakdown)
	}
	return page
}

func costSection(cb *models.CostBreakdown) *CostSection {
	section := &CostSection{Total: units.Money(cb.Total)}
	if cb.Carpet != nil {
		section.Lines = append(section.Lines, CostLine{
			Label:  "Carpet Material",
			Detail: fmt.Sprintf("%s × %s/sq ft", units.SquareFeet(cb.Carpet.Area), units.Money(cb.Carpet.Rate)),
			Amount: units.Money(cb.Carpet.Total),
		})
	}
	if cb.Molding != nil {
		section.Lines = append(section.Lines, CostLine{
			Label:  "Crown Molding",
			Detail: fmt.Sprintf("%s × %s/ft", units.Feet(cb.Molding.Perimeter), units.Money(cb.Molding.Rate)),
			Amount: units.Money(cb.Molding.Total),
		})
	}
	if cb.Installation != nil {
		section.Lines = append(section.Lines, CostLine{
			Label:  "Installation Fee",
			Amount: units.Money(*cb.Installation),
		})
	}
	return section
}

func (v *Views) houseDimensions() string {
	return fmt.Sprintf("%sft × %sft", units.Number(v.layout.Bounds.Width), units.Number(v.layout.Bounds.Height))
}

func scopeLabel(cb *models.CostBreakdown) string {
	switch {
	case cb.Carpet != nil && cb.Molding != nil:
		return "Carpet + Crown Molding"
	case cb.Carpet != nil:
		return "Carpet Only"
	case cb.Molding != nil:
		return "Crown Molding Only"
	default:
		return "Installation"
	}
}

func summaryLabel(cb *models.CostBreakdown) string {
	switch {
	case cb.Carpet != nil && cb.Molding != nil && cb.Installation != nil:
		return "Carpet, molding & installation"
	case cb.Carpet != nil && cb.Molding != nil:
		return "Carpet & molding"
	case cb.Carpet != nil:
		return "Carpet material only"
	case cb.Molding != nil:
		return "Crown molding only"
	default:
		return "Installation only"
	}
}
