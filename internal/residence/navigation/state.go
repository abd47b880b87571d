// Package navigation holds the page state of one visitor: which of the
// listings is shown, or which room is open in the detail view.
package navigation

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownRoom is returned when a room id is not in the catalog.
	ErrUnknownRoom = errors.New("unknown room")
	// ErrTransitionNotAllowed is returned for actions the current page does
	// not offer, such as the menu while a room is open.
	ErrTransitionNotAllowed = errors.New("transition not allowed")
	// ErrUnknownMenuItem is returned by ParseMenuItem.
	ErrUnknownMenuItem = errors.New("unknown menu item")
)

// ============================================================
// States
// ============================================================

// State is one of Home, FloorPlan, Technical, CostAnalysis or RoomDetail.
// The set is closed: only this package can add implementations.
type State interface {
	Name() string
	isState()
}

type (
	Home         struct{}
	FloorPlan    struct{}
	Technical    struct{}
	CostAnalysis struct{}

	// RoomDetail shows one room as a full page.
	RoomDetail struct {
		RoomID string
	}
)

func (Home) Name() string         { return "home" }
func (FloorPlan) Name() string    { return "floor-plan" }
func (Technical) Name() string    { return "technical" }
func (CostAnalysis) Name() string { return "cost-analysis" }
func (s RoomDetail) Name() string { return s.RoomID }

func (Home) isState()         {}
func (FloorPlan) isState()    {}
func (Technical) isState()    {}
func (CostAnalysis) isState() {}
func (RoomDetail) isState()   {}

// IsListing reports whether s is one of the menu pages.
func IsListing(s State) bool {
	_, detail := s.(RoomDetail)
	return !detail
}

// ============================================================
// Menu
// ============================================================

// MenuItem is one entry of the top navigation bar.
type MenuItem string

const (
	MenuHome         MenuItem = "home"
	MenuFloorPlan    MenuItem = "floor-plan"
	MenuTechnical    MenuItem = "technical"
	MenuCostAnalysis MenuItem = "cost-analysis"
)

// Menu lists the navigation bar entries in display order.
var Menu = []MenuItem{MenuHome, MenuFloorPlan, MenuTechnical, MenuCostAnalysis}

var menuLabels = map[MenuItem]string{
	MenuHome:         "Home",
	MenuFloorPlan:    "Floor Plan",
	MenuTechnical:    "Technical Data",
	MenuCostAnalysis: "Cost Analysis",
}

func (m MenuItem) Label() string {
	return menuLabels[m]
}

// State returns the page the menu entry leads to.
func (m MenuItem) State() State {
	switch m {
	case MenuFloorPlan:
		return FloorPlan{}
	case MenuTechnical:
		return Technical{}
	case MenuCostAnalysis:
		return CostAnalysis{}
	default:
		return Home{}
	}
}

func ParseMenuItem(s string) (MenuItem, error) {
	m := MenuItem(s)
	if _, ok := menuLabels[m]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMenuItem, s)
	}
	return m, nil
}
