// Package shell composes one visitor's page: it owns the navigation state
// and the floor plan hover state of a session and renders whichever view
// the navigation state selects.
package shell

import (
	"fmt"
	"io"
	"sync"

	"polynomial-residence/internal/residence/catalog"
	"polynomial-residence/internal/residence/floorplan"
	"polynomial-residence/internal/residence/navigation"
	"polynomial-residence/internal/residence/views"
)

// Shell serialises every action of one session, so each transition
// completes before the next render starts.
type Shell struct {
	mu      sync.Mutex
	catalog *catalog.Catalog
	views   *views.Views
	nav     *navigation.Machine
	plan    *floorplan.Renderer

	// selectErr carries the navigation result out of the renderer's
	// click callback.
	selectErr error
}

func New(c *catalog.Catalog, layout *floorplan.Layout, v *views.Views, scale float64) *Shell {
	s := &Shell{
		catalog: c,
		views:   v,
		nav:     navigation.New(c),
	}
	s.plan = floorplan.NewRenderer(layout, scale, s.selectRoom)
	return s
}

// State returns the current navigation state.
func (s *Shell) State() navigation.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.Current()
}

// Hovered returns the hovered room of the floor plan, if any.
func (s *Shell) Hovered() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plan.Hovered()
}

// ============================================================
// Actions
// ============================================================

func (s *Shell) Navigate(item navigation.MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.nav.Select(item); err != nil {
		return err
	}
	s.clearHoverOffPlan()
	return nil
}

// OpenRoom handles a room card click on a listing page.
func (s *Shell) OpenRoom(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.nav.OpenRoom(id); err != nil {
		return err
	}
	s.clearHoverOffPlan()
	return nil
}

func (s *Shell) Back() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.Back()
}

// HoverRoom reports whether the diagram changed.
func (s *Shell) HoverRoom(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.onFloorPlan("hover"); err != nil {
		return false, err
	}
	return s.plan.Hover(id), nil
}

func (s *Shell) LeaveRoom() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.onFloorPlan("leave"); err != nil {
		return false, err
	}
	return s.plan.Leave(), nil
}

// ClickRoom passes a diagram click to the renderer. Clicks on a room open
// its detail page; the hallway and unknown ids leave the page unchanged.
func (s *Shell) ClickRoom(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.onFloorPlan("click"); err != nil {
		return err
	}

	s.selectErr = nil
	if !s.plan.Click(id) {
		return fmt.Errorf("%w: %q", navigation.ErrUnknownRoom, id)
	}
	if s.selectErr != nil {
		return s.selectErr
	}
	s.clearHoverOffPlan()
	return nil
}

func (s *Shell) selectRoom(id string) {
	s.selectErr = s.nav.OpenRoom(id)
}

func (s *Shell) onFloorPlan(action string) error {
	if _, ok := s.nav.Current().(navigation.FloorPlan); !ok {
		return fmt.Errorf("%w: floor plan %s from %s", navigation.ErrTransitionNotAllowed, action, s.nav.Current().Name())
	}
	return nil
}

// clearHoverOffPlan drops the hover state once the diagram is not shown.
func (s *Shell) clearHoverOffPlan() {
	if _, ok := s.nav.Current().(navigation.FloorPlan); !ok {
		s.plan.Leave()
	}
}

// ============================================================
// Rendering
// ============================================================

// Render writes the page selected by the navigation state.
func (s *Shell) Render(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch st := s.nav.Current().(type) {
	case navigation.Home:
		return s.views.Home(w)
	case navigation.FloorPlan:
		return s.views.FloorPlan(w, s.plan.Render(floorplan.RenderOptions{Interactive: true}))
	case navigation.Technical:
		return s.views.Technical(w)
	case navigation.CostAnalysis:
		return s.views.CostAnalysis(w)
	case navigation.RoomDetail:
		room, err := s.catalog.Get(st.RoomID)
		if err != nil {
			return err
		}
		return s.views.RoomDetail(w, room)
	default:
		return fmt.Errorf("unhandled navigation state %T", st)
	}
}

// RenderFloorPlan returns the interactive diagram alone, for partial
// page updates.
func (s *Shell) RenderFloorPlan() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.onFloorPlan("render"); err != nil {
		return "", err
	}
	return s.plan.Render(floorplan.RenderOptions{Interactive: true}), nil
}
