package shell

import (
	"bytes"
	"sync"
	"testing"

	"polynomial-residence/internal/residence/catalog"
	"polynomial-residence/internal/residence/floorplan"
	"polynomial-residence/internal/residence/navigation"
	"polynomial-residence/internal/residence/views"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newShell(t *testing.T) *Shell {
	t.Helper()
	c := catalog.Default()
	l, err := floorplan.Build(c)
	require.NoError(t, err)
	v, err := views.New(c, l)
	require.NoError(t, err)
	return New(c, l, v, floorplan.DefaultScale)
}

func render(t *testing.T, s *Shell) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, s.Render(&buf))
	return buf.String()
}

func TestRenderFollowsNavigation(t *testing.T) {
	s := newShell(t)

	assert.Equal(t, navigation.Home{}, s.State())
	assert.Contains(t, render(t, s), "Explore Individual Rooms")

	require.NoError(t, s.Navigate(navigation.MenuTechnical))
	assert.Contains(t, render(t, s), "Technical Room Analysis")

	require.NoError(t, s.Navigate(navigation.MenuCostAnalysis))
	assert.Contains(t, render(t, s), "GRAND TOTAL:")

	require.NoError(t, s.Navigate(navigation.MenuFloorPlan))
	page := render(t, s)
	assert.Contains(t, page, `id="room-kitchen"`)
	assert.Contains(t, page, `hx-post="/floor-plan/click/kitchen"`)

	require.NoError(t, s.OpenRoom("dining-room"))
	page = render(t, s)
	assert.Contains(t, page, "<h1>Dining Room</h1>")
	assert.NotContains(t, page, "Explore Individual Rooms")
}

func TestFloorPlanClickOpensRoom(t *testing.T) {
	s := newShell(t)
	require.NoError(t, s.Navigate(navigation.MenuFloorPlan))

	changed, err := s.HoverRoom("living-room")
	require.NoError(t, err)
	assert.True(t, changed)

	require.NoError(t, s.ClickRoom("living-room"))
	assert.Equal(t, navigation.RoomDetail{RoomID: "living-room"}, s.State())
	_, hovered := s.Hovered()
	assert.False(t, hovered)
}

func TestFloorPlanHallwayClickIsIgnored(t *testing.T) {
	s := newShell(t)
	require.NoError(t, s.Navigate(navigation.MenuFloorPlan))

	err := s.ClickRoom(floorplan.HallwayID)
	assert.ErrorIs(t, err, navigation.ErrUnknownRoom)
	assert.Equal(t, navigation.FloorPlan{}, s.State())

	changed, err := s.HoverRoom(floorplan.HallwayID)
	require.NoError(t, err)
	assert.False(t, changed)
	_, hovered := s.Hovered()
	assert.False(t, hovered)
}

func TestHoverOnlyOnFloorPlan(t *testing.T) {
	s := newShell(t)

	_, err := s.HoverRoom("kitchen")
	assert.ErrorIs(t, err, navigation.ErrTransitionNotAllowed)
	_, err = s.RenderFloorPlan()
	assert.ErrorIs(t, err, navigation.ErrTransitionNotAllowed)
	assert.ErrorIs(t, s.ClickRoom("kitchen"), navigation.ErrTransitionNotAllowed)
	assert.Equal(t, navigation.Home{}, s.State())
}

func TestHoverClearedWhenLeavingFloorPlan(t *testing.T) {
	s := newShell(t)
	require.NoError(t, s.Navigate(navigation.MenuFloorPlan))

	_, err := s.HoverRoom("kitchen")
	require.NoError(t, err)
	svg, err := s.RenderFloorPlan()
	require.NoError(t, err)
	assert.Contains(t, svg, `<g class="room hovered" data-room-id="kitchen"`)

	require.NoError(t, s.Navigate(navigation.MenuHome))
	_, hovered := s.Hovered()
	assert.False(t, hovered)

	require.NoError(t, s.Navigate(navigation.MenuFloorPlan))
	svg, err = s.RenderFloorPlan()
	require.NoError(t, err)
	assert.NotContains(t, svg, "room hovered")

	changed, err := s.LeaveRoom()
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestMasterBedroomBackKitchen(t *testing.T) {
	s := newShell(t)

	require.NoError(t, s.OpenRoom("master-bedroom"))
	require.NoError(t, s.Back())
	require.NoError(t, s.OpenRoom("kitchen"))

	assert.Equal(t, navigation.RoomDetail{RoomID: "kitchen"}, s.State())
	page := render(t, s)
	assert.Contains(t, page, "<h1>Kitchen</h1>")
	assert.NotContains(t, page, "Master Bedroom")
}

func TestUnknownRoomKeepsCurrentView(t *testing.T) {
	s := newShell(t)
	require.NoError(t, s.Navigate(navigation.MenuCostAnalysis))

	assert.ErrorIs(t, s.OpenRoom("garage"), navigation.ErrUnknownRoom)
	assert.Equal(t, navigation.CostAnalysis{}, s.State())
	assert.Contains(t, render(t, s), "Cost Analysis Invoice")
}

func TestConcurrentActionsAreSerialised(t *testing.T) {
	s := newShell(t)
	require.NoError(t, s.Navigate(navigation.MenuFloorPlan))

	var wg sync.WaitGroup
	for _, id := range []string{"kitchen", "bathroom", "living-room", "bedroom-2"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				_, _ = s.HoverRoom(id)
				_, _ = s.RenderFloorPlan()
				_, _ = s.LeaveRoom()
			}
		}()
	}
	wg.Wait()

	_, hovered := s.Hovered()
	assert.False(t, hovered)
}
