package navigation

import "fmt"

// RoomLookup answers whether a room id exists. *catalog.Catalog satisfies it.
type RoomLookup interface {
	Has(id string) bool
}

// Machine is the navigation state of one visitor. Rejected actions leave
// the state untouched and return an error that callers may log. A Machine
// is not safe for concurrent use.
type Machine struct {
	rooms   RoomLookup
	current State
}

// New returns a machine on the Home page.
func New(rooms RoomLookup) *Machine {
	return &Machine{rooms: rooms, current: Home{}}
}

func (m *Machine) Current() State {
	return m.current
}

// Select follows a menu entry. It is only offered on listing pages.
func (m *Machine) Select(item MenuItem) error {
	if _, ok := menuLabels[item]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMenuItem, string(item))
	}
	if !IsListing(m.current) {
		return fmt.Errorf("%w: menu from %s", ErrTransitionNotAllowed, m.current.Name())
	}
	m.current = item.State()
	return nil
}

// OpenRoom moves from a listing page to the room's detail page. Unknown ids
// keep the current page.
func (m *Machine) OpenRoom(id string) error {
	if !IsListing(m.current) {
		return fmt.Errorf("%w: open room from %s", ErrTransitionNotAllowed, m.current.Name())
	}
	if !m.rooms.Has(id) {
		return fmt.Errorf("%w: %q", ErrUnknownRoom, id)
	}
	m.current = RoomDetail{RoomID: id}
	return nil
}

// Back leaves a room's detail page for Home.
func (m *Machine) Back() error {
	if IsListing(m.current) {
		return fmt.Errorf("%w: back from %s", ErrTransitionNotAllowed, m.current.Name())
	}
	m.current = Home{}
	return nil
}
