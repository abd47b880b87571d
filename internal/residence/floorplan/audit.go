package floorplan

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"polynomial-residence/internal/residence/models"
)

// ============================================================
// Render audit
// ============================================================

// ErrRenderMismatch is returned when a rendered drawing disagrees with
// the layout it was produced from.
var ErrRenderMismatch = errors.New("rendered floor plan does not match layout")

// DrawnRect is one identified rectangle read back from a rendered SVG.
type DrawnRect struct {
	ID   string
	Rect models.Rect
}

// ParseSVG walks the document and collects every rect that carries a
// room-<id> or hallway id, at any nesting depth.
func ParseSVG(r io.Reader) ([]DrawnRect, error) {
	decoder := xml.NewDecoder(r)
	var out []DrawnRect

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode svg: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "rect" {
			continue
		}

		id := attr(start, "id")
		if classifyElementByID(id) == "" {
			continue
		}

		var rect models.Rect
		for name, dst := range map[string]*float64{
			"x": &rect.X, "y": &rect.Y, "width": &rect.Width, "height": &rect.Height,
		} {
			v, err := strconv.ParseFloat(attr(start, name), 64)
			if err != nil {
				return nil, fmt.Errorf("rect %q attribute %s: %w", id, name, err)
			}
			*dst = v
		}
		out = append(out, DrawnRect{ID: id, Rect: rect})
	}

	return out, nil
}

// Audit reads a rendered drawing back and checks every room and the
// hallway against the pixel geometry the layout predicts at scale.
func Audit(r io.Reader, layout *Layout, scale float64) error {
	drawn, err := ParseSVG(r)
	if err != nil {
		return err
	}

	expect := NewRenderer(layout, scale, nil)
	want := map[string]models.Rect{HallwayID: expect.PixelRect(layout.Hallway)}
	for _, room := range layout.Rooms {
		want["room-"+room.ID] = expect.PixelRect(room.Rect)
	}

	var errs []error
	seen := make(map[string]bool, len(drawn))
	for _, d := range drawn {
		if seen[d.ID] {
			errs = append(errs, fmt.Errorf("%w: %s drawn twice", ErrRenderMismatch, d.ID))
			continue
		}
		seen[d.ID] = true

		w, ok := want[d.ID]
		if !ok {
			errs = append(errs, fmt.Errorf("%w: unexpected shape %s", ErrRenderMismatch, d.ID))
			continue
		}
		if !sameRect(w, d.Rect) {
			errs = append(errs, fmt.Errorf("%w: %s drawn at %v, want %v", ErrRenderMismatch, d.ID, d.Rect, w))
		}
	}
	for id := range want {
		if !seen[id] {
			errs = append(errs, fmt.Errorf("%w: %s missing", ErrRenderMismatch, id))
		}
	}

	return errors.Join(errs...)
}

func classifyElementByID(id string) string {
	if id == HallwayID {
		return "hallway"
	}
	if strings.HasPrefix(id, "room-") {
		return "room"
	}
	return ""
}

func attr(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func sameRect(a, b models.Rect) bool {
	const eps = 1e-6
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps &&
		math.Abs(a.Width-b.Width) < eps && math.Abs(a.Height-b.Height) < eps
}
