package floorplan

import (
	"fmt"
	"html"
	"net/url"
	"strconv"
	"strings"

	"polynomial-residence/internal/residence/models"
	"polynomial-residence/internal/residence/units"
)

// ============================================================
// Renderer
// ============================================================

const (
	// DefaultScale is the drawing scale in pixels per foot.
	DefaultScale = 12.0

	marginTop  = 100.0
	marginLeft = 150.0

	ink         = "#1a252f"
	navy        = "#2c3e50"
	dimensionRd = "#d63031"
	labelBlue   = "#0984e3"
	highlight   = "#ffeaa7"
)

// SelectFunc receives the id of a clicked room.
type SelectFunc func(roomID string)

// RenderOptions controls the output flavour of Render.
type RenderOptions struct {
	// Interactive adds htmx hover/leave/click hooks to room shapes.
	Interactive bool
}

// Renderer draws one Layout and owns the hover state of that drawing. It
// holds no navigation state: clicks are reported through onSelect only.
// A Renderer is not safe for concurrent use.
type Renderer struct {
	layout   *Layout
	scale    float64
	hovered  string
	onSelect SelectFunc
}

func NewRenderer(layout *Layout, scale float64, onSelect SelectFunc) *Renderer {
	if scale <= 0 {
		scale = DefaultScale
	}
	return &Renderer{layout: layout, scale: scale, onSelect: onSelect}
}

// Hover sets the hovered room. The hallway and unknown ids are ignored.
// It reports whether the hover state changed.
func (r *Renderer) Hover(id string) bool {
	if _, ok := r.layout.Room(id); !ok {
		return false
	}
	if r.hovered == id {
		return false
	}
	r.hovered = id
	return true
}

// Leave clears the hover state and reports whether it was set.
func (r *Renderer) Leave() bool {
	if r.hovered == "" {
		return false
	}
	r.hovered = ""
	return true
}

func (r *Renderer) Hovered() (string, bool) {
	return r.hovered, r.hovered != ""
}

// Click forwards a room click to the selection callback. Clicks on the
// hallway or on unknown ids are dropped and reported as false.
func (r *Renderer) Click(id string) bool {
	if _, ok := r.layout.Room(id); !ok {
		return false
	}
	if r.onSelect != nil {
		r.onSelect(id)
	}
	return true
}

func (r *Renderer) Layout() *Layout {
	return r.layout
}

func (r *Renderer) Scale() float64 {
	return r.scale
}

// Origin is the pixel position of the house's top-left corner.
func (r *Renderer) Origin() models.Point {
	return models.Point{X: marginLeft, Y: marginTop}
}

// Size returns the full drawing size in pixels.
func (r *Renderer) Size() (float64, float64) {
	width := r.layout.Bounds.Width*r.scale + marginLeft*2 + 200
	height := r.layout.Bounds.Height*r.scale + marginTop + 200
	return width, height
}

// PixelRect maps a floor rectangle in feet to drawing pixels.
func (r *Renderer) PixelRect(rect models.Rect) models.Rect {
	return rect.Scale(r.scale, r.Origin())
}

// Render produces the SVG document for the current hover state.
func (r *Renderer) Render(opts RenderOptions) string {
	width, height := r.Size()

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s" class="floor-plan">`+"\n",
		formatFloat(width), formatFloat(height), formatFloat(width), formatFloat(height))

	r.renderDefs(&b, width, height)
	r.renderTitle(&b, width)
	r.renderOverallDimensions(&b)
	r.renderHallway(&b)
	for _, room := range r.layout.Rooms {
		r.renderRoom(&b, room, opts)
	}
	r.renderLegend(&b)
	r.renderWings(&b)

	fmt.Fprintf(&b, `<text x="%s" y="%s" text-anchor="middle" font-size="9" fill="#666" font-family="Arial, sans-serif" font-style="italic">%s</text>`+"\n",
		formatFloat(width/2), formatFloat(height-20),
		esc("Precise blueprint line weights | Dark navy blue ink | All measurements verified at x = "+units.Number(r.layout.House.CheckValue)))

	b.WriteString(`</svg>`)
	return b.String()
}

// ============================================================
// Frame
// ============================================================

func (r *Renderer) renderDefs(b *strings.Builder, width, height float64) {
	b.WriteString(`<defs>` + "\n")
	b.WriteString(`<pattern id="grid" width="20" height="20" patternUnits="userSpaceOnUse"><path d="M 20 0 L 0 0 0 20" fill="none" stroke="#e5e5e5" stroke-width="1" /></pattern>` + "\n")
	fmt.Fprintf(b, `<marker id="arrowEnd" markerWidth="10" markerHeight="10" refX="9" refY="3" orient="auto"><path d="M0,0 L0,6 L9,3 z" fill="%s" /></marker>`+"\n", ink)
	fmt.Fprintf(b, `<marker id="arrowStart" markerWidth="10" markerHeight="10" refX="0" refY="3" orient="auto"><path d="M9,0 L9,6 L0,3 z" fill="%s" /></marker>`+"\n", ink)
	b.WriteString(`</defs>` + "\n")
	fmt.Fprintf(b, `<rect x="0" y="0" width="%s" height="%s" fill="url(#grid)" />`+"\n", formatFloat(width), formatFloat(height))
}

func (r *Renderer) renderTitle(b *strings.Builder, width float64) {
	house := r.layout.House
	cx := formatFloat(width / 2)
	fmt.Fprintf(b, `<text x="%s" y="40" text-anchor="middle" font-size="28" font-weight="bold" fill="%s" font-family="Arial, sans-serif">%s</text>`+"\n",
		cx, ink, esc(strings.ToUpper(house.Name)))
	fmt.Fprintf(b, `<text x="%s" y="65" text-anchor="middle" font-size="14" fill="#555" font-family="Arial, sans-serif">%s</text>`+"\n",
		cx, esc("ARCHITECTURAL SCHEMATIC BLUEPRINT | Scale: 1\" = 1' | Verification Basis: x = "+units.Number(house.CheckValue)))
	fmt.Fprintf(b, `<rect x="%s" y="20" width="500" height="55" fill="none" stroke="%s" stroke-width="2" />`+"\n",
		formatFloat(width/2-250), ink)
}

func (r *Renderer) renderOverallDimensions(b *strings.Builder) {
	house := r.layout.House
	o := r.Origin()
	w := r.layout.Bounds.Width * r.scale
	h := r.layout.Bounds.Height * r.scale
	at := "(at x=" + units.Number(house.CheckValue) + " → "

	// top edge: width
	fmt.Fprintf(b, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="2" marker-start="url(#arrowStart)" marker-end="url(#arrowEnd)" />`+"\n",
		formatFloat(o.X), formatFloat(o.Y-40), formatFloat(o.X+w), formatFloat(o.Y-40), dimensionRd)
	fmt.Fprintf(b, `<text x="%s" y="%s" text-anchor="middle" font-size="11" font-weight="bold" fill="%s" font-family="monospace">%s</text>`+"\n",
		formatFloat(o.X+w/2), formatFloat(o.Y-48), dimensionRd, esc(house.WidthPolynomial))
	fmt.Fprintf(b, `<text x="%s" y="%s" text-anchor="middle" font-size="10" fill="%s" font-family="Arial, sans-serif">%s</text>`+"\n",
		formatFloat(o.X+w/2), formatFloat(o.Y-32), dimensionRd, esc(at+r.layout.WidthText+")"))

	// left edge: height
	fmt.Fprintf(b, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="2" marker-start="url(#arrowStart)" marker-end="url(#arrowEnd)" />`+"\n",
		formatFloat(o.X-40), formatFloat(o.Y), formatFloat(o.X-40), formatFloat(o.Y+h), dimensionRd)
	writeRotatedText(b, o.X-50, o.Y+h/2, `font-size="11" font-weight="bold" fill="`+dimensionRd+`" font-family="monospace"`, house.HeightPolynomial)
	writeRotatedText(b, o.X-70, o.Y+h/2, `font-size="10" fill="`+dimensionRd+`" font-family="Arial, sans-serif"`, at+r.layout.HeightText+")")

	fmt.Fprintf(b, `<rect id="house" x="%s" y="%s" width="%s" height="%s" fill="none" stroke="%s" stroke-width="4" />`+"\n",
		formatFloat(o.X), formatFloat(o.Y), formatFloat(w), formatFloat(h), ink)
}

func (r *Renderer) renderHallway(b *strings.Builder) {
	px := r.PixelRect(r.layout.Hallway)
	c := px.Center()

	fmt.Fprintf(b, `<rect id="%s" x="%s" y="%s" width="%s" height="%s" fill="#f5f5f5" stroke="%s" stroke-width="2" stroke-dasharray="8,4" pointer-events="none" />`+"\n",
		HallwayID, formatFloat(px.X), formatFloat(px.Y), formatFloat(px.Width), formatFloat(px.Height), ink)
	writeRotatedText(b, c.X, c.Y, `font-size="10" fill="#666" font-family="Arial, sans-serif"`, "HALLWAY")
	writeRotatedText(b, c.X, c.Y+15, `font-size="8" fill="#666" font-family="monospace"`, r.layout.HallwayLabel)
}

// ============================================================
// Rooms
// ============================================================

func (r *Renderer) renderRoom(b *strings.Builder, room Room, opts RenderOptions) {
	px := r.PixelRect(room.Rect)
	hovered := r.hovered == room.ID

	fill, nameFill, textFill, areaFill, class := "#ffffff", ink, "#555", dimensionRd, "room"
	if hovered {
		fill, nameFill, textFill, areaFill, class = navy, "#fff", "#fff", highlight, "room hovered"
	}

	fmt.Fprintf(b, `<g class="%s" data-room-id="%s"`, class, esc(room.ID))
	if opts.Interactive {
		fmt.Fprintf(b, ` hx-post="/floor-plan/hover/%s" hx-trigger="mouseenter"`, url.PathEscape(room.ID))
	}
	b.WriteString(">\n")
	if opts.Interactive {
		b.WriteString(`<g hx-post="/floor-plan/leave" hx-trigger="mouseleave">` + "\n")
	}

	fmt.Fprintf(b, `<rect id="room-%s" x="%s" y="%s" width="%s" height="%s" fill="%s" stroke="%s" stroke-width="3"`,
		esc(room.ID), formatFloat(px.X), formatFloat(px.Y), formatFloat(px.Width), formatFloat(px.Height), fill, ink)
	if opts.Interactive {
		fmt.Fprintf(b, ` style="cursor:pointer" hx-post="/floor-plan/click/%s" hx-trigger="click"`, url.PathEscape(room.ID))
	}
	b.WriteString(" />\n")

	r.renderRoomDimensions(b, room, px)

	cx := formatFloat(px.X + px.Width/2)
	fmt.Fprintf(b, `<text x="%s" y="%s" text-anchor="middle" font-size="12" font-weight="bold" fill="%s" font-family="Arial, sans-serif" pointer-events="none">%s</text>`+"\n",
		cx, formatFloat(px.Y+20), nameFill, esc(room.Name))
	fmt.Fprintf(b, `<text x="%s" y="%s" text-anchor="middle" font-size="9" fill="%s" font-family="Arial, sans-serif" pointer-events="none">%s × %s</text>`+"\n",
		cx, formatFloat(px.Y+35), textFill, esc(units.Feet(room.Rect.Width)), esc(units.Feet(room.Rect.Height)))
	fmt.Fprintf(b, `<text x="%s" y="%s" text-anchor="middle" font-size="8" fill="%s" font-family="monospace" pointer-events="none">Area: %s</text>`+"\n",
		cx, formatFloat(px.MaxY()-25), areaFill, esc(room.AreaPolynomial))
	fmt.Fprintf(b, `<text x="%s" y="%s" text-anchor="middle" font-size="9" fill="%s" font-family="Arial, sans-serif" pointer-events="none">= %s</text>`+"\n",
		cx, formatFloat(px.MaxY()-13), textFill, esc(room.AreaText))

	if room.decorate != nil {
		decorate(b, room.decorate, px, r.scale)
	}

	if hovered {
		fmt.Fprintf(b, `<text class="room-overlay" x="%s" y="%s" text-anchor="middle" font-size="8" font-weight="bold" fill="%s" font-family="Arial, sans-serif" pointer-events="none">► CLICK FOR DETAILS ◄</text>`+"\n",
			cx, formatFloat(px.MaxY()-3), highlight)
	}

	if opts.Interactive {
		b.WriteString("</g>\n")
	}
	b.WriteString("</g>\n")
}

func (r *Renderer) renderRoomDimensions(b *strings.Builder, room Room, px models.Rect) {
	const tick = `stroke="#666" stroke-width="1"`

	// width ticks along the top edge
	writeLine(b, px.X, px.Y-3, px.X, px.Y-10, tick)
	writeLine(b, px.MaxX(), px.Y-3, px.MaxX(), px.Y-10, tick)
	writeLine(b, px.X, px.Y-7, px.MaxX(), px.Y-7, tick)

	// height ticks along the left edge
	writeLine(b, px.X-3, px.Y, px.X-10, px.Y, tick)
	writeLine(b, px.X-3, px.MaxY(), px.X-10, px.MaxY(), tick)
	writeLine(b, px.X-7, px.Y, px.X-7, px.MaxY(), tick)

	label := `font-size="8" fill="` + labelBlue + `" font-family="monospace" font-weight="bold"`
	fmt.Fprintf(b, `<text x="%s" y="%s" text-anchor="middle" %s>%s</text>`+"\n",
		formatFloat(px.X+px.Width/2), formatFloat(px.Y-12), label, esc(room.WidthPolynomial))
	writeRotatedText(b, px.X-15, px.Y+px.Height/2, label, room.HeightPolynomial)
}

// ============================================================
// Legend & side panels
// ============================================================

func (r *Renderer) renderLegend(b *strings.Builder) {
	house := r.layout.House
	o := r.Origin()
	y := o.Y + r.layout.Bounds.Height*r.scale + 50

	fmt.Fprintf(b, `<g class="legend" transform="translate(%s, %s)">`+"\n", formatFloat(o.X), formatFloat(y))
	fmt.Fprintf(b, `<rect x="0" y="0" width="480" height="110" fill="white" stroke="%s" stroke-width="3" />`+"\n", ink)
	fmt.Fprintf(b, `<rect x="5" y="5" width="470" height="100" fill="none" stroke="%s" stroke-width="1" />`+"\n", ink)
	fmt.Fprintf(b, `<text x="240" y="25" text-anchor="middle" font-size="14" font-weight="bold" fill="%s" font-family="Arial, sans-serif">TOTAL HOUSE SPECIFICATIONS</text>`+"\n", ink)
	fmt.Fprintf(b, `<text x="15" y="45" font-size="10" font-family="monospace" fill="#333">%s</text>`+"\n",
		esc("Total Area Polynomial: "+house.AreaPolynomial+" = "+r.layout.TotalAreaText))
	fmt.Fprintf(b, `<text x="15" y="63" font-size="10" font-family="monospace" fill="#333">%s</text>`+"\n",
		esc("Total Perimeter Polynomial: "+house.PerimeterPolynomial+" = "+r.layout.TotalPerimeter))
	fmt.Fprintf(b, `<text x="15" y="81" font-size="9" fill="#555" font-family="Arial, sans-serif">%s</text>`+"\n",
		esc("All dimensions verified at x = "+units.Number(house.CheckValue)+" | Blueprint uses engineering standard line weights"))
	fmt.Fprintf(b, `<text x="15" y="96" font-size="9" fill="%s" font-family="Arial, sans-serif" font-weight="bold">► Click any room for detailed mathematical analysis and cost breakdown</text>`+"\n", dimensionRd)
	b.WriteString("</g>\n")
}

func (r *Renderer) renderWings(b *strings.Builder) {
	o := r.Origin()
	x := o.X + r.layout.Bounds.Width*r.scale + 60
	y := o.Y + 30

	for _, wing := range r.layout.Wings {
		lines := len(wing.Rooms)
		height := float64(lines)*17 + 72

		fmt.Fprintf(b, `<g class="wing" data-wing="%s" transform="translate(%s, %s)">`+"\n", esc(string(wing.Wing)), formatFloat(x), formatFloat(y))
		fmt.Fprintf(b, `<rect x="-10" y="-15" width="180" height="%s" fill="#f8f9fa" stroke="%s" stroke-width="2" />`+"\n", formatFloat(height), ink)
		fmt.Fprintf(b, `<text x="75" y="5" text-anchor="middle" font-size="12" font-weight="bold" fill="%s" font-family="Arial, sans-serif">%s</text>`+"\n", ink, esc(wing.Title))

		ly := 25.0
		for _, line := range wing.Rooms {
			fmt.Fprintf(b, `<text x="5" y="%s" font-size="9" font-family="monospace" fill="#333">%s</text>`+"\n",
				formatFloat(ly), esc("• "+line.Name+": "+line.Area))
			ly += 17
		}
		fmt.Fprintf(b, `<line x1="0" y1="%s" x2="160" y2="%s" stroke="%s" stroke-width="1" />`+"\n", formatFloat(ly-8), formatFloat(ly-8), ink)
		fmt.Fprintf(b, `<text x="5" y="%s" font-size="9" font-weight="bold" font-family="monospace" fill="%s">%s</text>`+"\n",
			formatFloat(ly+7), dimensionRd, esc("Subtotal: "+wing.Subtotal))
		fmt.Fprintf(b, `<text x="5" y="%s" font-size="8" fill="#666" font-family="Arial, sans-serif">(%d rooms)</text>`+"\n",
			formatFloat(ly+24), wing.Count)
		b.WriteString("</g>\n")

		y += height + 20
	}
}

// ============================================================
// Formatting helpers
// ============================================================

func writeLine(b *strings.Builder, x1, y1, x2, y2 float64, attrs string) {
	fmt.Fprintf(b, `<line x1="%s" y1="%s" x2="%s" y2="%s" %s />`+"\n",
		formatFloat(x1), formatFloat(y1), formatFloat(x2), formatFloat(y2), attrs)
}

// writeRotatedText draws text turned -90° around its anchor point.
func writeRotatedText(b *strings.Builder, x, y float64, attrs, text string) {
	fx, fy := formatFloat(x), formatFloat(y)
	fmt.Fprintf(b, `<text x="%s" y="%s" text-anchor="middle" %s transform="rotate(-90, %s, %s)">%s</text>`+"\n",
		fx, fy, attrs, fx, fy, esc(text))
}

func esc(s string) string {
	return html.EscapeString(s)
}

func formatFloat(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}
