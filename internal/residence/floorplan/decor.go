package floorplan

import (
	"fmt"
	"strings"

	"polynomial-residence/internal/residence/models"
)

// ============================================================
// Room decorations
// ============================================================

// decorator draws furniture through a furniture frame. Offsets and sizes
// are given in pixels at DefaultScale and scaled to the drawing scale.
type decorator func(f *furniture)

// decorations is resolved once per room when the layout is built. Rooms
// without an entry are drawn bare.
var decorations = map[string]decorator{
	"master-bedroom":  drawBed,
	"bedroom-2":       drawBed,
	"master-bathroom": drawBathFixtures,
	"bathroom":        drawBathFixtures,
	"kitchen":         drawKitchen,
	"dining-room":     drawDiningSet,
	"living-room":     drawLounge,
}

const (
	furnitureStroke = "#2d3436"
	linen           = "#dfe6e9"
	pillow          = "#b2bec3"
	steel           = "#95a5a6"
	charcoal        = "#636e72"
	oak             = "#d4a574"
)

// furniture collects the pieces of one room. A piece reaching outside the
// room marks the whole set as not fitting.
type furniture struct {
	b      strings.Builder
	px     models.Rect
	k      float64
	misfit bool
}

// decorate draws d into px at scale. Nothing is drawn when the set does not
// fit inside the room.
func decorate(b *strings.Builder, d decorator, px models.Rect, scale float64) {
	f := &furniture{px: px, k: scale / DefaultScale}
	d(f)
	if !f.misfit {
		b.WriteString(f.b.String())
	}
}

// w and h are the room size in DefaultScale pixels.
func (f *furniture) w() float64 { return f.px.Width / f.k }
func (f *furniture) h() float64 { return f.px.Height / f.k }

func (f *furniture) rect(dx, dy, w, h float64, fill string, strokeWidth int, extra string) {
	r := models.Rect{X: f.px.X + dx*f.k, Y: f.px.Y + dy*f.k, Width: w * f.k, Height: h * f.k}
	f.place(r)
	writeRect(&f.b, r.X, r.Y, r.Width, r.Height, fill, strokeWidth, extra)
}

func (f *furniture) circle(dx, dy, radius float64, fill string, strokeWidth int) {
	cx, cy, r := f.px.X+dx*f.k, f.px.Y+dy*f.k, radius*f.k
	f.place(models.Rect{X: cx - r, Y: cy - r, Width: 2 * r, Height: 2 * r})
	writeCircle(&f.b, cx, cy, r, fill, strokeWidth)
}

func (f *furniture) place(r models.Rect) {
	const eps = 1e-6
	room := models.Rect{X: f.px.X - eps, Y: f.px.Y - eps, Width: f.px.Width + 2*eps, Height: f.px.Height + 2*eps}
	if r.Width <= 0 || r.Height <= 0 || !room.Contains(r) {
		f.misfit = true
	}
}

func drawBed(f *furniture) {
	f.rect(20, 50, 50, 70, linen, 2, "")
	f.rect(20, 45, 50, 10, pillow, 1, "")
}

func drawBathFixtures(f *furniture) {
	f.circle(30, f.h()-25, 8, linen, 2)
	f.rect(55, f.h()-30, 25, 15, linen, 2, `rx="3"`)
}

func drawKitchen(f *furniture) {
	f.rect(10, 50, f.w()-20, 25, steel, 2, "")
	f.rect(20, 85, 35, 35, charcoal, 2, "")
	f.circle(30, 95, 5, "none", 1)
	f.circle(45, 95, 5, "none", 1)
}

func drawDiningSet(f *furniture) {
	f.rect(25, 50, 70, 50, oak, 2, "")
	f.rect(20, 65, 15, 20, steel, 1, "")
	f.rect(f.w()-35, 65, 15, 20, steel, 1, "")
}

func drawLounge(f *furniture) {
	f.rect(15, 60, f.w()-30, 40, charcoal, 2, "")
	f.rect(15, 55, f.w()-30, 10, "#7f8c8d", 1, "")
	f.rect(35, 115, 50, 35, oak, 2, "")
}

func writeRect(b *strings.Builder, x, y, w, h float64, fill string, strokeWidth int, extra string) {
	fmt.Fprintf(b, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s" stroke="%s" stroke-width="%d" pointer-events="none"`,
		formatFloat(x), formatFloat(y), formatFloat(w), formatFloat(h), fill, furnitureStroke, strokeWidth)
	if extra != "" {
		b.WriteString(" ")
		b.WriteString(extra)
	}
	b.WriteString(" />\n")
}

func writeCircle(b *strings.Builder, cx, cy, r float64, fill string, strokeWidth int) {
	fmt.Fprintf(b, `<circle cx="%s" cy="%s" r="%s" fill="%s" stroke="%s" stroke-width="%d" pointer-events="none" />`+"\n",
		formatFloat(cx), formatFloat(cy), formatFloat(r), fill, furnitureStroke, strokeWidth)
}
