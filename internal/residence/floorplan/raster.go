package floorplan

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"

	"polynomial-residence/internal/residence/models"
	"polynomial-residence/internal/residence/units"
)

// ============================================================
// Raster export
// ============================================================

var (
	paper    = color.RGBA{255, 255, 255, 255}
	inkRGBA  = color.RGBA{0x1a, 0x25, 0x2f, 255}
	floorRGB = color.RGBA{0xf5, 0xf5, 0xf5, 255}
	redRGBA  = color.RGBA{0xd6, 0x30, 0x31, 255}
	greyRGBA = color.RGBA{0x55, 0x55, 0x55, 255}
)

// RasterizePNG draws a static, hover-free version of the floor plan as PNG:
// house outline, hallway, room outlines with name and area, and the title.
func RasterizePNG(w io.Writer, layout *Layout, scale float64) error {
	r := NewRenderer(layout, scale, nil)
	width, height := r.Size()

	img := image.NewRGBA(image.Rect(0, 0, int(math.Ceil(width)), int(math.Ceil(height))))
	draw.Draw(img, img.Bounds(), image.NewUniform(paper), image.Point{}, draw.Src)

	parsedFont, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		return fmt.Errorf("parse font: %w", err)
	}
	title := newDrawer(img, parsedFont, 24, inkRGBA)
	label := newDrawer(img, parsedFont, 12, inkRGBA)
	small := newDrawer(img, parsedFont, 10, greyRGBA)
	area := newDrawer(img, parsedFont, 10, redRGBA)

	drawCentered(title, layout.House.Name, width/2, 45)

	hall := r.PixelRect(layout.Hallway)
	fillRect(img, hall, floorRGB)
	strokeRect(img, hall, inkRGBA, 1)

	for _, room := range layout.Rooms {
		px := r.PixelRect(room.Rect)
		strokeRect(img, px, inkRGBA, 2)
		c := px.Center()
		drawCentered(label, room.Name, c.X, c.Y-6)
		drawCentered(small, units.Feet(room.Rect.Width)+" x "+units.Feet(room.Rect.Height), c.X, c.Y+10)
		drawCentered(area, room.AreaText, c.X, c.Y+24)
	}

	o := r.Origin()
	strokeRect(img, models.Rect{
		X: o.X, Y: o.Y,
		Width:  layout.Bounds.Width * r.scale,
		Height: layout.Bounds.Height * r.scale,
	}, inkRGBA, 4)

	drawCentered(small, "Total area "+layout.TotalAreaText+" | perimeter "+layout.TotalPerimeter,
		width/2, o.Y+layout.Bounds.Height*r.scale+40)

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func newDrawer(dst draw.Image, f *truetype.Font, size float64, c color.Color) *font.Drawer {
	face := truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	return &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
	}
}

func drawCentered(d *font.Drawer, text string, cx, baseline float64) {
	advance := d.MeasureString(text)
	d.Dot = fixed.Point26_6{
		X: fixed.I(int(cx)) - advance/2,
		Y: fixed.I(int(baseline)),
	}
	d.DrawString(text)
}

func fillRect(img draw.Image, r models.Rect, c color.Color) {
	bounds := image.Rect(int(r.X), int(r.Y), int(r.MaxX()), int(r.MaxY()))
	draw.Draw(img, bounds, image.NewUniform(c), image.Point{}, draw.Src)
}

// strokeRect draws an outline of the given thickness centred on the edge.
func strokeRect(img draw.Image, r models.Rect, c color.Color, thickness float64) {
	half := thickness / 2
	edges := []models.Rect{
		{X: r.X - half, Y: r.Y - half, Width: r.Width + thickness, Height: thickness},
		{X: r.X - half, Y: r.MaxY() - half, Width: r.Width + thickness, Height: thickness},
		{X: r.X - half, Y: r.Y - half, Width: thickness, Height: r.Height + thickness},
		{X: r.MaxX() - half, Y: r.Y - half, Width: thickness, Height: r.Height + thickness},
	}
	for _, e := range edges {
		fillRect(img, e, c)
	}
}
