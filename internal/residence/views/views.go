// Package views renders the residence pages from embedded html/template
// files. Page models are built from the catalog and the floor plan layout;
// the templates only print them.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"polynomial-residence/internal/residence/catalog"
	"polynomial-residence/internal/residence/floorplan"
	"polynomial-residence/internal/residence/models"
	"polynomial-residence/internal/residence/navigation"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageFiles = []string{
	"home.html",
	"floorplan.html",
	"technical.html",
	"cost.html",
	"detail.html",
	"print.html",
}

// Views holds the parsed pages and the static page models. It is safe for
// concurrent use.
type Views struct {
	catalog *catalog.Catalog
	layout  *floorplan.Layout
	pages   map[string]*template.Template

	home      HomePage
	technical TechnicalPage
	cost      CostPage
}

func New(c *catalog.Catalog, layout *floorplan.Layout) (*Views, error) {
	base, err := template.ParseFS(templatesFS, "templates/layout.html", "templates/partials.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	pages := make(map[string]*template.Template, len(pageFiles))
	for _, name := range pageFiles {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %s: %w", name, err)
		}
		page, err := clone.ParseFS(templatesFS, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		pages[name] = page
	}

	v := &Views{catalog: c, layout: layout, pages: pages}
	v.home = v.homePage()
	v.technical = v.technicalPage()
	v.cost = v.costPage()
	return v, nil
}

func (v *Views) Home(w io.Writer) error {
	return v.execute(w, "home.html", v.home)
}

// FloorPlan wraps an already rendered SVG diagram in the floor plan page.
func (v *Views) FloorPlan(w io.Writer, svg string) error {
	return v.execute(w, "floorplan.html", FloorPlanPage{
		Frame: v.frame("Interactive Floor Plan", navigation.MenuFloorPlan),
		SVG:   template.HTML(svg),
	})
}

func (v *Views) Technical(w io.Writer) error {
	return v.execute(w, "technical.html", v.technical)
}

func (v *Views) CostAnalysis(w io.Writer) error {
	return v.execute(w, "cost.html", v.cost)
}

// RoomDetail renders one room as a full page whose only action is back.
func (v *Views) RoomDetail(w io.Writer, room models.RoomSpec) error {
	return v.execute(w, "detail.html", v.detailPage(room))
}

// Print renders the printable report with a static diagram.
func (v *Views) Print(w io.Writer, svg string) error {
	frame := v.frame("Official Report", "")
	frame.AutoPrint = true
	return v.execute(w, "print.html", PrintPage{
		Frame:     frame,
		SVG:       template.HTML(svg),
		Technical: v.technical,
		Cost:      v.cost,
	})
}

func (v *Views) execute(w io.Writer, name string, data any) error {
	page, ok := v.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %s", name)
	}
	if err := page.ExecuteTemplate(w, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}
