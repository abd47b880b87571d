package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"polynomial-residence/internal/common/config"
	"polynomial-residence/internal/residence/catalog"
	"polynomial-residence/internal/residence/floorplan"
	"polynomial-residence/internal/residence/repository"
	"polynomial-residence/internal/residence/service"

	"github.com/fatih/color"
)

// ============================================================
// Plan Check
// ============================================================

// plancheck verifies the room feed against its polynomials, checks the
// floor plan geometry and audits the drawn SVG, then exports the diagram.
func main() {
	seed := flag.Bool("seed", false, "write the built-in room feed into the sqlite catalog store")
	export := flag.Bool("export", true, "write floor-plan.svg, floor-plan.png and layout.json")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		color.Red("load config: %v", err)
		os.Exit(1)
	}

	c := catalog.Default()
	color.Cyan("Checking %s (%d rooms, x = %v)", c.House().Name, c.Len(), c.House().CheckValue)

	failed := report("catalog figures", catalog.Check(c))

	layout, err := floorplan.Build(c)
	failed = report("floor plan geometry", err) || failed
	if layout == nil {
		os.Exit(1)
	}

	svg := floorplan.NewRenderer(layout, cfg.FloorPlanScale, nil).Render(floorplan.RenderOptions{})
	failed = report("drawn diagram", floorplan.Audit(strings.NewReader(svg), layout, cfg.FloorPlanScale)) || failed

	if *export {
		failed = report("export to "+cfg.ExportDir, exportPlan(service.NewExportStorage(cfg.ExportDir), layout, svg, cfg.FloorPlanScale)) || failed
	}
	if *seed {
		failed = report("seed "+cfg.CatalogDBPath, seedStore(cfg.CatalogDBPath, c)) || failed
	}

	if failed {
		os.Exit(1)
	}
	color.Green("All checks passed")
}

func report(step string, err error) bool {
	if err == nil {
		color.Green("  ok    %s", step)
		return false
	}
	color.Red("  FAIL  %s", step)
	for _, line := range strings.Split(err.Error(), "\n") {
		color.Yellow("        %s", line)
	}
	return true
}

func exportPlan(store *service.ExportStorage, layout *floorplan.Layout, svg string, scale float64) error {
	if err := store.SaveFile(store.SVGPath(), []byte(svg)); err != nil {
		return err
	}

	var png bytes.Buffer
	if err := floorplan.RasterizePNG(&png, layout, scale); err != nil {
		return fmt.Errorf("rasterize: %w", err)
	}
	if err := store.SaveFile(store.PNGPath(), png.Bytes()); err != nil {
		return err
	}

	data, err := json.MarshalIndent(map[string]any{
		"house":   layout.House,
		"bounds":  layout.Bounds,
		"hallway": layout.Hallway,
		"rooms":   layout.Geometry(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	return store.SaveFile(store.LayoutPath(), data)
}

func seedStore(dbPath string, c *catalog.Catalog) error {
	db, err := repository.OpenSQLite(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo := repository.New(db)
	if err := repo.Init(ctx); err != nil {
		return err
	}
	return repo.Seed(ctx, c.House(), c.Rooms())
}
