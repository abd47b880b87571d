package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"polynomial-residence/internal/common/config"
	"polynomial-residence/internal/common/logging"
	"polynomial-residence/internal/common/middleware"
	"polynomial-residence/internal/residence/catalog"
	"polynomial-residence/internal/residence/floorplan"
	"polynomial-residence/internal/residence/handlers"
	"polynomial-residence/internal/residence/repository"
	"polynomial-residence/internal/residence/service"
	"polynomial-residence/internal/residence/shell"
	"polynomial-residence/internal/residence/views"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Polynomial Residence
// ============================================================

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := logging.NewZapLogger(cfg.LogFilePath, cfg.IsProduction())
	defer func() { _ = logger.Sync() }()

	c, err := loadCatalog(cfg)
	if err != nil {
		log.Fatalf("load catalog: %v", err)
	}
	if err := catalog.Check(c); err != nil {
		logger.Error("CATALOG", "catalog figures disagree with their polynomials", map[string]any{"error": err})
		log.Fatalf("check catalog: %v", err)
	}

	layout, err := floorplan.Build(c)
	if err != nil {
		log.Fatalf("build floor plan: %v", err)
	}
	static := floorplan.NewRenderer(layout, cfg.FloorPlanScale, nil).Render(floorplan.RenderOptions{})
	if err := floorplan.Audit(strings.NewReader(static), layout, cfg.FloorPlanScale); err != nil {
		log.Fatalf("audit floor plan: %v", err)
	}

	v, err := views.New(c, layout)
	if err != nil {
		log.Fatalf("parse templates: %v", err)
	}

	sessions := service.NewSessionManager(cfg.SessionTTL, cfg.SessionCleanup, func() *shell.Shell {
		return shell.New(c, layout, v, cfg.FloorPlanScale)
	})
	pages, err := handlers.NewPageHandler(sessions, v, layout, cfg.FloorPlanScale, cfg.SessionTTL, logger)
	if err != nil {
		log.Fatalf("prepare pages: %v", err)
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Polynomial Residence",
		Immutable:    true,
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger())

	handlers.Register(app, handlers.Routes{
		Pages: pages,
		API:   handlers.NewAPIHandler(c, layout),
		Ready: func() error {
			if c.Len() == 0 {
				return fmt.Errorf("catalog is empty")
			}
			return nil
		},
	})

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	logger.Info("SERVER", "starting", map[string]any{
		"addr":    addr,
		"env":     cfg.Environment,
		"catalog": cfg.CatalogSource,
		"rooms":   c.Len(),
	})

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// loadCatalog reads the room feed from the configured source. The sqlite
// store is seeded with the built-in feed on first use.
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogSource == config.CatalogMemory {
		return catalog.Default(), nil
	}

	db, err := repository.OpenSQLite(cfg.CatalogDBPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo := repository.New(db)
	if err := repo.Init(ctx); err != nil {
		return nil, fmt.Errorf("init db: %w", err)
	}
	return repo.LoadCatalog(ctx)
}
