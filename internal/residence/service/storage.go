package service

import (
	"fmt"
	"os"
	"path/filepath"
)

// ============================================================
// Export Storage
// ============================================================

// ExportStorage lays out the files written by the plan check tool.
type ExportStorage struct {
	root string
}

func NewExportStorage(root string) *ExportStorage {
	return &ExportStorage{root: root}
}

func (s *ExportStorage) Root() string {
	return s.root
}

func (s *ExportStorage) SVGPath() string {
	return filepath.Join(s.root, "floor-plan.svg")
}

func (s *ExportStorage) PNGPath() string {
	return filepath.Join(s.root, "floor-plan.png")
}

func (s *ExportStorage) LayoutPath() string {
	return filepath.Join(s.root, "layout.json")
}

func (s *ExportStorage) EnsureDir() error {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("mkdir export dir: %w", err)
	}
	return nil
}

func (s *ExportStorage) SaveFile(target string, data []byte) error {
	if err := s.EnsureDir(); err != nil {
		return err
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(target), err)
	}
	return nil
}
