package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"licita/internal/config"
	"licita/internal/pipeline"
)

// Service watches the input directory and re-runs the analysis whenever a
// tender table lands in it. The file analog of a mail listener: drop a file,
// get an exported result.
type Service struct {
	cfg config.Config
	svc *pipeline.Service
}

func NewService(cfg config.Config) *Service {
	return &Service{cfg: cfg, svc: pipeline.NewService(cfg)}
}

func (s *Service) Run(ctx context.Context) error {
	if s.cfg.InventoryPath == "" {
		return fmt.Errorf("INVENTORY_PATH is required for watch mode")
	}
	if err := os.MkdirAll(s.cfg.InputDir, 0o755); err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(s.cfg.InputDir); err != nil {
		return err
	}
	fmt.Printf("watching %s\n", s.cfg.InputDir)

	// Written-to paths settle for one interval before processing, so a file
	// still being copied is not read half-way.
	pending := map[string]time.Time{}
	interval := time.Duration(s.cfg.WatchIntervalSec) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write) {
				if isTenderTable(event.Name) {
					pending[event.Name] = time.Now()
				}
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fmt.Printf("watch error: %v\n", err)
		case <-ticker.C:
			for path, seen := range pending {
				if time.Since(seen) < interval {
					continue
				}
				delete(pending, path)
				if err := s.process(path); err != nil {
					fmt.Printf("process %s: %v\n", path, err)
				}
			}
		}
	}
}

func (s *Service) process(path string) error {
	rows, err := s.svc.AnalyzeFiles(path, s.cfg.InventoryPath, s.cfg.RequirementsPath)
	if err != nil {
		return err
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	out := filepath.Join(s.cfg.OutputDir, base+"_resultado.xlsx")
	if err := pipeline.ExportRowsToXLSX(rows, out); err != nil {
		return err
	}

	fmt.Printf("analyzed %s %s output=%s\n", filepath.Base(path), pipeline.Summarize(rows), out)
	return nil
}

func isTenderTable(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".xlsx", ".xlsm", ".xls", ".html", ".htm":
		return true
	default:
		return false
	}
}
