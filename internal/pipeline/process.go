package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"

	"licita/internal"
	"licita/internal/config"
	"licita/internal/ingest"
)

// Service ties ingestion and evaluation together for one analysis run.
type Service struct {
	cfg config.Config
}

func NewService(cfg config.Config) *Service {
	return &Service{cfg: cfg}
}

// AnalyzeFiles evaluates every tender row of tendersPath against the
// inventory snapshot, with optional document requirements. Tender rows are
// processed in dataset order and a bad row never aborts the run.
func (s *Service) AnalyzeFiles(tendersPath, inventoryPath, requirementsPath string) ([]internal.ResultRow, error) {
	tenders, err := ingest.ReadTable(tendersPath)
	if err != nil {
		return nil, fmt.Errorf("read tenders: %w", err)
	}
	inventory, err := ingest.ReadTable(inventoryPath)
	if err != nil {
		return nil, fmt.Errorf("read inventory: %w", err)
	}

	var requirements []internal.RawRecord
	if strings.TrimSpace(requirementsPath) != "" {
		requirements, err = readRequirements(requirementsPath)
		if err != nil {
			// Requirements are optional: a broken file downgrades to a run
			// without document analysis, same as not supplying one.
			fmt.Printf("warning: requirements skipped: %v\n", err)
			requirements = nil
		}
	}

	evaluator := NewEvaluator(s.cfg, inventory, requirements)

	rows := make([]internal.ResultRow, 0, len(tenders))
	for i, tender := range tenders {
		evaluation := evaluator.Evaluate(tender)
		rows = append(rows, BuildResultRow(i+1, tender, evaluation))
	}
	return rows, nil
}

// ResolveDocuments answers the standalone document lookup for one tender
// name, without running the product pipeline.
func (s *Service) ResolveDocuments(tenderName, requirementsPath string) ([]internal.RequiredDocument, error) {
	requirements, err := readRequirements(requirementsPath)
	if err != nil {
		return nil, fmt.Errorf("read requirements: %w", err)
	}
	resolver := NewDocumentResolver(s.cfg, requirements)
	return resolver.Resolve(tenderName), nil
}

func readRequirements(path string) ([]internal.RawRecord, error) {
	if strings.ToLower(filepath.Ext(path)) == ".pdf" {
		return ingest.ReadRequirementsPDF(path)
	}
	return ingest.ReadTable(path)
}
