package pipeline

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"licita/internal"
	"licita/internal/util"
)

const displayNameLimit = 50

// DisplayName picks the tender's presentation name from the first non-empty
// title-like column, truncated for tabular display.
func DisplayName(tender internal.RawRecord) string {
	name, ok := util.Probe(tender, TitleColumns...)
	if !ok {
		return "Sin nombre"
	}
	runes := []rune(name)
	if len(runes) > displayNameLimit {
		return string(runes[:displayNameLimit]) + "..."
	}
	return name
}

// BuildResultRow flattens one evaluation into its export row. seq is 1-based
// tender order.
func BuildResultRow(seq int, tender internal.RawRecord, ev internal.TenderEvaluation) internal.ResultRow {
	observations := ""
	for i, o := range ev.Observations {
		if i > 0 {
			observations += " | "
		}
		observations += o
	}

	return internal.ResultRow{
		ID:                seq,
		Tender:            DisplayName(tender),
		Status:            ev.Status,
		ProductsAnalyzed:  ev.ProductsAnalyzed,
		ProductsOK:        ev.ProductsWithStock,
		Unmatched:         len(ev.Unmatched),
		InsufficientStock: len(ev.Insufficient),
		ExpiryAlerts:      len(ev.ExpiryAlerts),
		DocumentsRequired: len(ev.RequiredDocuments),
		Observations:      observations,
	}
}

var resultHeaders = []string{
	"id", "licitacion", "estado",
	"productos_analizados", "productos_ok",
	"sin_inventario", "stock_insuficiente", "alertas_caducidad",
	"documentos_requeridos", "observaciones",
}

func ExportRowsToXLSX(rows []internal.ResultRow, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, h := range resultHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, row := range rows {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		set(1, row.ID)
		set(2, row.Tender)
		set(3, string(row.Status))
		set(4, row.ProductsAnalyzed)
		set(5, row.ProductsOK)
		set(6, row.Unmatched)
		set(7, row.InsufficientStock)
		set(8, row.ExpiryAlerts)
		set(9, row.DocumentsRequired)
		set(10, row.Observations)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func ExportRowsToCSV(rows []internal.ResultRow, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write(resultHeaders); err != nil {
		_ = f.Close()
		return err
	}
	for _, row := range rows {
		record := []string{
			strconv.Itoa(row.ID),
			row.Tender,
			string(row.Status),
			strconv.Itoa(row.ProductsAnalyzed),
			strconv.Itoa(row.ProductsOK),
			strconv.Itoa(row.Unmatched),
			strconv.Itoa(row.InsufficientStock),
			strconv.Itoa(row.ExpiryAlerts),
			strconv.Itoa(row.DocumentsRequired),
			row.Observations,
		}
		if err := w.Write(record); err != nil {
			_ = f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// RunSummary aggregates the per-status counts shown after an analyze run.
type RunSummary struct {
	Total  int
	Green  int
	Yellow int
	Red    int
}

func Summarize(rows []internal.ResultRow) RunSummary {
	s := RunSummary{Total: len(rows)}
	for _, row := range rows {
		switch row.Status {
		case internal.StatusGreen:
			s.Green++
		case internal.StatusYellow:
			s.Yellow++
		case internal.StatusRed:
			s.Red++
		}
	}
	return s
}

func (s RunSummary) String() string {
	return fmt.Sprintf("total=%d verdes=%d amarillas=%d rojas=%d", s.Total, s.Green, s.Yellow, s.Red)
}
