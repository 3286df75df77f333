package pipeline

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"licita/internal"
)

func TestDisplayName(t *testing.T) {
	if got := DisplayName(internal.RawRecord{"nombre": "Licitacion Corta"}); got != "Licitacion Corta" {
		t.Fatalf("got %q", got)
	}
	if got := DisplayName(internal.RawRecord{}); got != "Sin nombre" {
		t.Fatalf("got %q", got)
	}

	long := strings.Repeat("a", 60)
	got := DisplayName(internal.RawRecord{"nombre": long})
	if got != strings.Repeat("a", 50)+"..." {
		t.Fatalf("got %q", got)
	}
}

func TestBuildResultRow(t *testing.T) {
	ev := internal.TenderEvaluation{
		Status:            internal.StatusYellow,
		ProductsAnalyzed:  3,
		ProductsWithStock: 2,
		Observations:      []string{"uno", "dos"},
	}
	row := BuildResultRow(7, internal.RawRecord{"nombre": "Licitacion X"}, ev)

	if row.ID != 7 || row.Tender != "Licitacion X" || row.Status != internal.StatusYellow {
		t.Fatalf("row = %+v", row)
	}
	if row.ProductsAnalyzed != 3 || row.ProductsOK != 2 {
		t.Fatalf("row = %+v", row)
	}
	if row.Observations != "uno | dos" {
		t.Fatalf("observations = %q", row.Observations)
	}
}

func sampleRows() []internal.ResultRow {
	return []internal.ResultRow{
		{ID: 1, Tender: "Licitacion A", Status: internal.StatusGreen, ProductsAnalyzed: 2, ProductsOK: 2, Observations: "TODOS OK"},
		{ID: 2, Tender: "Licitacion B", Status: internal.StatusRed, ProductsAnalyzed: 1, Unmatched: 1, Observations: "NO EN INVENTARIO"},
	}
}

func TestExportRowsToCSV(t *testing.T) {
	out := filepath.Join(t.TempDir(), "resultado.csv")
	if err := ExportRowsToCSV(sampleRows(), out); err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if records[0][1] != "licitacion" || records[0][2] != "estado" {
		t.Fatalf("header = %v", records[0])
	}
	if records[1][2] != "verde" || records[2][2] != "rojo" {
		t.Fatalf("rows = %v", records[1:])
	}
}

func TestExportRowsToXLSX(t *testing.T) {
	out := filepath.Join(t.TempDir(), "resultado.xlsx")
	if err := ExportRowsToXLSX(sampleRows(), out); err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := excelize.OpenFile(out)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[1][1] != "Licitacion A" || rows[2][2] != "rojo" {
		t.Fatalf("rows = %v", rows[1:])
	}
}

func TestSummarize(t *testing.T) {
	rows := []internal.ResultRow{
		{Status: internal.StatusGreen},
		{Status: internal.StatusYellow},
		{Status: internal.StatusYellow},
		{Status: internal.StatusRed},
	}
	s := Summarize(rows)
	if s.Total != 4 || s.Green != 1 || s.Yellow != 2 || s.Red != 1 {
		t.Fatalf("summary = %+v", s)
	}
	if s.String() != "total=4 verdes=1 amarillas=2 rojas=1" {
		t.Fatalf("string = %q", s.String())
	}
}
