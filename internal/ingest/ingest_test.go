package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestNormalizeKey(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"Descripción", "descripcion"},
		{"Fecha de Caducidad", "fecha_de_caducidad"},
		{"No. Lote", "no_lote"},
		{"  STOCK  ", "stock"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := NormalizeKey(tc.header); got != tc.want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", tc.header, got, tc.want)
		}
	}
}

func TestReadTableCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventario.csv")
	content := "Nombre,Descripción,Stock\nPapel Bond Carta,resma tamano carta,200\n,,\nCloro,galon,50\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	records, err := ReadTable(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2 (empty row dropped)", len(records))
	}
	if records[0]["nombre"] != "Papel Bond Carta" || records[0]["descripcion"] != "resma tamano carta" {
		t.Fatalf("record = %+v", records[0])
	}
	if records[1]["stock"] != "50" {
		t.Fatalf("record = %+v", records[1])
	}
}

func TestReadTableXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventario.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	data := [][]any{
		{"Nombre", "Stock"},
		{"Computadora Dell OptiPlex", 45},
		{"Silla Ergonomica", 30},
	}
	for r, row := range data {
		for c, value := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	records, err := ReadTable(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0]["nombre"] != "Computadora Dell OptiPlex" || records[0]["stock"] != "45" {
		t.Fatalf("record = %+v", records[0])
	}
}

func TestReadTableHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "licitaciones.html")
	content := `<html><body>
<table>
<tr><th>Nombre</th><th>Descripción</th></tr>
<tr><td>Licitacion Equipos</td><td>50 computadoras dell</td></tr>
</table>
</body></html>`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	records, err := ReadTable(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0]["nombre"] != "Licitacion Equipos" || records[0]["descripcion"] != "50 computadoras dell" {
		t.Fatalf("record = %+v", records[0])
	}
}

func TestReadTableUnsupported(t *testing.T) {
	if _, err := ReadTable("datos.txt"); err == nil {
		t.Fatal("expected an error for an unsupported extension")
	}
}

func TestReadTableMissingFile(t *testing.T) {
	if _, err := ReadTable(filepath.Join(t.TempDir(), "no-existe.csv")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
