package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/xuri/excelize/v2"

	"licita/internal"
	"licita/internal/util"
)

// ReadTable loads a tabular dataset file into schema-less rows. The format
// is picked by extension; the first row is the header. Rows with no values
// at all are dropped.
func ReadTable(path string) ([]internal.RawRecord, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSV(path)
	case ".xlsx", ".xlsm", ".xls":
		return readXLSX(path)
	case ".html", ".htm":
		return readHTML(path)
	default:
		return nil, fmt.Errorf("unsupported table format: %s", path)
	}
}

func readCSV(path string) ([]internal.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	return rowsToRecords(rows[0], rows[1:]), nil
}

func readXLSX(path string) ([]internal.RawRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil || len(rows) == 0 {
			continue
		}
		return rowsToRecords(rows[0], rows[1:]), nil
	}
	return nil, nil
}

func readHTML(path string) ([]internal.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return nil, err
	}

	var records []internal.RawRecord
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		trs := table.Find("tr")
		if trs.Length() < 2 {
			return true
		}

		var headers []string
		trs.First().Find("th,td").Each(func(_ int, cell *goquery.Selection) {
			headers = append(headers, cell.Text())
		})

		var body [][]string
		trs.Slice(1, trs.Length()).Each(func(_ int, tr *goquery.Selection) {
			var cells []string
			tr.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, cell.Text())
			})
			body = append(body, cells)
		})

		records = rowsToRecords(headers, body)
		return false
	})

	return records, nil
}

// rowsToRecords keys each data row by the normalized header names. Header
// normalization folds accents and joins words with underscores so that
// "Descripción" and "descripcion" probe identically.
func rowsToRecords(headers []string, rows [][]string) []internal.RawRecord {
	keys := make([]string, len(headers))
	for i, h := range headers {
		keys[i] = NormalizeKey(h)
	}

	out := make([]internal.RawRecord, 0, len(rows))
	for _, row := range rows {
		record := internal.RawRecord{}
		empty := true
		for i, cell := range row {
			if i >= len(keys) || keys[i] == "" {
				continue
			}
			value := strings.TrimSpace(cell)
			if value == "" {
				continue
			}
			record[keys[i]] = value
			empty = false
		}
		if !empty {
			out = append(out, record)
		}
	}
	return out
}

// NormalizeKey canonicalizes a header cell into a probeable column name.
func NormalizeKey(header string) string {
	return strings.Join(util.Tokenize(util.Normalize(header)), "_")
}
