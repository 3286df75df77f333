package ingest

import (
	"bytes"
	"os"
	"strings"

	pdf "github.com/ledongthuc/pdf"

	"licita/internal"
)

// ReadRequirementsPDF converts a requirement sheet ("bases de licitación")
// into requirement rows, one per page: the first non-empty line names the
// tender, the remainder is its document text.
func ReadRequirementsPDF(path string) ([]internal.RawRecord, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	r, err := pdf.NewReader(bytes.NewReader(blob), int64(len(blob)))
	if err != nil {
		return nil, err
	}

	var records []internal.RawRecord
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}

		lines := splitLines(text)
		if len(lines) < 2 {
			continue
		}
		records = append(records, internal.RawRecord{
			"nombre":     lines[0],
			"documentos": strings.Join(lines[1:], "\n"),
		})
	}
	return records, nil
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.Split(text, "\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
