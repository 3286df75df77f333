package inventory

import (
	"licita/internal"
	"licita/internal/util"
)

// Column probe orders for inventory rows. Matching never reads the raw
// records directly; everything is resolved once at index build time.
var (
	NameColumns        = []string{"nombre", "producto", "articulo", "item", "name"}
	DescriptionColumns = []string{"descripcion", "detalle", "especificaciones", "description"}
	StockColumns       = []string{"stock", "existencia", "cantidad", "disponible", "inventory", "qty"}
	LotColumns         = []string{"lote", "lot", "batch", "no_lote"}
	ExpiryColumns      = []string{"caducidad", "vencimiento", "fecha_caducidad", "fecha_vencimiento", "expira", "expiry"}
)

// Row is one inventory record with its matchable fields pre-probed.
type Row struct {
	Name       string
	SearchText string
	Stock      int
	Lot        string
	ExpiryRaw  string
}

// Index is a read-only snapshot of the inventory dataset, in dataset order.
// Scan order is the tie-break contract for matching.
type Index struct {
	Rows []Row
}

func BuildIndex(records []internal.RawRecord) *Index {
	idx := &Index{Rows: make([]Row, 0, len(records))}
	for _, record := range records {
		name, _ := util.Probe(record, NameColumns...)

		searchParts := name
		if desc, ok := util.Probe(record, DescriptionColumns...); ok {
			searchParts += " " + desc
		}

		stock, _ := util.ProbeInt(record, StockColumns...)
		if stock < 0 {
			stock = 0
		}
		lot, _ := util.Probe(record, LotColumns...)
		expiry, _ := util.Probe(record, ExpiryColumns...)

		idx.Rows = append(idx.Rows, Row{
			Name:       name,
			SearchText: util.Normalize(searchParts),
			Stock:      stock,
			Lot:        lot,
			ExpiryRaw:  expiry,
		})
	}
	return idx
}
