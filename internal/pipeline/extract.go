package pipeline

import (
	"regexp"
	"strconv"
	"strings"

	"licita/internal"
	"licita/internal/config"
	"licita/internal/util"
)

// DescriptionColumns is the probe order for description-like tender columns.
// All present columns are concatenated, not just the first hit.
var DescriptionColumns = []string{"descripcion", "detalle", "productos", "items", "especificaciones"}

// TitleColumns is the probe order for the tender's display name.
var TitleColumns = []string{"nombre", "titulo", "licitacion", "descripcion"}

var (
	leadingQtyPattern = regexp.MustCompile(`^(\d+)\s+(.+)$`)
	anyNumberPattern  = regexp.MustCompile(`(\d+)`)
)

// unitWords are measure tokens that may sit between the quantity and the
// product name ("200 litros cloro"). They become the product unit.
var unitWords = map[string]string{
	"unidad":   "unidad",
	"unidades": "unidad",
	"pieza":    "pieza",
	"piezas":   "pieza",
	"pzas":     "pieza",
	"caja":     "caja",
	"cajas":    "caja",
	"litro":    "litro",
	"litros":   "litro",
	"metro":    "metro",
	"metros":   "metro",
	"kg":       "kg",
	"kilos":    "kg",
	"paquete":  "paquete",
	"paquetes": "paquete",
	"frasco":   "frasco",
	"frascos":  "frasco",
}

type Extractor struct {
	cfg config.Config
}

func NewExtractor(cfg config.Config) *Extractor {
	return &Extractor{cfg: cfg}
}

// CollectDescription concatenates every present description-like column of a
// tender row, in probe order.
func CollectDescription(row internal.RawRecord) string {
	var parts []string
	for _, col := range DescriptionColumns {
		if s := util.Stringify(row[col]); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// Extract parses a tender description into structured products. Segments that
// carry no plausible quantity or classify as unknown are dropped; when the
// whole description yields nothing, the tender title is scanned for an
// embedded product name as a last resort.
func (e *Extractor) Extract(description, title string) []internal.ExtractedProduct {
	normalized := util.Normalize(description)

	var products []internal.ExtractedProduct
	for _, segment := range strings.Split(normalized, ",") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		if product, ok := e.parseSegment(segment); ok {
			products = append(products, product)
		}
	}

	if len(products) == 0 {
		if product, ok := e.titleFallback(title); ok {
			products = append(products, product)
		}
	}

	return e.mergeDuplicates(products)
}

func (e *Extractor) parseSegment(segment string) (internal.ExtractedProduct, bool) {
	if m := leadingQtyPattern.FindStringSubmatch(segment); m != nil {
		qty, err := strconv.Atoi(m[1])
		if err != nil || !e.quantityOK(qty) {
			return internal.ExtractedProduct{}, false
		}
		return e.buildProduct(qty, m[2])
	}

	// Secondary pattern: quantity buried mid-segment ("computadoras dell 50").
	m := anyNumberPattern.FindStringSubmatch(segment)
	if m == nil {
		return internal.ExtractedProduct{}, false
	}
	qty, err := strconv.Atoi(m[1])
	if err != nil || !e.quantityOK(qty) {
		return internal.ExtractedProduct{}, false
	}
	name := strings.TrimSpace(strings.Replace(segment, m[1], " ", 1))
	return e.buildProduct(qty, name)
}

func (e *Extractor) buildProduct(qty int, rawName string) (internal.ExtractedProduct, bool) {
	unit := "unidad"
	name := strings.TrimSpace(rawName)
	if first, rest, found := strings.Cut(name, " "); found {
		if u, ok := unitWords[first]; ok {
			unit = u
			name = strings.TrimSpace(rest)
		}
	}

	code := Classify(name)
	if code == CodeUnknown {
		// The unit strip may have eaten the only recognizable token.
		code = Classify(strings.TrimSpace(rawName))
		if code == CodeUnknown {
			return internal.ExtractedProduct{}, false
		}
	}

	return internal.ExtractedProduct{
		Code:     code,
		Quantity: qty,
		RawName:  name,
		Unit:     unit,
		Category: CategoryFor(code),
	}, true
}

func (e *Extractor) titleFallback(title string) (internal.ExtractedProduct, bool) {
	normalized := util.Normalize(title)
	if normalized == "" {
		return internal.ExtractedProduct{}, false
	}
	code := Classify(normalized)
	if code == CodeUnknown {
		return internal.ExtractedProduct{}, false
	}
	return internal.ExtractedProduct{
		Code:     code,
		Quantity: 1,
		RawName:  normalized,
		Unit:     "unidad",
		Category: CategoryFor(code),
	}, true
}

func (e *Extractor) quantityOK(qty int) bool {
	return qty > 0 && qty <= e.cfg.QtyCeiling
}

// mergeDuplicates collapses repeated mentions of the same canonical code,
// keeping first-occurrence order. The profile decides whether quantities sum
// (general goods) or the largest mention wins (medical goods).
func (e *Extractor) mergeDuplicates(products []internal.ExtractedProduct) []internal.ExtractedProduct {
	if len(products) < 2 {
		return products
	}

	out := make([]internal.ExtractedProduct, 0, len(products))
	byCode := map[string]int{}
	for _, p := range products {
		idx, seen := byCode[p.Code]
		if !seen {
			byCode[p.Code] = len(out)
			out = append(out, p)
			continue
		}
		switch e.cfg.DuplicatePolicy {
		case config.DuplicateMax:
			if p.Quantity > out[idx].Quantity {
				out[idx].Quantity = p.Quantity
			}
		default:
			out[idx].Quantity += p.Quantity
			// The per-segment ceiling still bounds the merged total.
			if out[idx].Quantity > e.cfg.QtyCeiling {
				out[idx].Quantity = e.cfg.QtyCeiling
			}
		}
	}
	return out
}
