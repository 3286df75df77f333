package pipeline

import (
	"strings"

	"licita/internal"
	"licita/internal/config"
	"licita/internal/inventory"
	"licita/internal/util"
)

// Fixed scores of the two matching tiers. A direct-table hit outranks any
// similarity hit; a full-term substring outranks a single-word overlap.
const (
	scoreDirect    = 0.9
	scoreSubstring = 0.8
	scoreWord      = 0.6
)

// directMatchTable maps a canonical code to the normalized substrings its
// inventory counterpart is expected to carry. Substrings are probed in order,
// most specific first.
var directMatchTable = map[string][]string{
	"computadora": {"computadora dell", "computadora"},
	"impresora":   {"impresora"},
	"proyector":   {"proyector epson", "proyector"},
	"servidor":    {"servidor dell poweredge", "servidor"},
	"switch":      {"switch cisco", "switch"},
	"papel":       {"papel bond", "papel"},
	"boligrafo":   {"boligrafos azules", "boligrafo"},
	"lapiz":       {"lapiz hb", "lapiz"},
	"marcador":    {"marcador permanente", "marcador"},
	"carpeta":     {"carpeta tamano carta", "carpeta"},
	"pupitre":     {"pupitre metalico", "pupitre"},
	"pizarron":    {"pizarron blanco", "pizarron"},
	"escritorio":  {"escritorio ejecutivo", "escritorio"},
	"silla":       {"silla ergonomica", "silla"},
	"cubrebocas":  {"cubrebocas tricapa", "cubrebocas"},
	"guantes":     {"guantes de latex", "guantes"},
	"microscopio": {"microscopio optico", "microscopio"},
	"centrifuga":  {"centrifuga de mesa", "centrifuga"},
	"cloro":       {"cloro"},
	"jabon":       {"jabon liquido", "jabon"},
	"trapeador":   {"trapeador industrial", "trapeador"},
	"paracetamol": {"paracetamol"},
	"ibuprofeno":  {"ibuprofeno"},
	"amoxicilina": {"amoxicilina"},
	"omeprazol":   {"omeprazol"},
	"gasas":       {"gasas esteriles", "gasa"},
	"jeringas":    {"jeringa"},
	"vendas":      {"venda"},
	"alcohol":     {"alcohol etilico", "alcohol"},
	"suero":       {"suero fisiologico", "suero"},
	"termometro":  {"termometro"},
	"oximetro":    {"oximetro"},
}

type Matcher struct {
	cfg   config.Config
	index *inventory.Index
}

func NewMatcher(cfg config.Config, records []internal.RawRecord) *Matcher {
	return &Matcher{cfg: cfg, index: inventory.BuildIndex(records)}
}

// Match resolves an extracted product against the inventory snapshot: direct
// synonym lookup first, then the similarity fallback. Deterministic; ties on
// score go to the first row in dataset order.
func (m *Matcher) Match(product internal.ExtractedProduct) internal.InventoryMatch {
	if expected, ok := directMatchTable[product.Code]; ok {
		for _, row := range m.index.Rows {
			if containsAny(row.SearchText, expected) {
				return m.buildMatch(row, product.Quantity, scoreDirect)
			}
		}
	}

	return m.matchBySimilarity(product)
}

func (m *Matcher) matchBySimilarity(product internal.ExtractedProduct) internal.InventoryMatch {
	term := util.Normalize(product.Code)
	words := util.Tokenize(term)

	var best *inventory.Row
	bestScore := 0.0
	for i := range m.index.Rows {
		row := &m.index.Rows[i]
		score := similarityScore(term, words, row.SearchText)
		if score > bestScore {
			bestScore = score
			best = row
		}
	}

	if best == nil || bestScore < m.cfg.MatchMinScore {
		return internal.InventoryMatch{}
	}
	return m.buildMatch(*best, product.Quantity, bestScore)
}

func (m *Matcher) buildMatch(row inventory.Row, required int, score float64) internal.InventoryMatch {
	return internal.InventoryMatch{
		Found:       true,
		Stock:       row.Stock,
		Sufficient:  row.Stock >= required,
		MatchedName: row.Name,
		Lot:         row.Lot,
		ExpiryRaw:   row.ExpiryRaw,
		Score:       score,
	}
}

func similarityScore(term string, words []string, text string) float64 {
	if term == "" || text == "" {
		return 0
	}
	if strings.Contains(text, term) {
		return scoreSubstring
	}
	for _, w := range words {
		if strings.Contains(text, w) {
			return scoreWord
		}
	}
	return 0
}

func containsAny(text string, substrings []string) bool {
	for _, s := range substrings {
		if strings.Contains(text, s) {
			return true
		}
	}
	return false
}
