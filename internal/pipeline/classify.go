package pipeline

import "strings"

// CodeUnknown is the sentinel for free text no table entry covers.
const CodeUnknown = "desconocido"

// synonymEntry maps a canonical product code to the substrings that identify
// it in free text. Slice order is the tie-break contract: the first entry
// with a matching synonym wins, so more specific codes go before broader ones.
type synonymEntry struct {
	Code     string
	Synonyms []string
}

var synonymTable = []synonymEntry{
	{"computadora", []string{"computadora", "laptop", "pc"}},
	{"impresora", []string{"impresora", "multifuncional"}},
	{"proyector", []string{"proyector"}},
	{"servidor", []string{"servidor", "server"}},
	{"switch", []string{"switch"}},
	{"papel", []string{"resma", "papel", "hoja"}},
	{"boligrafo", []string{"boligrafo", "lapicero", "pluma"}},
	{"lapiz", []string{"lapiz"}},
	{"marcador", []string{"marcador"}},
	{"carpeta", []string{"carpeta", "folder"}},
	{"pupitre", []string{"pupitre"}},
	{"pizarron", []string{"pizarron", "pizarra"}},
	{"escritorio", []string{"escritorio", "mesa"}},
	{"silla", []string{"silla", "asiento"}},
	{"cubrebocas", []string{"cubrebocas", "mascarilla"}},
	{"guantes", []string{"guantes", "guante"}},
	{"microscopio", []string{"microscopio"}},
	{"centrifuga", []string{"centrifuga"}},
	{"cloro", []string{"cloro"}},
	{"jabon", []string{"jabon", "soap"}},
	{"trapeador", []string{"trapeador", "mop"}},
	{"paracetamol", []string{"paracetamol", "acetaminofen"}},
	{"ibuprofeno", []string{"ibuprofeno"}},
	{"amoxicilina", []string{"amoxicilina"}},
	{"omeprazol", []string{"omeprazol"}},
	{"gasas", []string{"gasa"}},
	{"jeringas", []string{"jeringa"}},
	{"vendas", []string{"venda"}},
	{"alcohol", []string{"alcohol"}},
	{"suero", []string{"suero"}},
	{"termometro", []string{"termometro"}},
	{"oximetro", []string{"oximetro"}},
}

// drugSuffixTable is the pharmaceutical fallback: INN name endings resolve to
// a drug-class code when no synonym matched.
var drugSuffixTable = []struct {
	Suffix string
	Code   string
}{
	{"cilina", "antibiotico"},
	{"micina", "antibiotico"},
	{"floxacino", "antibiotico"},
	{"prazol", "inhibidor-bomba-protones"},
	{"olol", "betabloqueador"},
	{"pril", "antihipertensivo"},
	{"statina", "estatina"},
}

var categoryTable = map[string]string{
	"computadora": "Tecnologia",
	"impresora":   "Tecnologia",
	"proyector":   "Tecnologia",
	"servidor":    "Tecnologia",
	"switch":      "Tecnologia",

	"papel":     "Papeleria",
	"boligrafo": "Papeleria",
	"lapiz":     "Papeleria",
	"marcador":  "Papeleria",
	"carpeta":   "Papeleria",

	"pupitre":    "Mobiliario",
	"pizarron":   "Mobiliario",
	"escritorio": "Mobiliario",
	"silla":      "Mobiliario",

	"cubrebocas":               "Medico",
	"guantes":                  "Medico",
	"gasas":                    "Medico",
	"jeringas":                 "Medico",
	"vendas":                   "Medico",
	"alcohol":                  "Medico",
	"suero":                    "Medico",
	"termometro":               "Medico",
	"oximetro":                 "Medico",
	"paracetamol":              "Medico",
	"ibuprofeno":               "Medico",
	"amoxicilina":              "Medico",
	"omeprazol":                "Medico",
	"antibiotico":              "Medico",
	"inhibidor-bomba-protones": "Medico",
	"betabloqueador":           "Medico",
	"antihipertensivo":         "Medico",
	"estatina":                 "Medico",

	"microscopio": "Laboratorio",
	"centrifuga":  "Laboratorio",

	"cloro":     "Limpieza",
	"jabon":     "Limpieza",
	"trapeador": "Limpieza",
}

// Classify maps a normalized free-text product name to a canonical code, or
// CodeUnknown when neither the synonym table nor the drug-suffix heuristic
// recognizes it.
func Classify(name string) string {
	if name == "" {
		return CodeUnknown
	}

	for _, entry := range synonymTable {
		for _, syn := range entry.Synonyms {
			if strings.Contains(name, syn) {
				return entry.Code
			}
		}
	}

	for _, word := range strings.Fields(name) {
		for _, entry := range drugSuffixTable {
			if word != entry.Suffix && strings.HasSuffix(word, entry.Suffix) {
				return entry.Code
			}
		}
	}

	return CodeUnknown
}

// CategoryFor resolves the human-facing category label for a canonical code.
func CategoryFor(code string) string {
	if label, ok := categoryTable[code]; ok {
		return label
	}
	return "General"
}
