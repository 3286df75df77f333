package pipeline

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"licita/internal"
	"licita/internal/config"
	"licita/internal/util"
)

// RequirementNameColumns locates the tender name on a requirements row;
// RequirementTextColumns locates its document list.
var (
	RequirementNameColumns = []string{"nombre", "licitacion", "proyecto", "titulo"}
	RequirementTextColumns = []string{"documentos", "requerimientos", "requisitos", "archivos", "documentacion", "docs", "anexos", "expediente"}
)

// documentVocabulary is the curated list of known document phrases, in
// normalized form. Output order follows vocabulary order.
var documentVocabulary = []struct {
	Phrase string
	Type   internal.DocumentType
}{
	{"acta constitutiva", internal.DocLegal},
	{"cedula rfc", internal.DocLegal},
	{"cedula fiscal", internal.DocLegal},
	{"rfc", internal.DocLegal},
	{"poder notarial", internal.DocLegal},
	{"representante legal", internal.DocLegal},
	{"carta poder", internal.DocLegal},
	{"constancia situacion fiscal", internal.DocLegal},
	{"carta cumplimiento", internal.DocLegal},
	{"declaracion integridad", internal.DocLegal},
	{"no conflicto interes", internal.DocLegal},
	{"cumplimiento obligaciones", internal.DocLegal},
	{"seguridad social", internal.DocLegal},

	{"estados financieros", internal.DocFinancial},
	{"balance general", internal.DocFinancial},
	{"estado resultados", internal.DocFinancial},
	{"flujo efectivo", internal.DocFinancial},
	{"declaracion anual", internal.DocFinancial},
	{"opinion cumplimiento", internal.DocFinancial},
	{"carta ingresos", internal.DocFinancial},
	{"referencias bancarias", internal.DocFinancial},
	{"propuesta economica", internal.DocFinancial},
	{"cotizacion", internal.DocFinancial},
	{"lista precios", internal.DocFinancial},
	{"carta credito", internal.DocFinancial},

	{"propuesta tecnica", internal.DocTechnical},
	{"especificaciones tecnicas", internal.DocTechnical},
	{"fichas tecnicas", internal.DocTechnical},
	{"curriculum empresa", internal.DocTechnical},
	{"proyectos realizados", internal.DocTechnical},
	{"cartera clientes", internal.DocTechnical},
	{"catalogo productos", internal.DocTechnical},
	{"manuales", internal.DocTechnical},

	{"garantia seriedad", internal.DocWarranty},
	{"garantia cumplimiento", internal.DocWarranty},
	{"poliza seguro", internal.DocWarranty},
	{"fianza", internal.DocWarranty},

	{"iso 9001", internal.DocCertification},
	{"iso 14001", internal.DocCertification},
	{"certificaciones calidad", internal.DocCertification},
	{"registro proveedores", internal.DocCertification},
	{"padron contratistas", internal.DocCertification},

	{"registro sanitario", internal.DocRegulatoryMedical},
	{"aviso funcionamiento", internal.DocRegulatoryMedical},
	{"licencia sanitaria", internal.DocRegulatoryMedical},
	{"cofepris", internal.DocRegulatoryMedical},
	{"farmacovigilancia", internal.DocRegulatoryMedical},

	{"buenas practicas fabricacion", internal.DocQualityMedical},
	{"certificado buenas practicas", internal.DocQualityMedical},
	{"control calidad lotes", internal.DocQualityMedical},

	{"quimico farmaceutico", internal.DocSpecializedPersonnel},
	{"responsable sanitario", internal.DocSpecializedPersonnel},
	{"personal especializado", internal.DocSpecializedPersonnel},

	{"condiciones entrega", internal.DocGeneral},
	{"tiempo entrega", internal.DocGeneral},
	{"forma pago", internal.DocGeneral},
}

var optionalCues = []string{"opcional", "deseable", "preferible", "conveniente"}

// listItemPattern catches enumerated requirement lines the vocabulary does
// not cover ("3. Constancia de no adeudo ...").
var listItemPattern = regexp.MustCompile(`^[\d\-\*•]+[\s.)]*(.*(?:documento|certificado|constancia|carta|acta|cedula|rfc|original|copia).*)$`)

var titleCaser = cases.Title(language.Spanish)

type DocumentResolver struct {
	cfg          config.Config
	requirements []internal.RawRecord
}

func NewDocumentResolver(cfg config.Config, requirements []internal.RawRecord) *DocumentResolver {
	return &DocumentResolver{cfg: cfg, requirements: requirements}
}

// Resolve returns the documents required for a tender, matching requirement
// rows by name containment or word overlap above the configured threshold.
func (r *DocumentResolver) Resolve(tenderName string) []internal.RequiredDocument {
	if len(r.requirements) == 0 {
		return nil
	}
	normTender := util.Normalize(tenderName)
	if normTender == "" {
		return nil
	}

	var docs []internal.RequiredDocument
	seen := map[string]struct{}{}
	for _, row := range r.requirements {
		name, ok := util.Probe(row, RequirementNameColumns...)
		if !ok {
			continue
		}
		normName := util.Normalize(name)
		if normName == "" {
			continue
		}

		related := strings.Contains(normName, normTender) ||
			strings.Contains(normTender, normName) ||
			util.WordOverlap(normTender, normName) > r.cfg.DocNameOverlap
		if !related {
			continue
		}

		text := collectRequirementText(row)
		for _, doc := range extractDocuments(text) {
			if _, dup := seen[doc.Name]; dup {
				continue
			}
			seen[doc.Name] = struct{}{}
			docs = append(docs, doc)
		}
	}
	return docs
}

// CountByType groups resolved documents for the summary views.
func CountByType(docs []internal.RequiredDocument) map[internal.DocumentType]int {
	out := map[internal.DocumentType]int{}
	for _, d := range docs {
		out[d.Type]++
	}
	return out
}

// HasCriticalRegulatory reports whether any mandatory regulatory-medical
// document is required. Orthogonal to the product status, surfaced only in
// observations.
func HasCriticalRegulatory(docs []internal.RequiredDocument) bool {
	for _, d := range docs {
		if d.Mandatory && d.Type == internal.DocRegulatoryMedical {
			return true
		}
	}
	return false
}

func collectRequirementText(row internal.RawRecord) string {
	var parts []string
	for _, col := range RequirementTextColumns {
		if s := util.Stringify(row[col]); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}

func extractDocuments(text string) []internal.RequiredDocument {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	normalized := util.Normalize(text)

	var docs []internal.RequiredDocument
	seen := map[string]struct{}{}
	add := func(doc internal.RequiredDocument) {
		if _, dup := seen[doc.Name]; dup {
			return
		}
		seen[doc.Name] = struct{}{}
		docs = append(docs, doc)
	}

	for _, entry := range documentVocabulary {
		if !strings.Contains(normalized, entry.Phrase) {
			continue
		}
		add(internal.RequiredDocument{
			Name:      titleCaser.String(entry.Phrase),
			Type:      entry.Type,
			Mandatory: isMandatory(normalized, entry.Phrase),
		})
	}

	// Enumerated list items carry the full line as document name.
	for _, line := range strings.Split(text, "\n") {
		normLine := util.Normalize(line)
		m := listItemPattern.FindStringSubmatch(normLine)
		if m == nil {
			continue
		}
		name := titleCaser.String(strings.TrimSpace(m[1]))
		if len([]rune(name)) <= 10 {
			continue
		}
		add(internal.RequiredDocument{Name: name, Type: internal.DocGeneral, Mandatory: true})
	}

	return docs
}

// isMandatory checks a ~50 character window around the phrase for an
// optional/desirable cue; documents are mandatory by default.
func isMandatory(text, phrase string) bool {
	pos := strings.Index(text, phrase)
	if pos < 0 {
		return true
	}
	start := pos - 50
	if start < 0 {
		start = 0
	}
	end := pos + len(phrase) + 50
	if end > len(text) {
		end = len(text)
	}
	window := text[start:end]
	for _, cue := range optionalCues {
		if strings.Contains(window, cue) {
			return false
		}
	}
	return true
}
