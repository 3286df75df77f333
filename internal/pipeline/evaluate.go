package pipeline

import (
	"fmt"
	"strings"
	"time"

	"licita/internal"
	"licita/internal/config"
	"licita/internal/util"
)

// Evaluator runs the full per-tender pipeline against read-only inventory
// and requirement snapshots. Evaluate never fails: data-quality problems
// degrade to yellow observations, never to errors.
type Evaluator struct {
	cfg       config.Config
	extractor *Extractor
	matcher   *Matcher
	expiry    *ExpiryEvaluator
	docs      *DocumentResolver

	// Now is overridable for deterministic expiry evaluation in tests.
	Now func() time.Time
}

func NewEvaluator(cfg config.Config, inventory, requirements []internal.RawRecord) *Evaluator {
	return &Evaluator{
		cfg:       cfg,
		extractor: NewExtractor(cfg),
		matcher:   NewMatcher(cfg, inventory),
		expiry:    NewExpiryEvaluator(cfg),
		docs:      NewDocumentResolver(cfg, requirements),
		Now:       time.Now,
	}
}

func (ev *Evaluator) Evaluate(tender internal.RawRecord) internal.TenderEvaluation {
	result := internal.TenderEvaluation{
		Status:     internal.StatusGreen,
		ByCategory: map[string]internal.CategoryCount{},
	}

	description := CollectDescription(tender)
	title, _ := util.Probe(tender, TitleColumns...)

	if strings.TrimSpace(description) == "" {
		result.Status = internal.StatusYellow
		result.Observations = append(result.Observations, "Sin descripcion de productos")
		return result
	}

	products := ev.extractor.Extract(description, title)
	if len(products) == 0 {
		result.Status = internal.StatusYellow
		result.Observations = append(result.Observations, "No se identificaron productos especificos")
		return result
	}

	result.ProductsAnalyzed = len(products)
	now := ev.Now()

	for _, product := range products {
		match := ev.matcher.Match(product)

		count := result.ByCategory[product.Category]
		count.Total++

		if !match.Found {
			result.Unmatched = append(result.Unmatched, product)
			result.ByCategory[product.Category] = count
			continue
		}
		result.ProductsFound++

		if match.Sufficient {
			result.ProductsWithStock++
			count.Available++
			result.Available = append(result.Available, internal.AvailableProduct{
				Product:   product,
				Required:  product.Quantity,
				Available: match.Stock,
				Surplus:   match.Stock - product.Quantity,
				Lot:       match.Lot,
				Expiry:    match.ExpiryRaw,
			})
		} else {
			result.Insufficient = append(result.Insufficient, internal.InsufficientProduct{
				Product:       product,
				Required:      product.Quantity,
				Available:     match.Stock,
				Shortfall:     product.Quantity - match.Stock,
				InventoryName: match.MatchedName,
			})
		}
		result.ByCategory[product.Category] = count

		if exp := ev.expiry.Evaluate(match.ExpiryRaw, now); exp.Alert {
			result.ExpiryAlerts = append(result.ExpiryAlerts, internal.ExpiryAlert{
				Product:       productLabel(product),
				State:         exp.State,
				DaysRemaining: exp.DaysRemaining,
			})
		}
	}

	switch {
	case len(result.Unmatched) > 0:
		result.Status = internal.StatusRed
	case len(result.Insufficient) > 0 || len(result.ExpiryAlerts) > 0:
		result.Status = internal.StatusYellow
	}

	result.RequiredDocuments = ev.docs.Resolve(title)
	result.Observations = ev.buildObservations(result)
	return result
}

func (ev *Evaluator) buildObservations(result internal.TenderEvaluation) []string {
	var obs []string

	if len(result.Unmatched) > 0 {
		parts := make([]string, 0, len(result.Unmatched))
		for _, p := range result.Unmatched {
			parts = append(parts, fmt.Sprintf("%s (%d)", productLabel(p), p.Quantity))
		}
		obs = append(obs, "NO EN INVENTARIO: "+strings.Join(parts, ", "))
	}

	if len(result.Insufficient) > 0 {
		parts := make([]string, 0, len(result.Insufficient))
		for _, p := range result.Insufficient {
			parts = append(parts, fmt.Sprintf("%s: FALTAN %d (tiene %d)", productLabel(p.Product), p.Shortfall, p.Available))
		}
		obs = append(obs, "STOCK INSUFICIENTE: "+strings.Join(parts, ", "))
	}

	for _, alert := range result.ExpiryAlerts {
		if alert.State == internal.ExpiryExpired {
			obs = append(obs, fmt.Sprintf("CADUCADO: %s hace %d dias", alert.Product, -alert.DaysRemaining))
		} else {
			obs = append(obs, fmt.Sprintf("POR CADUCAR: %s en %d dias", alert.Product, alert.DaysRemaining))
		}
	}

	if len(result.Available) > 0 && len(result.Unmatched) == 0 && len(result.Insufficient) == 0 {
		parts := make([]string, 0, len(result.Available))
		for _, p := range result.Available {
			parts = append(parts, fmt.Sprintf("%s (%d)", productLabel(p.Product), p.Required))
		}
		obs = append(obs, "TODOS OK: "+strings.Join(parts, ", "))
	}

	coverage := 0.0
	if result.ProductsAnalyzed > 0 {
		coverage = float64(result.ProductsWithStock) / float64(result.ProductsAnalyzed) * 100
	}
	obs = append(obs, fmt.Sprintf("%d/%d productos OK (%.0f%%)", result.ProductsWithStock, result.ProductsAnalyzed, coverage))

	if n := len(result.RequiredDocuments); n > 0 {
		obs = append(obs, fmt.Sprintf("Documentos requeridos: %d", n))
		if HasCriticalRegulatory(result.RequiredDocuments) {
			obs = append(obs, "DOCUMENTACION REGULATORIA CRITICA")
		}
	}

	return obs
}

func productLabel(p internal.ExtractedProduct) string {
	return titleCaser.String(strings.ReplaceAll(p.Code, "-", " "))
}
