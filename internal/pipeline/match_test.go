package pipeline

import (
	"testing"

	"licita/internal"
)

func TestMatchDirect(t *testing.T) {
	m := NewMatcher(testConfig(), []internal.RawRecord{
		{"nombre": "Computadora Dell OptiPlex", "stock": "45"},
	})

	match := m.Match(internal.ExtractedProduct{Code: "computadora", Quantity: 50})
	if !match.Found {
		t.Fatal("expected a match")
	}
	if match.Score != 0.9 {
		t.Fatalf("score = %v, want 0.9", match.Score)
	}
	if match.MatchedName != "Computadora Dell OptiPlex" {
		t.Fatalf("matched name = %q", match.MatchedName)
	}
	if match.Sufficient {
		t.Fatal("45 in stock cannot cover 50")
	}
}

func TestMatchDirectSufficient(t *testing.T) {
	m := NewMatcher(testConfig(), []internal.RawRecord{
		{"nombre": "Papel Bond Carta", "stock": "200"},
	})

	match := m.Match(internal.ExtractedProduct{Code: "papel", Quantity: 100})
	if !match.Found || !match.Sufficient {
		t.Fatalf("match = %+v", match)
	}
	if match.Stock != 200 {
		t.Fatalf("stock = %d", match.Stock)
	}
}

func TestMatchNotFound(t *testing.T) {
	m := NewMatcher(testConfig(), []internal.RawRecord{
		{"nombre": "Papel Bond Carta", "stock": "200"},
	})

	match := m.Match(internal.ExtractedProduct{Code: "impresora", Quantity: 20})
	if match.Found {
		t.Fatalf("unexpected match: %+v", match)
	}
}

func TestMatchSimilaritySubstring(t *testing.T) {
	// No direct-table entry for drug-class codes, so the similarity fallback
	// runs. Both rows score the same; the first in dataset order wins.
	m := NewMatcher(testConfig(), []internal.RawRecord{
		{"nombre": "Antibiotico Generico A", "stock": "10"},
		{"nombre": "Antibiotico Generico B", "stock": "99"},
	})

	match := m.Match(internal.ExtractedProduct{Code: "antibiotico", Quantity: 5})
	if !match.Found {
		t.Fatal("expected a match")
	}
	if match.Score != 0.8 {
		t.Fatalf("score = %v, want 0.8", match.Score)
	}
	if match.MatchedName != "Antibiotico Generico A" {
		t.Fatalf("tie must go to the first row, got %q", match.MatchedName)
	}
}

func TestMatchSimilarityWord(t *testing.T) {
	m := NewMatcher(testConfig(), []internal.RawRecord{
		{"nombre": "Inhibidor Selectivo X", "stock": "30"},
	})

	match := m.Match(internal.ExtractedProduct{Code: "inhibidor-bomba-protones", Quantity: 10})
	if !match.Found {
		t.Fatal("expected a word-level match")
	}
	if match.Score != 0.6 {
		t.Fatalf("score = %v, want 0.6", match.Score)
	}
}

func TestMatchBelowThreshold(t *testing.T) {
	m := NewMatcher(testConfig(), []internal.RawRecord{
		{"nombre": "Vitamina C", "stock": "500"},
	})

	match := m.Match(internal.ExtractedProduct{Code: "betabloqueador", Quantity: 10})
	if match.Found {
		t.Fatalf("unexpected match: %+v", match)
	}
}

func TestMatchCarriesLotAndExpiry(t *testing.T) {
	m := NewMatcher(testConfig(), []internal.RawRecord{
		{"nombre": "Paracetamol 500mg", "stock": "200", "lote": "L-042", "caducidad": "2025-01-01"},
	})

	match := m.Match(internal.ExtractedProduct{Code: "paracetamol", Quantity: 100})
	if !match.Found {
		t.Fatal("expected a match")
	}
	if match.Lot != "L-042" || match.ExpiryRaw != "2025-01-01" {
		t.Fatalf("match = %+v", match)
	}
}

func TestMatchSearchesDescriptionToo(t *testing.T) {
	m := NewMatcher(testConfig(), []internal.RawRecord{
		{"nombre": "Equipo EX-200", "descripcion": "microscopio optico binocular", "stock": "4"},
	})

	match := m.Match(internal.ExtractedProduct{Code: "microscopio", Quantity: 2})
	if !match.Found || match.Score != 0.9 {
		t.Fatalf("match = %+v", match)
	}
}
