package models

import (
	"errors"
	"math"
)

// Material is a cost line item embedded on a work order. The list lives
// as a JSONB column on obras; line items have no table of their own.
type Material struct {
	ID            string  `json:"id"`
	Nome          string  `json:"nome"`
	Unidade       string  `json:"unidade"`
	Quantidade    float64 `json:"quantidade"`
	ValorUnitario float64 `json:"valorUnitario"`
	ValorTotal    float64 `json:"valorTotal"`
	Fornecedor    string  `json:"fornecedor,omitempty"`
	Observacoes   string  `json:"observacoes,omitempty"`
}

// Recalculate derives valorTotal from quantidade and valorUnitario,
// rounded to centavos. Caller-supplied totals are always discarded.
func (m *Material) Recalculate() {
	m.ValorTotal = round2(m.Quantidade * m.ValorUnitario)
}

func (m *Material) Validate() error {
	if m.Nome == "" {
		return errors.New("material sem nome")
	}
	if m.Quantidade < 0 {
		return errors.New("quantidade negativa")
	}
	if m.ValorUnitario < 0 {
		return errors.New("valor unitário negativo")
	}
	return nil
}

// RecalculateMateriais re-derives every line total in place and returns
// the overall sum.
func RecalculateMateriais(materiais []Material) float64 {
	var total float64
	for i := range materiais {
		materiais[i].Recalculate()
		total += materiais[i].ValorTotal
	}
	return round2(total)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
