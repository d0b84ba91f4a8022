package models

import "testing"

func TestMaterialRecalculate(t *testing.T) {
	tests := []struct {
		name       string
		quantidade float64
		unitario   float64
		supplied   float64
		want       float64
	}{
		{"cimento", 10, 35.00, 0, 350.00},
		{"supplied total is discarded", 2, 50.00, 999.99, 100.00},
		{"rounds to centavos", 3, 0.115, 0, 0.35},
		{"zero quantity", 0, 80.00, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Material{Nome: "x", Quantidade: tt.quantidade, ValorUnitario: tt.unitario, ValorTotal: tt.supplied}
			m.Recalculate()
			if m.ValorTotal != tt.want {
				t.Errorf("ValorTotal = %v, want %v", m.ValorTotal, tt.want)
			}
		})
	}
}

func TestRecalculateMateriais(t *testing.T) {
	materiais := []Material{
		{Nome: "Cimento", Quantidade: 500, ValorUnitario: 35.00},
		{Nome: "Areia", Quantidade: 100, ValorUnitario: 120.00},
	}
	total := RecalculateMateriais(materiais)
	if total != 29500.00 {
		t.Errorf("total = %v, want 29500.00", total)
	}
	if materiais[0].ValorTotal != 17500.00 || materiais[1].ValorTotal != 12000.00 {
		t.Errorf("line totals = %v, %v", materiais[0].ValorTotal, materiais[1].ValorTotal)
	}
}

func TestMaterialValidate(t *testing.T) {
	tests := []struct {
		name    string
		m       Material
		wantErr bool
	}{
		{"ok", Material{Nome: "Brita", Quantidade: 1, ValorUnitario: 10}, false},
		{"missing name", Material{Quantidade: 1, ValorUnitario: 10}, true},
		{"negative quantity", Material{Nome: "Brita", Quantidade: -1}, true},
		{"negative unit value", Material{Nome: "Brita", ValorUnitario: -5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.m.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
