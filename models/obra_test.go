package models

import (
	"encoding/json"
	"testing"
)

func validInput() CreateObraInput {
	return CreateObraInput{
		OS:               "OS-2024-010",
		Criticidade:      CriticidadeNormal,
		Tipo:             TipoConstrucao,
		DescricaoServico: "Pavimentação da Rua A",
		Distrito:         "Centro",
		Latitude:         -22.92134567,
		Longitude:        -42.81861234,
		Materiais: []Material{
			{Nome: "Cimento", Quantidade: 10, ValorUnitario: 35.00, ValorTotal: 1.00},
		},
	}
}

func TestCreateObraInputValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CreateObraInput)
		wantErr bool
	}{
		{"valid", func(in *CreateObraInput) {}, false},
		{"missing os", func(in *CreateObraInput) { in.OS = "  " }, true},
		{"bad criticidade", func(in *CreateObraInput) { in.Criticidade = "Urgente" }, true},
		{"bad tipo", func(in *CreateObraInput) { in.Tipo = "Demolição" }, true},
		{"missing descrição", func(in *CreateObraInput) { in.DescricaoServico = "" }, true},
		{"bad material", func(in *CreateObraInput) { in.Materiais[0].Nome = "" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			err := in.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateObraForcesInitialState(t *testing.T) {
	// Even if the raw JSON smuggles status/progresso, the creation path
	// must come out planejada/0: those fields simply don't exist on the
	// input type.
	raw := []byte(`{
		"os": "OS-2024-011",
		"criticidade": "Normal",
		"tipo": "Reforma/Consumo",
		"descricaoServico": "Troca de telhado",
		"status": "concluida",
		"progresso": 90
	}`)
	var in CreateObraInput
	if err := json.Unmarshal(raw, &in); err != nil {
		t.Fatal(err)
	}
	obra := in.Obra()
	if obra.Status != StatusPlanejada {
		t.Errorf("Status = %s, want planejada", obra.Status)
	}
	if obra.Progresso != 0 {
		t.Errorf("Progresso = %d, want 0", obra.Progresso)
	}
}

func TestCreateObraRecomputesAndRounds(t *testing.T) {
	in := validInput()
	obra := in.Obra()

	if obra.Materiais[0].ValorTotal != 350.00 {
		t.Errorf("material total = %v, want 350.00 (supplied total must be discarded)", obra.Materiais[0].ValorTotal)
	}
	if obra.Latitude != -22.921346 || obra.Longitude != -42.818612 {
		t.Errorf("coordinates not rounded: %v, %v", obra.Latitude, obra.Longitude)
	}
}

func TestObraValorTotal(t *testing.T) {
	in := validInput()
	in.Materiais = append(in.Materiais, Material{Nome: "Areia", Quantidade: 2, ValorUnitario: 120.00})
	obra := in.Obra()
	if got := obra.ValorTotal(); got != 590.00 {
		t.Errorf("ValorTotal = %v, want 590.00", got)
	}
}

func TestHasCoordinates(t *testing.T) {
	o := Obra{}
	if o.HasCoordinates() {
		t.Error("zero value should have no coordinates")
	}
	o.Latitude = -22.92
	if !o.HasCoordinates() {
		t.Error("expected coordinates present")
	}
}

func TestKnownBairro(t *testing.T) {
	if !KnownBairro("Centro") {
		t.Error("Centro should be known")
	}
	if !KnownBairro("Araçatiba") {
		t.Error("Araçatiba should be known")
	}
	if KnownBairro("Copacabana") {
		t.Error("Copacabana should not be known")
	}
}
