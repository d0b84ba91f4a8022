package handlers

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"p9e.in/obras/models"
)

func TestBuildObrasWorkbook(t *testing.T) {
	inicio := models.JSONTime(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	obras := []models.Obra{
		{
			ID:               uuid.New(),
			OS:               "OS-2024-001",
			Endereco:         "Rua das Flores, 123",
			Distrito:         "Centro",
			Status:           models.StatusEmAndamento,
			Criticidade:      models.CriticidadePrioridade,
			Progresso:        45,
			DescricaoServico: "Construção de escola",
			InicioPrevisto:   &inicio,
			ResponsavelTecnico: &models.ResponsavelTecnico{
				Nome: "João Silva",
			},
			Materiais: datatypes.NewJSONSlice([]models.Material{
				{Nome: "Cimento", Quantidade: 10, ValorUnitario: 35.00, ValorTotal: 350.00},
			}),
		},
	}

	f, err := buildObrasWorkbook(obras)
	if err != nil {
		t.Fatal(err)
	}

	rows, err := f.GetRows("Obras")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want header + 1 data row", len(rows))
	}

	header := rows[0]
	if header[0] != "O.S" || header[2] != "Bairro" || header[7] != "Valor Total" {
		t.Errorf("header = %v", header)
	}

	row := rows[1]
	checks := map[int]string{
		0: "OS-2024-001",
		1: "Rua das Flores, 123",
		2: "Centro",
		3: "Em Andamento",
		4: "Prioridade",
		5: "45",
		6: "João Silva",
		7: "R$ 350,00",
		8: "15/01/2024",
	}
	for col, want := range checks {
		if row[col] != want {
			t.Errorf("col %d = %q, want %q", col, row[col], want)
		}
	}
}

func TestBuildObrasWorkbookEmpty(t *testing.T) {
	f, err := buildObrasWorkbook(nil)
	if err != nil {
		t.Fatal(err)
	}
	rows, err := f.GetRows("Obras")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Errorf("rows = %d, want header only", len(rows))
	}
}

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "R$ 0,00"},
		{350, "R$ 350,00"},
		{1234.56, "R$ 1.234,56"},
		{1234567.8, "R$ 1.234.567,80"},
		{-99.9, "-R$ 99,90"},
	}
	for _, tt := range tests {
		if got := formatBRL(tt.in); got != tt.want {
			t.Errorf("formatBRL(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
