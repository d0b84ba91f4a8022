package config

import (
	"log"
	"time"

	"gorm.io/datatypes"

	"p9e.in/obras/models"
)

// SeedSampleData bulk-inserts the demo responsáveis and obras used for
// local development. Skips entirely if any responsável already exists.
func SeedSampleData() error {
	var count int64
	if err := DB.Model(&models.ResponsavelTecnico{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Seeding skipped: database already has data")
		return nil
	}

	log.Println("=== Seeding sample data ===")

	responsaveis := []models.ResponsavelTecnico{
		{Nome: "João Silva", Email: "joao.silva@marica.rj.gov.br", Telefone: "(21) 99999-1111", Especialidade: "Engenheiro Civil", Ativo: true},
		{Nome: "Maria Santos", Email: "maria.santos@marica.rj.gov.br", Telefone: "(21) 99999-2222", Especialidade: "Arquiteta", Ativo: true},
		{Nome: "Pedro Oliveira", Email: "pedro.oliveira@marica.rj.gov.br", Telefone: "(21) 99999-3333", Especialidade: "Mestre de Obras", Ativo: true},
		{Nome: "Ana Costa", Email: "ana.costa@marica.rj.gov.br", Telefone: "(21) 99999-4444", Especialidade: "Engenheira Civil", Ativo: true},
	}
	if err := DB.Create(&responsaveis).Error; err != nil {
		return err
	}

	inicio1 := models.JSONTime(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	fim1 := models.JSONTime(time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC))
	inicio2 := models.JSONTime(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	fim2 := models.JSONTime(time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC))

	obras := []models.Obra{
		{
			OS:                   "OS-2024-001",
			Criticidade:          models.CriticidadePrioridade,
			ResponsavelTecnicoID: &responsaveis[0].ID,
			Tipo:                 models.TipoConstrucao,
			DescricaoServico:     "Construção de escola municipal no Centro",
			Observacao:           "Obra de grande importância para a comunidade",
			Distrito:             "Centro",
			Endereco:             "Rua das Flores, 123 - Centro, Maricá",
			Latitude:             -22.9213,
			Longitude:            -42.8186,
			LocalReferencia:      "Próximo à Praça Central",
			InicioPrevisto:       &inicio1,
			ConclusaoPrevista:    &fim1,
			Status:               models.StatusEmAndamento,
			Progresso:            45,
			Materiais: datatypes.NewJSONSlice([]models.Material{
				{ID: "mat1", Nome: "Cimento", Unidade: "Sacos", Quantidade: 500, ValorUnitario: 35.00, ValorTotal: 17500.00, Fornecedor: "Cimento Nacional", Observacoes: "Cimento CP-II"},
				{ID: "mat2", Nome: "Areia", Unidade: "m³", Quantidade: 100, ValorUnitario: 120.00, ValorTotal: 12000.00, Fornecedor: "Areia Maricá", Observacoes: "Areia média lavada"},
			}),
		},
		{
			OS:                   "OS-2024-002",
			Criticidade:          models.CriticidadeNormal,
			ResponsavelTecnicoID: &responsaveis[1].ID,
			Tipo:                 models.TipoReforma,
			DescricaoServico:     "Reforma da quadra poliesportiva",
			Observacao:           "Melhoria da infraestrutura esportiva",
			Distrito:             "Araçatiba",
			Endereco:             "Av. Principal, 456 - Araçatiba, Maricá",
			Latitude:             -22.9150,
			Longitude:            -42.8250,
			LocalReferencia:      "Próximo ao campo de futebol",
			InicioPrevisto:       &inicio2,
			ConclusaoPrevista:    &fim2,
			Status:               models.StatusPlanejada,
			Progresso:            0,
			Materiais: datatypes.NewJSONSlice([]models.Material{
				{ID: "mat3", Nome: "Tinta", Unidade: "Latas", Quantidade: 40, ValorUnitario: 89.90, ValorTotal: 3596.00, Fornecedor: "Tintas Litoral"},
			}),
		},
	}
	if err := DB.Create(&obras).Error; err != nil {
		return err
	}

	log.Printf("Seeded %d responsáveis and %d obras", len(responsaveis), len(obras))
	return nil
}
