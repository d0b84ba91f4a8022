package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Criticidade is the binary priority flag on a work order.
type Criticidade string

const (
	CriticidadeNormal     Criticidade = "Normal"
	CriticidadePrioridade Criticidade = "Prioridade"
)

func (c Criticidade) Valid() bool {
	return c == CriticidadeNormal || c == CriticidadePrioridade
}

// ObraTipo distinguishes capital construction from maintenance work.
type ObraTipo string

const (
	TipoConstrucao ObraTipo = "Construção/Investimento"
	TipoReforma    ObraTipo = "Reforma/Consumo"
)

func (t ObraTipo) Valid() bool {
	return t == TipoConstrucao || t == TipoReforma
}

// Obra is a municipal public-works order. Materiais, mapeamento and
// fotos are embedded JSONB documents; they have no identity outside
// their owning obra and are replaced wholesale on write.
type Obra struct {
	ID                   uuid.UUID                     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OS                   string                        `gorm:"not null;index" json:"os"`
	Criticidade          Criticidade                   `gorm:"not null;default:Normal" json:"criticidade"`
	ResponsavelTecnicoID *uuid.UUID                    `gorm:"type:uuid;index" json:"responsavelTecnicoId,omitempty"`
	ResponsavelTecnico   *ResponsavelTecnico           `gorm:"foreignKey:ResponsavelTecnicoID" json:"responsavelTecnico,omitempty"`
	Tipo                 ObraTipo                      `gorm:"not null" json:"tipo"`
	DescricaoServico     string                        `gorm:"not null" json:"descricaoServico"`
	Observacao           string                        `json:"observacao,omitempty"`
	Distrito             string                        `json:"distrito"`
	Endereco             string                        `json:"endereco"`
	Latitude             float64                       `json:"latitude"`
	Longitude            float64                       `json:"longitude"`
	LocalDivergente      string                        `json:"localDivergente,omitempty"`
	LocalReferencia      string                        `json:"localReferencia,omitempty"`
	InicioPrevisto       *JSONTime                     `json:"inicioPrevisto,omitempty"`
	ConclusaoPrevista    *JSONTime                     `json:"conclusaoPrevista,omitempty"`
	Status               ObraStatus                    `gorm:"not null;default:planejada" json:"status"`
	Progresso            int                           `gorm:"not null;default:0" json:"progresso"`
	Materiais            datatypes.JSONSlice[Material] `gorm:"type:jsonb" json:"materiais"`
	Mapeamento           datatypes.JSONSlice[Shape]    `gorm:"type:jsonb" json:"mapeamento,omitempty"`
	Fotos                datatypes.JSONSlice[string]   `gorm:"type:jsonb" json:"fotos,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// HasCoordinates reports whether the obra carries a location at all.
// (0,0) is in the Atlantic off Africa, not in the municipality, so the
// zero value doubles as "absent".
func (o *Obra) HasCoordinates() bool {
	return o.Latitude != 0 || o.Longitude != 0
}

// ValorTotal sums the material line totals.
func (o *Obra) ValorTotal() float64 {
	var total float64
	for _, m := range o.Materiais {
		total += m.ValorTotal
	}
	return round2(total)
}

// CreateObraInput is the creation payload. Status and Progresso are
// deliberately absent: creation always forces planejada/0 no matter
// what the caller sends (unknown JSON fields are simply dropped).
type CreateObraInput struct {
	OS                   string     `json:"os"`
	Criticidade          Criticidade `json:"criticidade"`
	ResponsavelTecnicoID *uuid.UUID `json:"responsavelTecnicoId,omitempty"`
	Tipo                 ObraTipo   `json:"tipo"`
	DescricaoServico     string     `json:"descricaoServico"`
	Observacao           string     `json:"observacao,omitempty"`
	Distrito             string     `json:"distrito"`
	Endereco             string     `json:"endereco"`
	Latitude             float64    `json:"latitude"`
	Longitude            float64    `json:"longitude"`
	LocalDivergente      string     `json:"localDivergente,omitempty"`
	LocalReferencia      string     `json:"localReferencia,omitempty"`
	InicioPrevisto       *JSONTime  `json:"inicioPrevisto,omitempty"`
	ConclusaoPrevista    *JSONTime  `json:"conclusaoPrevista,omitempty"`
	Materiais            []Material `json:"materiais"`
}

func (in *CreateObraInput) Validate() error {
	if strings.TrimSpace(in.OS) == "" {
		return errors.New("O.S é obrigatória")
	}
	if !in.Criticidade.Valid() {
		return fmt.Errorf("criticidade inválida %q", in.Criticidade)
	}
	if !in.Tipo.Valid() {
		return fmt.Errorf("tipo de obra inválido %q", in.Tipo)
	}
	if strings.TrimSpace(in.DescricaoServico) == "" {
		return errors.New("descrição do serviço é obrigatória")
	}
	for i := range in.Materiais {
		if err := in.Materiais[i].Validate(); err != nil {
			return fmt.Errorf("material %d: %w", i+1, err)
		}
	}
	return nil
}

// Obra builds the record to persist: status and progresso forced to
// their initial values, material totals recomputed, coordinates rounded.
func (in *CreateObraInput) Obra() Obra {
	materiais := make([]Material, len(in.Materiais))
	copy(materiais, in.Materiais)
	RecalculateMateriais(materiais)

	return Obra{
		OS:                   strings.TrimSpace(in.OS),
		Criticidade:          in.Criticidade,
		ResponsavelTecnicoID: in.ResponsavelTecnicoID,
		Tipo:                 in.Tipo,
		DescricaoServico:     strings.TrimSpace(in.DescricaoServico),
		Observacao:           in.Observacao,
		Distrito:             in.Distrito,
		Endereco:             in.Endereco,
		Latitude:             Round6(in.Latitude),
		Longitude:            Round6(in.Longitude),
		LocalDivergente:      in.LocalDivergente,
		LocalReferencia:      in.LocalReferencia,
		InicioPrevisto:       in.InicioPrevisto,
		ConclusaoPrevista:    in.ConclusaoPrevista,
		Status:               StatusPlanejada,
		Progresso:            0,
		Materiais:            datatypes.NewJSONSlice(materiais),
	}
}
