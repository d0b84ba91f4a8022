package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ResponsavelTecnico is the professional accountable for work orders.
// Deletion is always soft: ativo flips off and the row stays, so obras
// that reference the id keep resolving the name.
type ResponsavelTecnico struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Nome          string    `gorm:"not null" json:"nome"`
	Email         string    `gorm:"not null" json:"email"`
	Telefone      string    `json:"telefone"`
	Especialidade string    `json:"especialidade"`
	Ativo         bool      `gorm:"not null;default:true" json:"ativo"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// CreateResponsavelInput is the creation payload. Ativo is not
// accepted from the caller; new records are always active.
type CreateResponsavelInput struct {
	Nome          string `json:"nome"`
	Email         string `json:"email"`
	Telefone      string `json:"telefone"`
	Especialidade string `json:"especialidade"`
}

func (in *CreateResponsavelInput) Validate() error {
	if strings.TrimSpace(in.Nome) == "" {
		return errors.New("nome é obrigatório")
	}
	if strings.TrimSpace(in.Email) == "" {
		return errors.New("email é obrigatório")
	}
	return nil
}

func (in *CreateResponsavelInput) Responsavel() ResponsavelTecnico {
	return ResponsavelTecnico{
		Nome:          strings.TrimSpace(in.Nome),
		Email:         strings.TrimSpace(in.Email),
		Telefone:      strings.TrimSpace(in.Telefone),
		Especialidade: strings.TrimSpace(in.Especialidade),
		Ativo:         true,
	}
}
