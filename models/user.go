package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a staff account for the dashboard.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Nome         string    `gorm:"not null" json:"nome"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"not null;default:staff" json:"role"`
	Ativo        bool      `gorm:"not null;default:true" json:"ativo"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
