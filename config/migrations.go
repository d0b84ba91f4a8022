package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"p9e.in/obras/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20250610_create_core_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(
					&models.User{},
					&models.ResponsavelTecnico{},
					&models.Obra{},
				)
			},
		},
		{
			ID: "20250722_add_fotos_to_obras",
			Migrate: func(tx *gorm.DB) error {
				return tx.Exec("ALTER TABLE obras ADD COLUMN IF NOT EXISTS fotos jsonb").Error
			},
		},
	})
	return m.Migrate()
}
