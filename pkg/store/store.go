// Package store wraps the database for the two record kinds the
// dashboard owns (obras and responsáveis técnicos) and fans out change
// notifications to subscribers. Every successful mutation re-queries
// the full current result set and pushes it as an authoritative full
// replace; there is no incremental-diff contract.
package store

import (
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"p9e.in/obras/models"
)

// ErrNotFound aliases gorm's sentinel so callers don't import gorm just
// to test for it.
var ErrNotFound = gorm.ErrRecordNotFound

// Store is the single source of truth for obra and responsável
// records. Writes are last-write-wins; there is no optimistic
// concurrency check, so two concurrent saves of the same record clobber
// each other silently.
type Store struct {
	db *gorm.DB

	mu       sync.Mutex
	nextSub  int
	obraSubs map[int]chan []models.Obra
	respSubs map[int]chan []models.ResponsavelTecnico
}

func New(db *gorm.DB) *Store {
	return &Store{
		db:       db,
		obraSubs: make(map[int]chan []models.Obra),
		respSubs: make(map[int]chan []models.ResponsavelTecnico),
	}
}

// ===== Obras =====

// ListObras returns all obras newest-first with the responsável joined.
// The join does not filter on ativo: a deactivated lead keeps resolving.
func (s *Store) ListObras() ([]models.Obra, error) {
	var obras []models.Obra
	err := s.db.
		Preload("ResponsavelTecnico").
		Order("created_at DESC").
		Find(&obras).Error
	return obras, err
}

func (s *Store) GetObra(id uuid.UUID) (*models.Obra, error) {
	var obra models.Obra
	if err := s.db.Preload("ResponsavelTecnico").First(&obra, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &obra, nil
}

func (s *Store) CreateObra(obra *models.Obra) error {
	if err := s.db.Create(obra).Error; err != nil {
		return err
	}
	s.notifyObras()
	return nil
}

// SaveObra writes the full record back. updated_at is stamped by gorm.
func (s *Store) SaveObra(obra *models.Obra) error {
	if err := s.db.Save(obra).Error; err != nil {
		return err
	}
	s.notifyObras()
	return nil
}

// DeleteObra hard-deletes the record. Irreversible, unlike responsáveis.
func (s *Store) DeleteObra(id uuid.UUID) error {
	result := s.db.Delete(&models.Obra{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	s.notifyObras()
	return nil
}

// ===== Responsáveis Técnicos =====

// ListResponsaveis returns leads ordered by name. By default only
// active (assignable) records; includeInactive widens to all.
func (s *Store) ListResponsaveis(includeInactive bool) ([]models.ResponsavelTecnico, error) {
	q := s.db.Order("nome ASC")
	if !includeInactive {
		q = q.Where("ativo = ?", true)
	}
	var responsaveis []models.ResponsavelTecnico
	err := q.Find(&responsaveis).Error
	return responsaveis, err
}

func (s *Store) GetResponsavel(id uuid.UUID) (*models.ResponsavelTecnico, error) {
	var r models.ResponsavelTecnico
	if err := s.db.First(&r, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Store) CreateResponsavel(r *models.ResponsavelTecnico) error {
	if err := s.db.Create(r).Error; err != nil {
		return err
	}
	s.notifyResponsaveis()
	return nil
}

func (s *Store) SaveResponsavel(r *models.ResponsavelTecnico) error {
	if err := s.db.Save(r).Error; err != nil {
		return err
	}
	s.notifyResponsaveis()
	return nil
}

// DeactivateResponsavel is the delete operation for leads: it flips
// ativo off and keeps the row.
func (s *Store) DeactivateResponsavel(id uuid.UUID) error {
	result := s.db.Model(&models.ResponsavelTecnico{}).
		Where("id = ?", id).
		Update("ativo", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	s.notifyResponsaveis()
	return nil
}
