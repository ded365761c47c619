// Package repository owns all access to the two persistent collections.
// Nothing else in the application touches the database directly.
package repository

import (
	"character-forge/backend/internal/models"

	"gorm.io/gorm"
)

type CharacterRepository interface {
	FindAll() ([]models.Character, error)
	FindByID(id string) (*models.Character, error)
	Create(character *models.Character) error
	Save(character *models.Character) error
	Delete(id string) (int64, error)
}

type GormCharacterRepository struct {
	db *gorm.DB
}

func NewGormCharacterRepository(db *gorm.DB) *GormCharacterRepository {
	return &GormCharacterRepository{db: db}
}

func (r *GormCharacterRepository) FindAll() ([]models.Character, error) {
	var characters []models.Character
	err := r.db.Order("created_at DESC").Find(&characters).Error
	if characters == nil {
		characters = []models.Character{}
	}
	return characters, err
}

func (r *GormCharacterRepository) FindByID(id string) (*models.Character, error) {
	var character models.Character
	err := r.db.First(&character, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &character, nil
}

func (r *GormCharacterRepository) Create(character *models.Character) error {
	return r.db.Create(character).Error
}

func (r *GormCharacterRepository) Save(character *models.Character) error {
	return r.db.Save(character).Error
}

// Delete removes a character by id and reports how many rows went away, so
// the caller can distinguish a miss from a hit.
func (r *GormCharacterRepository) Delete(id string) (int64, error) {
	result := r.db.Delete(&models.Character{}, "id = ?", id)
	return result.RowsAffected, result.Error
}
