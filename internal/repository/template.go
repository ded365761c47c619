package repository

import (
	"character-forge/backend/internal/models"

	"gorm.io/gorm"
)

// SortPopularity orders template listings by popularity instead of recency.
const SortPopularity = "popularity"

// TemplateQuery narrows a template listing. Zero values mean "no filter".
type TemplateQuery struct {
	Category string
	Sort     string
	Limit    int
}

type TemplateRepository interface {
	// FindAll returns active templates matching the query.
	FindAll(q TemplateQuery) ([]models.CharacterTemplate, error)
	// FindByID returns a template regardless of its active flag;
	// administrative paths need to reach deactivated rows.
	FindByID(id string) (*models.CharacterTemplate, error)
	// FindActiveByID returns a template only when it is active.
	FindActiveByID(id string) (*models.CharacterTemplate, error)
	Create(template *models.CharacterTemplate) error
	Save(template *models.CharacterTemplate) error
	Delete(id string) (int64, error)
	// IncrementPopularity bumps the counter by one in the store, without
	// rewriting the rest of the row.
	IncrementPopularity(id string) error
}

type GormTemplateRepository struct {
	db *gorm.DB
}

func NewGormTemplateRepository(db *gorm.DB) *GormTemplateRepository {
	return &GormTemplateRepository{db: db}
}

func (r *GormTemplateRepository) FindAll(q TemplateQuery) ([]models.CharacterTemplate, error) {
	query := r.db.Where("is_active = ?", true)

	if q.Category != "" {
		query = query.Where("category = ?", q.Category)
	}

	if q.Sort == SortPopularity {
		query = query.Order("popularity DESC")
	} else {
		query = query.Order("created_at DESC")
	}

	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	var templates []models.CharacterTemplate
	err := query.Find(&templates).Error
	if templates == nil {
		templates = []models.CharacterTemplate{}
	}
	return templates, err
}

func (r *GormTemplateRepository) FindByID(id string) (*models.CharacterTemplate, error) {
	var template models.CharacterTemplate
	err := r.db.First(&template, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *GormTemplateRepository) FindActiveByID(id string) (*models.CharacterTemplate, error) {
	var template models.CharacterTemplate
	err := r.db.First(&template, "id = ? AND is_active = ?", id, true).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *GormTemplateRepository) Create(template *models.CharacterTemplate) error {
	return r.db.Create(template).Error
}

func (r *GormTemplateRepository) Save(template *models.CharacterTemplate) error {
	return r.db.Save(template).Error
}

func (r *GormTemplateRepository) Delete(id string) (int64, error) {
	result := r.db.Delete(&models.CharacterTemplate{}, "id = ?", id)
	return result.RowsAffected, result.Error
}

func (r *GormTemplateRepository) IncrementPopularity(id string) error {
	return r.db.Model(&models.CharacterTemplate{}).
		Where("id = ?", id).
		UpdateColumn("popularity", gorm.Expr("popularity + ?", 1)).Error
}
