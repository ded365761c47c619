package service

import (
	"fmt"

	"character-forge/backend/internal/models"
	"character-forge/backend/internal/repository"
	"character-forge/backend/pkg/cache"
	"character-forge/backend/pkg/config"
	apperrors "character-forge/backend/pkg/errors"
)

type TemplateService struct {
	templates  repository.TemplateRepository
	deleteMode config.DeleteMode
	listCache  *cache.Cache
}

// NewTemplateService builds a template service. listCache may be nil, in
// which case listings always hit the store. Only template reads are cached;
// AI responses never are.
func NewTemplateService(templates repository.TemplateRepository, deleteMode config.DeleteMode, listCache *cache.Cache) *TemplateService {
	return &TemplateService{
		templates:  templates,
		deleteMode: deleteMode,
		listCache:  listCache,
	}
}

func (s *TemplateService) List(q repository.TemplateQuery) ([]models.CharacterTemplate, error) {
	key := listCacheKey(q)
	if s.listCache != nil {
		if cached, ok := s.listCache.Get(key); ok {
			if templates, ok := cached.([]models.CharacterTemplate); ok {
				return templates, nil
			}
		}
	}

	templates, err := s.templates.FindAll(q)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err.Error())
	}

	if s.listCache != nil {
		s.listCache.Set(key, templates)
	}
	return templates, nil
}

// Get returns an active template; deactivated templates are invisible on
// this path.
func (s *TemplateService) Get(id string) (*models.CharacterTemplate, error) {
	template, err := s.templates.FindActiveByID(id)
	if err != nil {
		return nil, templateLookupError(err)
	}
	return template, nil
}

func (s *TemplateService) Create(req *models.CreateTemplateRequest) (*models.CharacterTemplate, error) {
	template := &models.CharacterTemplate{
		Name:                   req.Name,
		Category:               req.Category,
		Description:            req.Description,
		Image:                  req.Image,
		DefaultPersonality:     req.DefaultPersonality,
		DefaultGreeting:        req.DefaultGreeting,
		DefaultScenario:        req.DefaultScenario,
		DefaultExampleDialogue: req.DefaultExampleDialogue,
		DefaultAvatarPrompt:    req.DefaultAvatarPrompt,
		IsActive:               true,
	}
	if req.IsActive != nil {
		template.IsActive = *req.IsActive
	}

	if err := s.templates.Create(template); err != nil {
		return nil, apperrors.NewPersistenceError(err.Error())
	}

	s.flushListCache()
	return template, nil
}

func (s *TemplateService) Update(id string, req *models.UpdateTemplateRequest) (*models.CharacterTemplate, error) {
	template, err := s.templates.FindByID(id)
	if err != nil {
		return nil, templateLookupError(err)
	}

	if req.Name != "" {
		template.Name = req.Name
	}
	if req.Category != "" {
		template.Category = req.Category
	}
	if req.Description != "" {
		template.Description = req.Description
	}
	if req.Image != "" {
		template.Image = req.Image
	}
	if req.DefaultPersonality != "" {
		template.DefaultPersonality = req.DefaultPersonality
	}
	if req.DefaultGreeting != "" {
		template.DefaultGreeting = req.DefaultGreeting
	}
	if req.DefaultScenario != "" {
		template.DefaultScenario = req.DefaultScenario
	}
	if req.DefaultExampleDialogue != "" {
		template.DefaultExampleDialogue = req.DefaultExampleDialogue
	}
	if req.DefaultAvatarPrompt != "" {
		template.DefaultAvatarPrompt = req.DefaultAvatarPrompt
	}
	if req.IsActive != nil {
		template.IsActive = *req.IsActive
	}

	if err := s.templates.Save(template); err != nil {
		return nil, apperrors.NewPersistenceError(err.Error())
	}

	s.flushListCache()
	return template, nil
}

// Delete removes a template. In soft mode the row stays but drops out of
// every read path; in hard mode the row is gone for good.
func (s *TemplateService) Delete(id string) error {
	switch s.deleteMode {
	case config.DeleteHard:
		rows, err := s.templates.Delete(id)
		if err != nil {
			return apperrors.NewPersistenceError(err.Error())
		}
		if rows == 0 {
			return apperrors.NewNotFoundError("Template not found")
		}
	default:
		template, err := s.templates.FindByID(id)
		if err != nil {
			return templateLookupError(err)
		}
		template.IsActive = false
		if err := s.templates.Save(template); err != nil {
			return apperrors.NewPersistenceError(err.Error())
		}
	}

	s.flushListCache()
	return nil
}

func (s *TemplateService) flushListCache() {
	if s.listCache != nil {
		s.listCache.Flush()
	}
}

func listCacheKey(q repository.TemplateQuery) string {
	return fmt.Sprintf("templates:%s:%s:%d", q.Category, q.Sort, q.Limit)
}
