package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"character-forge/backend/internal/models"
	"character-forge/backend/internal/repository"
	"character-forge/backend/internal/service"
	apperrors "character-forge/backend/pkg/errors"
)

type TemplateHandler struct {
	service *service.TemplateService
}

func NewTemplateHandler(service *service.TemplateService) *TemplateHandler {
	return &TemplateHandler{service: service}
}

// ListTemplates supports ?category=, ?sort=popularity and ?limit= filters.
// Unknown sort values fall back to newest-first.
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	q := repository.TemplateQuery{
		Category: c.Query("category"),
	}
	if c.Query("sort") == repository.SortPopularity {
		q.Sort = repository.SortPopularity
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			c.Error(apperrors.NewValidationError("limit must be a positive integer"))
			return
		}
		q.Limit = limit
	}

	templates, err := h.service.List(q)
	if err != nil {
		c.Error(err)
		return
	}
	if templates == nil {
		templates = []models.CharacterTemplate{}
	}
	c.JSON(http.StatusOK, templates)
}

func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	id, err := parseTemplateID(c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	template, err := h.service.Get(id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, template)
}

func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	var req models.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewValidationError("Invalid request body"))
		return
	}
	if err := requireNonEmpty("name", req.Name); err != nil {
		c.Error(err)
		return
	}
	if err := requireNonEmpty("category", req.Category); err != nil {
		c.Error(err)
		return
	}

	template, err := h.service.Create(&req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, template)
}

func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	id, err := parseTemplateID(c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	var req models.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewValidationError("Invalid request body"))
		return
	}
	if req.Empty() {
		c.Error(apperrors.NewValidationError("At least one field must be provided"))
		return
	}

	template, err := h.service.Update(id, &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, template)
}

func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	id, err := parseTemplateID(c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.service.Delete(id); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
