package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"character-forge/backend/internal/models"
	"character-forge/backend/internal/service"
	apperrors "character-forge/backend/pkg/errors"
)

type CharacterHandler struct {
	service *service.CharacterService
}

func NewCharacterHandler(service *service.CharacterService) *CharacterHandler {
	return &CharacterHandler{service: service}
}

func (h *CharacterHandler) ListCharacters(c *gin.Context) {
	characters, err := h.service.List()
	if err != nil {
		c.Error(err)
		return
	}
	if characters == nil {
		characters = []models.Character{}
	}
	c.JSON(http.StatusOK, characters)
}

func (h *CharacterHandler) GetCharacter(c *gin.Context) {
	id, err := parseCharacterID(c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	character, err := h.service.Get(id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, character)
}

func (h *CharacterHandler) CreateWithText(c *gin.Context) {
	var req models.CreateWithTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewValidationError("Invalid request body"))
		return
	}
	if err := requireNonEmpty("textDescription", req.TextDescription); err != nil {
		c.Error(err)
		return
	}

	character, err := h.service.CreateWithText(c.Request.Context(), req.TextDescription)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, character)
}

func (h *CharacterHandler) CreateWithURL(c *gin.Context) {
	var req models.CreateWithURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewValidationError("Invalid request body"))
		return
	}
	if err := requireURL("url", req.URL); err != nil {
		c.Error(err)
		return
	}

	character, err := h.service.CreateWithURL(c.Request.Context(), req.URL)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, character)
}

func (h *CharacterHandler) CreateWithTemplate(c *gin.Context) {
	var req models.CreateWithTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewValidationError("Invalid request body"))
		return
	}
	id, err := parseTemplateID(req.TemplateID)
	if err != nil {
		c.Error(err)
		return
	}

	character, err := h.service.CreateWithTemplate(id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, character)
}

func (h *CharacterHandler) UpdateCharacter(c *gin.Context) {
	id, err := parseCharacterID(c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	var req models.UpdateCharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewValidationError("Invalid request body"))
		return
	}
	if req.Empty() {
		c.Error(apperrors.NewValidationError("At least one field must be provided"))
		return
	}

	character, err := h.service.Update(id, &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, character)
}

func (h *CharacterHandler) GenerateAvatar(c *gin.Context) {
	id, err := parseCharacterID(c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	var req models.GenerateAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewValidationError("Invalid request body"))
		return
	}
	if err := requireNonEmpty("prompt", req.Prompt); err != nil {
		c.Error(err)
		return
	}

	avatarURL, err := h.service.GenerateAvatar(c.Request.Context(), id, req.Prompt)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"avatarUrl": avatarURL})
}

func (h *CharacterHandler) DeleteCharacter(c *gin.Context) {
	id, err := parseCharacterID(c.Param("id"))
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
