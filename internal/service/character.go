package service

import (
	"context"
	"errors"
	"fmt"

	"character-forge/backend/internal/assembler"
	"character-forge/backend/internal/gateway"
	"character-forge/backend/internal/models"
	"character-forge/backend/internal/repository"
	apperrors "character-forge/backend/pkg/errors"

	"gorm.io/gorm"
)

// TextGenerator produces structured character fields from a description or
// from extracted page content.
type TextGenerator interface {
	GenerateFromText(ctx context.Context, description string) (assembler.CharacterFields, error)
	GenerateFromURLContent(ctx context.Context, content gateway.URLContent) (assembler.CharacterFields, error)
}

// ContentFetcher extracts readable content from a URL.
type ContentFetcher interface {
	FetchURLContent(ctx context.Context, url string) (gateway.URLContent, error)
}

// AvatarGenerator turns a prompt into an image URL.
type AvatarGenerator interface {
	GenerateAvatar(ctx context.Context, prompt string) (string, error)
}

type CharacterService struct {
	characters repository.CharacterRepository
	templates  repository.TemplateRepository
	text       TextGenerator
	content    ContentFetcher
	images     AvatarGenerator
}

func NewCharacterService(
	characters repository.CharacterRepository,
	templates repository.TemplateRepository,
	text TextGenerator,
	content ContentFetcher,
	images AvatarGenerator,
) *CharacterService {
	return &CharacterService{
		characters: characters,
		templates:  templates,
		text:       text,
		content:    content,
		images:     images,
	}
}

func (s *CharacterService) List() ([]models.Character, error) {
	characters, err := s.characters.FindAll()
	if err != nil {
		return nil, apperrors.NewPersistenceError(err.Error())
	}
	return characters, nil
}

func (s *CharacterService) Get(id string) (*models.Character, error) {
	character, err := s.characters.FindByID(id)
	if err != nil {
		return nil, characterLookupError(err)
	}
	return character, nil
}

// CreateWithText generates character fields from a free-text description
// and persists the result.
func (s *CharacterService) CreateWithText(ctx context.Context, description string) (*models.Character, error) {
	fields, err := s.text.GenerateFromText(ctx, description)
	if err != nil {
		return nil, asGatewayError(err)
	}

	character := characterFromFields(fields, models.CreationMethodText)
	if err := s.characters.Create(character); err != nil {
		return nil, apperrors.NewPersistenceError(err.Error())
	}
	return character, nil
}

// CreateWithURL extracts content from a URL, generates character fields
// from it, and persists the result.
func (s *CharacterService) CreateWithURL(ctx context.Context, url string) (*models.Character, error) {
	content, err := s.content.FetchURLContent(ctx, url)
	if err != nil {
		return nil, asGatewayError(err)
	}

	fields, err := s.text.GenerateFromURLContent(ctx, content)
	if err != nil {
		return nil, asGatewayError(err)
	}

	character := characterFromFields(fields, models.CreationMethodURL)
	if err := s.characters.Create(character); err != nil {
		return nil, apperrors.NewPersistenceError(err.Error())
	}
	return character, nil
}

// CreateWithTemplate copies a template's default fields into a new
// character and bumps the template's popularity. The two writes are
// independent; a failure after the character insert leaves the counter
// stale, which is accepted behavior.
func (s *CharacterService) CreateWithTemplate(templateID string) (*models.Character, error) {
	template, err := s.templates.FindByID(templateID)
	if err != nil {
		return nil, templateLookupError(err)
	}

	image := template.Image
	character := &models.Character{
		Name:            template.Name,
		Title:           fmt.Sprintf("Based on %s template", template.Name),
		Personality:     template.DefaultPersonality,
		Greeting:        template.DefaultGreeting,
		Scenario:        template.DefaultScenario,
		ExampleDialogue: template.DefaultExampleDialogue,
		AvatarPrompt:    template.DefaultAvatarPrompt,
		AvatarURL:       &image,
		CreationMethod:  models.CreationMethodTemplate,
	}

	if err := s.characters.Create(character); err != nil {
		return nil, apperrors.NewPersistenceError(err.Error())
	}

	if err := s.templates.IncrementPopularity(template.ID); err != nil {
		return nil, apperrors.NewPersistenceError(err.Error())
	}

	return character, nil
}

// Update applies a partial update; only fields present in the request are
// overwritten.
func (s *CharacterService) Update(id string, req *models.UpdateCharacterRequest) (*models.Character, error) {
	character, err := s.characters.FindByID(id)
	if err != nil {
		return nil, characterLookupError(err)
	}

	if req.Name != "" {
		character.Name = req.Name
	}
	if req.Title != "" {
		character.Title = req.Title
	}
	if req.Personality != "" {
		character.Personality = req.Personality
	}
	if req.Greeting != "" {
		character.Greeting = req.Greeting
	}
	if req.Scenario != "" {
		character.Scenario = req.Scenario
	}
	if req.ExampleDialogue != "" {
		character.ExampleDialogue = req.ExampleDialogue
	}
	if req.AvatarPrompt != "" {
		character.AvatarPrompt = req.AvatarPrompt
	}

	if err := s.characters.Save(character); err != nil {
		return nil, apperrors.NewPersistenceError(err.Error())
	}
	return character, nil
}

// GenerateAvatar produces an avatar image for the prompt and records both
// the prompt and the resulting URL on the character.
func (s *CharacterService) GenerateAvatar(ctx context.Context, id, prompt string) (string, error) {
	character, err := s.characters.FindByID(id)
	if err != nil {
		return "", characterLookupError(err)
	}

	avatarURL, err := s.images.GenerateAvatar(ctx, prompt)
	if err != nil {
		return "", asGatewayError(err)
	}

	character.AvatarPrompt = prompt
	character.AvatarURL = &avatarURL

	if err := s.characters.Save(character); err != nil {
		return "", apperrors.NewPersistenceError(err.Error())
	}
	return avatarURL, nil
}

func (s *CharacterService) Delete(id string) error {
	rows, err := s.characters.Delete(id)
	if err != nil {
		return apperrors.NewPersistenceError(err.Error())
	}
	if rows == 0 {
		return apperrors.NewNotFoundError("Character not found")
	}
	return nil
}

func characterFromFields(fields assembler.CharacterFields, method string) *models.Character {
	return &models.Character{
		Name:            fields.Name,
		Title:           fields.Title,
		Personality:     fields.Personality,
		Greeting:        fields.Greeting,
		Scenario:        fields.Scenario,
		ExampleDialogue: fields.ExampleDialogue,
		AvatarPrompt:    fields.AvatarPrompt,
		CreationMethod:  method,
	}
}

func characterLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NewNotFoundError("Character not found")
	}
	return apperrors.NewPersistenceError(err.Error())
}

func templateLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NewNotFoundError("Template not found")
	}
	return apperrors.NewPersistenceError(err.Error())
}

func asGatewayError(err error) error {
	var gwErr *gateway.Error
	if errors.As(err, &gwErr) {
		return apperrors.NewGatewayError(gwErr.Message)
	}
	return apperrors.FromError(err)
}
