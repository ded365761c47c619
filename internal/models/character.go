package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Creation methods for a character. The method is fixed at creation time
// and never changes afterwards.
const (
	CreationMethodText     = "text"
	CreationMethodURL      = "url"
	CreationMethodTemplate = "template"
)

type Character struct {
	ID              string    `json:"id" gorm:"type:uuid;primaryKey"`
	Name            string    `json:"name" gorm:"not null"`
	Title           string    `json:"title" gorm:"not null"`
	Personality     string    `json:"personality" gorm:"type:text;not null"`
	Greeting        string    `json:"greeting" gorm:"type:text;not null"`
	Scenario        string    `json:"scenario" gorm:"type:text;not null"`
	ExampleDialogue string    `json:"exampleDialogue" gorm:"type:text;not null"`
	AvatarPrompt    string    `json:"avatarPrompt" gorm:"type:text;not null"`
	AvatarURL       *string   `json:"avatarUrl"`
	CreationMethod  string    `json:"creationMethod" gorm:"not null"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (c *Character) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

type CreateWithTextRequest struct {
	TextDescription string `json:"textDescription"`
}

type CreateWithURLRequest struct {
	URL string `json:"url"`
}

type CreateWithTemplateRequest struct {
	TemplateID string `json:"templateId"`
}

type GenerateAvatarRequest struct {
	Prompt string `json:"prompt"`
}

// UpdateCharacterRequest carries a partial update. Empty fields are left
// untouched; a field cannot be nulled out through this request.
type UpdateCharacterRequest struct {
	Name            string `json:"name"`
	Title           string `json:"title"`
	Personality     string `json:"personality"`
	Greeting        string `json:"greeting"`
	Scenario        string `json:"scenario"`
	ExampleDialogue string `json:"exampleDialogue"`
	AvatarPrompt    string `json:"avatarPrompt"`
}

// Empty reports whether the request carries no fields at all.
func (r *UpdateCharacterRequest) Empty() bool {
	return r.Name == "" && r.Title == "" && r.Personality == "" &&
		r.Greeting == "" && r.Scenario == "" && r.ExampleDialogue == "" &&
		r.AvatarPrompt == ""
}
