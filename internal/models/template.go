package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CharacterTemplate is an administrator-curated seed record used to create
// characters without invoking AI generation. Read paths only expose active
// templates; popularity counts how many characters were created from it.
type CharacterTemplate struct {
	ID                     string    `json:"id" gorm:"type:uuid;primaryKey"`
	Name                   string    `json:"name" gorm:"not null"`
	Category               string    `json:"category" gorm:"not null"`
	Description            string    `json:"description" gorm:"type:text;not null"`
	Image                  string    `json:"image" gorm:"not null"`
	DefaultPersonality     string    `json:"defaultPersonality" gorm:"type:text;not null"`
	DefaultGreeting        string    `json:"defaultGreeting" gorm:"type:text;not null"`
	DefaultScenario        string    `json:"defaultScenario" gorm:"type:text;not null"`
	DefaultExampleDialogue string    `json:"defaultExampleDialogue" gorm:"type:text;not null"`
	DefaultAvatarPrompt    string    `json:"defaultAvatarPrompt" gorm:"type:text;not null"`
	Popularity             int       `json:"popularity" gorm:"default:0"`
	IsActive               bool      `json:"isActive" gorm:"default:true"`
	CreatedAt              time.Time `json:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

func (t *CharacterTemplate) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

type CreateTemplateRequest struct {
	Name                   string `json:"name"`
	Category               string `json:"category"`
	Description            string `json:"description"`
	Image                  string `json:"image"`
	DefaultPersonality     string `json:"defaultPersonality"`
	DefaultGreeting        string `json:"defaultGreeting"`
	DefaultScenario        string `json:"defaultScenario"`
	DefaultExampleDialogue string `json:"defaultExampleDialogue"`
	DefaultAvatarPrompt    string `json:"defaultAvatarPrompt"`
	IsActive               *bool  `json:"isActive"`
}

// UpdateTemplateRequest carries a partial update; empty string fields are
// skipped. IsActive is a pointer so that an explicit false is distinguishable
// from absent.
type UpdateTemplateRequest struct {
	Name                   string `json:"name"`
	Category               string `json:"category"`
	Description            string `json:"description"`
	Image                  string `json:"image"`
	DefaultPersonality     string `json:"defaultPersonality"`
	DefaultGreeting        string `json:"defaultGreeting"`
	DefaultScenario        string `json:"defaultScenario"`
	DefaultExampleDialogue string `json:"defaultExampleDialogue"`
	DefaultAvatarPrompt    string `json:"defaultAvatarPrompt"`
	IsActive               *bool  `json:"isActive"`
}

func (r *UpdateTemplateRequest) Empty() bool {
	return r.Name == "" && r.Category == "" && r.Description == "" &&
		r.Image == "" && r.DefaultPersonality == "" && r.DefaultGreeting == "" &&
		r.DefaultScenario == "" && r.DefaultExampleDialogue == "" &&
		r.DefaultAvatarPrompt == "" && r.IsActive == nil
}
