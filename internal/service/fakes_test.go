package service

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"character-forge/backend/internal/assembler"
	"character-forge/backend/internal/gateway"
	"character-forge/backend/internal/models"
	"character-forge/backend/internal/repository"
)

// In-memory repository fakes. They mirror the store contract closely enough
// for service tests: gorm.ErrRecordNotFound on a miss, rows-affected on
// delete.

type fakeCharacterRepo struct {
	byID    map[string]*models.Character
	findErr error
	saveErr error
}

func newFakeCharacterRepo() *fakeCharacterRepo {
	return &fakeCharacterRepo{byID: map[string]*models.Character{}}
}

func (r *fakeCharacterRepo) FindAll() ([]models.Character, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	out := []models.Character{}
	for _, c := range r.byID {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeCharacterRepo) FindByID(id string) (*models.Character, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	c, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *fakeCharacterRepo) Create(character *models.Character) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	if character.ID == "" {
		character.ID = uuid.NewString()
	}
	clone := *character
	r.byID[character.ID] = &clone
	return nil
}

func (r *fakeCharacterRepo) Save(character *models.Character) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	clone := *character
	r.byID[character.ID] = &clone
	return nil
}

func (r *fakeCharacterRepo) Delete(id string) (int64, error) {
	if _, ok := r.byID[id]; !ok {
		return 0, nil
	}
	delete(r.byID, id)
	return 1, nil
}

type fakeTemplateRepo struct {
	byID map[string]*models.CharacterTemplate
	// number of FindAll calls, to observe cache hits
	findAllCalls int
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{byID: map[string]*models.CharacterTemplate{}}
}

func (r *fakeTemplateRepo) FindAll(q repository.TemplateQuery) ([]models.CharacterTemplate, error) {
	r.findAllCalls++
	out := []models.CharacterTemplate{}
	for _, t := range r.byID {
		if !t.IsActive {
			continue
		}
		if q.Category != "" && t.Category != q.Category {
			continue
		}
		out = append(out, *t)
	}
	if q.Sort == repository.SortPopularity {
		sort.Slice(out, func(i, j int) bool { return out[i].Popularity > out[j].Popularity })
	} else {
		sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (r *fakeTemplateRepo) FindByID(id string) (*models.CharacterTemplate, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *fakeTemplateRepo) FindActiveByID(id string) (*models.CharacterTemplate, error) {
	t, ok := r.byID[id]
	if !ok || !t.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *fakeTemplateRepo) Create(template *models.CharacterTemplate) error {
	if template.ID == "" {
		template.ID = uuid.NewString()
	}
	clone := *template
	r.byID[template.ID] = &clone
	return nil
}

func (r *fakeTemplateRepo) Save(template *models.CharacterTemplate) error {
	clone := *template
	r.byID[template.ID] = &clone
	return nil
}

func (r *fakeTemplateRepo) Delete(id string) (int64, error) {
	if _, ok := r.byID[id]; !ok {
		return 0, nil
	}
	delete(r.byID, id)
	return 1, nil
}

func (r *fakeTemplateRepo) IncrementPopularity(id string) error {
	t, ok := r.byID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	t.Popularity++
	return nil
}

// Gateway fakes.

type fakeTextGenerator struct {
	fields assembler.CharacterFields
	err    error
	// last description received, for prompt assertions
	gotDescription string
}

func (g *fakeTextGenerator) GenerateFromText(ctx context.Context, description string) (assembler.CharacterFields, error) {
	g.gotDescription = description
	return g.fields, g.err
}

func (g *fakeTextGenerator) GenerateFromURLContent(ctx context.Context, content gateway.URLContent) (assembler.CharacterFields, error) {
	g.gotDescription = content.Title
	return g.fields, g.err
}

type fakeContentFetcher struct {
	content gateway.URLContent
	err     error
}

func (f *fakeContentFetcher) FetchURLContent(ctx context.Context, url string) (gateway.URLContent, error) {
	return f.content, f.err
}

type fakeAvatarGenerator struct {
	url string
	err error
}

func (g *fakeAvatarGenerator) GenerateAvatar(ctx context.Context, prompt string) (string, error) {
	return g.url, g.err
}
