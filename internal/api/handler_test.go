package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"character-forge/backend/internal/assembler"
	"character-forge/backend/internal/gateway"
	"character-forge/backend/internal/models"
	"character-forge/backend/internal/repository"
	"character-forge/backend/internal/service"
	"character-forge/backend/pkg/config"
	"character-forge/backend/pkg/errors"
)

type memCharacterRepo struct {
	byID map[string]*models.Character
}

func (r *memCharacterRepo) FindAll() ([]models.Character, error) {
	out := []models.Character{}
	for _, c := range r.byID {
		out = append(out, *c)
	}
	return out, nil
}

func (r *memCharacterRepo) FindByID(id string) (*models.Character, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *memCharacterRepo) Create(character *models.Character) error {
	if character.ID == "" {
		character.ID = uuid.NewString()
	}
	clone := *character
	r.byID[character.ID] = &clone
	return nil
}

func (r *memCharacterRepo) Save(character *models.Character) error {
	clone := *character
	r.byID[character.ID] = &clone
	return nil
}

func (r *memCharacterRepo) Delete(id string) (int64, error) {
	if _, ok := r.byID[id]; !ok {
		return 0, nil
	}
	delete(r.byID, id)
	return 1, nil
}

type memTemplateRepo struct {
	byID map[string]*models.CharacterTemplate
}

func (r *memTemplateRepo) FindAll(q repository.TemplateQuery) ([]models.CharacterTemplate, error) {
	out := []models.CharacterTemplate{}
	for _, t := range r.byID {
		if t.IsActive {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *memTemplateRepo) FindByID(id string) (*models.CharacterTemplate, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *memTemplateRepo) FindActiveByID(id string) (*models.CharacterTemplate, error) {
	t, ok := r.byID[id]
	if !ok || !t.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *memTemplateRepo) Create(template *models.CharacterTemplate) error {
	if template.ID == "" {
		template.ID = uuid.NewString()
	}
	clone := *template
	r.byID[template.ID] = &clone
	return nil
}

func (r *memTemplateRepo) Save(template *models.CharacterTemplate) error {
	clone := *template
	r.byID[template.ID] = &clone
	return nil
}

func (r *memTemplateRepo) Delete(id string) (int64, error) {
	if _, ok := r.byID[id]; !ok {
		return 0, nil
	}
	delete(r.byID, id)
	return 1, nil
}

func (r *memTemplateRepo) IncrementPopularity(id string) error {
	t, ok := r.byID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	t.Popularity++
	return nil
}

type stubGenerator struct {
	fields assembler.CharacterFields
}

func (g *stubGenerator) GenerateFromText(ctx context.Context, description string) (assembler.CharacterFields, error) {
	return g.fields, nil
}

func (g *stubGenerator) GenerateFromURLContent(ctx context.Context, content gateway.URLContent) (assembler.CharacterFields, error) {
	return g.fields, nil
}

type stubFetcher struct{}

func (f *stubFetcher) FetchURLContent(ctx context.Context, url string) (gateway.URLContent, error) {
	return gateway.URLContent{Title: "Page", Text: "Body", URL: url}, nil
}

type stubAvatars struct{}

func (g *stubAvatars) GenerateAvatar(ctx context.Context, prompt string) (string, error) {
	return "https://images.example.com/out.png", nil
}

type testEnv struct {
	engine     *gin.Engine
	characters *memCharacterRepo
	templates  *memTemplateRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	characters := &memCharacterRepo{byID: map[string]*models.Character{}}
	templates := &memTemplateRepo{byID: map[string]*models.CharacterTemplate{}}

	generator := &stubGenerator{fields: assembler.CharacterFields{
		Name:            "Aria Stormwind",
		Title:           "Sky Captain",
		Personality:     "Bold.",
		Greeting:        "Welcome aboard!",
		Scenario:        "An airship deck.",
		ExampleDialogue: "Character: Hold on tight!",
		AvatarPrompt:    "Portrait of Aria Stormwind, Sky Captain",
	}}

	characterService := service.NewCharacterService(characters, templates, generator, &stubFetcher{}, &stubAvatars{})
	templateService := service.NewTemplateService(templates, config.DeleteSoft, nil)

	engine := gin.New()
	engine.Use(errors.ErrorHandler())

	apiGroup := engine.Group("/api")
	RegisterCharacterRoutes(apiGroup, NewCharacterHandler(characterService))
	RegisterTemplateRoutes(apiGroup, NewTemplateHandler(templateService))

	return &testEnv{engine: engine, characters: characters, templates: templates}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Message
}

func TestListCharactersEmpty(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/characters", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestCreateWithTextEndToEnd(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/characters/create-with-text",
		gin.H{"textDescription": "a daring airship captain"})

	require.Equal(t, http.StatusCreated, w.Code)

	var character models.Character
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &character))
	assert.NotEmpty(t, character.ID)
	assert.Equal(t, "Aria Stormwind", character.Name)
	assert.Equal(t, "text", character.CreationMethod)
}

func TestCreateWithTextRejectsBlankDescription(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/characters/create-with-text",
		gin.H{"textDescription": "   "})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "textDescription must be a non-empty string", errorMessage(t, w))
}

func TestCreateWithURLRejectsInvalidURL(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/characters/create-with-url",
		gin.H{"url": "not a url"})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "url must be a valid URL", errorMessage(t, w))
}

func TestCreateWithURLEndToEnd(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/characters/create-with-url",
		gin.H{"url": "https://example.com/story"})

	require.Equal(t, http.StatusCreated, w.Code)

	var character models.Character
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &character))
	assert.Equal(t, "url", character.CreationMethod)
}

func TestCreateWithTemplateEndToEnd(t *testing.T) {
	env := newTestEnv(t)
	tmpl := &models.CharacterTemplate{
		Name:     "Wise Mentor",
		Category: "fantasy",
		IsActive: true,
	}
	require.NoError(t, env.templates.Create(tmpl))

	w := env.do(t, http.MethodPost, "/api/characters/create-with-template",
		gin.H{"templateId": tmpl.ID})

	require.Equal(t, http.StatusCreated, w.Code)

	var character models.Character
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &character))
	assert.Equal(t, "template", character.CreationMethod)
	assert.Equal(t, "Based on Wise Mentor template", character.Title)

	stored, err := env.templates.FindByID(tmpl.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Popularity)
}

func TestCreateWithTemplateBadID(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/characters/create-with-template",
		gin.H{"templateId": "not-a-uuid"})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid template ID format", errorMessage(t, w))
}

func TestGetCharacterInvalidID(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/characters/not-a-uuid", nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid character ID format", errorMessage(t, w))
}

func TestGetCharacterNotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/characters/"+uuid.NewString(), nil)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Character not found", errorMessage(t, w))
}

func TestUpdateCharacterRequiresAField(t *testing.T) {
	env := newTestEnv(t)
	character := &models.Character{Name: "Aria", CreationMethod: models.CreationMethodText}
	require.NoError(t, env.characters.Create(character))

	w := env.do(t, http.MethodPut, "/api/characters/"+character.ID, gin.H{})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "At least one field must be provided", errorMessage(t, w))
}

func TestUpdateCharacterPartial(t *testing.T) {
	env := newTestEnv(t)
	character := &models.Character{Name: "Aria", Title: "Captain", CreationMethod: models.CreationMethodText}
	require.NoError(t, env.characters.Create(character))

	w := env.do(t, http.MethodPut, "/api/characters/"+character.ID, gin.H{"title": "Admiral"})

	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Character
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Admiral", updated.Title)
	assert.Equal(t, "Aria", updated.Name)
}

func TestGenerateAvatarEndToEnd(t *testing.T) {
	env := newTestEnv(t)
	character := &models.Character{Name: "Aria", CreationMethod: models.CreationMethodText}
	require.NoError(t, env.characters.Create(character))

	w := env.do(t, http.MethodPost, "/api/characters/"+character.ID+"/generate-avatar",
		gin.H{"prompt": "steampunk portrait"})

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		AvatarURL string `json:"avatarUrl"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "https://images.example.com/out.png", body.AvatarURL)

	stored, err := env.characters.FindByID(character.ID)
	require.NoError(t, err)
	assert.Equal(t, "steampunk portrait", stored.AvatarPrompt)
}

func TestDeleteCharacter(t *testing.T) {
	env := newTestEnv(t)
	character := &models.Character{Name: "Aria", CreationMethod: models.CreationMethodText}
	require.NoError(t, env.characters.Create(character))

	w := env.do(t, http.MethodDelete, "/api/characters/"+character.ID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodDelete, "/api/characters/"+character.ID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateTemplateRequiresNameAndCategory(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/templates", gin.H{"category": "fantasy"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "name must be a non-empty string", errorMessage(t, w))

	w = env.do(t, http.MethodPost, "/api/templates", gin.H{"name": "Wise Mentor"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "category must be a non-empty string", errorMessage(t, w))
}

func TestCreateAndGetTemplate(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/templates",
		gin.H{"name": "Wise Mentor", "category": "fantasy"})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.CharacterTemplate
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.True(t, created.IsActive)

	w = env.do(t, http.MethodGet, "/api/templates/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestListTemplatesRejectsBadLimit(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/templates?limit=abc", nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "limit must be a positive integer", errorMessage(t, w))
}

func TestDeleteTemplateSoftHidesFromGet(t *testing.T) {
	env := newTestEnv(t)
	tmpl := &models.CharacterTemplate{Name: "Wise Mentor", Category: "fantasy", IsActive: true}
	require.NoError(t, env.templates.Create(tmpl))

	w := env.do(t, http.MethodDelete, "/api/templates/"+tmpl.ID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodGet, "/api/templates/"+tmpl.ID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Template not found", errorMessage(t, w))
}
