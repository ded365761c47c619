package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"character-forge/backend/pkg/config"
)

func imageClientFor(t *testing.T, handler http.HandlerFunc) *ImageClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewImageClient(config.ProviderConfig{
		APIKey:    "test-key",
		BaseURL:   srv.URL,
		OnMissing: config.FallbackFail,
	})
}

func TestGenerateAvatar(t *testing.T) {
	var gotPath string
	var gotBody imageGenerationRequest

	client := imageClientFor(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]any{
			"images": []map[string]any{{"url": "https://cdn.example.com/avatar.png"}},
		})
	})

	url, err := client.GenerateAvatar(context.Background(), "portrait of a wizard")
	require.NoError(t, err)

	assert.Equal(t, "/generation/image", gotPath)
	assert.Equal(t, "portrait of a wizard", gotBody.Prompt)
	assert.Equal(t, negativePrompt, gotBody.NegativePrompt)
	assert.Equal(t, 512, gotBody.Width)
	assert.Equal(t, 512, gotBody.Height)
	assert.Equal(t, 30, gotBody.NumInferenceSteps)
	assert.Equal(t, "https://cdn.example.com/avatar.png", url)
}

func TestGenerateAvatarNoImage(t *testing.T) {
	client := imageClientFor(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"images": []any{}})
	})

	_, err := client.GenerateAvatar(context.Background(), "anything")
	var gwErr *Error
	require.ErrorAs(t, err, &gwErr)
	assert.Contains(t, gwErr.Message, "no image generated")
}

func TestGenerateAvatarMissingKeyFailsByDefault(t *testing.T) {
	client := NewImageClient(config.ProviderConfig{OnMissing: config.FallbackFail})

	_, err := client.GenerateAvatar(context.Background(), "anything")
	var gwErr *Error
	require.ErrorAs(t, err, &gwErr)
	assert.Contains(t, gwErr.Message, "not configured")
}

func TestGenerateAvatarMissingKeyMockPolicy(t *testing.T) {
	client := NewImageClient(config.ProviderConfig{OnMissing: config.FallbackMock})

	url, err := client.GenerateAvatar(context.Background(), "anything")
	require.NoError(t, err)
	assert.NotEmpty(t, url)
}
