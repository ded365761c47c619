package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"character-forge/backend/pkg/config"
)

const imageProvider = "image provider"

// negativePrompt steers the generator away from common rendering defects.
const negativePrompt = "deformed, bad anatomy, disfigured, poorly drawn face, " +
	"mutation, mutated, extra limb, ugly, poorly drawn hands, missing limb"

// ImageClient generates avatar images through an external image provider.
// Unlike the text and content clients its default policy on missing
// credentials is a hard failure.
type ImageClient struct {
	cfg        config.ProviderConfig
	httpClient *http.Client
}

func NewImageClient(cfg config.ProviderConfig) *ImageClient {
	return &ImageClient{cfg: cfg, httpClient: newHTTPClient()}
}

type imageGenerationRequest struct {
	Prompt            string  `json:"prompt"`
	NegativePrompt    string  `json:"negative_prompt"`
	Width             int     `json:"width"`
	Height            int     `json:"height"`
	NumInferenceSteps int     `json:"num_inference_steps"`
	GuidanceScale     float64 `json:"guidance_scale"`
	Model             string  `json:"model"`
	Scheduler         string  `json:"scheduler"`
}

type imageGenerationResponse struct {
	Images []struct {
		URL string `json:"url"`
	} `json:"images"`
}

// GenerateAvatar requests one 512x512 portrait for the prompt and returns
// its URL.
func (c *ImageClient) GenerateAvatar(ctx context.Context, prompt string) (string, error) {
	if !c.cfg.Configured() {
		if c.cfg.OnMissing == config.FallbackMock {
			return "https://placehold.co/512x512?text=avatar", nil
		}
		return "", newError(imageProvider, "API key is not configured")
	}

	requestBody := imageGenerationRequest{
		Prompt:            prompt,
		NegativePrompt:    negativePrompt,
		Width:             512,
		Height:            512,
		NumInferenceSteps: 30,
		GuidanceScale:     7.5,
		Model:             "realistic-vision-v5",
		Scheduler:         "K_EULER_ANCESTRAL",
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return "", newError(imageProvider, "error marshaling request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/generation/image", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", newError(imageProvider, "error creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", newError(imageProvider, "error making API request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", newError(imageProvider, "error reading response body: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", newError(imageProvider, "API request failed with status code %d: %s", resp.StatusCode, string(body))
	}

	var generation imageGenerationResponse
	if err := json.Unmarshal(body, &generation); err != nil {
		return "", newError(imageProvider, "error unmarshaling response: %v", err)
	}
	if len(generation.Images) == 0 || generation.Images[0].URL == "" {
		return "", newError(imageProvider, "no image generated from the provided prompt")
	}

	return generation.Images[0].URL, nil
}
