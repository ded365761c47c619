package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"character-forge/backend/pkg/config"
)

const contentProvider = "content provider"

// ContentClient extracts readable content from a URL through an external
// extraction provider.
type ContentClient struct {
	cfg        config.ProviderConfig
	httpClient *http.Client
}

func NewContentClient(cfg config.ProviderConfig) *ContentClient {
	return &ContentClient{cfg: cfg, httpClient: newHTTPClient()}
}

type contentsRequest struct {
	URLs []string `json:"urls"`
	Text bool     `json:"text"`
}

type contentsResponse struct {
	Results []struct {
		Title string `json:"title"`
		Text  string `json:"text"`
		URL   string `json:"url"`
	} `json:"results"`
}

// FetchURLContent asks the provider for the page behind url. It fails when
// the provider reports no results or an empty text body; with credentials
// absent the configured fallback policy applies.
func (c *ContentClient) FetchURLContent(ctx context.Context, url string) (URLContent, error) {
	if !c.cfg.Configured() {
		if c.cfg.OnMissing == config.FallbackMock {
			return mockURLContent(url), nil
		}
		return URLContent{}, newError(contentProvider, "API key is not configured")
	}

	jsonData, err := json.Marshal(contentsRequest{URLs: []string{url}, Text: true})
	if err != nil {
		return URLContent{}, newError(contentProvider, "error marshaling request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/contents", bytes.NewBuffer(jsonData))
	if err != nil {
		return URLContent{}, newError(contentProvider, "error creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return URLContent{}, newError(contentProvider, "error making API request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return URLContent{}, newError(contentProvider, "error reading response body: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return URLContent{}, newError(contentProvider, "API request failed with status code %d: %s", resp.StatusCode, string(body))
	}

	var contents contentsResponse
	if err := json.Unmarshal(body, &contents); err != nil {
		return URLContent{}, newError(contentProvider, "error unmarshaling response: %v", err)
	}
	if len(contents.Results) == 0 {
		return URLContent{}, newError(contentProvider, "no content found at the provided URL")
	}

	result := contents.Results[0]
	if result.Text == "" {
		return URLContent{}, newError(contentProvider, "no text content found at the provided URL")
	}

	content := URLContent{
		Title: result.Title,
		Text:  result.Text,
		URL:   result.URL,
	}
	if content.Title == "" {
		content.Title = "Untitled Content"
	}
	if content.URL == "" {
		content.URL = url
	}

	return content, nil
}

func mockURLContent(url string) URLContent {
	return URLContent{
		Title: "Mock Content (content provider not configured)",
		Text: fmt.Sprintf("This is mock content because the content provider API key "+
			"is not configured. The URL you attempted to fetch was: %s. "+
			"Please set the EXA_API_KEY environment variable to use the actual API.", url),
		URL: url,
	}
}
