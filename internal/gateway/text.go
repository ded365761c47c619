package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"character-forge/backend/internal/assembler"
	"character-forge/backend/pkg/config"
)

const textProvider = "text provider"

const systemPrompt = "You are a creative AI assistant that specializes in " +
	"creating detailed character profiles for roleplaying. Generate a " +
	"character based on the user's description."

// userPromptFormat instructs the model to answer with one bold-labeled block
// per field, in the order the assembler expects. The model routinely ignores
// parts of this; the assembler fills defaults for whatever is missing.
const userPromptFormat = `Create a detailed and vivid character profile based on the following description: %q. The response should read like a character introduction in a story, with depth, voice, and emotional nuance.

Begin with the character's full name and a short title that captures their role or essence. Then write a rich paragraph describing their personality: how they behave, what drives them, and how they express themselves. For the greeting, describe a cinematic moment where the character is introduced through action and at least one full line of dialogue. In the scenario, imagine a specific, grounded encounter between the character and the user. In the exampleDialogue, write a natural back-and-forth of at least three exchanges in the character's voice. Finally provide an avatarPrompt: a description usable to generate an image of the character.

Required Output Format:
**Name:** ...
**Title:** ...
**Personality:** ...
**Greeting:** ...
**Scenario:** ...
**Example Dialogue:** ...
**Avatar Prompt:** ...
`

// The first 2000 characters of extracted page text are enough for a
// profile and keep the request under provider limits.
const maxURLContentChars = 2000

// TextClient generates character profiles through a chat-completion
// provider.
type TextClient struct {
	cfg        config.ProviderConfig
	httpClient *http.Client
}

func NewTextClient(cfg config.ProviderConfig) *TextClient {
	return &TextClient{cfg: cfg, httpClient: newHTTPClient()}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// GenerateFromText asks the provider for a labeled character profile and
// runs the completion through the assembler. When credentials are absent the
// configured fallback policy decides between placeholder data and a hard
// failure.
func (c *TextClient) GenerateFromText(ctx context.Context, description string) (assembler.CharacterFields, error) {
	if !c.cfg.Configured() {
		if c.cfg.OnMissing == config.FallbackMock {
			return mockCharacterFields(), nil
		}
		return assembler.CharacterFields{}, newError(textProvider, "API key is not configured")
	}

	requestBody := chatCompletionRequest{
		Model: "llama3-8b-8192",
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf(userPromptFormat, description)},
		},
		Temperature: 0.7,
		MaxTokens:   1024,
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return assembler.CharacterFields{}, newError(textProvider, "error marshaling request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return assembler.CharacterFields{}, newError(textProvider, "error creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return assembler.CharacterFields{}, newError(textProvider, "error making API request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return assembler.CharacterFields{}, newError(textProvider, "error reading response body: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return assembler.CharacterFields{}, newError(textProvider, "API request failed with status code %d: %s", resp.StatusCode, string(body))
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return assembler.CharacterFields{}, newError(textProvider, "error unmarshaling response: %v", err)
	}
	if completion.Error != nil {
		return assembler.CharacterFields{}, newError(textProvider, "API error: %s", completion.Error.Message)
	}
	if len(completion.Choices) == 0 {
		return assembler.CharacterFields{}, newError(textProvider, "no response generated")
	}

	return assembler.Parse(completion.Choices[0].Message.Content), nil
}

// GenerateFromURLContent composes a synthetic description from extracted
// page content and delegates to GenerateFromText.
func (c *TextClient) GenerateFromURLContent(ctx context.Context, content URLContent) (assembler.CharacterFields, error) {
	text := content.Text
	if len(text) > maxURLContentChars {
		text = text[:maxURLContentChars]
	}

	description := fmt.Sprintf(
		"Create a character based on this content:\nTitle: %s\nContent: %s",
		content.Title, text,
	)

	return c.GenerateFromText(ctx, description)
}

// mockCharacterFields is the development placeholder returned when the text
// provider is unconfigured and the policy allows degrading.
func mockCharacterFields() assembler.CharacterFields {
	return assembler.CharacterFields{
		Name:  "Mock Character",
		Title: "Development Test Character",
		Personality: "This is a mock character created because the text provider " +
			"API key is not configured. The character is friendly, helpful, and " +
			"exists only for development testing purposes.",
		Greeting: "Hello! I am a mock character created for development testing. " +
			"The actual API integration is not available because the API key is not set.",
		Scenario: "You are testing the application without a valid API key. " +
			"This character appears instead of making an actual API call.",
		ExampleDialogue: "Mock Character: Hello there! I'm just a placeholder until " +
			"you configure the proper API key.\nUser: How can I set up the API key?\n" +
			"Mock Character: You need to add the GROQ_API_KEY to your environment " +
			"variables or .env file!",
		AvatarPrompt: "A simple cartoon robot character with a friendly face, " +
			"representing a development test placeholder",
	}
}
