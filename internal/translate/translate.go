package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"go-sites-app/internal/config"
	"net/http"
	"time"
)

// ErrUnavailable is returned when translation is not configured. The feature
// is best-effort and fails closed without an API key.
var ErrUnavailable = errors.New("translation is not configured")

var languageNames = map[string]string{
	"pt": "Brazilian Portuguese",
	"en": "English",
	"es": "Spanish",
}

// Client calls a chat-completions style model API to translate short UI
// strings.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
}

// New creates a translation client from configuration.
func New(cfg config.TranslatorConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Translate returns the text translated into the target language.
func (c *Client) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	if c.apiKey == "" {
		return "", ErrUnavailable
	}

	name, ok := languageNames[targetLanguage]
	if !ok {
		name = targetLanguage
	}

	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{
				Role: "system",
				Content: fmt.Sprintf("You translate short website UI strings into %s. "+
					"Reply with the translation only, no quotes and no explanations.", name),
			},
			{Role: "user", Content: text},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode translation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build translation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("translation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translation API returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode translation response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("translation API returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}
