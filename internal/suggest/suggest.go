// Package suggest calls an OpenAI-compatible chat completions API to
// propose new calendar events. The model is instructed never to alter
// the existing events it is shown; the merge layer enforces that with
// its own conflict filter regardless.
package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/AMLI14/csc698-TeamAmyAndWilliam/internal/model"
)

const systemPrompt = "You are a scheduling assistant that suggests new calendar events " +
	"without changing existing events. Respond ONLY with JSON."

// ProviderError reports that the suggestion provider was unreachable or
// returned content that could not be parsed. The whole suggestion
// operation is aborted when it occurs; nothing is partially applied.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("suggestion provider: %s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Config holds provider connection settings.
type Config struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// Client talks to the chat completions endpoint.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates a provider client. BaseURL and Model default to the
// OpenAI API and a small general model.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.cfg.APIKey != ""
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat formatSpec    `json:"response_format"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type formatSpec struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Suggest asks the model for new events in [from, to], passing the
// existing events as read-only context. Transport failures, non-200
// statuses, and unparseable output all surface as *ProviderError.
func (c *Client) Suggest(ctx context.Context, prompt, from, to string, existing []model.Event) ([]model.Suggestion, error) {
	existingJSON, err := json.MarshalIndent(existing, "", "  ")
	if err != nil {
		return nil, &ProviderError{Op: "encode context", Err: err}
	}

	userPrompt := fmt.Sprintf(`User prompt: %s

Suggest events between %s and %s.

Existing events (JSON, do not modify or duplicate these):
%s

Return a JSON object of this shape:
{"suggestions": [{"date": "YYYY-MM-DD", "time": "HH:MM", "text": "string description"}]}`,
		prompt, from, to, existingJSON)

	body, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		ResponseFormat: formatSpec{Type: "json_object"},
	})
	if err != nil {
		return nil, &ProviderError{Op: "encode request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, &ProviderError{Op: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ProviderError{Op: "request", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{Op: "request", Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return nil, &ProviderError{Op: "decode response", Err: err}
	}
	if len(chat.Choices) == 0 {
		return nil, &ProviderError{Op: "decode response", Err: fmt.Errorf("no choices returned")}
	}

	return parseSuggestions(chat.Choices[0].Message.Content)
}

// parseSuggestions accepts either the requested object wrapper or a
// bare array, which some models return despite the instructions.
func parseSuggestions(content string) ([]model.Suggestion, error) {
	content = strings.TrimSpace(content)

	var wrapper struct {
		Suggestions []model.Suggestion `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(content), &wrapper); err == nil && wrapper.Suggestions != nil {
		return wrapper.Suggestions, nil
	}

	var list []model.Suggestion
	if err := json.Unmarshal([]byte(content), &list); err == nil {
		return list, nil
	}

	return nil, &ProviderError{Op: "parse output", Err: fmt.Errorf("content is neither a suggestion object nor an array")}
}
