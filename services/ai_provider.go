package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"
)

// CompletionProvider is a pluggable LLM backend. Implementations send
// a system prompt plus a user prompt and return the raw completion
// text.
type CompletionProvider interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

const (
	openAIEndpoint = "https://api.openai.com/v1/chat/completions"
	openAIModel    = "gpt-4-turbo-preview"

	claudeEndpoint         = "https://api.anthropic.com/v1/messages"
	claudeModel            = "claude-3-sonnet-20240229"
	claudeAnthropicVersion = "2023-06-01"

	completionTemperature = 0.7
	completionMaxTokens   = 4000

	defaultAITimeoutSeconds = 30
)

// NewProviderFromEnv builds a provider from environment configuration.
// AI_PROVIDER selects "openai" (default) or "claude"; returns nil when
// the matching API key is missing, which makes the pipeline fall back
// to algorithmic scoring.
func NewProviderFromEnv() CompletionProvider {
	timeout := time.Duration(defaultAITimeoutSeconds) * time.Second
	if raw := os.Getenv("AI_TIMEOUT_SECONDS"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			timeout = time.Duration(secs) * time.Second
		}
	}
	client := &http.Client{Timeout: timeout}

	switch os.Getenv("AI_PROVIDER") {
	case "claude":
		key := os.Getenv("ANTHROPIC_API_KEY")
		if key == "" {
			return nil
		}
		return &ClaudeProvider{APIKey: key, HTTPClient: client}
	default:
		key := os.Getenv("OPENAI_API_KEY")
		if key == "" {
			return nil
		}
		return &OpenAIProvider{APIKey: key, HTTPClient: client}
	}
}

// OpenAIProvider calls the OpenAI chat completions API
type OpenAIProvider struct {
	APIKey     string
	HTTPClient *http.Client
	Endpoint   string // overridable for tests
}

func (p *OpenAIProvider) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	endpoint := p.Endpoint
	if endpoint == "" {
		endpoint = openAIEndpoint
	}

	payload := map[string]interface{}{
		"model": openAIModel,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": userPrompt},
		},
		"temperature": completionTemperature,
		"max_tokens":  completionMaxTokens,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", &AIServiceError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &AIServiceError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.APIKey)

	resp, err := p.httpClient().Do(req)
	if err != nil {
		return "", &AIServiceError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &AIServiceError{Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &AIServiceError{Err: fmt.Errorf("openai returned status %d: %s", resp.StatusCode, truncateBody(raw))}
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", &AIServiceError{Err: fmt.Errorf("failed to decode openai response: %w", err)}
	}
	if len(parsed.Choices) == 0 {
		return "", &AIServiceError{Err: fmt.Errorf("openai response contained no choices")}
	}
	return parsed.Choices[0].Message.Content, nil
}

func (p *OpenAIProvider) httpClient() *http.Client {
	if p.HTTPClient != nil {
		return p.HTTPClient
	}
	return http.DefaultClient
}

// ClaudeProvider calls the Anthropic messages API. The messages API
// has no separate system role in the request messages, so the system
// prompt is prepended to the user content.
type ClaudeProvider struct {
	APIKey     string
	HTTPClient *http.Client
	Endpoint   string // overridable for tests
}

func (p *ClaudeProvider) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	endpoint := p.Endpoint
	if endpoint == "" {
		endpoint = claudeEndpoint
	}

	payload := map[string]interface{}{
		"model":      claudeModel,
		"max_tokens": completionMaxTokens,
		"messages": []map[string]string{
			{"role": "user", "content": systemPrompt + "\n\n" + userPrompt},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", &AIServiceError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &AIServiceError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", p.APIKey)
	req.Header.Set("anthropic-version", claudeAnthropicVersion)

	resp, err := p.httpClient().Do(req)
	if err != nil {
		return "", &AIServiceError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &AIServiceError{Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &AIServiceError{Err: fmt.Errorf("claude returned status %d: %s", resp.StatusCode, truncateBody(raw))}
	}

	var parsed struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", &AIServiceError{Err: fmt.Errorf("failed to decode claude response: %w", err)}
	}
	if len(parsed.Content) == 0 {
		return "", &AIServiceError{Err: fmt.Errorf("claude response contained no content blocks")}
	}
	return parsed.Content[0].Text, nil
}

func (p *ClaudeProvider) httpClient() *http.Client {
	if p.HTTPClient != nil {
		return p.HTTPClient
	}
	return http.DefaultClient
}

func truncateBody(body []byte) string {
	const max = 300
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
