package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIProviderComplete(t *testing.T) {
	var gotAuth, gotContentType string
	var gotPayload map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "ranked matches here"}},
			},
		})
	}))
	defer server.Close()

	provider := &OpenAIProvider{APIKey: "test-key", Endpoint: server.URL}
	content, err := provider.Complete(context.Background(), "system prompt", "user prompt")
	require.NoError(t, err)

	assert.Equal(t, "ranked matches here", content)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, openAIModel, gotPayload["model"])

	messages := gotPayload["messages"].([]interface{})
	require.Len(t, messages, 2)
	first := messages[0].(map[string]interface{})
	assert.Equal(t, "system", first["role"])
	assert.Equal(t, "system prompt", first["content"])
}

func TestOpenAIProviderErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	provider := &OpenAIProvider{APIKey: "test-key", Endpoint: server.URL}
	_, err := provider.Complete(context.Background(), "s", "u")

	var aiErr *AIServiceError
	require.ErrorAs(t, err, &aiErr)
	assert.Contains(t, err.Error(), "429")
}

func TestOpenAIProviderEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer server.Close()

	provider := &OpenAIProvider{APIKey: "test-key", Endpoint: server.URL}
	_, err := provider.Complete(context.Background(), "s", "u")

	var aiErr *AIServiceError
	assert.ErrorAs(t, err, &aiErr)
}

func TestClaudeProviderComplete(t *testing.T) {
	var gotKey, gotVersion string
	var gotPayload map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"content": []map[string]string{{"text": "claude says hi"}},
		})
	}))
	defer server.Close()

	provider := &ClaudeProvider{APIKey: "test-key", Endpoint: server.URL}
	content, err := provider.Complete(context.Background(), "system prompt", "user prompt")
	require.NoError(t, err)

	assert.Equal(t, "claude says hi", content)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, claudeAnthropicVersion, gotVersion)
	assert.Equal(t, claudeModel, gotPayload["model"])

	// System prompt rides in the single user message
	messages := gotPayload["messages"].([]interface{})
	require.Len(t, messages, 1)
	first := messages[0].(map[string]interface{})
	assert.Equal(t, "user", first["role"])
	assert.Contains(t, first["content"], "system prompt")
	assert.Contains(t, first["content"], "user prompt")
}

func TestClaudeProviderErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	provider := &ClaudeProvider{APIKey: "test-key", Endpoint: server.URL}
	_, err := provider.Complete(context.Background(), "s", "u")

	var aiErr *AIServiceError
	assert.ErrorAs(t, err, &aiErr)
}

func TestNewProviderFromEnv(t *testing.T) {
	t.Setenv("AI_PROVIDER", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	assert.Nil(t, NewProviderFromEnv())

	t.Setenv("OPENAI_API_KEY", "sk-test")
	provider := NewProviderFromEnv()
	_, ok := provider.(*OpenAIProvider)
	assert.True(t, ok)

	t.Setenv("AI_PROVIDER", "claude")
	assert.Nil(t, NewProviderFromEnv())

	t.Setenv("ANTHROPIC_API_KEY", "ak-test")
	provider = NewProviderFromEnv()
	_, ok = provider.(*ClaudeProvider)
	assert.True(t, ok)
}
