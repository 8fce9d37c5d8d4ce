package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenAIPair(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "valid config",
			config:  Config{OpenAIAPIKey: "test-key"},
			wantErr: false,
		},
		{
			name:    "missing API key",
			config:  Config{},
			wantErr: true,
		},
		{
			name: "custom models",
			config: Config{
				OpenAIAPIKey:       "test-key",
				OpenAICheapModel:   "gpt-4o-mini",
				OpenAIQualityModel: "gpt-4o",
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cheap, quality, err := newOpenAIPair(tt.config)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "openai-cheap", cheap.Name())
			assert.Equal(t, "openai-quality", quality.Name())
			assert.True(t, cheap.IsAvailable(context.Background()))
		})
	}
}

func openAITestProvider(t *testing.T, handler http.HandlerFunc) *openAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cheap, _, err := newOpenAIPair(Config{OpenAIAPIKey: "test-key"})
	require.NoError(t, err)

	provider, ok := cheap.(*openAIProvider)
	require.True(t, ok)
	provider.endpoint = server.URL
	return provider
}

func openAIChatBody(content string) string {
	body := map[string]any{
		"model": "gpt-4o-mini",
		"choices": []map[string]any{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
		"usage": map[string]int{
			"prompt_tokens":     12,
			"completion_tokens": 7,
			"total_tokens":      19,
		},
	}
	data, _ := json.Marshal(body)
	return string(data)
}

func TestOpenAIComplete(t *testing.T) {
	provider := openAITestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req["model"])

		_, _ = w.Write([]byte(openAIChatBody("Groceries")))
	})

	resp, err := provider.Complete(context.Background(), CompletionRequest{
		Prompt: "Categorize: WHOLE FOODS MARKET",
		System: "You are a transaction classifier.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Groceries", resp.Text)
	assert.Equal(t, 12, resp.PromptTokens)
	assert.Equal(t, 7, resp.CompletionTokens)
}

func TestOpenAIChat(t *testing.T) {
	provider := openAITestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []map[string]string `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)

		_, _ = w.Write([]byte(openAIChatBody("ok")))
	})

	resp, err := provider.Chat(context.Background(), []ChatMessage{
		{Role: "user", Content: "hi"},
		{Role: "assistant", Content: "hello"},
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
}

func TestOpenAIStructuredOutput(t *testing.T) {
	provider := openAITestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(openAIChatBody("```json\n{\"category\":\"Transport\"}\n```")))
	})

	schema := json.RawMessage(`{"type":"object"}`)
	raw, err := provider.StructuredOutput(context.Background(), "classify", schema)
	require.NoError(t, err)
	assert.JSONEq(t, `{"category":"Transport"}`, string(raw))
}

func TestOpenAIStructuredOutputInvalidJSON(t *testing.T) {
	provider := openAITestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(openAIChatBody("sorry, I cannot do that")))
	})

	_, err := provider.StructuredOutput(context.Background(), "classify", json.RawMessage(`{}`))
	require.Error(t, err)
}

func TestOpenAIErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "rate limit",
			status: http.StatusTooManyRequests,
			body:   `{"error":{"type":"rate_limit_error"}}`,
			check: func(t *testing.T, err error) {
				var rateErr *ProviderRateLimitError
				require.ErrorAs(t, err, &rateErr)
			},
		},
		{
			name:   "quota exhausted",
			status: http.StatusTooManyRequests,
			body:   `{"error":{"type":"insufficient_quota"}}`,
			check: func(t *testing.T, err error) {
				var quotaErr *ProviderQuotaError
				require.ErrorAs(t, err, &quotaErr)
			},
		},
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			body:   `oops`,
			check: func(t *testing.T, err error) {
				var unavailErr *ProviderUnavailableError
				require.ErrorAs(t, err, &unavailErr)
			},
		},
		{
			name:   "bad request is plain error",
			status: http.StatusBadRequest,
			body:   `{"error":{"type":"invalid_request_error"}}`,
			check: func(t *testing.T, err error) {
				require.Error(t, err)
				var rateErr *ProviderRateLimitError
				assert.False(t, errors.As(err, &rateErr))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := openAITestProvider(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := provider.Complete(context.Background(), CompletionRequest{Prompt: "x"})
			tt.check(t, err)
		})
	}
}
