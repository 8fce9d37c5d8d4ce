package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const openAIEndpoint = "https://api.openai.com/v1/chat/completions"

// openAIProvider implements Provider against the OpenAI chat completions
// API. Two instances are registered per key: one on the cheap model and one
// on the quality model.
type openAIProvider struct {
	httpClient *http.Client
	limiter    *rateLimiter
	name       string
	apiKey     string
	model      string
	endpoint   string
}

// newOpenAIPair creates the cheap and quality OpenAI providers. Both share
// one HTTP client and one rate limiter since they draw on the same account.
func newOpenAIPair(cfg Config) (cheap, quality Provider, err error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, nil, fmt.Errorf("OpenAI API key is required")
	}

	cheapModel := cfg.OpenAICheapModel
	if cheapModel == "" {
		cheapModel = "gpt-4o-mini"
	}
	qualityModel := cfg.OpenAIQualityModel
	if qualityModel == "" {
		qualityModel = "gpt-4o"
	}

	httpClient := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
	limiter := newRateLimiter(cfg.RequestsPerMinute)

	mk := func(name, model string) Provider {
		return &openAIProvider{
			name:       name,
			apiKey:     cfg.OpenAIAPIKey,
			model:      model,
			endpoint:   openAIEndpoint,
			httpClient: httpClient,
			limiter:    limiter,
		}
	}
	return mk("openai-cheap", cheapModel), mk("openai-quality", qualityModel), nil
}

func (p *openAIProvider) Name() string { return p.name }

// Close releases the rate limiter. The cheap and quality instances share
// one limiter, so Close is safe to reach through both.
func (p *openAIProvider) Close() { p.limiter.Close() }

func (p *openAIProvider) IsAvailable(_ context.Context) bool {
	return p.apiKey != ""
}

func (p *openAIProvider) Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error) {
	messages := make([]map[string]string, 0, 2)
	if req.System != "" {
		messages = append(messages, map[string]string{"role": "system", "content": req.System})
	}
	messages = append(messages, map[string]string{"role": "user", "content": req.Prompt})

	return p.send(ctx, map[string]any{
		"model":       p.model,
		"messages":    messages,
		"temperature": temperatureOrDefault(req.Temperature),
		"max_tokens":  maxTokensOrDefault(req.MaxTokens),
	})
}

func (p *openAIProvider) Chat(ctx context.Context, history []ChatMessage) (CompletionResponse, error) {
	messages := make([]map[string]string, 0, len(history))
	for _, m := range history {
		messages = append(messages, map[string]string{"role": m.Role, "content": m.Content})
	}

	return p.send(ctx, map[string]any{
		"model":       p.model,
		"messages":    messages,
		"temperature": temperatureOrDefault(0),
		"max_tokens":  maxTokensOrDefault(0),
	})
}

func (p *openAIProvider) StructuredOutput(ctx context.Context, prompt string, schema json.RawMessage) (json.RawMessage, error) {
	resp, err := p.send(ctx, map[string]any{
		"model": p.model,
		"messages": []map[string]string{
			{
				"role":    "system",
				"content": "You MUST respond with ONLY valid JSON conforming to the provided schema. Do not include any explanatory text, markdown formatting, or commentary before or after the JSON.",
			},
			{"role": "user", "content": prompt},
		},
		"temperature": temperatureOrDefault(0),
		"max_tokens":  maxTokensOrDefault(0) * 10,
		"response_format": map[string]any{
			"type": "json_schema",
			"json_schema": map[string]any{
				"name":   "response",
				"schema": schema,
			},
		},
	})
	if err != nil {
		return nil, err
	}

	content := StripMarkdownFence(resp.Text)
	if !json.Valid([]byte(content)) {
		return nil, fmt.Errorf("response is not valid JSON: %s", content)
	}
	return json.RawMessage(content), nil
}

func (p *openAIProvider) send(ctx context.Context, requestBody map[string]any) (CompletionResponse, error) {
	if err := p.limiter.wait(ctx); err != nil {
		return CompletionResponse{}, err
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return CompletionResponse{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, strings.NewReader(string(jsonBody)))
	if err != nil {
		return CompletionResponse{}, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return CompletionResponse{}, &ProviderUnavailableError{Provider: p.name, Reason: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return CompletionResponse{}, fmt.Errorf("failed to read response: %w", err)
	}

	if err := statusToError(p.name, resp, body); err != nil {
		return CompletionResponse{}, err
	}

	var response openAIResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return CompletionResponse{}, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(response.Choices) == 0 {
		return CompletionResponse{}, fmt.Errorf("no completion choices returned")
	}

	return CompletionResponse{
		Text:             response.Choices[0].Message.Content,
		Model:            response.Model,
		PromptTokens:     response.Usage.PromptTokens,
		CompletionTokens: response.Usage.CompletionTokens,
	}, nil
}

// openAIResponse represents the OpenAI API response structure.
type openAIResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// statusToError maps a non-200 HTTP status to the typed provider errors the
// cascade distinguishes between.
func statusToError(provider string, resp *http.Response, body []byte) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusTooManyRequests:
		if quotaExhausted(body) {
			return &ProviderQuotaError{Provider: provider, Detail: string(body)}
		}
		return &ProviderRateLimitError{Provider: provider, RetryAfter: retryAfter(resp)}
	case resp.StatusCode == http.StatusPaymentRequired:
		return &ProviderQuotaError{Provider: provider, Detail: string(body)}
	case resp.StatusCode >= 500:
		return &ProviderUnavailableError{Provider: provider, Reason: fmt.Sprintf("status %d", resp.StatusCode)}
	default:
		return fmt.Errorf("%s API error (status %d): %s", provider, resp.StatusCode, string(body))
	}
}

// quotaExhausted distinguishes a hard quota rejection from a transient rate
// limit; both arrive as 429 from some backends.
func quotaExhausted(body []byte) bool {
	s := strings.ToLower(string(body))
	return strings.Contains(s, "insufficient_quota") || strings.Contains(s, "quota")
}

func retryAfter(resp *http.Response) time.Duration {
	header := resp.Header.Get("Retry-After")
	if header == "" {
		return 0
	}
	seconds, err := strconv.Atoi(header)
	if err != nil {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

func temperatureOrDefault(t float64) float64 {
	if t == 0 {
		return 0.3
	}
	return t
}

func maxTokensOrDefault(n int) int {
	if n == 0 {
		return 150
	}
	return n
}
