package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const anthropicEndpoint = "https://api.anthropic.com/v1/messages"

// anthropicProvider implements Provider against the Anthropic messages API.
type anthropicProvider struct {
	httpClient *http.Client
	limiter    *rateLimiter
	apiKey     string
	model      string
	endpoint   string
}

func newAnthropicProvider(cfg Config) (Provider, error) {
	if cfg.AnthropicAPIKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}

	model := cfg.AnthropicModel
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}

	return &anthropicProvider{
		apiKey:   cfg.AnthropicAPIKey,
		model:    model,
		endpoint: anthropicEndpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: newRateLimiter(cfg.RequestsPerMinute),
	}, nil
}

func (p *anthropicProvider) Name() string { return "anthropic" }

// Close releases the rate limiter.
func (p *anthropicProvider) Close() { p.limiter.Close() }

func (p *anthropicProvider) IsAvailable(_ context.Context) bool {
	return p.apiKey != ""
}

func (p *anthropicProvider) Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error) {
	body := map[string]any{
		"model":       p.model,
		"max_tokens":  maxTokensOrDefault(req.MaxTokens),
		"temperature": temperatureOrDefault(req.Temperature),
		"messages": []map[string]string{
			{"role": "user", "content": req.Prompt},
		},
	}
	if req.System != "" {
		body["system"] = req.System
	}
	return p.send(ctx, body)
}

func (p *anthropicProvider) Chat(ctx context.Context, history []ChatMessage) (CompletionResponse, error) {
	// The messages API takes the system turn as a top-level field.
	var system string
	messages := make([]map[string]string, 0, len(history))
	for _, m := range history {
		if m.Role == "system" {
			system = m.Content
			continue
		}
		messages = append(messages, map[string]string{"role": m.Role, "content": m.Content})
	}

	body := map[string]any{
		"model":       p.model,
		"max_tokens":  maxTokensOrDefault(0),
		"temperature": temperatureOrDefault(0),
		"messages":    messages,
	}
	if system != "" {
		body["system"] = system
	}
	return p.send(ctx, body)
}

func (p *anthropicProvider) StructuredOutput(ctx context.Context, prompt string, schema json.RawMessage) (json.RawMessage, error) {
	system := fmt.Sprintf(
		"You MUST respond with ONLY a valid JSON document conforming to this JSON schema:\n%s\nDo not include any explanatory text, markdown formatting, or commentary before or after the JSON.",
		string(schema))

	resp, err := p.send(ctx, map[string]any{
		"model":       p.model,
		"max_tokens":  maxTokensOrDefault(0) * 10,
		"temperature": temperatureOrDefault(0),
		"system":      system,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
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

func (p *anthropicProvider) send(ctx context.Context, requestBody map[string]any) (CompletionResponse, error) {
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
	req.Header.Set("x-api-key", p.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return CompletionResponse{}, &ProviderUnavailableError{Provider: p.Name(), Reason: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return CompletionResponse{}, fmt.Errorf("failed to read response: %w", err)
	}

	if err := statusToError(p.Name(), resp, body); err != nil {
		return CompletionResponse{}, err
	}

	var response anthropicResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return CompletionResponse{}, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(response.Content) == 0 {
		return CompletionResponse{}, fmt.Errorf("no content in response")
	}

	return CompletionResponse{
		Text:             response.Content[0].Text,
		Model:            response.Model,
		PromptTokens:     response.Usage.InputTokens,
		CompletionTokens: response.Usage.OutputTokens,
	}, nil
}

// anthropicResponse represents the Anthropic API response structure.
type anthropicResponse struct {
	ID         string `json:"id"`
	Model      string `json:"model"`
	StopReason string `json:"stop_reason"`
	Content    []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}
