package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/ledgerloom/ledgerloom/internal/model"
)

// ModelLifecycle manages on-device model artifacts. The local provider only
// serves requests when the selected model reports READY, and asks the
// lifecycle to load it into the engine before the first call.
type ModelLifecycle interface {
	SelectedModel() (model.InstalledModel, error)
	Load(ctx context.Context, installed model.InstalledModel) error
}

// localProvider implements Provider against an on-device inference engine
// speaking an Ollama-style HTTP API on localhost.
type localProvider struct {
	httpClient *http.Client
	lifecycle  ModelLifecycle
	baseURL    string

	// Loading is lazy, idempotent, and serialized; a failed load is
	// retried on the next call.
	loadMu sync.Mutex
	loaded bool
}

func newLocalProvider(cfg Config, lifecycle ModelLifecycle) (Provider, error) {
	if lifecycle == nil {
		return nil, fmt.Errorf("model lifecycle is required")
	}

	baseURL := cfg.LocalBaseURL
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	return &localProvider{
		baseURL:   baseURL,
		lifecycle: lifecycle,
		httpClient: &http.Client{
			// On-device inference is slow on first token.
			Timeout: 300 * time.Second,
		},
	}, nil
}

func (p *localProvider) Name() string { return "local" }

func (p *localProvider) IsAvailable(_ context.Context) bool {
	installed, err := p.lifecycle.SelectedModel()
	if err != nil {
		return false
	}
	return installed.Status == model.ModelStatusReady
}

// ensureLoaded loads the selected model into the engine exactly once. It is
// safe for concurrent callers; only the first successful load flips the
// flag.
func (p *localProvider) ensureLoaded(ctx context.Context) (model.InstalledModel, error) {
	p.loadMu.Lock()
	defer p.loadMu.Unlock()

	installed, err := p.lifecycle.SelectedModel()
	if err != nil {
		return model.InstalledModel{}, &ProviderUnavailableError{Provider: p.Name(), Reason: err.Error()}
	}
	if installed.Status != model.ModelStatusReady {
		return model.InstalledModel{}, &ProviderUnavailableError{
			Provider: p.Name(),
			Reason:   fmt.Sprintf("model %s status %s", installed.Config.ID, installed.Status),
		}
	}

	if p.loaded {
		return installed, nil
	}
	if err := p.lifecycle.Load(ctx, installed); err != nil {
		return model.InstalledModel{}, &ProviderUnavailableError{
			Provider: p.Name(),
			Reason:   fmt.Sprintf("model load failed: %v", err),
		}
	}
	p.loaded = true
	return installed, nil
}

func (p *localProvider) Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error) {
	installed, err := p.ensureLoaded(ctx)
	if err != nil {
		return CompletionResponse{}, err
	}

	prompt := req.Prompt
	if req.System != "" {
		prompt = req.System + "\n\n" + req.Prompt
	}

	return p.generate(ctx, installed.Config.ID, prompt)
}

func (p *localProvider) Chat(ctx context.Context, history []ChatMessage) (CompletionResponse, error) {
	installed, err := p.ensureLoaded(ctx)
	if err != nil {
		return CompletionResponse{}, err
	}

	reqBody := map[string]any{
		"model":    installed.Config.ID,
		"messages": history,
		"stream":   false,
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return CompletionResponse{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	body, err := p.post(ctx, "/api/chat", jsonData)
	if err != nil {
		return CompletionResponse{}, err
	}

	var chatResp struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		Model           string `json:"model"`
		PromptEvalCount int    `json:"prompt_eval_count"`
		EvalCount       int    `json:"eval_count"`
	}
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return CompletionResponse{}, fmt.Errorf("failed to parse response: %w", err)
	}

	return CompletionResponse{
		Text:             chatResp.Message.Content,
		Model:            chatResp.Model,
		PromptTokens:     chatResp.PromptEvalCount,
		CompletionTokens: chatResp.EvalCount,
	}, nil
}

func (p *localProvider) StructuredOutput(ctx context.Context, prompt string, schema json.RawMessage) (json.RawMessage, error) {
	installed, err := p.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}

	reqBody := map[string]any{
		"model":  installed.Config.ID,
		"prompt": prompt,
		"format": schema,
		"stream": false,
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	body, err := p.post(ctx, "/api/generate", jsonData)
	if err != nil {
		return nil, err
	}

	var genResp struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(body, &genResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	content := StripMarkdownFence(genResp.Response)
	if !json.Valid([]byte(content)) {
		return nil, fmt.Errorf("response is not valid JSON: %s", content)
	}
	return json.RawMessage(content), nil
}

func (p *localProvider) generate(ctx context.Context, modelID, prompt string) (CompletionResponse, error) {
	reqBody := map[string]any{
		"model":  modelID,
		"prompt": prompt,
		"stream": false,
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return CompletionResponse{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	body, err := p.post(ctx, "/api/generate", jsonData)
	if err != nil {
		return CompletionResponse{}, err
	}

	var genResp struct {
		Response        string `json:"response"`
		Model           string `json:"model"`
		PromptEvalCount int    `json:"prompt_eval_count"`
		EvalCount       int    `json:"eval_count"`
	}
	if err := json.Unmarshal(body, &genResp); err != nil {
		return CompletionResponse{}, fmt.Errorf("failed to parse response: %w", err)
	}

	return CompletionResponse{
		Text:             genResp.Response,
		Model:            genResp.Model,
		PromptTokens:     genResp.PromptEvalCount,
		CompletionTokens: genResp.EvalCount,
	}, nil
}

func (p *localProvider) post(ctx context.Context, path string, jsonData []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, &ProviderUnavailableError{Provider: p.Name(), Reason: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderUnavailableError{
			Provider: p.Name(),
			Reason:   fmt.Sprintf("engine returned status %d: %s", resp.StatusCode, string(body)),
		}
	}
	return body, nil
}
