package llm

import (
	"context"
	"encoding/json"
)

// Provider is an interchangeable completion backend.
type Provider interface {
	// Name identifies the provider for logging and cost tracking.
	Name() string

	// IsAvailable reports whether the provider can serve requests right
	// now. It must be cheap: configuration and lifecycle checks only, no
	// network round trips.
	IsAvailable(ctx context.Context) bool

	// Complete produces a single completion for a prompt.
	Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error)

	// Chat produces a completion for a multi-turn message history.
	Chat(ctx context.Context, messages []ChatMessage) (CompletionResponse, error)

	// StructuredOutput produces a completion constrained to the given JSON
	// schema. The returned bytes are valid JSON with markdown fencing
	// already stripped.
	StructuredOutput(ctx context.Context, prompt string, schema json.RawMessage) (json.RawMessage, error)
}

// CompletionRequest is a single-prompt completion request.
type CompletionRequest struct {
	Prompt      string
	System      string
	Temperature float64
	MaxTokens   int
}

// CompletionResponse is the provider's reply plus token accounting for the
// cost tracker.
type CompletionResponse struct {
	Text             string
	Model            string
	PromptTokens     int
	CompletionTokens int
}

// ChatMessage is one turn of a chat history.
type ChatMessage struct {
	Role    string `json:"role"` // "system", "user", or "assistant"
	Content string `json:"content"`
}

// Config holds credentials and model selection for all backends. Zero-value
// fields leave the corresponding provider unregistered.
type Config struct {
	OpenAIAPIKey       string
	OpenAICheapModel   string
	OpenAIQualityModel string

	AnthropicAPIKey string
	AnthropicModel  string

	// LocalBaseURL points at the on-device inference engine. The local
	// provider is only usable when Lifecycle reports a READY model.
	LocalBaseURL string

	// RequestsPerMinute caps calls per remote provider. Zero disables
	// limiting.
	RequestsPerMinute int
}
