package llm

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProvider is a test double with switchable availability.
type stubProvider struct {
	name      string
	available bool
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) IsAvailable(_ context.Context) bool { return s.available }

func (s *stubProvider) Complete(_ context.Context, _ CompletionRequest) (CompletionResponse, error) {
	return CompletionResponse{Text: s.name}, nil
}

func (s *stubProvider) Chat(_ context.Context, _ []ChatMessage) (CompletionResponse, error) {
	return CompletionResponse{Text: s.name}, nil
}

func (s *stubProvider) StructuredOutput(_ context.Context, _ string, _ json.RawMessage) (json.RawMessage, error) {
	return json.RawMessage(`{}`), nil
}

func stubFactory(available map[string]bool) *Factory {
	f := &Factory{providers: make(map[string]Provider)}
	for slot, avail := range available {
		f.providers[slot] = &stubProvider{name: slot, available: avail}
	}
	return f
}

func TestProviderForPreferenceOrder(t *testing.T) {
	tests := []struct {
		available map[string]bool
		name      string
		intent    ProviderIntent
		expected  string
	}{
		{
			name:      "fast cheap prefers cheap openai",
			intent:    IntentFastCheap,
			available: map[string]bool{slotOpenAICheap: true, slotAnthropic: true, slotLocal: true},
			expected:  slotOpenAICheap,
		},
		{
			name:      "fast cheap falls through to anthropic",
			intent:    IntentFastCheap,
			available: map[string]bool{slotOpenAICheap: false, slotAnthropic: true},
			expected:  slotAnthropic,
		},
		{
			name:      "best quality prefers quality openai",
			intent:    IntentBestQuality,
			available: map[string]bool{slotOpenAICheap: true, slotOpenAIQuality: true},
			expected:  slotOpenAIQuality,
		},
		{
			name:      "cheapest prefers local",
			intent:    IntentCheapest,
			available: map[string]bool{slotOpenAICheap: true, slotLocal: true},
			expected:  slotLocal,
		},
		{
			name:      "local only ignores remote providers",
			intent:    IntentLocalOnly,
			available: map[string]bool{slotOpenAICheap: true, slotLocal: true},
			expected:  slotLocal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := stubFactory(tt.available)
			p, err := f.ProviderFor(context.Background(), tt.intent)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, p.Name())
		})
	}
}

func TestProviderForNoneUsable(t *testing.T) {
	f := stubFactory(map[string]bool{slotOpenAICheap: false, slotAnthropic: false})

	_, err := f.ProviderFor(context.Background(), IntentFastCheap)
	var unavailErr *ProviderUnavailableError
	require.ErrorAs(t, err, &unavailErr)
}

func TestProviderForLocalOnlyWithoutLocal(t *testing.T) {
	f := stubFactory(map[string]bool{slotOpenAICheap: true})

	_, err := f.ProviderFor(context.Background(), IntentLocalOnly)
	var unavailErr *ProviderUnavailableError
	require.ErrorAs(t, err, &unavailErr)
}

func TestFallbackChain(t *testing.T) {
	f := stubFactory(map[string]bool{
		slotOpenAICheap: true,
		slotAnthropic:   true,
		slotLocal:       false,
	})

	chain := f.FallbackChain(context.Background(), IntentFastCheap)
	require.Len(t, chain, 2)
	assert.Equal(t, slotOpenAICheap, chain[0].Name())
	assert.Equal(t, slotAnthropic, chain[1].Name())
}

func TestFallbackChainEmpty(t *testing.T) {
	f := stubFactory(nil)
	assert.Empty(t, f.FallbackChain(context.Background(), IntentBestQuality))
	assert.False(t, f.Configured())
}

func TestFactoryCloseStopsRateLimiters(t *testing.T) {
	f, err := NewFactory(Config{
		OpenAIAPIKey:      "k",
		AnthropicAPIKey:   "k2",
		RequestsPerMinute: 10,
	}, nil)
	require.NoError(t, err)

	f.Close()

	for slot, p := range f.providers {
		var rl *rateLimiter
		switch prov := p.(type) {
		case *openAIProvider:
			rl = prov.limiter
		case *anthropicProvider:
			rl = prov.limiter
		}
		require.NotNil(t, rl, "provider %s should have a limiter", slot)
		select {
		case <-rl.stopCh:
		default:
			t.Fatalf("provider %s limiter still running after Close", slot)
		}
	}
}

func TestNewFactoryBuildsConfiguredProviders(t *testing.T) {
	f, err := NewFactory(Config{OpenAIAPIKey: "k", AnthropicAPIKey: "k2"}, nil)
	require.NoError(t, err)
	assert.True(t, f.Configured())

	chain := f.FallbackChain(context.Background(), IntentFastCheap)
	require.Len(t, chain, 2)
	assert.Equal(t, slotOpenAICheap, chain[0].Name())

	// No lifecycle means no local provider.
	_, err = f.ProviderFor(context.Background(), IntentLocalOnly)
	var unavailErr *ProviderUnavailableError
	require.ErrorAs(t, err, &unavailErr)
}
