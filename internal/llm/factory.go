package llm

import "context"

// ProviderIntent declares what a caller wants from a provider; the factory
// maps it to a fixed preference order over the configured backends.
type ProviderIntent string

// Supported intents.
const (
	IntentFastCheap        ProviderIntent = "FAST_CHEAP"
	IntentBestQuality      ProviderIntent = "BEST_QUALITY"
	IntentStructuredOutput ProviderIntent = "STRUCTURED_OUTPUT"
	IntentLocalOnly        ProviderIntent = "LOCAL_ONLY"
	IntentCheapest         ProviderIntent = "CHEAPEST"
)

// provider slot names used in preference orders.
const (
	slotOpenAICheap   = "openai-cheap"
	slotOpenAIQuality = "openai-quality"
	slotAnthropic     = "anthropic"
	slotLocal         = "local"
)

// intentOrder is the fixed preference order per intent. Resolution walks
// the order and picks the first usable provider.
var intentOrder = map[ProviderIntent][]string{
	IntentFastCheap:        {slotOpenAICheap, slotAnthropic, slotLocal},
	IntentBestQuality:      {slotOpenAIQuality, slotAnthropic, slotOpenAICheap},
	IntentStructuredOutput: {slotOpenAIQuality, slotAnthropic, slotLocal},
	IntentLocalOnly:        {slotLocal},
	IntentCheapest:         {slotLocal, slotOpenAICheap, slotAnthropic},
}

// Factory holds the configured providers and resolves them by intent.
// Unconfigured backends simply never appear in any chain.
type Factory struct {
	providers map[string]Provider
}

// NewFactory builds providers for every backend Config has credentials for.
// lifecycle may be nil when no on-device engine is configured.
func NewFactory(cfg Config, lifecycle ModelLifecycle) (*Factory, error) {
	f := &Factory{providers: make(map[string]Provider)}

	if cfg.OpenAIAPIKey != "" {
		cheap, quality, err := newOpenAIPair(cfg)
		if err != nil {
			return nil, err
		}
		f.providers[slotOpenAICheap] = cheap
		f.providers[slotOpenAIQuality] = quality
	}

	if cfg.AnthropicAPIKey != "" {
		anthropic, err := newAnthropicProvider(cfg)
		if err != nil {
			return nil, err
		}
		f.providers[slotAnthropic] = anthropic
	}

	if lifecycle != nil {
		local, err := newLocalProvider(cfg, lifecycle)
		if err != nil {
			return nil, err
		}
		f.providers[slotLocal] = local
	}

	return f, nil
}

// ProviderFor resolves the first usable provider for the intent. It returns
// a *ProviderUnavailableError only when no candidate in the preference
// order is usable.
func (f *Factory) ProviderFor(ctx context.Context, intent ProviderIntent) (Provider, error) {
	for _, slot := range intentOrder[intent] {
		p, ok := f.providers[slot]
		if ok && p.IsAvailable(ctx) {
			return p, nil
		}
	}
	return nil, &ProviderUnavailableError{
		Provider: string(intent),
		Reason:   "no configured provider is usable for this intent",
	}
}

// FallbackChain returns every usable provider for the intent in preference
// order, so callers can retry across backends after a failure. The chain
// may be empty.
func (f *Factory) FallbackChain(ctx context.Context, intent ProviderIntent) []Provider {
	var chain []Provider
	for _, slot := range intentOrder[intent] {
		p, ok := f.providers[slot]
		if ok && p.IsAvailable(ctx) {
			chain = append(chain, p)
		}
	}
	return chain
}

// Configured reports whether any provider was built at all; the enrichment
// tier uses this to skip itself cheaply.
func (f *Factory) Configured() bool {
	return len(f.providers) > 0
}

// Close shuts down every provider that holds background resources, such as
// the rate limiter refill goroutines.
func (f *Factory) Close() {
	for _, p := range f.providers {
		if c, ok := p.(interface{ Close() }); ok {
			c.Close()
		}
	}
}
