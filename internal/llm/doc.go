// Package llm provides a uniform interface over interchangeable completion
// backends: OpenAI (cheap and quality model pair), Anthropic, and an
// on-device model served over a local HTTP engine. A factory resolves a
// provider for a declared intent using a fixed preference order, and a
// fallback chain returns every usable provider in that order so callers can
// retry across backends after a failure.
package llm
