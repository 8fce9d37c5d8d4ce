// Package categorize assigns categories to imported transactions through a
// strict priority cascade: learned merchants, a merchant pattern database,
// user history and generic rules, LLM merchant enrichment, and finally a
// batched AI categorizer. Each tier either produces a result or defers to
// the next; the first match wins and lower tiers are never consulted.
package categorize
