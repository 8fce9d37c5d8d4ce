package llm

import (
	"fmt"
	"time"
)

// ProviderUnavailableError indicates a provider (or every candidate for an
// intent) cannot serve requests. The cascade treats it as "tier did not
// match" and escalates.
type ProviderUnavailableError struct {
	Provider string
	Reason   string
}

func (e *ProviderUnavailableError) Error() string {
	return fmt.Sprintf("provider %s unavailable: %s", e.Provider, e.Reason)
}

// ProviderRateLimitError indicates the backend rejected a request with a
// rate-limit response.
type ProviderRateLimitError struct {
	Provider   string
	RetryAfter time.Duration
}

func (e *ProviderRateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("provider %s rate limited, retry after %s", e.Provider, e.RetryAfter)
	}
	return fmt.Sprintf("provider %s rate limited", e.Provider)
}

// ProviderQuotaError indicates the account's spending quota is exhausted.
// Unlike a rate limit this does not clear on its own.
type ProviderQuotaError struct {
	Provider string
	Detail   string
}

func (e *ProviderQuotaError) Error() string {
	return fmt.Sprintf("provider %s quota exceeded: %s", e.Provider, e.Detail)
}
