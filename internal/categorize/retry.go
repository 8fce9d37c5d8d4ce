package categorize

import (
	"context"
	"errors"

	"github.com/ledgerloom/ledgerloom/internal/common"
	"github.com/ledgerloom/ledgerloom/internal/llm"
)

// completeWithRetry wraps a provider call with backoff. Quota exhaustion is
// terminal for the billing period; retrying it only burns time.
func completeWithRetry(ctx context.Context, provider llm.Provider, req llm.CompletionRequest) (llm.CompletionResponse, error) {
	var resp llm.CompletionResponse
	err := common.WithRetry(ctx, func() error {
		r, err := provider.Complete(ctx, req)
		if err != nil {
			var quotaErr *llm.ProviderQuotaError
			if errors.As(err, &quotaErr) {
				return &common.RetryableError{Err: err, Retryable: false}
			}
			return err
		}
		resp = r
		return nil
	}, common.RetryOptions{MaxAttempts: 3})
	return resp, err
}
